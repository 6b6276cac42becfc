package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/models"
)

var monthCmd = &cobra.Command{
	Use:   "month YYYY-MM",
	Short: "Print the inclusive period of a month",
	Long: `Resolve a calendar month to its inclusive first and last day. With --from-day and
--to-day the range is clamped to the month's real length, so February 1..31 prints
the 28th (or 29th) as the last day.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fromDay, _ := cmd.Flags().GetInt("from-day")
		toDay, _ := cmd.Flags().GetInt("to-day")

		period, err := monthPeriod(args[0], fromDay, toDay)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d days)\n", period.Start, period.End, period.Days())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monthCmd)

	monthCmd.Flags().Int("from-day", 1, "First day of the month to include")
	monthCmd.Flags().Int("to-day", 31, "Last day of the month to include; clamped to the month length")
}

func monthPeriod(month string, fromDay, toDay int) (models.Period, error) {
	whole, err := models.ParseMonth(month)
	if err != nil {
		return models.Period{}, err
	}
	return models.MonthSpan(whole.Start.Year(), whole.Start.Month(), fromDay, toDay)
}
