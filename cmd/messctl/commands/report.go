package commands

import (
	"fmt"
	"io"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/calculator"
	"github.com/mmynk/messbook/internal/models"
	"github.com/mmynk/messbook/internal/settlement"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute a mess settlement",
	Long: `Compute a settlement for one mess straight from the store and print it as a table.
Give either --month YYYY-MM or both --from and --to (inclusive YYYY-MM-DD dates).
Negative balances mean the member owes the mess.`,
	Example: `  messctl report --mess 6f1c... --month 2024-02
  messctl report --mess 6f1c... --from 2024-03-01 --to 2024-03-15`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("mess", "", "Mess ID")
	reportCmd.Flags().String("month", "", "Calendar month, YYYY-MM")
	reportCmd.Flags().String("from", "", "First day, YYYY-MM-DD")
	reportCmd.Flags().String("to", "", "Last day, YYYY-MM-DD")
	_ = reportCmd.MarkFlagRequired("mess")
	reportCmd.MarkFlagsMutuallyExclusive("month", "from")
	reportCmd.MarkFlagsMutuallyExclusive("month", "to")
	reportCmd.MarkFlagsRequiredTogether("from", "to")
}

func runReport(cmd *cobra.Command, args []string) error {
	messID, _ := cmd.Flags().GetString("mess")
	month, _ := cmd.Flags().GetString("month")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	period, err := reportPeriod(month, from, to)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine := settlement.NewEngine(store, store, store, nil, logger)
	result, err := engine.Compute(cmd.Context(), messID, period)
	if err != nil {
		return err
	}

	renderSettlement(cmd.OutOrStdout(), result, settings.Colours)
	return nil
}

func reportPeriod(month, from, to string) (models.Period, error) {
	if month != "" {
		return models.ParseMonth(month)
	}
	if from == "" || to == "" {
		return models.Period{}, fmt.Errorf("either --month or both --from and --to are required")
	}
	start, err := models.ParseDate(from)
	if err != nil {
		return models.Period{}, err
	}
	end, err := models.ParseDate(to)
	if err != nil {
		return models.Period{}, err
	}
	return models.NewPeriod(start, end)
}

// renderSettlement prints the per-member table followed by the mess totals.
func renderSettlement(w io.Writer, s models.Settlement, colours bool) {
	money := func(d decimal.Decimal) string {
		out := d.StringFixed(calculator.Precision)
		if colours && d.IsNegative() {
			return color.FgRed.Render(out)
		}
		return out
	}

	fmt.Fprintf(w, "Settlement %s\n\n", s.Period)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Member", "Units", "Deposits", "Cost", "Balance"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetBorder(false)
	for _, id := range s.MemberIDs() {
		m := s.PerMember[id]
		table.Append([]string{id, money(m.Units), money(m.Deposits), money(m.Cost), money(m.Balance)})
	}
	table.SetFooter([]string{"Total", money(s.TotalMealUnits), money(s.TotalDeposits), money(s.TotalCost), money(s.MessBalance)})
	table.Render()

	fmt.Fprintf(w, "\nMeal rate: %s per unit\n", money(s.MealRate))
}
