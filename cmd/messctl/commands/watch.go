package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/gookit/color"
	"github.com/spf13/cobra"

	"github.com/mmynk/messbook/internal/events"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail ledger events from the broker",
	Long:  `Consume ledger change notifications from MESSCTL_AMQP_URL and print one line per event.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if settings.AMQPURL == "" {
			return fmt.Errorf("MESSCTL_AMQP_URL is not set")
		}

		client, err := events.NewClient(settings.AMQPURL, settings.AMQPExchange, settings.AMQPRoutingKey)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		err = client.Consume(ctx, func(e events.LedgerEvent) error {
			printEvent(out, e, settings.Colours)
			return nil
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func printEvent(w io.Writer, e events.LedgerEvent, colours bool) {
	kind := string(e.Kind)
	if colours {
		kind = color.FgCyan.Render(kind)
	}
	fmt.Fprintf(w, "%s %-16s mess=%s user=%s", e.At.Format("15:04:05"), kind, e.MessID, e.UserID)
	if e.Date != "" {
		fmt.Fprintf(w, " date=%s", e.Date)
	}
	if e.EntryID != "" {
		fmt.Fprintf(w, " entry=%s", e.EntryID)
	}
	fmt.Fprintln(w)
}
