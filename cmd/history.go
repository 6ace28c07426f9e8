package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/feeportal/internal/app"
	"github.com/zjrosen/feeportal/internal/mode/history"
	"github.com/zjrosen/feeportal/internal/payments"
)

var (
	flagFilter string
	flagWidth  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the payment history",
	Long: `Print the payment history table and the total paid, without starting
the interactive portal.

The --filter flag narrows the list to one status: all, completed,
pending or failed. The total always counts every completed payment.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&flagFilter, "filter", "f", string(payments.FilterAll), "status filter (all, completed, pending, failed)")
	historyCmd.Flags().IntVar(&flagWidth, "width", 100, "table width in columns")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	filter, err := payments.ParseFilter(flagFilter)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The watcher only matters to the interactive portal.
	cfg.Data.Watch = false

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stopTracing, err := initTelemetry(ctx, cfg, false, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer stopTracing()

	backend, err := app.NewBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = backend.Close() }()

	records, err := backend.Services.Payments.Records(ctx)
	if err != nil {
		return fmt.Errorf("loading payments: %w", err)
	}
	view := payments.NewView(records)
	visible := view.Filtered(filter)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Transaction History (%d) · %s\n\n", len(visible), filter.Label())
	fmt.Fprintln(out, history.RenderTable(visible, flagWidth))
	fmt.Fprintf(out, "\nTotal Paid This Year: %s\n", view.TotalPaid().Dollars())
	return nil
}
