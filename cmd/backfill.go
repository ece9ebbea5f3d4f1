package cmd

import (
	"context"

	"booking-bridge/core/source"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	backfillFrom    string
	backfillTo      string
	backfillListing string
)

// backfillCmd seeds or repairs the mirror from the booking platform's
// reservation search.
var backfillCmd = &cobra.Command{
	Use:   "backfill",
	Short: "Sync every reservation the booking platform reports for a window",
	Long: `Searches the booking platform for reservations in a check-in date
range (optionally limited to one listing) and queues a full sync for each.
Unlike resync, backfill does not look at local state: it recovers webhooks
that were never delivered at all.

Examples:
  # Everything checking in this September
  backfill --from 2026-09-01 --to 2026-09-30

  # One listing only
  backfill --from 2026-09-01 --to 2026-09-30 --listing 64f1c2ab90`,
	RunE: runBackfill,
}

func init() {
	backfillCmd.Flags().StringVar(&backfillFrom, "from", "", "Check-in range start (YYYY-MM-DD)")
	backfillCmd.Flags().StringVar(&backfillTo, "to", "", "Check-in range end (YYYY-MM-DD)")
	backfillCmd.Flags().StringVar(&backfillListing, "listing", "", "Limit to one listing external id")
	_ = backfillCmd.MarkFlagRequired("from")
	_ = backfillCmd.MarkFlagRequired("to")

	RootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	service, worker, l, err := buildSyncService()
	if err != nil {
		return err
	}
	defer l.Sync()

	queued, err := service.Backfill(context.Background(), source.SearchQuery{
		From:      backfillFrom,
		To:        backfillTo,
		ListingID: backfillListing,
	})
	if err != nil {
		return err
	}

	l.Info("Backfill queued",
		zap.Int("jobs", queued),
		zap.String("from", backfillFrom),
		zap.String("to", backfillTo),
	)
	worker.Wait()
	l.Info("Backfill finished")
	return nil
}
