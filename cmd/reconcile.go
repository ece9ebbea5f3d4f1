package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reconcileCmd is the parent command for one-off reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a single record against the ledger",
}

// reservationReconcileCmd reconciles one reservation synchronously.
var reservationReconcileCmd = &cobra.Command{
	Use:   "reservation <external-id>",
	Short: "Fetch one reservation from the booking platform and mirror it",
	Long: `Runs a full dependency-ordered sync for a single reservation,
bypassing the event queue. Useful for verifying a fix or replaying a
delivery by hand.

Example:
  reconcile reservation 64f1c2ab90`,
	Args: cobra.ExactArgs(1),
	RunE: runReservationReconcile,
}

func init() {
	reconcileCmd.AddCommand(reservationReconcileCmd)
	RootCmd.AddCommand(reconcileCmd)
}

func runReservationReconcile(cmd *cobra.Command, args []string) error {
	service, _, l, err := buildSyncService()
	if err != nil {
		return err
	}
	defer l.Sync()

	externalID := args[0]
	l.Info("Reconciling reservation", zap.String("reservation", externalID))

	if err := service.ReconcileOne(context.Background(), externalID); err != nil {
		return err
	}

	l.Info("Reservation reconciled", zap.String("reservation", externalID))
	return nil
}
