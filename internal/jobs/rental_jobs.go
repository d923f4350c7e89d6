package jobs

import (
	"context"
	"time"

	"rentalworks-backend/internal/logger"
)

// SendReturnReminders finds orders still out past their rental end and
// logs a reminder per order. Status is left untouched: overdue is a
// billing fact assessed at return, not a lifecycle state.
func (jr *JobRunner) SendReturnReminders() {
	jr.runWithRecovery("SendReturnReminders", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		overdue, err := jr.store.ListOverdue(ctx, now)
		if err != nil {
			logger.Error("Failed to list overdue orders", "error", err)
			return
		}

		for _, order := range overdue {
			logger.Info("Return reminder",
				"order_id", order.ID,
				"order_number", order.OrderNumber,
				"customer_id", order.CustomerID,
				"due", order.LatestItemEnd(),
			)
		}

		logger.Info("Return reminders sent", "count", len(overdue))
	})
}

// PurgeStaleCartLines removes cart lines whose rental window has already
// started. They can no longer be checked out as quoted.
func (jr *JobRunner) PurgeStaleCartLines() {
	jr.runWithRecovery("PurgeStaleCartLines", func() {
		ctx := context.Background()
		now := time.Now().UTC()

		purged, err := jr.store.DeleteStartedBefore(ctx, now)
		if err != nil {
			logger.Error("Failed to purge stale cart lines", "error", err)
			return
		}

		logger.Info("Stale cart lines purged", "count", purged)
	})
}
