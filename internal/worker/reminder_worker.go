package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/biletfinder/ticketing-service/internal/service"
)

// StartReminderWorker periodically re-runs the past-status refresh and
// reminder scan so reminders fire even when no ticket list is loaded.
// It stops when ctx is cancelled.
func StartReminderWorker(ctx context.Context, tickets *service.TicketService, interval time.Duration, logger *zap.Logger) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := tickets.RefreshAndRemind(ctx); err != nil {
					logger.Warn("reminder scan failed", zap.Error(err))
				}
			}
		}
	}()
}
