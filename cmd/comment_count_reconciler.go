package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/services"
)

const (
	defaultReconcileInterval = time.Hour
	reconcileTimeout         = 30 * time.Second
)

// startCommentCountReconciler periodically rewrites offers.comments_count from
// the comments table. Deleting a comment never decrements the counter, so the
// stored value drifts until the next run.
func startCommentCountReconciler(ctx context.Context, svc *services.OfferService, interval time.Duration, logger *slog.Logger) {
	if svc == nil {
		return
	}
	if interval <= 0 {
		interval = defaultReconcileInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		run := func() {
			runCtx, cancel := context.WithTimeout(ctx, reconcileTimeout)
			defer cancel()

			fixed, err := svc.ReconcileCommentCounts(runCtx)
			if err != nil {
				logger.Error("comment count reconciler failed", "error", err)
				return
			}
			if fixed > 0 {
				logger.Info("comment count reconciler corrected offers", "count", fixed)
			}
		}

		run()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
