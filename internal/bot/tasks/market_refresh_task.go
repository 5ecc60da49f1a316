package tasks

import (
	"context"
	"fmt"
	"time"
)

// newMarketRefreshTask creates the scheduled task that refreshes the in-memory
// market catalog cache from the upstream price API. Failures leave the previous
// snapshot in place so price queries keep serving slightly stale data.
func newMarketRefreshTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "market_refresh")

	return func(ctx context.Context) error {
		log.DebugContext(ctx, "Starting scheduled market refresh task")
		startTime := time.Now()

		items, err := deps.MarketClient.FetchCatalog(ctx)
		duration := time.Since(startTime)

		if err != nil {
			log.ErrorContext(ctx, "Market refresh task failed", "error", err, "duration", duration)
			return fmt.Errorf("market refresh failed: %w", err)
		}
		if len(items) == 0 {
			log.WarnContext(ctx, "Market refresh returned no items, keeping previous snapshot", "duration", duration)
			return nil
		}

		deps.MarketCache.Set(items)
		log.InfoContext(ctx, "Market catalog refreshed", "items", len(items), "duration", duration)
		return nil
	}
}
