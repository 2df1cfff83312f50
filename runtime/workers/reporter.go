package workers

import (
	"context"
	"log/slog"
	"market-hub/observability"
	"market-hub/runtime"
	"time"
)

// Reporter periodically logs hub occupancy so operators can follow
// connection churn without scraping the stats endpoint.
type Reporter struct {
	log      *slog.Logger
	registry *runtime.Registry
	stats    *observability.HubStats
	interval time.Duration
}

func NewReporter(log *slog.Logger, registry *runtime.Registry,
	stats *observability.HubStats, interval time.Duration) *Reporter {
	return &Reporter{log: log, registry: registry, stats: stats, interval: interval}
}

func (w *Reporter) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			connections, groups := w.registry.Stats()
			w.log.Info("hub report",
				"connections", connections,
				"groups", groups,
				"per_channel", w.stats.Connected())
		}
	}
}
