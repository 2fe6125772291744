package scraper

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Start runs the scrape loop until the context is cancelled. The first
// run happens immediately, then every interval.
func (r *Runner) Start(ctx context.Context, interval time.Duration) {
	r.logger.Info("Scrape scheduler started",
		zap.Duration("interval", interval),
		zap.Int("sources", len(r.sources)),
	)

	r.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Scrape scheduler stopped")
			return
		case <-ticker.C:
			r.RunOnce(ctx)
		}
	}
}
