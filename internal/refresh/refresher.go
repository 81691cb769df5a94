package refresh

import (
	"context"
	"log/slog"
	"time"

	"github.com/opsgrade/obs-scorecard/internal/scorecard"
)

// Refresher periodically recomputes every stored system's score and warms
// the cache, so reads after a quiet period stay cheap.
type Refresher struct {
	service  *scorecard.Service
	interval time.Duration
}

// NewRefresher creates a new refresh worker
func NewRefresher(service *scorecard.Service, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	return &Refresher{
		service:  service,
		interval: interval,
	}
}

// Start begins the refresh worker in a goroutine
func (r *Refresher) Start(ctx context.Context) {
	go r.run(ctx)
}

// run is the main loop for the refresh worker
func (r *Refresher) run(ctx context.Context) {
	slog.Info("refresh worker started", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Run immediately on start
	r.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("refresh worker stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

// refresh recomputes all system scores from the latest snapshot
func (r *Refresher) refresh(ctx context.Context) {
	slog.Debug("running refresh cycle")

	scores, err := r.service.ListScores(ctx)
	if err != nil {
		slog.Error("failed to refresh scores", "error", err)
		return
	}

	if len(scores) == 0 {
		slog.Debug("no systems to refresh")
		return
	}

	slog.Info("scores refreshed", "systems", len(scores))
}
