package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Refresher is any service that can recompute its cached feed.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// FeedRefresher keeps the polled dashboard feeds warm so the 5-second
// client polling contract reads from cache rather than the store.
type FeedRefresher struct {
	interval   time.Duration
	refreshers []Refresher
	logger     *zap.Logger
}

// NewFeedRefresher constructs the worker.
func NewFeedRefresher(interval time.Duration, logger *zap.Logger, refreshers ...Refresher) *FeedRefresher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &FeedRefresher{interval: interval, refreshers: refreshers, logger: logger}
}

// Run refreshes feeds on the configured interval until ctx is cancelled.
func (w *FeedRefresher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.refreshAll(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("feed refresher stopped")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *FeedRefresher) refreshAll(ctx context.Context) {
	for _, r := range w.refreshers {
		if err := r.Refresh(ctx); err != nil {
			w.logger.Warn("feed refresh failed", zap.Error(err))
		}
	}
}
