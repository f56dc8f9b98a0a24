package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingRefresher struct {
	calls atomic.Int64
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestFeedRefresherRunsImmediatelyAndOnTicks(t *testing.T) {
	refresher := &countingRefresher{}
	w := NewFeedRefresher(10*time.Millisecond, zap.NewNop(), refresher)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return refresher.calls.Load() >= 3
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestFeedRefresherContinuesPastFailures(t *testing.T) {
	failing := &countingRefresher{err: errors.New("cache down")}
	healthy := &countingRefresher{}
	w := NewFeedRefresher(10*time.Millisecond, zap.NewNop(), failing, healthy)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return healthy.calls.Load() >= 2 && failing.calls.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestFeedRefresherDefaultsInterval(t *testing.T) {
	w := NewFeedRefresher(0, zap.NewNop())
	assert.Equal(t, 5*time.Second, w.interval)
}
