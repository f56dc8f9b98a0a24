package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherDeliversToSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var seen []string
	d.Subscribe(EventRequestCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e.SubjectID)
		return nil
	})
	d.Subscribe(EventRequestCreated, func(_ context.Context, e Event) error {
		seen = append(seen, e.SubjectID+"-second")
		return nil
	})

	require.NoError(t, d.Publish(ctx, Event{Type: EventRequestCreated, SubjectID: "req-1"}))
	assert.Equal(t, []string{"req-1", "req-1-second"}, seen)
}

func TestDispatcherIgnoresHandlerErrors(t *testing.T) {
	d := NewInMemoryDispatcher()
	ctx := context.Background()

	var reached bool
	d.Subscribe(EventPayoutRejected, func(context.Context, Event) error {
		return errors.New("handler blew up")
	})
	d.Subscribe(EventPayoutRejected, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, d.Publish(ctx, Event{Type: EventPayoutRejected}))
	assert.True(t, reached)
}

func TestDispatcherNoSubscribers(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventRequestReviewed}))
}
