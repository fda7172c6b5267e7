package event

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDispatchOutcomes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := zap.NewNop()
	msg := Message{Key: "k", Body: []byte(`{}`)}

	tests := []struct {
		name string
		h    Handler
		want Outcome
	}{
		{"success", func(context.Context, Message) error { return nil }, Ack},
		{"malformed", func(context.Context, Message) error {
			return fmt.Errorf("decode: %w", ErrMalformedEvent)
		}, Drop},
		{"unsupported", func(context.Context, Message) error { return ErrUnsupportedEvent }, Drop},
		{"store failure", func(context.Context, Message) error { return errors.New("db down") }, Retry},
		{"panic", func(context.Context, Message) error { panic("boom") }, Retry},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Dispatch(ctx, tc.h, msg, log))
		})
	}
}

func TestOutcomeSettled(t *testing.T) {
	t.Parallel()

	require.True(t, Ack.Settled())
	require.True(t, Drop.Settled())
	require.False(t, Retry.Settled())
	require.Equal(t, "retry", Retry.String())
}

func TestMemoryBusIsolatesFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bus := NewMemoryBus(zap.NewNop())

	review, flight := sampleReview()
	require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))
	bus.PublishRaw(Message{Key: "bad", Body: []byte(`garbage`)})
	require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))

	var handled atomic.Int32
	h := func(_ context.Context, msg Message) error {
		e, err := Decode(msg.Body)
		if err != nil {
			return err
		}
		if _, err := e.ReviewUUID(); err != nil {
			return err
		}
		handled.Add(1)
		return nil
	}

	require.Equal(t, 3, bus.Drain(ctx, h))
	require.EqualValues(t, 2, handled.Load())
	require.Zero(t, bus.Pending())
	require.Equal(t, 3, bus.Settled())
}

func TestMemoryBusRedeliversUntilLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bus := NewMemoryBus(zap.NewNop())

	review, flight := sampleReview()
	require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))

	var calls int
	h := func(context.Context, Message) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	}

	require.Equal(t, 2, bus.Drain(ctx, h))
	require.Equal(t, 1, bus.Settled())

	require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))
	always := func(context.Context, Message) error { return errors.New("down") }

	require.Equal(t, memoryMaxDeliveries, bus.Drain(ctx, always))
	require.Zero(t, bus.Pending())
	require.Equal(t, 1, bus.Settled())
}

func TestMemoryBusDoesNotRetainSettledPayloads(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bus := NewMemoryBus(zap.NewNop())
	review, flight := sampleReview()
	ack := func(context.Context, Message) error { return nil }

	for range 1000 {
		require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))
		require.Equal(t, 1, bus.Drain(ctx, ack))
	}

	require.Equal(t, 1000, bus.Settled())
	require.Zero(t, bus.Pending())
}

func TestMemoryBusSubscribeStopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	bus := NewMemoryBus(zap.NewNop())

	delivered := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- bus.Subscribe(ctx, func(context.Context, Message) error {
			delivered <- struct{}{}
			return nil
		})
	}()

	review, flight := sampleReview()
	require.NoError(t, bus.Publish(ctx, NewReviewEventFrom(review, flight)))
	<-delivered

	cancel()
	require.NoError(t, <-done)
}
