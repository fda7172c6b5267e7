package event

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const memoryMaxDeliveries = 3

type memoryDelivery struct {
	msg      Message
	attempts int
}

// MemoryBus is an in-process bus for single-binary deployments and tests.
// Deliveries that end in Retry are requeued until they have been attempted
// memoryMaxDeliveries times.
type MemoryBus struct {
	mu      sync.Mutex
	queue   []memoryDelivery
	notify  chan struct{}
	settled int
	log     *zap.Logger
}

func NewMemoryBus(log *zap.Logger) *MemoryBus {
	return &MemoryBus{
		notify: make(chan struct{}, 1),
		log:    log.With(zap.String("bus", "memory")),
	}
}

func (b *MemoryBus) Publish(ctx context.Context, e NewReviewEvent) error {
	msg, err := newMessage(e)
	if err != nil {
		return err
	}
	b.PublishRaw(msg)
	return nil
}

// PublishRaw enqueues an already encoded message.
func (b *MemoryBus) PublishRaw(msg Message) {
	b.mu.Lock()
	b.queue = append(b.queue, memoryDelivery{msg: msg})
	b.mu.Unlock()

	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *MemoryBus) Subscribe(ctx context.Context, h Handler) error {
	for {
		b.Drain(ctx, h)

		select {
		case <-ctx.Done():
			return nil
		case <-b.notify:
		}
	}
}

// Drain delivers every queued message to h, including requeued retries, and
// returns how many deliveries were attempted.
func (b *MemoryBus) Drain(ctx context.Context, h Handler) int {
	n := 0
	for ctx.Err() == nil {
		d, ok := b.pop()
		if !ok {
			return n
		}
		n++
		d.attempts++

		outcome := Dispatch(ctx, h, d.msg, b.log)
		switch {
		case outcome.Settled():
			b.mu.Lock()
			b.settled++
			b.mu.Unlock()
		case d.attempts < memoryMaxDeliveries:
			b.mu.Lock()
			b.queue = append(b.queue, d)
			b.mu.Unlock()
		default:
			b.log.Error("Giving up on event", zap.String("key", d.msg.Key), zap.Int("attempts", d.attempts))
		}
	}
	return n
}

func (b *MemoryBus) pop() (memoryDelivery, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.queue) == 0 {
		return memoryDelivery{}, false
	}
	d := b.queue[0]
	b.queue = b.queue[1:]
	return d, true
}

// Pending returns the number of undelivered messages.
func (b *MemoryBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Settled returns how many deliveries were acknowledged or dropped. Settled
// payloads are not retained.
func (b *MemoryBus) Settled() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settled
}

func (b *MemoryBus) Close() error {
	return nil
}
