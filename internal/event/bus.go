package event

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Handler processes one delivery.
type Handler func(ctx context.Context, msg Message) error

type Publisher interface {
	Publish(ctx context.Context, e NewReviewEvent) error
}

type Subscriber interface {
	// Subscribe delivers messages to h until ctx is cancelled.
	Subscribe(ctx context.Context, h Handler) error
}

type Bus interface {
	Publisher
	Subscriber
	Close() error
}

// Outcome tells a driver what to do with a delivery.
type Outcome int

const (
	// Ack: processed, remove from the broker.
	Ack Outcome = iota
	// Drop: unusable payload, remove from the broker without processing.
	Drop
	// Retry: leave unacknowledged for redelivery or dead-lettering.
	Retry
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Drop:
		return "drop"
	case Retry:
		return "retry"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Settled reports whether the broker should forget the message.
func (o Outcome) Settled() bool {
	return o == Ack || o == Drop
}

// Dispatch runs h for msg with panic isolation and maps its result to an
// Outcome. It is shared by every driver so they acknowledge alike.
func Dispatch(ctx context.Context, h Handler, msg Message, log *zap.Logger) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Event handler panicked",
				zap.Any("panic", r),
				zap.String("key", msg.Key),
				zap.Stack("stack"),
			)
			outcome = Retry
		}
	}()

	err := h(ctx, msg)
	switch {
	case err == nil:
		return Ack
	case errors.Is(err, ErrMalformedEvent), errors.Is(err, ErrUnsupportedEvent):
		log.Warn("Dropping unusable event",
			zap.Error(err),
			zap.String("key", msg.Key),
			zap.ByteString("body", msg.Body),
		)
		return Drop
	default:
		log.Error("Event handling failed",
			zap.Error(err),
			zap.String("key", msg.Key),
		)
		return Retry
	}
}
