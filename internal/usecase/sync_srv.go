package usecase

import (
	"context"
	"errors"
	"fmt"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"
	"flight-review/internal/event"

	"go.uber.org/zap"
)

// SyncConsumer marks reviews as ingested by the back office.
type SyncConsumer interface {
	OnNewReviewEvent(ctx context.Context, e event.NewReviewEvent) error
	// Handle decodes a raw delivery and applies it. It is an event.Handler.
	Handle(ctx context.Context, msg event.Message) error
	// Run consumes from sub until ctx is cancelled.
	Run(ctx context.Context, sub event.Subscriber) error
}

type syncConsumer struct {
	reviews repository.ReviewRepository
	log     *zap.Logger
}

func NewSyncConsumer(reviews repository.ReviewRepository, log *zap.Logger) SyncConsumer {
	return &syncConsumer{
		reviews: reviews,
		log:     log.With(zap.String("service", "sync")),
	}
}

func (s *syncConsumer) Run(ctx context.Context, sub event.Subscriber) error {
	return sub.Subscribe(ctx, s.Handle)
}

func (s *syncConsumer) Handle(ctx context.Context, msg event.Message) error {
	if v, ok := msg.Attributes[event.SchemaVersionKey]; ok && v != event.SchemaVersion {
		return fmt.Errorf("%w: schema version %q", event.ErrUnsupportedEvent, v)
	}

	e, err := event.Decode(msg.Body)
	if err != nil {
		return err
	}
	return s.OnNewReviewEvent(ctx, e)
}

func (s *syncConsumer) OnNewReviewEvent(ctx context.Context, e event.NewReviewEvent) error {
	id, err := e.ReviewUUID()
	if err != nil {
		return err
	}

	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("load review %s: %w", id, err)
	}
	if review == nil {
		s.log.Debug("Event for unknown review ignored", zap.String("review_id", id.String()))
		return nil
	}

	err = s.reviews.UpdateState(ctx, id, entity.ReviewStateTreated)
	if errors.Is(err, repository.ErrReviewNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("mark review %s treated: %w", id, err)
	}

	s.log.Info("Review treated",
		zap.String("review_id", id.String()),
		zap.Stringer("previous_state", review.State),
	)
	return nil
}
