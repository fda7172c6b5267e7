package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TransitionGuard decides whether a review may move from one state to
// another. A non-nil error rejects the response before anything is written.
type TransitionGuard func(from, to entity.ReviewState) error

// AllowAllTransitions is the default guard: any state may follow any other.
func AllowAllTransitions(_, _ entity.ReviewState) error {
	return nil
}

type ResponseWorkflow interface {
	// Respond attaches a company response and moves the review to newState.
	Respond(ctx context.Context, reviewID uuid.UUID, responseText, newState string) (*entity.Review, error)
}

type responseWorkflow struct {
	reviews repository.ReviewRepository
	guard   TransitionGuard
	log     *zap.Logger
}

func NewResponseWorkflow(reviews repository.ReviewRepository, guard TransitionGuard, log *zap.Logger) ResponseWorkflow {
	if guard == nil {
		guard = AllowAllTransitions
	}
	return &responseWorkflow{
		reviews: reviews,
		guard:   guard,
		log:     log.With(zap.String("service", "response")),
	}
}

func (s *responseWorkflow) Respond(ctx context.Context, reviewID uuid.UUID, responseText, newState string) (*entity.Review, error) {
	if strings.TrimSpace(responseText) == "" {
		return nil, fmt.Errorf("%w: responseText must not be blank", ErrValidation)
	}

	state, err := entity.ParseReviewState(newState)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidState, newState)
	}

	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("load review %s: %w", reviewID, err)
	}
	if review == nil {
		return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, reviewID)
	}

	if err := s.guard(review.State, state); err != nil {
		return nil, fmt.Errorf("%w: %s -> %s: %v", ErrInvalidTransition, review.State, state, err)
	}

	now := time.Now().UTC()
	err = s.reviews.UpdateResponse(ctx, reviewID, responseText, now, state)
	if errors.Is(err, repository.ErrReviewNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrReviewNotFound, reviewID)
	}
	if err != nil {
		return nil, fmt.Errorf("respond to review %s: %w", reviewID, err)
	}

	previous := review.State
	review.ResponseText = &responseText
	review.ResponseAt = &now
	review.State = state

	s.log.Info("Review responded",
		zap.String("review_id", reviewID.String()),
		zap.Stringer("from", previous),
		zap.Stringer("to", state),
	)

	return review, nil
}
