package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"
	"flight-review/internal/dto/request"
	"flight-review/internal/event"
	"flight-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type IntakeService interface {
	// Submit validates and persists a review in state SUBMITTED, then
	// announces it on the bus.
	Submit(ctx context.Context, req *request.SubmitReviewRequest) (*entity.Review, error)
}

type intakeService struct {
	repo      *repository.Repository
	publisher event.Publisher
	log       *zap.Logger
}

func NewIntakeService(repo *repository.Repository, publisher event.Publisher, log *zap.Logger) IntakeService {
	return &intakeService{
		repo:      repo,
		publisher: publisher,
		log:       log.With(zap.String("service", "intake")),
	}
}

func (s *intakeService) Submit(ctx context.Context, req *request.SubmitReviewRequest) (*entity.Review, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	flightNumber := strings.TrimSpace(req.FlightNumber)
	flight, err := s.repo.Flight.FindByNumber(ctx, flightNumber)
	if err != nil {
		return nil, fmt.Errorf("resolve flight %s: %w", flightNumber, err)
	}
	if flight == nil {
		s.log.Info("Review rejected for unknown flight", zap.String("flight_number", flightNumber))
		return nil, fmt.Errorf("%w: %s", ErrFlightNotFound, flightNumber)
	}

	review := &entity.Review{
		ID:            uuid.New(),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		FlightNumber:  flight.FlightNumber,
		CompanyName:   flight.CompanyName,
		Rating:        req.Rating,
		Description:   req.Description,
		SubmittedAt:   time.Now().UTC(),
		State:         entity.ReviewStateSubmitted,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	// The review is stored; a lost event leaves it in SUBMITTED.
	if err := s.publisher.Publish(ctx, event.NewReviewEventFrom(review, flight)); err != nil {
		s.log.Error("Failed to publish new review event",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
	}

	s.log.Info("Review submitted",
		zap.String("review_id", review.ID.String()),
		zap.String("flight_number", review.FlightNumber),
		zap.String("company", review.CompanyName),
		zap.Int("rating", review.Rating),
	)

	return review, nil
}
