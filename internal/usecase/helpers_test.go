package usecase

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"
	"flight-review/internal/dto/request"
	"flight-review/internal/event"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingPublisher keeps every published event and can be told to fail.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.NewReviewEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e event.NewReviewEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) published() []event.NewReviewEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]event.NewReviewEvent(nil), p.events...)
}

var errPublish = errors.New("broker unavailable")

type testEnv struct {
	reviews *repository.MockReviewRepository
	flights *repository.MockFlightRepository
	repo    *repository.Repository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	reviews := repository.NewMockReviewRepository()
	flights := repository.NewMockFlightRepository(
		entity.Flight{
			FlightNumber: "AF123",
			CompanyName:  "Air France",
			Origin:       "CDG",
			Destination:  "JFK",
			FlightDate:   time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		entity.Flight{
			FlightNumber: "KL100",
			CompanyName:  "KLM",
			Origin:       "AMS",
			Destination:  "LHR",
			FlightDate:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		},
	)

	return &testEnv{
		reviews: reviews,
		flights: flights,
		repo:    repository.NewMockRepository(reviews, flights, repository.NewMockCompanyRepository()),
	}
}

func validSubmission(flight string) *request.SubmitReviewRequest {
	return &request.SubmitReviewRequest{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		FlightNumber:  flight,
		Rating:        5,
		Description:   "Smooth flight, friendly crew",
	}
}

// putReview stores a review directly, bypassing intake.
func (e *testEnv) putReview(t *testing.T, r entity.Review) *entity.Review {
	t.Helper()

	require.NoError(t, e.reviews.Create(context.Background(), &r))
	return &r
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}

func parseQuery(raw string) (url.Values, error) {
	return url.ParseQuery(raw)
}
