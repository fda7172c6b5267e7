package repository

import (
	"time"

	"flight-review/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Review  ReviewRepository
	Flight  FlightRepository
	Company CompanyRepository
}

// NewRepository wires the Postgres repositories. Flight lookups go through
// flightCache when one is given.
func NewRepository(db database.PgxIface, flightCache JSONCache, flightTTL time.Duration, log *zap.Logger) *Repository {
	flights := NewFlightRepository(db, log)
	if flightCache != nil {
		flights = NewCachedFlightRepository(flights, flightCache, flightTTL, log)
	}

	return &Repository{
		Review:  NewReviewRepository(db, log),
		Flight:  flights,
		Company: NewCompanyRepository(db, log),
	}
}

// NewMockRepository wires the in-memory repositories.
func NewMockRepository(reviews *MockReviewRepository, flights *MockFlightRepository, companies *MockCompanyRepository) *Repository {
	return &Repository{
		Review:  reviews,
		Flight:  flights,
		Company: companies,
	}
}
