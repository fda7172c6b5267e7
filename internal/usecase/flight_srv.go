package usecase

import (
	"context"
	"fmt"

	"flight-review/internal/data/entity"
	"flight-review/internal/data/repository"
	"flight-review/internal/dto/response"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

type FlightService interface {
	ListAll(ctx context.Context) ([]response.FlightResponse, error)
	ListForCompany(ctx context.Context, company string) ([]response.FlightResponse, error)
}

type flightService struct {
	flights repository.FlightRepository
	log     *zap.Logger
}

func NewFlightService(flights repository.FlightRepository, log *zap.Logger) FlightService {
	return &flightService{
		flights: flights,
		log:     log.With(zap.String("service", "flight")),
	}
}

func (s *flightService) ListAll(ctx context.Context) ([]response.FlightResponse, error) {
	flights, err := s.flights.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list flights: %w", err)
	}
	return toFlightResponses(flights), nil
}

func (s *flightService) ListForCompany(ctx context.Context, company string) ([]response.FlightResponse, error) {
	flights, err := s.flights.FindByCompany(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("list flights for %s: %w", company, err)
	}
	return toFlightResponses(flights), nil
}

func toFlightResponses(flights []*entity.Flight) []response.FlightResponse {
	return lo.Map(flights, func(f *entity.Flight, _ int) response.FlightResponse {
		return response.NewFlightResponse(f)
	})
}
