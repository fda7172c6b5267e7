package usecase

import (
	"flight-review/internal/data/repository"
	"flight-review/internal/event"
	"flight-review/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Intake   IntakeService
	Sync     SyncConsumer
	Query    ReviewQueryService
	Response ResponseWorkflow
	Company  CompanyService
	Flight   FlightService
}

func NewService(repo *repository.Repository, publisher event.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Intake:   NewIntakeService(repo, publisher, log),
		Sync:     NewSyncConsumer(repo.Review, log),
		Query:    NewReviewQueryService(repo, log),
		Response: NewResponseWorkflow(repo.Review, nil, log),
		Company:  NewCompanyService(repo.Company, config.JWT, log),
		Flight:   NewFlightService(repo.Flight, log),
	}
}
