package adaptor

import (
	"errors"
	"net/http"

	"flight-review/internal/usecase"
	"flight-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Intake     *IntakeHandler
	Backoffice *BackofficeHandler
	Company    *CompanyHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Intake:     NewIntakeHandler(service.Intake, service.Query, service.Flight, log),
		Backoffice: NewBackofficeHandler(service.Query, service.Response, service.Flight, log),
		Company:    NewCompanyHandler(service.Company, log),
	}
}

// handleServiceError maps usecase errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	fields := []zap.Field{zap.Error(err), zap.String("operation", operation)}

	switch {
	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidState):
		log.Warn(operation+" rejected", fields...)
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrFlightNotFound), errors.Is(err, usecase.ErrReviewNotFound):
		log.Warn(operation+" failed - not found", fields...)
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrCompanyExists), errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" failed - conflict", fields...)
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - unauthorized", fields...)
		utils.ResponseUnauthorized(w, "Invalid credentials")

	default:
		log.Error("Failed to "+operation, fields...)
		utils.ResponseInternalError(w, "Internal server error")
	}
}
