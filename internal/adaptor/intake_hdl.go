package adaptor

import (
	"encoding/json"
	"net/http"

	"flight-review/internal/dto/request"
	"flight-review/internal/dto/response"
	"flight-review/internal/usecase"
	"flight-review/pkg/utils"

	"go.uber.org/zap"
)

// IntakeHandler serves the public customer-facing API.
type IntakeHandler struct {
	intake  usecase.IntakeService
	query   usecase.ReviewQueryService
	flights usecase.FlightService
	log     *zap.Logger
}

func NewIntakeHandler(intake usecase.IntakeService, query usecase.ReviewQueryService, flights usecase.FlightService, log *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		intake:  intake,
		query:   query,
		flights: flights,
		log:     log.With(zap.String("handler", "intake")),
	}
}

// SubmitReview handles POST /api/v1/reviews
func (h *IntakeHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.intake.Submit(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "submit review")
		return
	}

	utils.ResponseCreated(w, "success", response.SubmitReviewResponse{ID: review.ID})
}

// ListPublished handles GET /api/v1/reviews
func (h *IntakeHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	q := request.NewPublicReviewQuery(r.URL.Query())

	page, err := h.query.ListPublished(r.Context(), q)
	if err != nil {
		handleServiceError(w, h.log, err, "list published reviews")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// ListFlights handles GET /api/v1/reviews/flights
func (h *IntakeHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	flights, err := h.flights.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list flights")
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}
