package adaptor

import (
	"encoding/json"
	"net/http"

	"flight-review/internal/dto/request"
	"flight-review/internal/usecase"
	"flight-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BackofficeHandler serves the company-scoped API. Every route sits behind
// middleware.AuthCompany.
type BackofficeHandler struct {
	query    usecase.ReviewQueryService
	response usecase.ResponseWorkflow
	flights  usecase.FlightService
	log      *zap.Logger
}

func NewBackofficeHandler(query usecase.ReviewQueryService, response usecase.ResponseWorkflow, flights usecase.FlightService, log *zap.Logger) *BackofficeHandler {
	return &BackofficeHandler{
		query:    query,
		response: response,
		flights:  flights,
		log:      log.With(zap.String("handler", "backoffice")),
	}
}

// ListReviews handles GET /api/v1/reviews
func (h *BackofficeHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	company, ok := utils.GetCompanyFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	q := request.NewCompanyReviewQuery(r.URL.Query())

	page, err := h.query.ListForCompany(r.Context(), company, q)
	if err != nil {
		handleServiceError(w, h.log, err, "list company reviews")
		return
	}

	utils.ResponseSuccess(w, "success", page)
}

// GetReview handles GET /api/v1/reviews/{id}
func (h *BackofficeHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	company, ok := utils.GetCompanyFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	review, err := h.query.GetForCompany(r.Context(), company, id)
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// RespondReview handles PUT /api/v1/reviews/{id}/response
func (h *BackofficeHandler) RespondReview(w http.ResponseWriter, r *http.Request) {
	company, ok := utils.GetCompanyFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return
	}

	var req request.RespondReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	// Scope check: another company's review is a 404.
	if _, err := h.query.GetForCompany(r.Context(), company, id); err != nil {
		handleServiceError(w, h.log, err, "respond to review")
		return
	}

	if _, err := h.response.Respond(r.Context(), id, req.ResponseText, req.NewState); err != nil {
		handleServiceError(w, h.log, err, "respond to review")
		return
	}

	updated, err := h.query.GetForCompany(r.Context(), company, id)
	if err != nil {
		handleServiceError(w, h.log, err, "respond to review")
		return
	}

	utils.ResponseSuccess(w, "success", updated)
}

// ListFlights handles GET /api/v1/flights
func (h *BackofficeHandler) ListFlights(w http.ResponseWriter, r *http.Request) {
	company, ok := utils.GetCompanyFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	flights, err := h.flights.ListForCompany(r.Context(), company)
	if err != nil {
		handleServiceError(w, h.log, err, "list company flights")
		return
	}

	utils.ResponseSuccess(w, "success", flights)
}
