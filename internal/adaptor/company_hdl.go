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

type CompanyHandler struct {
	service usecase.CompanyService
	log     *zap.Logger
}

func NewCompanyHandler(service usecase.CompanyService, log *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		log:     log.With(zap.String("handler", "company")),
	}
}

// Signup handles POST /api/v1/company/signup
func (h *CompanyHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.CompanySignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	company, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "company signup")
		return
	}

	utils.ResponseCreated(w, "success", response.CompanySignupResponse{ID: company.ID})
}

// Signin handles POST /api/v1/company/signin
func (h *CompanyHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req request.CompanySigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	token, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "company signin")
		return
	}

	utils.ResponseSuccess(w, "success", token)
}
