package wire

import (
	"flight-review/internal/adaptor"
	"flight-review/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBackoffice(r chi.Router, h *adaptor.Handler, auth middleware.Authenticator, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/v1/company/signup", h.Company.Signup)
	r.Post("/api/v1/company/signin", h.Company.Signin)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthCompany(auth, log))

		r.Get("/api/v1/reviews", h.Backoffice.ListReviews)
		r.Get("/api/v1/reviews/{id}", h.Backoffice.GetReview)
		r.Put("/api/v1/reviews/{id}/response", h.Backoffice.RespondReview)
		r.Get("/api/v1/flights", h.Backoffice.ListFlights)
	})
}
