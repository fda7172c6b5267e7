package wire

import (
	"flight-review/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireIntake(r chi.Router, h *adaptor.IntakeHandler) {
	r.Route("/api/v1/reviews", func(r chi.Router) {
		r.Post("/", h.SubmitReview)
		r.Get("/", h.ListPublished)
		r.Get("/flights", h.ListFlights)
	})
}
