package boq

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers BOQ routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/boq", func(r chi.Router) {
		r.Post("/generate", h.Generate)
		r.Post("/refine", h.Refine)
		r.Post("/validate", h.Validate)
	})
}
