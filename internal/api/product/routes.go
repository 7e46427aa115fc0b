package product

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers product routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/products/details", h.GetDetails)
	r.Get("/catalog", h.GetCatalog)
}
