package api

import (
	"net/http"
	"time"

	boqapi "github.com/allwaveav/boq-backend/internal/api/boq"
	"github.com/allwaveav/boq-backend/internal/api/docs"
	"github.com/allwaveav/boq-backend/internal/api/middleware"
	productapi "github.com/allwaveav/boq-backend/internal/api/product"
	"github.com/allwaveav/boq-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(boqHandler *boqapi.Handler, productHandler *productapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                  // Recover from panics
	r.Use(chimiddleware.RequestID)                  // Add request ID
	r.Use(middleware.Logger(logger))                // Log requests
	r.Use(middleware.CORS)                          // Handle CORS
	r.Use(chimiddleware.Timeout(120 * time.Second)) // Generation calls are slow

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.Success(w, map[string]string{"status": "healthy"})
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	boqapi.RegisterRoutes(r, boqHandler)
	productapi.RegisterRoutes(r, productHandler)

	return r
}
