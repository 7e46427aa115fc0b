package product

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/allwaveav/boq-backend/internal/catalog"
	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/allwaveav/boq-backend/internal/pkg/logger"
	"github.com/allwaveav/boq-backend/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   ProductUsecase
	catalog   *catalog.Catalog
	validator *validator.Validator
}

func NewHandler(usecase ProductUsecase, cat *catalog.Catalog, validator *validator.Validator) *Handler {
	return &Handler{
		usecase:   usecase,
		catalog:   cat,
		validator: validator,
	}
}

// GetDetails handles GET /products/details?name=...
func (h *Handler) GetDetails(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetProductDetails")

	name := r.URL.Query().Get("name")
	if err := h.validator.ValidateProductName(name); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "product name is required", err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("product", name))

	details, err := h.usecase.FetchDetails(ctx, name)
	if err != nil {
		var detailsErr *entity.ProductDetailsError
		if errors.As(err, &detailsErr) {
			h.respondError(ctx, w, http.StatusBadGateway, detailsErr.Error(), err)
			return
		}
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	ctxzap.Info(ctx, "product details fetched successfully")
	h.respondJSON(w, http.StatusOK, details)
}

// GetCatalog handles GET /catalog. The catalog is read-only reference data.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetCatalog")

	ctxzap.Debug(ctx, "listing catalog", zap.Int("product_count", h.catalog.Len()))
	h.respondJSON(w, http.StatusOK, &entity.CatalogResponse{
		Products: h.catalog.Products(),
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
