package boq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/allwaveav/boq-backend/internal/pkg/logger"
	pkgRetry "github.com/allwaveav/boq-backend/internal/pkg/retry"
	"github.com/allwaveav/boq-backend/internal/pkg/validator"
	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase   BoqUsecase
	validator *validator.Validator
	retryCfg  pkgRetry.RetryConfig
}

func NewHandler(usecase BoqUsecase, validator *validator.Validator, retryCfg pkgRetry.RetryConfig) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
		retryCfg:  retryCfg,
	}
}

// Generate handles POST /boq/generate
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GenerateBoq")

	var req entity.GenerateBoqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateGenerate(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Info(ctx, "generating BOQ", zap.Int("answer_count", len(req.Answers)))

	result, err := h.withRetry(ctx, func() (*entity.BoqResult, error) {
		return h.usecase.Generate(ctx, req.Answers)
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "BOQ generated successfully", zap.Int("item_count", len(result.Boq)))
	h.respondJSON(w, http.StatusOK, result)
}

// Refine handles POST /boq/refine
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "RefineBoq")

	var req entity.RefineBoqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateRefine(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	ctxzap.Info(ctx, "refining BOQ", zap.Int("item_count", len(req.Boq)))

	result, err := h.withRetry(ctx, func() (*entity.BoqResult, error) {
		return h.usecase.Refine(ctx, req.Boq, req.Instruction)
	})
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "BOQ refined successfully", zap.Int("item_count", len(result.Boq)))
	h.respondJSON(w, http.StatusOK, result)
}

// Validate handles POST /boq/validate. It always answers 200: validation is
// advisory and degrades internally instead of failing.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ValidateBoq")

	var req entity.ValidateBoqRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.validator.ValidateBoqValidation(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "validation failed", err)
		return
	}

	result := h.usecase.Validate(ctx, req.Boq, req.Requirements)

	ctxzap.Info(ctx, "BOQ validation finished", zap.Bool("is_valid", result.IsValid))
	h.respondJSON(w, http.StatusOK, result)
}

// withRetry applies the configured retry policy to transport-class failures
// only. Precondition and decode failures are deterministic and never retried.
func (h *Handler) withRetry(ctx context.Context, op func() (*entity.BoqResult, error)) (*entity.BoqResult, error) {
	opts := append(h.retryCfg.ToRetryOptions(),
		retry.Context(ctx),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(attempt uint, err error) {
			ctxzap.Warn(ctx, "retrying BOQ operation after transport error",
				zap.Uint("attempt", attempt),
				zap.Error(err),
			)
		}),
	)
	return retry.DoWithData(op, opts...)
}

func isTransient(err error) bool {
	var decodeErr *entity.DecodeError
	if errors.As(err, &decodeErr) {
		return false
	}
	return !errors.Is(err, entity.ErrEmptyRequirements)
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

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	var decodeErr *entity.DecodeError
	switch {
	case errors.Is(err, entity.ErrEmptyRequirements):
		h.respondError(ctx, w, http.StatusBadRequest, "requirements are empty", err)
	case errors.Is(err, entity.ErrMissingField), errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	case errors.As(err, &decodeErr):
		h.respondError(ctx, w, http.StatusBadGateway, "model response was not decodable", err)
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(ctx, w, http.StatusGatewayTimeout, "model call timed out", err)
	default:
		h.respondError(ctx, w, http.StatusBadGateway, "model call failed", err)
	}
}
