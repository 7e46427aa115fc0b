package boq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/allwaveav/boq-backend/internal/entity"
	pkgRetry "github.com/allwaveav/boq-backend/internal/pkg/retry"
	"github.com/allwaveav/boq-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	generateCalls int
	refineCalls   int

	result     *entity.BoqResult
	err        error
	validation *entity.ValidationResult
}

func (f *fakeUsecase) Generate(_ context.Context, _ entity.RequirementAnswers) (*entity.BoqResult, error) {
	f.generateCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUsecase) Refine(_ context.Context, _ entity.Boq, _ string) (*entity.BoqResult, error) {
	f.refineCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeUsecase) Validate(_ context.Context, _ entity.Boq, _ string) *entity.ValidationResult {
	return f.validation
}

func newTestHandler(uc BoqUsecase) *Handler {
	return NewHandler(uc, validator.New(), pkgRetry.RetryConfig{
		Attempts: 2,
		Delay:    time.Millisecond,
		MaxDelay: 5 * time.Millisecond,
	})
}

func sampleResult() *entity.BoqResult {
	return &entity.BoqResult{
		Boq: entity.Boq{{
			Category:        "Display",
			ItemDescription: "85\" display",
			Brand:           "Samsung",
			Model:           "QM85C",
			Quantity:        1,
			UnitPrice:       2800,
			TotalPrice:      2800,
			Source:          entity.ItemSourceDatabase,
			PriceSource:     entity.PriceSourceDatabase,
		}},
		Usage: entity.TokenUsage{PromptTokens: 10, ResponseTokens: 5, TotalTokens: 15},
	}
}

func doRequest(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGenerate_Success(t *testing.T) {
	uc := &fakeUsecase{result: sampleResult()}
	h := newTestHandler(uc)

	rec := doRequest(h.Generate, `{"answers":{"roomType":"boardroom"}}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result entity.BoqResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Boq, 1)
	assert.Equal(t, "QM85C", result.Boq[0].Model)
	assert.Equal(t, 15, result.Usage.TotalTokens)
}

func TestGenerate_MalformedBodyIs400(t *testing.T) {
	h := newTestHandler(&fakeUsecase{})
	rec := doRequest(h.Generate, `{broken`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerate_MissingAnswersIs400(t *testing.T) {
	uc := &fakeUsecase{}
	h := newTestHandler(uc)

	rec := doRequest(h.Generate, `{"answers":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uc.generateCalls)
}

func TestGenerate_EmptyRequirementsIs400WithoutRetry(t *testing.T) {
	uc := &fakeUsecase{err: entity.ErrEmptyRequirements}
	h := newTestHandler(uc)

	rec := doRequest(h.Generate, `{"answers":{"seats":0}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Deterministic precondition failures are never retried.
	assert.Equal(t, 1, uc.generateCalls)
}

func TestGenerate_DecodeFailureIs502WithoutRetry(t *testing.T) {
	uc := &fakeUsecase{err: entity.NewDecodeError("generation", errors.New("bad json"), "oops")}
	h := newTestHandler(uc)

	rec := doRequest(h.Generate, `{"answers":{"roomType":"x"}}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 1, uc.generateCalls)
}

func TestGenerate_TransportFailureIsRetriedThen502(t *testing.T) {
	uc := &fakeUsecase{err: errors.New("connection reset")}
	h := newTestHandler(uc)

	rec := doRequest(h.Generate, `{"answers":{"roomType":"x"}}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, 2, uc.generateCalls)
}

func TestGenerate_TimeoutIs504(t *testing.T) {
	uc := &fakeUsecase{err: context.DeadlineExceeded}
	h := newTestHandler(uc)

	rec := doRequest(h.Generate, `{"answers":{"roomType":"x"}}`)
	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestRefine_Success(t *testing.T) {
	uc := &fakeUsecase{result: sampleResult()}
	h := newTestHandler(uc)

	body := `{"boq":[{"category":"Display","itemDescription":"old","keyRemarks":"","brand":"LG","model":"x","quantity":1,"unitPrice":1,"totalPrice":1,"source":"database","priceSource":"database"}],"instruction":"use Samsung"}`
	rec := doRequest(h.Refine, body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, uc.refineCalls)
}

func TestRefine_MissingInstructionIs400(t *testing.T) {
	uc := &fakeUsecase{result: sampleResult()}
	h := newTestHandler(uc)

	body := `{"boq":[{"category":"Display","itemDescription":"old","keyRemarks":"","brand":"LG","model":"x","quantity":1,"unitPrice":1,"totalPrice":1,"source":"database","priceSource":"database"}],"instruction":"  "}`
	rec := doRequest(h.Refine, body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, uc.refineCalls)
}

func TestValidate_AlwaysAnswers200(t *testing.T) {
	uc := &fakeUsecase{validation: entity.DegradedValidationResult()}
	h := newTestHandler(uc)

	body := `{"boq":[{"category":"Display","itemDescription":"d","keyRemarks":"","brand":"b","model":"m","quantity":1,"unitPrice":1,"totalPrice":1,"source":"database","priceSource":"database"}],"requirements":"boardroom"}`
	rec := doRequest(h.Validate, body)

	require.Equal(t, http.StatusOK, rec.Code)

	var result entity.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.False(t, result.IsValid)
	assert.Equal(t, []string{entity.ValidationFailedWarning}, result.Warnings)
}
