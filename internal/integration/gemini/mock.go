package gemini

import (
	"context"
	"encoding/json"

	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is a canned-response connector for running the service
// without Gemini credentials.
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

var mockBoq = entity.Boq{
	{
		Category:        "Display",
		ItemDescription: "85\" 4K UHD commercial display",
		KeyRemarks:      "Primary visual surface sized for the stated viewing distance",
		Brand:           "Samsung",
		Model:           "QM85C",
		Quantity:        1,
		UnitPrice:       4200,
		TotalPrice:      4200,
		Source:          entity.ItemSourceDatabase,
		PriceSource:     entity.PriceSourceDatabase,
	},
	{
		Category:        "Mounts & Racks",
		ItemDescription: "Tilt wall mount for large-format display",
		KeyRemarks:      "Required to mount the display; load rated above panel weight",
		Brand:           "Chief",
		Model:           "LTM1U",
		Quantity:        1,
		UnitPrice:       280,
		TotalPrice:      280,
		Source:          entity.ItemSourceDatabase,
		PriceSource:     entity.PriceSourceDatabase,
	},
}

func (m *MockConnector) GenerateBoqItems(ctx context.Context, req *entity.BoqGenerationRequest) (*entity.GenerationOutput, error) {
	ctxzap.Info(ctx, "[MOCK] generating BOQ items",
		zap.String("model", req.Model),
		zap.Bool("cached_context", req.CachedContent != ""),
	)

	text, err := json.Marshal(mockBoq)
	if err != nil {
		return nil, err
	}

	return &entity.GenerationOutput{
		Text:  string(text),
		Usage: entity.TokenUsage{PromptTokens: 1200, ResponseTokens: 300, TotalTokens: 1500},
	}, nil
}

func (m *MockConnector) GenerateValidation(ctx context.Context, req *entity.ValidationGenerationRequest) (*entity.GenerationOutput, error) {
	ctxzap.Info(ctx, "[MOCK] validating BOQ", zap.String("model", req.Model))

	result := entity.ValidationResult{
		IsValid:           true,
		Warnings:          []string{},
		Suggestions:       []string{"Consider a spare HDMI cable per display"},
		MissingComponents: []string{},
	}
	text, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	return &entity.GenerationOutput{
		Text:  string(text),
		Usage: entity.TokenUsage{PromptTokens: 800, ResponseTokens: 120, TotalTokens: 920},
	}, nil
}

func (m *MockConnector) GenerateGrounded(ctx context.Context, req *entity.GroundedGenerationRequest) (*entity.GroundedOutput, error) {
	ctxzap.Info(ctx, "[MOCK] fetching grounded product details", zap.String("model", req.Model))

	return &entity.GroundedOutput{
		Text: "A professional large-format display suited for corporate meeting rooms.\nIMAGE_URL: https://example.com/images/display.png",
		Sources: []entity.GroundingSource{
			{URI: "https://example.com/specs", Title: "Product specifications"},
		},
	}, nil
}

func (m *MockConnector) CreateCachedContext(ctx context.Context, req *entity.CreateCacheRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] creating cached context",
		zap.String("model", req.Model),
		zap.Duration("ttl", req.TTL),
	)
	return "cachedContents/mock-boq-catalog", nil
}
