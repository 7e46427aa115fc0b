package boq

import (
	"context"

	"github.com/allwaveav/boq-backend/internal/entity"
)

// GeminiConnector issues schema-constrained generation calls and returns
// raw, undecoded output.
type GeminiConnector interface {
	GenerateBoqItems(ctx context.Context, req *entity.BoqGenerationRequest) (*entity.GenerationOutput, error)
	GenerateValidation(ctx context.Context, req *entity.ValidationGenerationRequest) (*entity.GenerationOutput, error)
}

// CacheProvider resolves a context cache handle for a model. An empty string
// means no cache is available and the catalog must be inlined.
type CacheProvider interface {
	GetOrRefresh(ctx context.Context, modelID string) string
}
