package product

import (
	"context"

	"github.com/allwaveav/boq-backend/internal/entity"
)

// GroundedConnector issues free-text generation calls augmented with live
// web search.
type GroundedConnector interface {
	GenerateGrounded(ctx context.Context, req *entity.GroundedGenerationRequest) (*entity.GroundedOutput, error)
}
