package boq

import (
	"context"

	"github.com/allwaveav/boq-backend/internal/entity"
)

type BoqUsecase interface {
	Generate(ctx context.Context, answers entity.RequirementAnswers) (*entity.BoqResult, error)
	Refine(ctx context.Context, currentBoq entity.Boq, instruction string) (*entity.BoqResult, error)
	Validate(ctx context.Context, boq entity.Boq, requirements string) *entity.ValidationResult
}
