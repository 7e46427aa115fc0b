package boq

import (
	"context"
	"fmt"

	"github.com/allwaveav/boq-backend/internal/catalog"
	"github.com/allwaveav/boq-backend/internal/config"
	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Usecase implements the BOQ pipeline: schema-constrained generation,
// whole-document refinement and advisory validation, all sharing one cached
// context. Generation and refinement fail closed; validation fails open.
type Usecase struct {
	gemini  GeminiConnector
	cache   CacheProvider
	catalog *catalog.Catalog
	cfg     config.GeminiConfig
	logger  *zap.Logger
}

func NewUsecase(
	gemini GeminiConnector,
	cache CacheProvider,
	cat *catalog.Catalog,
	cfg config.GeminiConfig,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		gemini:  gemini,
		cache:   cache,
		catalog: cat,
		cfg:     cfg,
		logger:  logger,
	}
}

// Generate produces a priced BOQ from questionnaire answers. It fails fast
// on empty requirements before any network interaction.
func (uc *Usecase) Generate(ctx context.Context, answers entity.RequirementAnswers) (*entity.BoqResult, error) {
	requirements, allowedCategories, err := EncodeRequirements(answers)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "generating BOQ",
		zap.Int("answer_count", len(answers)),
		zap.Strings("allowed_categories", allowedCategories),
	)

	prompt := buildGenerationPrompt(requirements, extractBrandPreferences(answers), allowedCategories)
	handle := uc.cache.GetOrRefresh(ctx, uc.cfg.BoqModel)
	if handle == "" {
		// No cache: the catalog rides along in the prompt instead.
		prompt = inlineFallbackPrompt(prompt, uc.catalog.PromptPayload())
	}

	temperature := uc.cfg.Temperature
	out, err := uc.gemini.GenerateBoqItems(ctx, &entity.BoqGenerationRequest{
		Model:         uc.cfg.BoqModel,
		Prompt:        prompt,
		CachedContent: handle,
		Temperature:   &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generate BOQ: %w", err)
	}

	items, err := decodeBoqItems("generation", out.Text)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "BOQ generated",
		zap.Int("item_count", len(items)),
		zap.Int("total_tokens", out.Usage.TotalTokens),
	)

	return &entity.BoqResult{Boq: items, Usage: out.Usage}, nil
}

// Refine re-generates the BOQ from the current document plus a free-text
// change request. The returned BOQ supersedes the input wholesale; it is not
// a diff. Any validation result held for the old document is stale after a
// successful refine.
func (uc *Usecase) Refine(ctx context.Context, currentBoq entity.Boq, instruction string) (*entity.BoqResult, error) {
	prompt, err := buildRefinePrompt(currentBoq, instruction)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "refining BOQ",
		zap.Int("current_item_count", len(currentBoq)),
		zap.Int("instruction_length", len(instruction)),
	)

	handle := uc.cache.GetOrRefresh(ctx, uc.cfg.BoqModel)
	if handle == "" {
		prompt = inlineFallbackPrompt(prompt, uc.catalog.PromptPayload())
	}

	out, err := uc.gemini.GenerateBoqItems(ctx, &entity.BoqGenerationRequest{
		Model:         uc.cfg.BoqModel,
		Prompt:        prompt,
		CachedContent: handle,
	})
	if err != nil {
		return nil, fmt.Errorf("refine BOQ: %w", err)
	}

	items, err := decodeBoqItems("refinement", out.Text)
	if err != nil {
		return nil, err
	}

	ctxzap.Info(ctx, "BOQ refined",
		zap.Int("item_count", len(items)),
		zap.Int("total_tokens", out.Usage.TotalTokens),
	)

	return &entity.BoqResult{Boq: items, Usage: out.Usage}, nil
}

// Validate audits a BOQ against the requirements. It never returns an error:
// validation is advisory and any failure collapses into the fixed degraded
// result so the caller can keep editing and exporting.
func (uc *Usecase) Validate(ctx context.Context, boq entity.Boq, requirements string) *entity.ValidationResult {
	prompt, err := buildValidationPrompt(boq, requirements)
	if err != nil {
		ctxzap.Warn(ctx, "failed to build validation prompt", zap.Error(err))
		return entity.DegradedValidationResult()
	}

	ctxzap.Info(ctx, "validating BOQ", zap.Int("item_count", len(boq)))

	handle := uc.cache.GetOrRefresh(ctx, uc.cfg.BoqModel)
	if handle == "" {
		prompt = inlineValidationPrompt(prompt)
	}

	out, err := uc.gemini.GenerateValidation(ctx, &entity.ValidationGenerationRequest{
		Model:         uc.cfg.BoqModel,
		Prompt:        prompt,
		CachedContent: handle,
	})
	if err != nil {
		ctxzap.Warn(ctx, "BOQ validation call failed, returning degraded result", zap.Error(err))
		return entity.DegradedValidationResult()
	}

	result, err := decodeValidationResult(out.Text)
	if err != nil {
		ctxzap.Warn(ctx, "BOQ validation response undecodable, returning degraded result", zap.Error(err))
		return entity.DegradedValidationResult()
	}

	ctxzap.Info(ctx, "BOQ validated",
		zap.Bool("is_valid", result.IsValid),
		zap.Int("warning_count", len(result.Warnings)),
		zap.Int("missing_count", len(result.MissingComponents)),
	)

	return result
}
