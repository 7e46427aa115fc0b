package gemini

import (
	"context"
	"fmt"

	"github.com/allwaveav/boq-backend/internal/config"
	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Connector wraps the Gemini SDK. It owns the wire-level response schemas;
// decoding the returned text into domain types is the usecase's job so raw
// model output is always treated as untrusted bytes.
type Connector struct {
	client *genai.Client
	config config.GeminiConfig
	logger *zap.Logger
}

func NewConnector(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*Connector, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Connector{
		client: client,
		config: cfg,
		logger: logger,
	}, nil
}

// boqItemSchema constrains the model output to a JSON array of BOQ items.
// All fields are required; totalPrice is recomputed locally regardless.
func boqItemSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category":        {Type: genai.TypeString},
				"itemDescription": {Type: genai.TypeString},
				"keyRemarks":      {Type: genai.TypeString},
				"brand":           {Type: genai.TypeString},
				"model":           {Type: genai.TypeString},
				"quantity":        {Type: genai.TypeNumber},
				"unitPrice":       {Type: genai.TypeNumber},
				"totalPrice":      {Type: genai.TypeNumber},
				"source":          {Type: genai.TypeString, Enum: []string{"database", "web"}},
				"priceSource":     {Type: genai.TypeString, Enum: []string{"database", "estimated"}},
			},
			Required: []string{
				"category", "itemDescription", "keyRemarks", "brand", "model",
				"quantity", "unitPrice", "totalPrice", "source", "priceSource",
			},
		},
	}
}

// validationSchema constrains the model output to the audit object.
func validationSchema() *genai.Schema {
	stringArray := func() *genai.Schema {
		return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"isValid":           {Type: genai.TypeBoolean},
			"warnings":          stringArray(),
			"suggestions":       stringArray(),
			"missingComponents": stringArray(),
		},
		Required: []string{"isValid", "warnings", "suggestions", "missingComponents"},
	}
}

// GenerateBoqItems issues a schema-constrained generation call and returns
// the raw JSON text plus token usage.
func (c *Connector) GenerateBoqItems(ctx context.Context, req *entity.BoqGenerationRequest) (*entity.GenerationOutput, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   boqItemSchema(),
		CachedContent:    req.CachedContent,
		Temperature:      req.Temperature,
	}
	return c.generate(ctx, "boq_items", req.Model, req.Prompt, cfg)
}

// GenerateValidation issues the read-only audit call.
func (c *Connector) GenerateValidation(ctx context.Context, req *entity.ValidationGenerationRequest) (*entity.GenerationOutput, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   validationSchema(),
		CachedContent:    req.CachedContent,
	}
	return c.generate(ctx, "validation", req.Model, req.Prompt, cfg)
}

func (c *Connector) generate(ctx context.Context, op, model, prompt string, cfg *genai.GenerateContentConfig) (*entity.GenerationOutput, error) {
	callID := uuid.New().String()
	ctxzap.Info(ctx, "generating content via gemini",
		zap.String("op", op),
		zap.String("model", model),
		zap.String("call_id", callID),
		zap.Bool("cached_context", cfg.CachedContent != ""),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini %s call: %w", op, err)
	}

	out := &entity.GenerationOutput{
		Text:  resp.Text(),
		Usage: usageFromResponse(resp),
	}

	ctxzap.Info(ctx, "gemini content generated",
		zap.String("op", op),
		zap.String("call_id", callID),
		zap.Int("response_length", len(out.Text)),
		zap.Int("total_tokens", out.Usage.TotalTokens),
	)

	return out, nil
}

// GenerateGrounded issues a free-text call with live web search enabled and
// projects grounding citations into sources. Citations without a web
// reference are dropped.
func (c *Connector) GenerateGrounded(ctx context.Context, req *entity.GroundedGenerationRequest) (*entity.GroundedOutput, error) {
	ctxzap.Info(ctx, "generating grounded content via gemini",
		zap.String("model", req.Model),
	)

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini grounded call: %w", err)
	}

	out := &entity.GroundedOutput{
		Text:    resp.Text(),
		Sources: groundingSources(resp),
	}

	ctxzap.Info(ctx, "gemini grounded content generated",
		zap.Int("response_length", len(out.Text)),
		zap.Int("source_count", len(out.Sources)),
	)

	return out, nil
}

// CreateCachedContext creates a server-side context cache and returns its
// handle.
func (c *Connector) CreateCachedContext(ctx context.Context, req *entity.CreateCacheRequest) (string, error) {
	cached, err := c.client.Caches.Create(ctx, req.Model, &genai.CreateCachedContentConfig{
		DisplayName:       req.DisplayName,
		TTL:               req.TTL,
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
		Contents: []*genai.Content{
			genai.NewContentFromText(req.Contents, genai.RoleUser),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create cached content: %w", err)
	}
	if cached.Name == "" {
		return "", fmt.Errorf("cached content created without a name")
	}

	ctxzap.Info(ctx, "cached content created",
		zap.String("model", req.Model),
		zap.String("cache_handle", cached.Name),
		zap.Duration("ttl", req.TTL),
	)

	return cached.Name, nil
}

func usageFromResponse(resp *genai.GenerateContentResponse) entity.TokenUsage {
	if resp.UsageMetadata == nil {
		return entity.TokenUsage{}
	}
	return entity.TokenUsage{
		PromptTokens:   int(resp.UsageMetadata.PromptTokenCount),
		ResponseTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:    int(resp.UsageMetadata.TotalTokenCount),
	}
}

func groundingSources(resp *genai.GenerateContentResponse) []entity.GroundingSource {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}

	chunks := resp.Candidates[0].GroundingMetadata.GroundingChunks
	sources := make([]entity.GroundingSource, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, entity.GroundingSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return sources
}
