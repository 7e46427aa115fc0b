package product

import (
	"context"
	"strings"
	"time"

	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// imageURLMarker separates the description from the optional image line in
// the model's answer. Fixed textual convention: everything after the marker,
// trimmed, is the URL.
const imageURLMarker = "\nIMAGE_URL:"

// Usecase fetches web-grounded details for a single named product.
// Successful lookups are memoized so repeat views of the same product do not
// re-run a web search.
type Usecase struct {
	gemini GroundedConnector
	cache  *gocache.Cache
	model  string
	logger *zap.Logger
}

func NewUsecase(gemini GroundedConnector, model string, cacheTTL time.Duration, logger *zap.Logger) *Usecase {
	return &Usecase{
		gemini: gemini,
		cache:  gocache.New(cacheTTL, 2*cacheTTL),
		model:  model,
		logger: logger,
	}
}

// FetchDetails returns a descriptive paragraph, an optional image URL and
// the grounding citations for a product. Failures are wrapped in
// ProductDetailsError and surfaced: this call has no BOQ-mutating side
// effect to protect, so it is allowed to fail loudly.
func (uc *Usecase) FetchDetails(ctx context.Context, productName string) (*entity.ProductDetails, error) {
	if cached, found := uc.cache.Get(productName); found {
		if details, ok := cached.(*entity.ProductDetails); ok {
			ctxzap.Debug(ctx, "product details served from cache",
				zap.String("product", productName),
			)
			return details, nil
		}
	}

	ctxzap.Info(ctx, "fetching product details", zap.String("product", productName))

	out, err := uc.gemini.GenerateGrounded(ctx, &entity.GroundedGenerationRequest{
		Model:  uc.model,
		Prompt: buildDetailsPrompt(productName),
	})
	if err != nil {
		return nil, &entity.ProductDetailsError{Product: productName, Err: err}
	}

	description, imageURL := splitDescription(out.Text)
	details := &entity.ProductDetails{
		Description: description,
		ImageURL:    imageURL,
		Sources:     out.Sources,
	}

	uc.cache.SetDefault(productName, details)

	ctxzap.Info(ctx, "product details fetched",
		zap.String("product", productName),
		zap.Bool("has_image", imageURL != ""),
		zap.Int("source_count", len(out.Sources)),
	)

	return details, nil
}

func buildDetailsPrompt(productName string) string {
	var b strings.Builder
	b.WriteString("Give me a one-paragraph technical and functional overview for the product: \"")
	b.WriteString(productName)
	b.WriteString("\". The description should be suitable for a customer proposal.\n")
	b.WriteString("After the description, on a new line, write \"IMAGE_URL:\" followed by a direct URL to a high-quality, front-facing image of the product if you can find one.\n")
	return b.String()
}

// splitDescription separates the answer into description and image URL. The
// URL is the remainder of the marker's line; text without a marker is all
// description.
func splitDescription(text string) (description, imageURL string) {
	idx := strings.Index(text, imageURLMarker)
	if idx < 0 {
		return strings.TrimSpace(text), ""
	}

	rest := text[idx+len(imageURLMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[:nl]
	}

	return strings.TrimSpace(text[:idx]), strings.TrimSpace(rest)
}
