package entity

import "time"

// BoqGenerationRequest asks for a schema-constrained BOQ item array.
// CachedContent, when set, references a server-side context cache holding the
// system instruction and reference catalog; when empty, the prompt must carry
// them inline.
type BoqGenerationRequest struct {
	Model         string
	Prompt        string
	CachedContent string
	Temperature   *float32
}

// ValidationGenerationRequest asks for a schema-constrained audit object.
type ValidationGenerationRequest struct {
	Model         string
	Prompt        string
	CachedContent string
}

// GroundedGenerationRequest asks for free-text generation augmented with
// live web search.
type GroundedGenerationRequest struct {
	Model  string
	Prompt string
}

// GenerationOutput is the raw, undecoded text of a generation call plus its
// token accounting. Decoding the text is the caller's responsibility.
type GenerationOutput struct {
	Text  string
	Usage TokenUsage
}

// GroundedOutput is the text of a web-grounded call plus its citations.
type GroundedOutput struct {
	Text    string
	Sources []GroundingSource
}

// CreateCacheRequest describes a server-side context cache to create: a
// system instruction plus reference content, held for TTL.
type CreateCacheRequest struct {
	Model             string
	DisplayName       string
	SystemInstruction string
	Contents          string
	TTL               time.Duration
}
