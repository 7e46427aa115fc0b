package entity

// ItemSource describes where an item choice came from
type ItemSource string

const (
	ItemSourceDatabase ItemSource = "database"
	ItemSourceWeb      ItemSource = "web"
)

// PriceSource describes where an item price came from
type PriceSource string

const (
	PriceSourceDatabase  PriceSource = "database"
	PriceSourceEstimated PriceSource = "estimated"
)

// BoqItem is a single priced line of a Bill of Quantities.
// Prices are in a currency-agnostic base unit; conversion happens downstream.
type BoqItem struct {
	Category        string      `json:"category"`
	ItemDescription string      `json:"itemDescription"`
	KeyRemarks      string      `json:"keyRemarks"`
	Brand           string      `json:"brand"`
	Model           string      `json:"model"`
	Quantity        float64     `json:"quantity"`
	UnitPrice       float64     `json:"unitPrice"`
	TotalPrice      float64     `json:"totalPrice"`
	Source          ItemSource  `json:"source"`
	PriceSource     PriceSource `json:"priceSource"`
	Margin          *float64    `json:"margin,omitempty"`
}

// Normalize recomputes the derived total and clamps the margin override.
// The model's arithmetic is never trusted, so TotalPrice is always
// quantity * unitPrice regardless of what the generation returned.
func (i *BoqItem) Normalize() {
	i.TotalPrice = i.Quantity * i.UnitPrice
	if i.Margin != nil && *i.Margin < 0 {
		zero := 0.0
		i.Margin = &zero
	}
}

// Validate checks a decoded item against the response contract.
func (i *BoqItem) Validate() error {
	if i.Category == "" {
		return NewFieldError("category", "must not be empty")
	}
	if i.ItemDescription == "" {
		return NewFieldError("itemDescription", "must not be empty")
	}
	if i.Quantity < 0 {
		return NewFieldError("quantity", "must be non-negative")
	}
	if i.UnitPrice < 0 {
		return NewFieldError("unitPrice", "must be non-negative")
	}
	switch i.Source {
	case ItemSourceDatabase, ItemSourceWeb:
	default:
		return NewFieldError("source", "must be 'database' or 'web'")
	}
	switch i.PriceSource {
	case PriceSourceDatabase, PriceSourceEstimated:
	default:
		return NewFieldError("priceSource", "must be 'database' or 'estimated'")
	}
	return nil
}

// Boq is an ordered sequence of line items. Order carries meaning: it encodes
// the system-flow ordering (visual, conferencing, audio, connectivity,
// infrastructure, control) and is preserved as produced.
type Boq []BoqItem

// Normalize normalizes every item in place.
func (b Boq) Normalize() {
	for idx := range b {
		b[idx].Normalize()
	}
}

// Total returns the sum of line totals.
func (b Boq) Total() float64 {
	var total float64
	for idx := range b {
		total += b[idx].TotalPrice
	}
	return total
}

// TokenUsage reports token accounting for a single generation call.
// Informational only.
type TokenUsage struct {
	PromptTokens   int `json:"promptTokens"`
	ResponseTokens int `json:"responseTokens"`
	TotalTokens    int `json:"totalTokens"`
}

// BoqResult bundles a generated or refined BOQ with its token usage.
type BoqResult struct {
	Boq   Boq        `json:"boq"`
	Usage TokenUsage `json:"usage"`
}
