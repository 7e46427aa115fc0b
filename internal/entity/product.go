package entity

// CatalogProduct is one entry of the reference product catalog. The catalog
// is read-only input to prompt construction; its content is maintained
// outside this service.
type CatalogProduct struct {
	Brand       string  `json:"brand"`
	Model       string  `json:"model"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// GroundingSource is a web citation attached to a grounded generation.
type GroundingSource struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// ProductDetails is the enriched description of a single named product.
type ProductDetails struct {
	Description string            `json:"description"`
	ImageURL    string            `json:"imageUrl"`
	Sources     []GroundingSource `json:"sources"`
}
