// Package catalog holds the reference product catalog used to ground BOQ
// generation. The catalog is static, read-only input to prompt construction;
// its content is maintained outside this service and loaded at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/allwaveav/boq-backend/internal/entity"
	"go.uber.org/zap"
)

// Catalog is the loaded reference product list plus its serialized form used
// in prompts and cached contexts. Immutable after Load.
type Catalog struct {
	products   []entity.CatalogProduct
	serialized string
}

type catalogFile struct {
	Products []entity.CatalogProduct `json:"products"`
}

// Load reads the catalog from a JSON file. A missing file is not fatal: the
// built-in default catalog is used so local development works out of the box.
func Load(path string, logger *zap.Logger) (*Catalog, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("product catalog file not found, using built-in default catalog",
			zap.String("path", path),
		)
		return New(defaultProducts)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read product catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse product catalog JSON: %w", err)
	}

	if len(file.Products) == 0 {
		return nil, fmt.Errorf("product catalog contains no products: %s", path)
	}

	logger.Info("product catalog loaded",
		zap.String("path", path),
		zap.Int("product_count", len(file.Products)),
	)

	return New(file.Products)
}

// New builds a catalog from an in-memory product list.
func New(products []entity.CatalogProduct) (*Catalog, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog must contain at least one product")
	}

	serialized, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("serialize product catalog: %w", err)
	}

	return &Catalog{
		products:   products,
		serialized: string(serialized),
	}, nil
}

// Products returns the ordered product list.
func (c *Catalog) Products() []entity.CatalogProduct {
	return c.products
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// PromptPayload returns the catalog serialized as a JSON array, the exact
// form embedded in cached contexts and inline fallback prompts.
func (c *Catalog) PromptPayload() string {
	return c.serialized
}
