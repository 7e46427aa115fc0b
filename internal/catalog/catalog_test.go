package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "nope.json"), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, len(defaultProducts), cat.Len())
}

func TestLoad_ReadsProductsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	payload := `{"products":[{"brand":"Samsung","model":"QM85C","description":"85\" display","category":"Display","price":2800}]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	cat, err := Load(path, zap.NewNop())
	require.NoError(t, err)

	require.Equal(t, 1, cat.Len())
	assert.Equal(t, "QM85C", cat.Products()[0].Model)
}

func TestLoad_RejectsEmptyCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"products":[]}`), 0o644))

	_, err := Load(path, zap.NewNop())
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))

	_, err := Load(path, zap.NewNop())
	assert.Error(t, err)
}

func TestNew_RequiresProducts(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestPromptPayload_IsJSONArray(t *testing.T) {
	cat, err := New([]entity.CatalogProduct{
		{Brand: "Samsung", Model: "QM85C", Description: "d", Category: "Display", Price: 2800},
	})
	require.NoError(t, err)

	payload := cat.PromptPayload()
	assert.JSONEq(t, `[{"brand":"Samsung","model":"QM85C","description":"d","category":"Display","price":2800}]`, payload)
}
