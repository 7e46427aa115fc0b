package boq

import (
	"testing"

	"github.com/allwaveav/boq-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validItemJSON = `[
  {
    "category": "Display",
    "itemDescription": "85\" 4K Commercial Display",
    "keyRemarks": "Wall mounted",
    "brand": "Samsung",
    "model": "QM85C",
    "quantity": 2,
    "unitPrice": 100,
    "totalPrice": 999,
    "source": "database",
    "priceSource": "database"
  }
]`

func TestDecodeBoqItems_RecomputesTotals(t *testing.T) {
	items, err := decodeBoqItems("generation", validItemJSON)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// The model claimed 999; the derived total wins.
	assert.Equal(t, 200.0, items[0].TotalPrice)
}

func TestDecodeBoqItems_RejectsMalformedJSON(t *testing.T) {
	_, err := decodeBoqItems("generation", `not json at all`)
	require.Error(t, err)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "generation", decodeErr.Op)
	assert.Equal(t, "not json at all", decodeErr.Raw)
}

func TestDecodeBoqItems_RejectsEnumViolation(t *testing.T) {
	payload := `[
	  {
	    "category": "Display",
	    "itemDescription": "Display",
	    "keyRemarks": "",
	    "brand": "Samsung",
	    "model": "QM85C",
	    "quantity": 1,
	    "unitPrice": 100,
	    "totalPrice": 100,
	    "source": "hallucinated",
	    "priceSource": "database"
	  }
	]`

	items, err := decodeBoqItems("refinement", payload)
	require.Error(t, err)
	// No partial result alongside the failure.
	assert.Nil(t, items)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "refinement", decodeErr.Op)
}

func TestDecodeBoqItems_RejectsUnknownFields(t *testing.T) {
	payload := `[{"category":"Display","itemDescription":"x","keyRemarks":"","brand":"b","model":"m","quantity":1,"unitPrice":1,"totalPrice":1,"source":"database","priceSource":"database","surprise":true}]`

	_, err := decodeBoqItems("generation", payload)
	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeBoqItems_RejectsNullPayload(t *testing.T) {
	items, err := decodeBoqItems("generation", `null`)
	require.Error(t, err)
	assert.Nil(t, items)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "generation", decodeErr.Op)
}

func TestDecodeBoqItems_RejectsTrailingData(t *testing.T) {
	_, err := decodeBoqItems("generation", validItemJSON+`{"extra":true}`)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeBoqItems_TolerantOfSurroundingWhitespace(t *testing.T) {
	items, err := decodeBoqItems("generation", "\n\t  "+validItemJSON+"  \n")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestDecodeValidationResult_NormalizesNilSlices(t *testing.T) {
	result, err := decodeValidationResult(`{"isValid": true}`)
	require.NoError(t, err)

	assert.True(t, result.IsValid)
	assert.Equal(t, []string{}, result.Warnings)
	assert.Equal(t, []string{}, result.Suggestions)
	assert.Equal(t, []string{}, result.MissingComponents)
}

func TestDecodeValidationResult_RejectsMalformedJSON(t *testing.T) {
	_, err := decodeValidationResult(`{"isValid": tru`)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, "validation", decodeErr.Op)
}

func TestDecodeValidationResult_RejectsNullPayload(t *testing.T) {
	result, err := decodeValidationResult(`null`)
	require.Error(t, err)
	assert.Nil(t, result)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestDecodeValidationResult_RejectsTrailingData(t *testing.T) {
	_, err := decodeValidationResult(`{"isValid":true}["leftover"]`)

	var decodeErr *entity.DecodeError
	require.ErrorAs(t, err, &decodeErr)
}
