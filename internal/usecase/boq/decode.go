package boq

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/allwaveav/boq-backend/internal/entity"
)

// decodeBoqItems strictly decodes a model response into a BOQ. Any parse
// failure or schema violation aborts the whole decode; no partial list is
// ever returned. Totals are recomputed because the model's arithmetic is not
// guaranteed internally consistent.
func decodeBoqItems(op, text string) (entity.Boq, error) {
	raw := strings.TrimSpace(text)

	var items entity.Boq
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&items); err != nil {
		return nil, entity.NewDecodeError(op, err, raw)
	}
	// Decode treats "null" as a no-op success, leaving the slice nil.
	if items == nil {
		return nil, entity.NewDecodeError(op, errors.New("expected a JSON array, got null"), raw)
	}
	if err := requireEOF(dec); err != nil {
		return nil, entity.NewDecodeError(op, err, raw)
	}

	for idx := range items {
		if err := items[idx].Validate(); err != nil {
			return nil, entity.NewDecodeError(op, fmt.Errorf("item %d: %w", idx, err), raw)
		}
	}

	items.Normalize()
	return items, nil
}

// decodeValidationResult strictly decodes the audit response.
func decodeValidationResult(text string) (*entity.ValidationResult, error) {
	raw := strings.TrimSpace(text)

	var result *entity.ValidationResult
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return nil, entity.NewDecodeError("validation", err, raw)
	}
	if result == nil {
		return nil, entity.NewDecodeError("validation", errors.New("expected a JSON object, got null"), raw)
	}
	if err := requireEOF(dec); err != nil {
		return nil, entity.NewDecodeError("validation", err, raw)
	}

	if result.Warnings == nil {
		result.Warnings = []string{}
	}
	if result.Suggestions == nil {
		result.Suggestions = []string{}
	}
	if result.MissingComponents == nil {
		result.MissingComponents = []string{}
	}

	return result, nil
}

// requireEOF rejects payloads carrying anything after the first JSON value.
func requireEOF(dec *json.Decoder) error {
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("trailing data after JSON value: %v", tok)
	}
	return nil
}
