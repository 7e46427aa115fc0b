package entity

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// ErrEmptyRequirements means the questionnaire produced no usable
	// requirements text. Checked before any model call is made.
	ErrEmptyRequirements = errors.New("requirements are empty")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// DecodeError means a model response did not parse as JSON or did not match
// the required schema. No partial result is ever returned alongside it.
type DecodeError struct {
	Op  string // operation that produced the response
	Err error
	Raw string // truncated raw payload, for diagnostics
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

const rawSnippetLimit = 256

// NewDecodeError wraps a decode failure with a bounded snippet of the raw
// model output.
func NewDecodeError(op string, err error, raw string) *DecodeError {
	if len(raw) > rawSnippetLimit {
		raw = raw[:rawSnippetLimit]
	}
	return &DecodeError{Op: op, Err: err, Raw: raw}
}

// FieldError reports a single schema violation in a decoded payload.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func NewFieldError(field, reason string) *FieldError {
	return &FieldError{Field: field, Reason: reason}
}

// ProductDetailsError means a product-detail lookup failed. It carries the
// product name so callers can report which lookup broke.
type ProductDetailsError struct {
	Product string
	Err     error
}

func (e *ProductDetailsError) Error() string {
	return fmt.Sprintf("failed to fetch product details for %q: %v", e.Product, e.Err)
}

func (e *ProductDetailsError) Unwrap() error {
	return e.Err
}
