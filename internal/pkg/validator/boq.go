package validator

import (
	"fmt"
	"strings"

	"github.com/allwaveav/boq-backend/internal/entity"
)

// Validator checks API payloads before they reach the usecase layer. The
// non-empty-requirements precondition stays in the encoder; these checks only
// reject structurally unusable requests.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateGenerate validates a BOQ generation request
func (v *Validator) ValidateGenerate(req *entity.GenerateBoqRequest) error {
	if len(req.Answers) == 0 {
		return fmt.Errorf("%w: answers", entity.ErrMissingField)
	}
	return nil
}

// ValidateRefine validates a BOQ refinement request
func (v *Validator) ValidateRefine(req *entity.RefineBoqRequest) error {
	if len(req.Boq) == 0 {
		return fmt.Errorf("%w: boq", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.Instruction) == "" {
		return fmt.Errorf("%w: instruction", entity.ErrMissingField)
	}
	return nil
}

// ValidateBoqValidation validates a BOQ validation request
func (v *Validator) ValidateBoqValidation(req *entity.ValidateBoqRequest) error {
	if len(req.Boq) == 0 {
		return fmt.Errorf("%w: boq", entity.ErrMissingField)
	}
	if strings.TrimSpace(req.Requirements) == "" {
		return fmt.Errorf("%w: requirements", entity.ErrMissingField)
	}
	return nil
}

// ValidateProductName validates a product detail lookup
func (v *Validator) ValidateProductName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name", entity.ErrMissingField)
	}
	return nil
}
