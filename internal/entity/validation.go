package entity

// ValidationResult is the structured audit of a BOQ against requirements.
// Purely advisory; it never mutates the BOQ it describes.
type ValidationResult struct {
	IsValid           bool     `json:"isValid"`
	Warnings          []string `json:"warnings"`
	Suggestions       []string `json:"suggestions"`
	MissingComponents []string `json:"missingComponents"`
}

// ValidationFailedWarning is the fixed warning text returned when the
// validation call itself could not run.
const ValidationFailedWarning = "AI validation failed to run. Please check the BOQ manually."

// DegradedValidationResult is returned when validation fails for any reason.
// Validation is advisory and must never block editing or export, so failures
// collapse into this fixed shape instead of propagating.
func DegradedValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid:           false,
		Warnings:          []string{ValidationFailedWarning},
		Suggestions:       []string{},
		MissingComponents: []string{},
	}
}
