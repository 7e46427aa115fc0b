package entity

// GenerateBoqRequest is the API payload for BOQ generation. Answers is a
// JSON object whose key order is preserved end to end.
type GenerateBoqRequest struct {
	Answers RequirementAnswers `json:"answers"`
}

// RefineBoqRequest is the API payload for BOQ refinement. The response
// replaces the submitted BOQ wholesale; any validation result the client
// holds for it is stale after a successful refine.
type RefineBoqRequest struct {
	Boq         Boq    `json:"boq"`
	Instruction string `json:"instruction"`
}

// ValidateBoqRequest is the API payload for BOQ validation.
type ValidateBoqRequest struct {
	Boq          Boq    `json:"boq"`
	Requirements string `json:"requirements"`
}

// ErrorResponse is the uniform API error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// CatalogResponse lists the reference catalog.
type CatalogResponse struct {
	Products []CatalogProduct `json:"products"`
}
