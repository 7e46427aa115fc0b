package boq

import (
	"fmt"
	"strings"

	"github.com/allwaveav/boq-backend/internal/entity"
)

// CatchAllCategory is always in scope regardless of the selected subsystems.
const CatchAllCategory = "Accessories & Services"

// subsystemCategories maps a requiredSystems tag to the BOQ categories it
// unlocks.
var subsystemCategories = map[string][]string{
	entity.SystemDisplay:             {"Display"},
	entity.SystemVideoConferencing:   {"Video Conferencing & Cameras"},
	entity.SystemAudio:               {"Audio - Microphones", "Audio - DSP & Amplification", "Audio - Speakers"},
	entity.SystemConnectivityControl: {"Video Distribution & Switching", "Control System & Environmental"},
	entity.SystemInfrastructure:      {"Cabling & Infrastructure", "Mounts & Racks"},
	entity.SystemAcoustics:           {"Acoustic Treatment"},
}

// EncodeRequirements turns questionnaire answers into the compact
// requirements string used in prompts, plus the allowed category list.
// Empty answers (empty lists, empty strings, zero, false) are skipped; key
// order follows the input's insertion order. An entirely empty result is an
// error: no generation call may be made without requirements.
func EncodeRequirements(answers entity.RequirementAnswers) (string, []string, error) {
	parts := make([]string, 0, len(answers))
	for _, answer := range answers {
		if answer.Value.IsEmpty() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", answer.Key, answer.Value.String()))
	}

	requirements := strings.Join(parts, "; ")
	if requirements == "" {
		return "", nil, entity.ErrEmptyRequirements
	}

	categories := make([]string, 0, 8)
	for _, system := range answers.RequiredSystems() {
		categories = append(categories, subsystemCategories[system]...)
	}
	categories = append(categories, CatchAllCategory)

	return requirements, categories, nil
}
