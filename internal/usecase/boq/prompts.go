package boq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/allwaveav/boq-backend/internal/contextcache"
	"github.com/allwaveav/boq-backend/internal/entity"
)

// brandPreferences carries per-subsystem brand directives pulled verbatim
// from specific answer keys. Empty fields fall back to documented
// professional defaults inside the prompt.
type brandPreferences struct {
	displays     string
	mounts       string
	racks        string
	audio        string
	vc           string
	connectivity string
	control      string
}

func extractBrandPreferences(answers entity.RequirementAnswers) brandPreferences {
	brandList := func(key string) string {
		value, ok := answers.Get(key)
		if !ok {
			return ""
		}
		return strings.Join(value.List(), ", ")
	}

	return brandPreferences{
		displays:     brandList("displayBrands"),
		mounts:       brandList("mountBrands"),
		racks:        brandList("rackBrands"),
		audio:        brandList("audioBrands"),
		vc:           brandList("vcBrands"),
		connectivity: brandList("connectivityBrands"),
		control:      brandList("controlBrands"),
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// buildGenerationPrompt renders the generation request body: client
// configuration, zero-tolerance brand directives, the fixed six-stage output
// ordering and the category allow-list.
func buildGenerationPrompt(requirements string, prefs brandPreferences, allowedCategories []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**CLIENT CONFIGURATION:** %q\n\n", requirements)

	b.WriteString("**MANDATORY BRAND COMPLIANCE (ZERO TOLERANCE):**\n")
	fmt.Fprintf(&b, "*   **Display Mounts:** %s\n", orDefault(prefs.mounts, "Use Professional defaults (e.g., Chief, Peerless-AV, B-Tech)"))
	fmt.Fprintf(&b, "*   **Racks:** %s\n", orDefault(prefs.racks, "Use Professional defaults (e.g., Middle Atlantic, Valrack)"))
	fmt.Fprintf(&b, "*   **Displays:** %s\n", orDefault(prefs.displays, "Use Professional defaults (e.g., Samsung, LG, Sony)"))
	fmt.Fprintf(&b, "*   **Audio:** %s\n", orDefault(prefs.audio, "Use Professional defaults (e.g., Shure, QSC, Biamp)"))
	fmt.Fprintf(&b, "*   **Video Conferencing:** %s\n", orDefault(prefs.vc, "Use Professional defaults"))
	fmt.Fprintf(&b, "*   **Control:** %s\n\n", orDefault(prefs.control, "Use Professional defaults"))

	b.WriteString("**STRICT OUTPUT ORDERING (SYSTEM FLOW):**\n")
	b.WriteString("1. Visual Systems, 2. Conferencing, 3. Audio, 4. Connectivity, 5. Infrastructure, 6. Control.\n\n")

	fmt.Fprintf(&b, "**Scope Limit:** Generate items ONLY for these categories: %s.\n\n", strings.Join(allowedCategories, ", "))

	b.WriteString("**OUTPUT FORMAT:**\n")
	b.WriteString("Return ONLY a JSON array of objects with fields: category, itemDescription, keyRemarks, brand, model, quantity, unitPrice (USD), totalPrice, source ('database'|'web'), priceSource ('database'|'estimated').\n")

	return b.String()
}

// buildRefinePrompt renders the refinement request: the full serialized
// current BOQ, the user instruction, and the precedence rules. The response
// replaces the BOQ wholesale.
func buildRefinePrompt(currentBoq entity.Boq, instruction string) (string, error) {
	serialized, err := json.MarshalIndent(currentBoq, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize current BOQ: %w", err)
	}

	var b strings.Builder
	b.WriteString("Refine the following Bill of Quantities (BOQ) based on the user's request.\n\n")
	fmt.Fprintf(&b, "Current BOQ (JSON):\n%s\n\n", serialized)
	fmt.Fprintf(&b, "User Request: %q\n\n", instruction)
	b.WriteString("**INSTRUCTIONS:**\n")
	b.WriteString("1.  **User Authority:** The User Request overrides previous logic.\n")
	b.WriteString("2.  **Database Check:** Check the Custom Product Database (in context) first for swaps.\n")
	b.WriteString("3.  **Priorities:** Priority 1: DB Match. Priority 2: Web Search (Knowledge) if specific brand requested.\n")
	b.WriteString("4.  **Key Remarks:** Update 'keyRemarks' explaining the change.\n\n")
	b.WriteString("Return the complete, updated JSON array.\n")

	return b.String(), nil
}

// buildValidationPrompt renders the read-only audit request: strict brand
// compliance plus structural completeness (mounts per display, racks/power).
func buildValidationPrompt(boq entity.Boq, requirements string) (string, error) {
	serialized, err := json.MarshalIndent(boq, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialize BOQ: %w", err)
	}

	var b strings.Builder
	b.WriteString("Analyze the provided Bill of Quantities (BOQ) against the user's requirements.\n\n")
	fmt.Fprintf(&b, "User Requirements: %q\n\n", requirements)
	fmt.Fprintf(&b, "Current BOQ (JSON):\n%s\n\n", serialized)
	b.WriteString("**STRICT BRAND AUDIT:**\n")
	b.WriteString("- Check if the user requested specific brands. Did the BOQ use them?\n")
	b.WriteString("- **FAIL:** If user asked for \"Chief\" mounts but BOQ has \"B-Tech\", flag it.\n\n")
	b.WriteString("**SYSTEM AUDIT:**\n")
	b.WriteString("1.  **Signal Flow:** Are there breaks?\n")
	b.WriteString("2.  **Mounting:** Does every display have a mount?\n")
	b.WriteString("3.  **Infrastructure:** Are racks/power included?\n\n")
	b.WriteString("Provide your findings in a structured JSON format.\n")

	return b.String(), nil
}

// inlineFallbackPrompt wraps a prompt with the system persona and the full
// catalog for calls that could not obtain a cache handle. The fallback must
// never silently drop the catalog.
func inlineFallbackPrompt(prompt, catalogPayload string) string {
	var b strings.Builder
	b.WriteString(contextcache.SystemInstruction)
	b.WriteString("\n")
	b.WriteString(contextcache.CatalogMessage(catalogPayload))
	b.WriteString("\n\n")
	b.WriteString(prompt)
	return b.String()
}

// inlineValidationPrompt wraps the validation prompt with the persona only.
// Validation depends far less on the full product list, so the fallback
// skips the catalog to save tokens.
func inlineValidationPrompt(prompt string) string {
	return contextcache.SystemInstruction + "\n" + prompt
}
