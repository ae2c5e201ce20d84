package itinerary

import "strings"

// EnforceResult is the document to hand downstream and its validation check.
type EnforceResult struct {
	Markdown     string           `json:"markdown"`
	Check        ValidationResult `json:"check"`
	FallbackUsed bool             `json:"fallback_used"`
}

// Enforce guarantees a valid document: a valid candidate passes through, anything else is
// replaced by a Template built from fallbackSource, or from the candidate when that is blank.
func Enforce(candidate, fallbackSource string, opts TemplateOptions) EnforceResult {
	candidate = strings.TrimSpace(candidate)
	if check := Validate(candidate); check.Valid {
		return EnforceResult{Markdown: candidate, Check: check}
	}

	source := strings.TrimSpace(fallbackSource)
	if source == "" {
		source = candidate
	}
	md := Template(source, opts)
	return EnforceResult{Markdown: md, Check: Validate(md), FallbackUsed: true}
}
