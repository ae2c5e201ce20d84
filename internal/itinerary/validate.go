package itinerary

import "github.com/teamventure/itinmd/internal/model"

// ValidationResult is the verdict on an edited document. Itinerary is only trustworthy when Valid.
type ValidationResult struct {
	Valid     bool            `json:"valid"`
	Errors    []string        `json:"errors"`
	Issues    Issues          `json:"issues,omitempty"`
	Itinerary model.Itinerary `json:"itinerary"`
	Stats     model.Stats     `json:"stats"`
}

// Validate parses text and reports whether it is a complete, well-formed itinerary.
func Validate(text string) ValidationResult {
	parsed := Parse(text)
	errs := parsed.Errors()
	return ValidationResult{
		Valid:     len(errs) == 0,
		Errors:    errs,
		Issues:    parsed.Issues,
		Itinerary: parsed.Itinerary,
		Stats:     parsed.Itinerary.Stats(),
	}
}
