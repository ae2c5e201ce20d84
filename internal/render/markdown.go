package render

import "github.com/teamventure/itinmd/internal/itinerary"

// MarkdownRenderer emits the canonical itinerary Markdown. The title is fixed by the format.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

func (r *MarkdownRenderer) Render(doc Document) ([]byte, error) {
	return []byte(itinerary.Serialize(doc.Itinerary, doc.Version)), nil
}

func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
