// Package render turns an itinerary into an output document.
package render

import (
	"fmt"
	"strings"

	"github.com/teamventure/itinmd/internal/model"
)

// DefaultTitle is used when a document has no title of its own.
const DefaultTitle = "行程安排"

// Document is what renderers consume.
type Document struct {
	Itinerary model.Itinerary
	Version   int
	Title     string
}

func (d Document) title() string {
	if t := strings.TrimSpace(d.Title); t != "" {
		return t
	}
	return DefaultTitle
}

// Renderer converts a Document into output bytes.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// Options configures renderer construction.
type Options struct {
	// PDFFontPath points at a UTF-8 TrueType font. Without it the PDF uses a core font
	// that cannot display CJK text.
	PDFFontPath string
}

// New returns the renderer for a format name: markdown (md), json or pdf.
func New(format string, opts Options) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "pdf":
		return NewPDFRenderer(opts.PDFFontPath), nil
	}
	return nil, fmt.Errorf("unknown format %q (valid: markdown, json, pdf)", format)
}
