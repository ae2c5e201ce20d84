package render

import (
	"encoding/json"
	"fmt"

	"github.com/teamventure/itinmd/internal/model"
)

// JSONRenderer produces the structured itinerary with its version and counts.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonDocument struct {
	Version   int             `json:"version"`
	Title     string          `json:"title"`
	Stats     model.Stats     `json:"stats"`
	Itinerary model.Itinerary `json:"itinerary"`
}

func (r *JSONRenderer) Render(doc Document) ([]byte, error) {
	it := doc.Itinerary
	if it.Days == nil {
		it.Days = []model.Day{}
	}
	data, err := json.MarshalIndent(jsonDocument{
		Version:   doc.Version,
		Title:     doc.title(),
		Stats:     it.Stats(),
		Itinerary: it,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

func (r *JSONRenderer) Extension() string {
	return ".json"
}
