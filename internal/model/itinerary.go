// Package model defines the itinerary data types shared by the parser, the store and the CLI.
package model

import "time"

// Itinerary is a multi-day trip schedule. Days keep insertion order.
type Itinerary struct {
	Days []Day `json:"days" yaml:"days"`
}

// Day is one calendar day of an itinerary.
type Day struct {
	Day   int        `json:"day" yaml:"day"`
	Date  string     `json:"date" yaml:"date"`
	Items []Activity `json:"items" yaml:"items"`
}

// Activity is a single scheduled row. TimeEnd is empty for open-ended rows.
type Activity struct {
	TimeStart string `json:"time_start" yaml:"time_start"`
	TimeEnd   string `json:"time_end" yaml:"time_end"`
	Activity  string `json:"activity" yaml:"activity"`
	Location  string `json:"location" yaml:"location"`
	Note      string `json:"note" yaml:"note"`
}

// Stats summarises an itinerary.
type Stats struct {
	Days  int `json:"days"`
	Items int `json:"items"`
}

// Stats returns the day count and the total item count.
func (it Itinerary) Stats() Stats {
	st := Stats{Days: len(it.Days)}
	for _, d := range it.Days {
		st.Items += len(d.Items)
	}
	return st
}

// Plan is one committed version of a plan's itinerary.
type Plan struct {
	ID         string     `json:"id"`
	PlanID     string     `json:"plan_id"`
	Markdown   string     `json:"markdown"`
	Itinerary  Itinerary  `json:"itinerary"`
	Version    int        `json:"version"`
	Supersedes string     `json:"supersedes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	Days       int        `json:"days"`
	Items      int        `json:"items"`
	ChunkCount int        `json:"chunks,omitempty"`
}

// Draft is uncommitted editor text for a plan. BaseVersion is the version the edit started from.
type Draft struct {
	PlanID      string    `json:"plan_id"`
	Markdown    string    `json:"markdown"`
	BaseVersion int       `json:"base_version"`
	SavedAt     time.Time `json:"saved_at"`
}

// Chunk is a stored Day section of a plan's Markdown.
type Chunk struct {
	ID        string `json:"id"`
	PlanRowID string `json:"plan_row_id"`
	Seq       int    `json:"seq"`
	Day       int    `json:"day"`
	Heading   string `json:"heading"`
	Text      string `json:"text"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}
