// Package chunker splits itinerary Markdown into per-Day sections for search indexing.
package chunker

import (
	"strings"

	"github.com/teamventure/itinmd/internal/itinerary"
)

const DefaultMaxSize = 600

// Options configures chunking behavior.
type Options struct {
	MaxSize int
}

// DefaultOptions returns default chunking options.
func DefaultOptions() Options {
	return Options{MaxSize: DefaultMaxSize}
}

// ChunkResult is a Day section (or part of one) with its position in the original text.
type ChunkResult struct {
	Day       int
	Heading   string
	Text      string
	StartLine int
	EndLine   int
}

type line struct {
	num  int
	text string
}

// section is a Day heading and the content lines under it.
type section struct {
	day     int
	heading string
	lines   []line
}

// Chunk splits markdown on Day headings. Text before the first heading, blank lines and
// title or quote lines are not indexed. Sections longer than MaxSize bytes are split on
// line boundaries.
func Chunk(markdown string, opts Options) []ChunkResult {
	if opts.MaxSize <= 0 {
		opts = DefaultOptions()
	}

	var results []ChunkResult
	for _, s := range splitSections(markdown) {
		text := s.text()
		if len(text) <= opts.MaxSize {
			results = append(results, ChunkResult{
				Day:       s.day,
				Heading:   s.heading,
				Text:      text,
				StartLine: s.lines[0].num,
				EndLine:   s.lines[len(s.lines)-1].num,
			})
			continue
		}
		results = append(results, hardSplit(s, opts)...)
	}
	return results
}

func splitSections(markdown string) []section {
	var (
		sections []section
		current  *section
	)
	for i, raw := range strings.Split(markdown, "\n") {
		l := itinerary.Classify(raw)
		switch l.Kind {
		case itinerary.LineDayHeading:
			sections = append(sections, section{day: l.Day, heading: l.Text})
			current = &sections[len(sections)-1]
		case itinerary.LineBlank, itinerary.LineMeta:
			continue
		}
		if current == nil {
			continue
		}
		current.lines = append(current.lines, line{num: i + 1, text: l.Text})
	}
	return sections
}

func (s section) text() string {
	parts := make([]string, len(s.lines))
	for i, l := range s.lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

// hardSplit breaks a section that exceeds maxSize on line boundaries. A single line
// longer than maxSize becomes its own chunk.
func hardSplit(s section, opts Options) []ChunkResult {
	var results []ChunkResult
	var current []line
	curLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		parts := make([]string, len(current))
		for i, l := range current {
			parts[i] = l.text
		}
		results = append(results, ChunkResult{
			Day:       s.day,
			Heading:   s.heading,
			Text:      strings.Join(parts, "\n"),
			StartLine: current[0].num,
			EndLine:   current[len(current)-1].num,
		})
		current = nil
		curLen = 0
	}

	for _, l := range s.lines {
		if curLen+len(l.text) > opts.MaxSize && len(current) > 0 {
			flush()
		}
		current = append(current, l)
		curLen += len(l.text) + 1 // +1 for newline
	}
	flush()

	return results
}
