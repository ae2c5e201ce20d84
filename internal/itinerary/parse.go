package itinerary

import (
	"strings"

	"github.com/teamventure/itinmd/internal/model"
)

// ParseResult is a best-effort itinerary plus every diagnostic found while reading it.
type ParseResult struct {
	Itinerary model.Itinerary `json:"itinerary"`
	Issues    Issues          `json:"-"`
}

// Errors renders the diagnostics in source order. The result is never nil.
func (r ParseResult) Errors() []string {
	return r.Issues.Strings()
}

// Parse reads itinerary Markdown. It never fails; malformed lines are skipped and reported.
func Parse(text string) ParseResult {
	var (
		days   []*model.Day
		issues Issues
	)

	var current *model.Day
	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := Classify(raw)

		switch line.Kind {
		case LineBlank, LineMeta:
			continue

		case LineDayHeading:
			current = &model.Day{Day: line.Day, Date: line.Date, Items: []model.Activity{}}
			days = append(days, current)

		case LineItemRow:
			if current == nil {
				issues = append(issues, Issue{Line: lineNo, Kind: OrphanRow, Text: line.Text})
				continue
			}
			item, kind := parseItem(line.Text)
			if kind != 0 {
				issues = append(issues, Issue{Line: lineNo, Kind: kind, Text: line.Text})
				continue
			}
			current.Items = append(current.Items, item)

		default:
			issues = append(issues, Issue{Line: lineNo, Kind: Unrecognized, Text: line.Text})
		}
	}

	if len(days) == 0 {
		issues = append(issues, Issue{Kind: NoDays})
	}
	it := model.Itinerary{Days: make([]model.Day, 0, len(days))}
	for _, d := range days {
		if len(d.Items) == 0 {
			issues = append(issues, Issue{Kind: EmptyDay, Day: d.Day})
		}
		it.Days = append(it.Days, *d)
	}

	return ParseResult{Itinerary: it, Issues: issues}
}

// parseItem reads a "- " row. A non-zero kind means the row was rejected.
func parseItem(line string) (model.Activity, IssueKind) {
	body := strings.TrimPrefix(NormalizePipes(line), "-")
	parts := strings.Split(body, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return model.Activity{}, RowFormat
	}

	m := patterns.timeRange.FindStringSubmatch(NormalizeTimeRange(parts[0]))
	if m == nil {
		return model.Activity{}, TimeFormat
	}
	if parts[1] == "" {
		return model.Activity{}, EmptyActivity
	}

	return model.Activity{
		TimeStart: m[1],
		TimeEnd:   m[2],
		Activity:  parts[1],
		Location:  segment(parts, 2),
		Note:      segment(parts, 3),
	}, 0
}

func segment(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}
