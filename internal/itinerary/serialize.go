package itinerary

import (
	"fmt"
	"strings"

	"github.com/teamventure/itinmd/internal/model"
)

// Title is the top-level heading of every canonical document.
const Title = "# 行程安排"

// Serialize renders an itinerary as canonical Markdown. It never fails: odd input such as a
// missing activity renders as an empty segment.
func Serialize(it model.Itinerary, version int) string {
	lines := []string{
		Title,
		fmt.Sprintf("> 版本: v%d", version),
		"",
	}

	for _, d := range it.Days {
		lines = append(lines, dayHeading(d))
		for _, a := range d.Items {
			lines = append(lines, itemRow(a))
		}
		lines = append(lines, "")
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n") + "\n"
}

func dayHeading(d model.Day) string {
	if date := strings.TrimSpace(d.Date); date != "" {
		return fmt.Sprintf("## Day %d（%s）", d.Day, date)
	}
	return fmt.Sprintf("## Day %d", d.Day)
}

// itemRow always emits four segments so the row parses back unchanged.
func itemRow(a model.Activity) string {
	timeRange := strings.TrimSpace(strings.TrimSpace(a.TimeStart) + " - " + strings.TrimSpace(a.TimeEnd))
	return fmt.Sprintf("- %s | %s | %s | %s",
		timeRange,
		strings.TrimSpace(a.Activity),
		strings.TrimSpace(a.Location),
		strings.TrimSpace(a.Note),
	)
}
