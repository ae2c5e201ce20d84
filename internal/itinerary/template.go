package itinerary

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/teamventure/itinmd/internal/model"
)

const (
	maxTemplateLines  = 32
	maxQuotedLines    = 24
	maxActivityRunes  = 80
	maxQuoteRunes     = 200
	defaultActivity   = "自由活动/机动安排"
	emptySourceFiller = "自由活动/根据现场调整"
	sourceQuoteHeader = "> 原始输入（仅供参考）"
)

// safeDocument is returned if a generated template ever fails validation.
const safeDocument = Title + "\n> 版本: v2\n\n## Day 1\n- 09:00 - | 行程整理 | |\n"

// TemplateOptions shapes the fallback document.
type TemplateOptions struct {
	MaxDays     int
	ItemsPerDay int
	StartHour   int
	Version     int
}

// DefaultTemplateOptions returns the defaults used when a field is zero.
func DefaultTemplateOptions() TemplateOptions {
	return TemplateOptions{MaxDays: 5, ItemsPerDay: 8, StartHour: 9, Version: 2}
}

func (o TemplateOptions) withDefaults() TemplateOptions {
	d := DefaultTemplateOptions()
	if o.MaxDays <= 0 {
		o.MaxDays = d.MaxDays
	}
	if o.ItemsPerDay <= 0 {
		o.ItemsPerDay = d.ItemsPerDay
	}
	if o.StartHour <= 0 || o.StartHour > 23 {
		o.StartHour = d.StartHour
	}
	if o.Version <= 0 {
		o.Version = d.Version
	}
	return o
}

var (
	dayMarker     = regexp.MustCompile(`(?i)(?:^|\s)(?:D\s*\d+|day\s*\d+|第\s*\d+\s*天)(?:\b|\s|:|：|$)`)
	emptyTimeRow  = regexp.MustCompile(`^-\s*-\s*\|`)
	leadingDashes = regexp.MustCompile(`^-+\s*`)
	sentenceBreak = regexp.MustCompile(`[。！!？?；;]|→|->|➡️|➜|—|–`)
)

// Template builds a document from arbitrary text that always passes Validate. Times are
// placeholders on the hour and end times stay empty; the source is quoted at the bottom.
func Template(source string, opts TemplateOptions) string {
	opts = opts.withDefaults()
	source = strings.TrimSpace(strings.ReplaceAll(source, "\r", ""))

	lines := extractActivityLines(source)
	if len(lines) == 0 {
		lines = []string{emptySourceFiller}
	}
	days := clamp(inferDays(source, lines, opts.MaxDays), 1, opts.MaxDays)

	it := model.Itinerary{}
	startHour := opts.StartHour
	for d, group := range splitIntoDays(lines, days, opts.ItemsPerDay) {
		if len(group) == 0 {
			group = []string{defaultActivity}
		}
		day := model.Day{Day: d + 1, Items: make([]model.Activity, 0, len(group))}
		hour := startHour
		for _, raw := range group {
			day.Items = append(day.Items, model.Activity{
				TimeStart: fmt.Sprintf("%02d:00", hour),
				Activity:  cleanActivity(raw),
			})
			hour = min(hour+1, 23)
		}
		it.Days = append(it.Days, day)
		startHour = min(startHour+1, 12)
	}

	var b strings.Builder
	b.WriteString(Serialize(it, opts.Version))
	if quoted := quoteSource(source); len(quoted) > 0 {
		b.WriteString("\n" + sourceQuoteHeader + "\n")
		b.WriteString(strings.Join(quoted, "\n") + "\n")
	}

	md := b.String()
	if !Validate(md).Valid {
		return safeDocument
	}
	return md
}

func extractActivityLines(text string) []string {
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		t := strings.TrimSpace(raw)
		if t == "" || strings.HasPrefix(t, "#") || strings.HasPrefix(t, ">") || emptyTimeRow.MatchString(t) {
			continue
		}
		if strings.HasPrefix(t, "-") {
			t = strings.TrimSpace(leadingDashes.ReplaceAllString(t, ""))
			if parts := strings.Split(NormalizePipes(t), "|"); len(parts) >= 2 {
				t = strings.TrimSpace(parts[1])
				if len(parts) >= 3 {
					if loc := strings.TrimSpace(parts[2]); loc != "" {
						t += "（" + loc + "）"
					}
				}
			}
		}
		if strings.HasPrefix(t, "http") || runeLen(t) < 2 {
			continue
		}
		out = append(out, t)
		if len(out) >= maxTemplateLines {
			return out
		}
	}

	if len(out) > 1 {
		return out
	}
	// Prose without line structure: split into sentences and route steps.
	for _, p := range sentenceBreak.Split(collapseSpace(text), -1) {
		t := strings.TrimSpace(p)
		if runeLen(t) < 3 {
			continue
		}
		out = append(out, t)
		if len(out) >= maxTemplateLines {
			break
		}
	}
	return out
}

func inferDays(source string, lines []string, maxDays int) int {
	if markers := len(dayMarker.FindAllStringIndex(source, -1)); markers >= 2 {
		return min(markers, maxDays)
	}
	switch {
	case len(lines) >= 16:
		return 3
	case len(lines) >= 10:
		return 2
	}
	return 1
}

// splitIntoDays fills days in order, perDay lines each; lines beyond days*perDay are dropped.
func splitIntoDays(lines []string, days, perDay int) [][]string {
	out := make([][]string, days)
	for i, l := range lines {
		if i >= days*perDay {
			break
		}
		d := min(i/perDay, days-1)
		out[d] = append(out[d], l)
	}
	return out
}

func cleanActivity(s string) string {
	s = strings.NewReplacer("|", " - ", "｜", " - ").Replace(s)
	s = collapseSpace(s)
	if s == "" {
		return defaultActivity
	}
	return truncateRunes(s, maxActivityRunes)
}

func quoteSource(source string) []string {
	if source == "" {
		return nil
	}
	raw := strings.Split(source, "\n")
	if len(raw) > maxQuotedLines {
		raw = raw[:maxQuotedLines]
	}
	var out []string
	for _, l := range raw {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		t = truncateRunes(t, maxQuoteRunes)
		out = append(out, "> "+strings.ReplaceAll(t, "\t", " "))
	}
	return out
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimRight(string(r[:n]), " \t") + "..."
}

func runeLen(s string) int {
	return len([]rune(s))
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
