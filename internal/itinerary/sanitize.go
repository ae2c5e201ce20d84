package itinerary

import "strings"

// SanitizeLines keeps only Day headings and time-prefixed rows, dropping every other line.
// Time rows without a list marker get a "- " prefix so the parser accepts them. Only explicit
// newlines delimit lines. The pass is lossy, reports nothing, and is idempotent.
func SanitizeLines(text string) string {
	text = strings.ReplaceAll(NormalizePipes(text), "\r", "")

	var out []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(StripInvisible(raw))
		if line == "" {
			continue
		}

		if patterns.filterDay.MatchString(line) {
			out = append(out, line)
			continue
		}

		rest := patterns.bulletOpt.ReplaceAllString(line, "")
		if !patterns.filterTime.MatchString(rest) {
			continue
		}
		if patterns.bullet.MatchString(line) {
			out = append(out, patterns.bullet.ReplaceAllString(line, "- "))
		} else {
			out = append(out, "- "+rest)
		}
	}

	return strings.TrimSpace(strings.Join(out, "\n"))
}

// SanitizeDraft prepares a document for the unscheduled draft phase: the version line is
// dropped, Day headings lose their date, and placeholder rows without a start time
// ("- - | 西湖 |  |") are removed. Every other line is kept as written.
func SanitizeDraft(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	text = strings.ReplaceAll(NormalizePipes(text), "\r", "")

	var b strings.Builder
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if patterns.versionLine.MatchString(line) {
			continue
		}
		if m := patterns.datedHeading.FindStringSubmatch(line); m != nil {
			b.WriteString(m[1] + "\n")
			continue
		}
		if body, ok := strings.CutPrefix(line, "- "); ok {
			if parts := strings.Split(body, "|"); len(parts) >= 2 && placeholderTime(parts[0]) {
				continue
			}
		}
		b.WriteString(raw + "\n")
	}
	return strings.TrimSpace(b.String()) + "\n"
}

// placeholderTime reports whether a time segment holds nothing but dashes.
func placeholderTime(s string) bool {
	return strings.Trim(NormalizeTimeRange(s), "- ") == ""
}
