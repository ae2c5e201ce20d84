package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind tags a classified source line.
type LineKind int

const (
	LineBlank LineKind = iota
	// LineMeta is a title ("# ") or blockquote (">") line; it carries no content.
	LineMeta
	LineDayHeading
	LineItemRow
	LineUnrecognized
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineMeta:
		return "meta"
	case LineDayHeading:
		return "day_heading"
	case LineItemRow:
		return "item_row"
	default:
		return "unrecognized"
	}
}

// Line is a normalized source line and its classification. Day and Date are set for headings.
type Line struct {
	Kind LineKind
	Text string
	Day  int
	Date string
}

var patterns = struct {
	dayHeading *regexp.Regexp
	timeRange  *regexp.Regexp
	filterDay  *regexp.Regexp
	filterTime *regexp.Regexp
	bullet     *regexp.Regexp
	bulletOpt  *regexp.Regexp

	datedHeading *regexp.Regexp
	versionLine  *regexp.Regexp
}{
	dayHeading: regexp.MustCompile(`^##[\s\p{Z}]*Day[\s\p{Z}]*(\d+)[\s\p{Z}]*(?:（(.*)）)?[\s\p{Z}]*$`),
	timeRange:  regexp.MustCompile(`^(\d{1,2}:\d{2})\s*-\s*(\d{1,2}:\d{2})?$`),
	filterDay:  regexp.MustCompile(`(?i)^##[\s\p{Z}]*Day\b`),
	filterTime: regexp.MustCompile(`^\d{1,2}[:：]\d{2}\b`),
	bullet:     regexp.MustCompile(`^[-*][\s\p{Z}]+`),
	bulletOpt:  regexp.MustCompile(`^[-*][\s\p{Z}]*`),

	datedHeading: regexp.MustCompile(`^(##[\s\p{Z}]*Day[\s\p{Z}]*\d+)[\s\p{Z}]*[（(][^）)]*[）)][\s\p{Z}]*$`),
	versionLine:  regexp.MustCompile(`^>\s*版本\s*:`),
}

type classifier func(line string) (Line, bool)

// classifiers run top to bottom; the first match wins.
var classifiers = []classifier{
	classifyBlank,
	classifyMeta,
	classifyDayHeading,
	classifyItemRow,
}

// Classify normalizes a raw line and tags it.
func Classify(raw string) Line {
	line := NormalizeLine(raw)
	for _, c := range classifiers {
		if l, ok := c(line); ok {
			return l
		}
	}
	return Line{Kind: LineUnrecognized, Text: line}
}

func classifyBlank(line string) (Line, bool) {
	return Line{Kind: LineBlank}, line == ""
}

func classifyMeta(line string) (Line, bool) {
	if strings.HasPrefix(line, "# ") || strings.HasPrefix(line, ">") {
		return Line{Kind: LineMeta, Text: line}, true
	}
	return Line{}, false
}

func classifyDayHeading(line string) (Line, bool) {
	m := patterns.dayHeading.FindStringSubmatch(line)
	if m == nil {
		return Line{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return Line{}, false
	}
	return Line{Kind: LineDayHeading, Text: line, Day: n, Date: strings.TrimSpace(m[2])}, true
}

func classifyItemRow(line string) (Line, bool) {
	return Line{Kind: LineItemRow, Text: line}, strings.HasPrefix(line, "- ")
}
