package itinerary

import "fmt"

// IssueKind classifies a parse diagnostic.
type IssueKind int

const (
	// RowFormat: an item row with fewer than two pipe segments.
	RowFormat IssueKind = iota + 1
	// TimeFormat: segment 0 is not a valid time range.
	TimeFormat
	// EmptyActivity: segment 1 is blank.
	EmptyActivity
	// OrphanRow: an item row before any Day heading.
	OrphanRow
	// Unrecognized: a non-blank line of no known shape.
	Unrecognized
	// NoDays: the document has no Day heading at all.
	NoDays
	// EmptyDay: a Day heading without any item rows.
	EmptyDay
)

var kindNames = map[IssueKind]string{
	RowFormat:     "row_format",
	TimeFormat:    "time_format",
	EmptyActivity: "empty_activity",
	OrphanRow:     "orphan_row",
	Unrecognized:  "unrecognized",
	NoDays:        "no_days",
	EmptyDay:      "empty_day",
}

func (k IssueKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("IssueKind(%d)", int(k))
}

// MarshalText lets issue kinds appear by name in JSON output.
func (k IssueKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Issue is one parse diagnostic. Line is 1-based and zero for document-level issues;
// Day is set for EmptyDay.
type Issue struct {
	Line int       `json:"line,omitempty"`
	Kind IssueKind `json:"kind"`
	Day  int       `json:"day,omitempty"`
	Text string    `json:"text,omitempty"`
}

func (i Issue) message() string {
	switch i.Kind {
	case RowFormat:
		return "行项目格式错误：需要至少包含「时间 | 活动」"
	case TimeFormat:
		return "时间格式错误：应为「HH:MM - HH:MM」（结束时间可留空）"
	case EmptyActivity:
		return "活动不能为空"
	case OrphanRow:
		return "行项目必须放在某个 Day 标题下方"
	case Unrecognized:
		return `无法识别的内容（请使用 Day 标题或 "-" 行项目）`
	case NoDays:
		return "未找到任何 Day 标题（例如：## Day 1（日期））"
	case EmptyDay:
		return fmt.Sprintf(`Day %d 下未找到任何行项目（以 "-" 开头）`, i.Day)
	}
	return i.Kind.String()
}

// String renders the issue the way editors display it.
func (i Issue) String() string {
	if i.Line > 0 {
		return fmt.Sprintf("第 %d 行：%s", i.Line, i.message())
	}
	return i.message()
}

// Issues is an ordered diagnostic list.
type Issues []Issue

// Strings renders every issue. The result is never nil.
func (is Issues) Strings() []string {
	out := make([]string, 0, len(is))
	for _, i := range is {
		out = append(out, i.String())
	}
	return out
}

// OfKind returns the issues of the given kind, in order.
func (is Issues) OfKind(k IssueKind) Issues {
	var out Issues
	for _, i := range is {
		if i.Kind == k {
			out = append(out, i)
		}
	}
	return out
}
