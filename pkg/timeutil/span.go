package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Span is a calendar distance. Unlike a time.Duration it respects month
// lengths, so "2mo" from Jan 31 lands on Mar 31.
type Span struct {
	Years  int
	Months int
	Days   int
}

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	spanUnits   = map[string]Unit{
		"d":      Day,
		"day":    Day,
		"days":   Day,
		"w":      Week,
		"wk":     Week,
		"wks":    Week,
		"week":   Week,
		"weeks":  Week,
		"m":      Month,
		"mo":     Month,
		"mos":    Month,
		"month":  Month,
		"months": Month,
		"y":      Year,
		"yr":     Year,
		"yrs":    Year,
		"year":   Year,
		"years":  Year,
	}
)

// ParseSpan parses a compact span such as "7d", "2mo", or "1y2w3d". An empty
// input yields fallback.
func ParseSpan(input string, fallback Span) (Span, error) {
	trimmed := strings.ToLower(strings.TrimSpace(input))
	if trimmed == "" {
		return fallback, nil
	}

	var s Span
	remaining := trimmed
	for len(remaining) > 0 {
		matches := spanPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Span{}, fmt.Errorf("invalid span segment %q", strings.TrimSpace(remaining))
		}
		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return Span{}, fmt.Errorf("invalid span value %q: %w", matches[1], err)
		}
		unit, ok := spanUnits[matches[2]]
		if !ok {
			return Span{}, fmt.Errorf("unsupported span unit %q", matches[2])
		}
		switch unit {
		case Day:
			s.Days += value
		case Week:
			s.Days += 7 * value
		case Month:
			s.Months += value
		case Year:
			s.Years += value
		}
		remaining = remaining[len(matches[0]):]
	}
	return s, nil
}

// IsZero reports whether the span covers no distance.
func (s Span) IsZero() bool {
	return s.Years == 0 && s.Months == 0 && s.Days == 0
}

// AddTo moves t forward by the span, years first, then months, then days.
func (s Span) AddTo(t time.Time) time.Time {
	t = AddUnits(t, s.Years, Year)
	t = AddUnits(t, s.Months, Month)
	return AddUnits(t, s.Days, Day)
}

// SubtractFrom moves t backwards by the span.
func (s Span) SubtractFrom(t time.Time) time.Time {
	t = SubtractUnits(t, s.Years, Year)
	t = SubtractUnits(t, s.Months, Month)
	return SubtractUnits(t, s.Days, Day)
}

// String renders the span with y/mo/w/d tokens, e.g. "1y2mo1w3d".
func (s Span) String() string {
	if s.IsZero() {
		return "0d"
	}
	var b strings.Builder
	if s.Years > 0 {
		fmt.Fprintf(&b, "%dy", s.Years)
	}
	if s.Months > 0 {
		fmt.Fprintf(&b, "%dmo", s.Months)
	}
	if weeks := s.Days / 7; weeks > 0 {
		fmt.Fprintf(&b, "%dw", weeks)
	}
	if days := s.Days % 7; days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}
	return b.String()
}

// FormatSpan renders s in the form ParseSpan accepts.
func FormatSpan(s Span) string {
	return s.String()
}
