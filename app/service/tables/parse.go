package tables

import (
	"strconv"
	"strings"
)

// ParseDelayMinutes normalizes the "Delay Minutes" field, which arrives
// as a plain number, a numeric string, or a colon-separated duration.
// H:M:S and M:S both work; seconds round to the nearest minute with ties
// rounding up. Anything unparseable counts as zero, so a bad cell cannot
// poison a department-wide total.
func ParseDelayMinutes(value any) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}

	text := strings.TrimSpace(toString(value))
	if text == "" {
		return 0
	}

	if strings.Contains(text, ":") {
		parts := strings.Split(text, ":")
		for i, p := range parts {
			if p == "" {
				parts[i] = "0"
			}
		}

		var h, m, s string
		switch len(parts) {
		case 3:
			h, m, s = parts[0], parts[1], parts[2]
		case 2:
			h, m, s = "0", parts[0], parts[1]
		default:
			return parseNumericMinutes(text)
		}

		hours, err1 := strconv.Atoi(strings.TrimSpace(h))
		minutes, err2 := strconv.Atoi(strings.TrimSpace(m))
		seconds, err3 := strconv.Atoi(strings.TrimSpace(s))
		if err1 != nil || err2 != nil || err3 != nil {
			return 0
		}

		total := hours*60 + minutes
		if seconds >= 30 {
			total++
		}
		return total
	}

	return parseNumericMinutes(text)
}

func parseNumericMinutes(text string) int {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0
	}
	return int(f)
}

// ParseHours reads a numeric-or-string hours field. The second return
// reports whether the cell held a usable number at all.
func ParseHours(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}

	text := strings.TrimSpace(toString(value))
	if text == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseCount reads an integer field such as "On Duty", treating missing
// or non-numeric cells as zero.
func ParseCount(value any) int {
	f, ok := ParseHours(value)
	if !ok {
		return 0
	}
	return int(f)
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
