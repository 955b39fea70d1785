package tabular

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Composite grades carry class mark, departmental mark and average.
var (
	dashGrade    = regexp.MustCompile(`^\d{2}-\d{2}-\d{2}(\.\d+)?$`)
	slashGrade   = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}(\.\d+)?$`)
	compactGrade = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2}(?:\.\d+)?)$`)

	dayFirstDate  = regexp.MustCompile(`^(\d{2})[/-](\d{2})[/-](\d{4})$`)
	yearFirstDate = regexp.MustCompile(`^(\d{4})[/-](\d{2})[/-](\d{2})$`)
)

// NormalizeGrade returns the dash-separated form of a composite grade.
// Plain numbers are single scores and are only stringified.
func NormalizeGrade(value interface{}) (string, error) {
	if s, ok := numberString(value); ok {
		return s, nil
	}

	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: unsupported value %v", errInvalidGrade, value)
	}

	switch {
	case dashGrade.MatchString(s):
		return s, nil
	case slashGrade.MatchString(s):
		return strings.ReplaceAll(s, "/", "-"), nil
	case compactGrade.MatchString(s):
		m := compactGrade.FindStringSubmatch(s)
		return m[1] + "-" + m[2] + "-" + m[3], nil
	}

	return "", fmt.Errorf("%w: %q", errInvalidGrade, s)
}

// NormalizeDate accepts DD/MM/YYYY or YYYY/MM/DD (either separator) and returns DD/MM/YYYY.
func NormalizeDate(value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: unsupported value %v", errInvalidDate, value)
	}

	var day, month, year string
	if m := dayFirstDate.FindStringSubmatch(s); m != nil {
		day, month, year = m[1], m[2], m[3]
	} else if m := yearFirstDate.FindStringSubmatch(s); m != nil {
		year, month, day = m[1], m[2], m[3]
	} else {
		return "", fmt.Errorf("%w: %q", errInvalidDate, s)
	}

	if !isCalendarDate(year, month, day) {
		return "", fmt.Errorf("%w: %q is not a calendar date", errInvalidDate, s)
	}

	return day + "/" + month + "/" + year, nil
}

func isCalendarDate(year, month, day string) bool {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// SplitGrade reads the numeric components of a dash-separated grade.
// Non-numeric components stop the scan.
func SplitGrade(canonical string) []float64 {
	var parts []float64
	for _, p := range strings.Split(canonical, "-") {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			break
		}
		parts = append(parts, f)
	}
	return parts
}

func numberString(value interface{}) (string, bool) {
	switch v := value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case json.Number:
		return v.String(), true
	}
	return "", false
}

// CellString renders a row value for display and export.
func CellString(value interface{}) string {
	if value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	if s, ok := numberString(value); ok {
		return s
	}
	return fmt.Sprint(value)
}
