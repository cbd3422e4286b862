package migrate

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// UnitParseError reports a size or duration value the migrator refuses to
// guess about. Failing loudly here beats silently defaulting a limit to zero.
type UnitParseError struct {
	Value string
	Want  string
}

func (e *UnitParseError) Error() string {
	return fmt.Sprintf("cannot parse %q: want %s", e.Value, e.Want)
}

// ParseMemoryMB converts legacy size strings such as "200MB", "2GB" or
// "512KB" into whole megabytes. A bare number is taken as megabytes.
func ParseMemoryMB(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &UnitParseError{Value: raw, Want: "a size like 200MB"}
	}

	cut := strings.IndexFunc(s, unicode.IsLetter)
	numeric, unit := s, ""
	if cut >= 0 {
		numeric = strings.TrimSpace(s[:cut])
		unit = strings.ToUpper(strings.TrimSpace(s[cut:]))
	}

	n, err := strconv.ParseFloat(numeric, 64)
	if err != nil || n < 0 {
		return 0, &UnitParseError{Value: raw, Want: "a size like 200MB"}
	}

	var mb float64
	switch unit {
	case "KB", "K":
		mb = n / 1024
	case "", "MB", "M":
		mb = n
	case "GB", "G":
		mb = n * 1024
	default:
		return 0, &UnitParseError{Value: raw, Want: "a size like 200MB"}
	}

	out := int(math.Ceil(mb))
	if out == 0 && n > 0 {
		out = 1
	}
	return out, nil
}

// ParseDurationMS converts legacy interval values into milliseconds. Accepted
// forms: a bare number of milliseconds, or a Go duration such as "30s" or
// "5m".
func ParseDurationMS(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &UnitParseError{Value: raw, Want: "a duration like 30s or a millisecond count"}
	}

	if ms, err := strconv.Atoi(s); err == nil {
		if ms < 0 {
			return 0, &UnitParseError{Value: raw, Want: "a non-negative duration"}
		}
		return ms, nil
	}

	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, &UnitParseError{Value: raw, Want: "a duration like 30s or a millisecond count"}
	}
	return int(d.Milliseconds()), nil
}
