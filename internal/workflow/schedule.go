package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// NormalizeSchedule validates an optional workflow schedule. The empty string
// means "run on demand". "@every <duration>" is an interval and is normalized
// to Go duration syntax. Everything else must be a valid cron expression.
func NormalizeSchedule(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if rest, ok := strings.CutPrefix(raw, "@every "); ok {
		d, err := time.ParseDuration(strings.TrimSpace(rest))
		if err != nil {
			return "", fmt.Errorf("invalid interval %q: %w", rest, err)
		}
		if d <= 0 {
			return "", fmt.Errorf("interval must be positive, got %s", d)
		}
		return "@every " + d.String(), nil
	}

	if !gronx.New().IsValid(raw) {
		return "", fmt.Errorf("invalid cron expression: %s", raw)
	}
	return raw, nil
}
