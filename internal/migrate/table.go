package migrate

import (
	"fmt"
	"strconv"
	"strings"
)

// draft collects the legacy values the field table recognizes before the
// migrator assembles and validates the final configuration. Pointer fields
// distinguish "absent" from meaningful zero values.
type draft struct {
	agents        []string
	topology      string
	strategy      string
	maxAgents     int
	maxConcurrent int
	presetID      string
	task          string
	cacheSizeMB   int
	backend       string
	persistence   *bool
	namespaces    []string
	healthMS      int
	retries       *int
	byzantine     *bool
}

// fieldMapping binds one legacy document path to its application on the
// draft. The table is fixed and explicit so every mapping is enumerable and
// testable on its own.
type fieldMapping struct {
	path  string
	apply func(d *draft, v any) error
}

var fieldTable = []fieldMapping{
	{"agents.selected", func(d *draft, v any) error {
		ids, ok := asStringSlice(v)
		if !ok {
			return fmt.Errorf("expected a list of agent ids, got %T", v)
		}
		d.agents = ids
		return nil
	}},
	{"swarm.topology", stringField(func(d *draft, s string) { d.topology = s })},
	{"swarm.strategy", stringField(func(d *draft, s string) { d.strategy = s })},
	{"swarm.maxAgents", intField(func(d *draft, n int) { d.maxAgents = n })},
	{"swarm.maxConcurrent", intField(func(d *draft, n int) { d.maxConcurrent = n })},
	{"swarm.preset", stringField(func(d *draft, s string) { d.presetID = s })},
	{"project.task", stringField(func(d *draft, s string) { d.task = s })},
	// Older documents kept the task text under description or even the
	// project name; first hit wins.
	{"project.description", stringField(func(d *draft, s string) {
		if d.task == "" {
			d.task = s
		}
	})},
	{"project.name", stringField(func(d *draft, s string) {
		if d.task == "" {
			d.task = s
		}
	})},
	{"settings.memorySize", func(d *draft, v any) error {
		switch val := v.(type) {
		case string:
			mb, err := ParseMemoryMB(val)
			if err != nil {
				return err
			}
			d.cacheSizeMB = mb
		default:
			n, ok := asInt(v)
			if !ok {
				return &UnitParseError{Value: fmt.Sprint(v), Want: "a size like 200MB"}
			}
			d.cacheSizeMB = n
		}
		return nil
	}},
	{"settings.backend", stringField(func(d *draft, s string) { d.backend = s })},
	{"settings.persistence", boolField(func(d *draft, b bool) { d.persistence = &b })},
	{"settings.namespaces", func(d *draft, v any) error {
		ns, ok := asStringSlice(v)
		if !ok {
			return fmt.Errorf("expected a list of namespaces, got %T", v)
		}
		d.namespaces = ns
		return nil
	}},
	{"settings.healthCheckInterval", func(d *draft, v any) error {
		switch val := v.(type) {
		case string:
			ms, err := ParseDurationMS(val)
			if err != nil {
				return err
			}
			d.healthMS = ms
		default:
			n, ok := asInt(v)
			if !ok {
				return &UnitParseError{Value: fmt.Sprint(v), Want: "a duration like 30s or a millisecond count"}
			}
			d.healthMS = n
		}
		return nil
	}},
	{"settings.retries", intField(func(d *draft, n int) { d.retries = &n })},
	{"settings.byzantine", boolField(func(d *draft, b bool) { d.byzantine = &b })},
}

func stringField(set func(d *draft, s string)) func(*draft, any) error {
	return func(d *draft, v any) error {
		s, ok := asString(v)
		if !ok {
			return fmt.Errorf("expected a string, got %T", v)
		}
		set(d, s)
		return nil
	}
}

func intField(set func(d *draft, n int)) func(*draft, any) error {
	return func(d *draft, v any) error {
		n, ok := asInt(v)
		if !ok {
			return fmt.Errorf("expected a number, got %T", v)
		}
		set(d, n)
		return nil
	}
}

func boolField(set func(d *draft, b bool)) func(*draft, any) error {
	return func(d *draft, v any) error {
		b, ok := asBool(v)
		if !ok {
			return fmt.Errorf("expected a boolean, got %T", v)
		}
		set(d, b)
		return nil
	}
}

// lookup walks a dot-separated path through nested maps.
func lookup(doc map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = doc
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asInt accepts the number shapes JSON decoding produces, plus numeric
// strings, rejecting fractional values.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

func asStringSlice(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
