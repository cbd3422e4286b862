package schema

import (
	"fmt"
	"sort"
	"strings"
)

// Violation names one broken invariant and the offending value.
type Violation struct {
	Invariant string
	Detail    string
}

// SchemaInvariantError reports every invariant a configuration violates, so
// callers can fix all problems in one pass.
type SchemaInvariantError struct {
	Violations []Violation
}

func (e *SchemaInvariantError) Error() string {
	var b strings.Builder
	b.WriteString("configuration violates schema invariants:")
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.Invariant)
		b.WriteString(": ")
		b.WriteString(v.Detail)
	}
	return b.String()
}

// Validate checks cfg against every schema invariant and returns a
// *SchemaInvariantError naming all violations, or nil. known reports whether
// an agent id exists in the catalog; pass nil to skip the catalog check.
func Validate(cfg *Configuration, known func(id string) bool) error {
	var violations []Violation
	add := func(invariant, format string, args ...any) {
		violations = append(violations, Violation{
			Invariant: invariant,
			Detail:    fmt.Sprintf(format, args...),
		})
	}

	if len(cfg.Agents) == 0 {
		add("agents.nonempty", "configuration selects no agents")
	}

	seen := make(map[string]bool, len(cfg.Agents))
	var unknown []string
	for i, a := range cfg.Agents {
		if a.ID == "" {
			add("agents.id", "agent at position %d has an empty id", i)
			continue
		}
		if seen[a.ID] {
			add("agents.unique", "agent %q listed more than once", a.ID)
		}
		seen[a.ID] = true
		if i > 0 && cfg.Agents[i-1].ID > a.ID {
			add("agents.ordered", "agent %q out of order after %q", a.ID, cfg.Agents[i-1].ID)
		}
		if known != nil && !known(a.ID) {
			unknown = append(unknown, a.ID)
		}
		sp := a.Specialization
		if sp.TruthThreshold < 0 || sp.TruthThreshold > 1 {
			add("specialization.truthThreshold.range",
				"agent %q has truthThreshold %v outside [0, 1]", a.ID, sp.TruthThreshold)
		}
		if sp.MaxFilesPerOperation < 1 {
			add("specialization.maxFilesPerOperation.positive",
				"agent %q has maxFilesPerOperation %d", a.ID, sp.MaxFilesPerOperation)
		}
		if len(sp.Verification) == 0 {
			add("specialization.verification.nonempty",
				"agent %q has no verification checks", a.ID)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		add("agents.known", "unknown agent ids: %s", strings.Join(unknown, ", "))
	}

	o := cfg.Orchestrator
	if o.MaxAgents < 1 || o.MaxAgents > MaxAgentsLimit {
		add("orchestrator.maxAgents.range",
			"maxAgents %d outside [1, %d]", o.MaxAgents, MaxAgentsLimit)
	}
	if o.MaxConcurrentAgents < 1 || o.MaxConcurrentAgents > o.MaxAgents {
		add("orchestrator.maxConcurrentAgents.bound",
			"maxConcurrentAgents %d outside [1, maxAgents=%d]", o.MaxConcurrentAgents, o.MaxAgents)
	}
	if !ValidTopology(o.Topology) {
		add("orchestrator.topology.enum", "unknown topology %q", o.Topology)
	}
	if !ValidStrategy(o.Strategy) {
		add("orchestrator.strategy.enum", "unknown strategy %q", o.Strategy)
	}
	if o.FaultTolerance.Retries < 0 {
		add("faultTolerance.retries.nonnegative",
			"retries %d is negative", o.FaultTolerance.Retries)
	}
	if o.FaultTolerance.HealthCheckIntervalMS < MinHealthCheckIntervalMS {
		add("faultTolerance.healthCheckInterval.min",
			"healthCheckInterval %dms below %dms",
			o.FaultTolerance.HealthCheckIntervalMS, MinHealthCheckIntervalMS)
	}

	if cfg.Memory.Backend == "" {
		add("memory.backend.set", "memory backend is empty")
	}
	if cfg.Memory.CacheSizeMB <= 0 {
		add("memory.cacheSizeMB.positive", "cacheSizeMB %d", cfg.Memory.CacheSizeMB)
	}

	switch cfg.Metadata.Provenance {
	case ProvenanceSynthesized, ProvenanceMigrated:
	default:
		add("metadata.provenance.enum", "unknown provenance %q", cfg.Metadata.Provenance)
	}
	if cfg.Metadata.Version != CurrentVersion {
		add("metadata.version.current",
			"version %q, want %q", cfg.Metadata.Version, CurrentVersion)
	}

	if len(violations) == 0 {
		return nil
	}
	return &SchemaInvariantError{Violations: violations}
}
