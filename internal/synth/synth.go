package synth

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/catalog"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

// UnknownAgentError lists every selected id missing from the catalog, so a
// caller can fix all of them in one pass.
type UnknownAgentError struct {
	IDs []string
}

func (e *UnknownAgentError) Error() string {
	return "unknown agent ids: " + strings.Join(e.IDs, ", ")
}

// Overrides carries caller-supplied orchestrator values. Zero values mean
// "not set"; Retries and Byzantine are pointers because zero and false are
// meaningful settings.
type Overrides struct {
	MaxAgents             int
	MaxConcurrentAgents   int
	Topology              string
	Strategy              string
	Retries               *int
	Byzantine             *bool
	HealthCheckIntervalMS int
}

// Synthesizer builds fresh configurations from catalog selections.
type Synthesizer struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Synthesizer {
	return &Synthesizer{catalog: cat}
}

// Synthesize combines selected agents, a preset and task text into one
// validated configuration. presetID == "" selects the fallback preset. The
// returned value is never written anywhere; persistence is the caller's
// concern.
func (s *Synthesizer) Synthesize(agentIDs []string, presetID, task string, ov *Overrides) (*schema.Configuration, error) {
	ids := Dedupe(agentIDs)
	if len(ids) == 0 {
		return nil, &schema.SchemaInvariantError{Violations: []schema.Violation{
			{Invariant: "agents.nonempty", Detail: "no agents selected"},
		}}
	}

	var unknown []string
	for _, id := range ids {
		if !s.catalog.HasAgent(id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownAgentError{IDs: unknown}
	}

	preset, err := s.catalog.Preset(presetID)
	if err != nil {
		return nil, err
	}

	agents := make([]schema.AgentSpec, 0, len(ids))
	for _, id := range ids {
		def, err := s.catalog.Agent(id)
		if err != nil {
			return nil, err
		}
		agents = append(agents, AgentSpecFor(def))
	}

	cfg := &schema.Configuration{
		Orchestrator: orchestratorFor(preset, len(ids), ov),
		Agents:       agents,
		Memory:       DefaultMemory(),
		Task:         schema.Task{Description: task, PresetID: presetID},
		Metadata: schema.Metadata{
			ID:         uuid.New().String(),
			Created:    time.Now().UTC(),
			Version:    schema.CurrentVersion,
			Provenance: schema.ProvenanceSynthesized,
		},
	}

	if err := schema.Validate(cfg, s.catalog.HasAgent); err != nil {
		return nil, err
	}
	return cfg, nil
}

// orchestratorFor seeds the orchestrator record from the preset, then applies
// overrides. maxAgents: override, else preset default, else the selection
// size. maxConcurrentAgents: an explicit override is honored above the soft
// cap of 8 but never above maxAgents; otherwise the preset default applies,
// otherwise min(cap, maxAgents, selected).
func orchestratorFor(preset catalog.PresetDefinition, selected int, ov *Overrides) schema.Orchestrator {
	o := schema.Orchestrator{
		Topology:       preset.Topology,
		Strategy:       preset.Defaults.Strategy,
		FaultTolerance: DefaultFaultTolerance(),
	}
	if o.Strategy == "" {
		o.Strategy = schema.StrategyDevelopment
	}

	o.MaxAgents = preset.Defaults.MaxAgents
	if o.MaxAgents == 0 {
		o.MaxAgents = selected
	}
	if ov != nil && ov.MaxAgents > 0 {
		o.MaxAgents = ov.MaxAgents
	}

	switch {
	case ov != nil && ov.MaxConcurrentAgents > 0:
		o.MaxConcurrentAgents = min(ov.MaxConcurrentAgents, o.MaxAgents)
	case preset.Defaults.MaxConcurrentAgents > 0:
		o.MaxConcurrentAgents = min(preset.Defaults.MaxConcurrentAgents, o.MaxAgents)
	default:
		o.MaxConcurrentAgents = FallbackConcurrency(o.MaxAgents, selected)
	}

	if ov != nil {
		if ov.Topology != "" {
			o.Topology = ov.Topology
		}
		if ov.Strategy != "" {
			o.Strategy = ov.Strategy
		}
		if ov.Retries != nil {
			o.FaultTolerance.Retries = *ov.Retries
		}
		if ov.Byzantine != nil {
			o.FaultTolerance.Byzantine = *ov.Byzantine
		}
		if ov.HealthCheckIntervalMS > 0 {
			o.FaultTolerance.HealthCheckIntervalMS = ov.HealthCheckIntervalMS
		}
	}

	return o
}

// FallbackConcurrency computes maxConcurrentAgents when neither override nor
// preset sets one.
func FallbackConcurrency(maxAgents, selected int) int {
	return min(schema.SoftConcurrencyCap, maxAgents, selected)
}

// DefaultMemory is the memory record used when a document specifies none.
func DefaultMemory() schema.Memory {
	return schema.Memory{
		Backend:     "sqlite",
		Persistence: true,
		CacheSizeMB: 100,
		Namespaces:  []string{"default"},
	}
}

// DefaultFaultTolerance is the fault-tolerance record used when a document
// specifies none.
func DefaultFaultTolerance() schema.FaultTolerance {
	return schema.FaultTolerance{
		Retries:               3,
		Byzantine:             false,
		HealthCheckIntervalMS: 30000,
	}
}

// DefaultSpecialization applies to agents whose definition declares no
// verification policy.
func DefaultSpecialization() schema.Specialization {
	return schema.Specialization{
		Verification:         []string{"test", "validate"},
		TruthThreshold:       0.85,
		MaxFilesPerOperation: 10,
	}
}

// AgentSpecFor copies a catalog definition into the per-agent block of a
// configuration.
func AgentSpecFor(def catalog.AgentDefinition) schema.AgentSpec {
	spec := schema.AgentSpec{
		ID:             def.ID,
		Name:           def.Name,
		Role:           def.Role,
		Capabilities:   append([]string(nil), def.Capabilities...),
		Specialization: DefaultSpecialization(),
	}
	if v := def.Verification; v != nil {
		spec.Specialization = schema.Specialization{
			Verification:         append([]string(nil), v.Checks...),
			TruthThreshold:       v.TruthThreshold,
			MaxFilesPerOperation: v.MaxFilesPerOperation,
		}
	}
	return spec
}

// Dedupe trims, de-duplicates and sorts agent ids. The sorted order is the
// order agents appear in the configuration.
func Dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
