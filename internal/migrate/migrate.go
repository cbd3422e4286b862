package migrate

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/catalog"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/synth"
)

// ErrAlreadyCurrent marks documents that already carry the current schema
// version and therefore need no migration.
var ErrAlreadyCurrent = errors.New("document already at current schema version")

// legacySections are the top-level keys the field table reads. Anything else
// in a legacy document is ignored.
var legacySections = map[string]bool{
	"project":  true,
	"agents":   true,
	"swarm":    true,
	"settings": true,
	"metadata": true,
}

// Migrator rewrites legacy flat documents into the current schema. It holds
// no state across calls; each Migrate invocation is a pure function of its
// input document and the fixed defaulting rules shared with the synthesizer.
type Migrator struct {
	catalog *catalog.Catalog
}

func New(cat *catalog.Catalog) *Migrator {
	return &Migrator{catalog: cat}
}

// Migrate maps a legacy document onto the current schema using the fixed
// field table, fills everything else with the synthesizer's defaults and
// validates the result. label identifies the source document (usually its
// filename) and is recorded in metadata.sourceFile.
func (m *Migrator) Migrate(doc map[string]any, label string) (*schema.Configuration, error) {
	if v, ok := lookup(doc, "metadata.version"); ok {
		if s, _ := asString(v); s == schema.CurrentVersion {
			return nil, fmt.Errorf("%s: %w", label, ErrAlreadyCurrent)
		}
	}

	d := &draft{}
	for _, fm := range fieldTable {
		v, ok := lookup(doc, fm.path)
		if !ok {
			continue
		}
		if err := fm.apply(d, v); err != nil {
			return nil, fmt.Errorf("migrate %s: field %s: %w", label, fm.path, err)
		}
	}

	for key := range doc {
		if !legacySections[key] {
			slog.Debug("ignoring unknown legacy section", "source", label, "key", key)
		}
	}

	ids := synth.Dedupe(d.agents)
	if len(ids) == 0 {
		return nil, &schema.SchemaInvariantError{Violations: []schema.Violation{
			{Invariant: "agents.nonempty", Detail: fmt.Sprintf("%s selects no agents", label)},
		}}
	}

	agents := make([]schema.AgentSpec, 0, len(ids))
	for _, id := range ids {
		agents = append(agents, m.specFor(id))
	}

	cfg := &schema.Configuration{
		Orchestrator: m.orchestratorFrom(d, len(ids)),
		Agents:       agents,
		Memory:       m.memoryFrom(d),
		Task:         schema.Task{Description: d.task, PresetID: d.presetID},
		Metadata: schema.Metadata{
			ID:         uuid.New().String(),
			Created:    time.Now().UTC(),
			Version:    schema.CurrentVersion,
			Provenance: schema.ProvenanceMigrated,
			SourceFile: label,
		},
	}

	if err := schema.Validate(cfg, m.catalog.HasAgent); err != nil {
		return nil, err
	}
	return cfg, nil
}

// orchestratorFrom applies the draft over the synthesizer's defaults so
// migrated and freshly synthesized configurations stay structurally
// identical.
func (m *Migrator) orchestratorFrom(d *draft, selected int) schema.Orchestrator {
	o := schema.Orchestrator{
		Topology:       d.topology,
		Strategy:       d.strategy,
		FaultTolerance: synth.DefaultFaultTolerance(),
	}
	if o.Topology == "" {
		o.Topology = schema.TopologyHierarchical
	}
	if o.Strategy == "" {
		o.Strategy = schema.StrategyDevelopment
	}

	o.MaxAgents = d.maxAgents
	if o.MaxAgents == 0 {
		o.MaxAgents = selected
	}
	if d.maxConcurrent > 0 {
		o.MaxConcurrentAgents = min(d.maxConcurrent, o.MaxAgents)
	} else {
		o.MaxConcurrentAgents = synth.FallbackConcurrency(o.MaxAgents, selected)
	}

	if d.retries != nil {
		o.FaultTolerance.Retries = *d.retries
	}
	if d.byzantine != nil {
		o.FaultTolerance.Byzantine = *d.byzantine
	}
	if d.healthMS > 0 {
		o.FaultTolerance.HealthCheckIntervalMS = d.healthMS
	}

	return o
}

func (m *Migrator) memoryFrom(d *draft) schema.Memory {
	mem := synth.DefaultMemory()
	if d.backend != "" {
		mem.Backend = d.backend
	}
	if d.persistence != nil {
		mem.Persistence = *d.persistence
	}
	if d.cacheSizeMB > 0 {
		mem.CacheSizeMB = d.cacheSizeMB
	}
	if len(d.namespaces) > 0 {
		mem.Namespaces = d.namespaces
	}
	return mem
}

// specFor derives the per-agent block the same way synthesis does. Unknown
// ids still get a placeholder block so validation can report every one of
// them instead of stopping at the first.
func (m *Migrator) specFor(id string) schema.AgentSpec {
	def, err := m.catalog.Agent(id)
	if err != nil {
		return schema.AgentSpec{
			ID:             id,
			Name:           id,
			Role:           schema.RoleWorker,
			Specialization: synth.DefaultSpecialization(),
		}
	}
	return synth.AgentSpecFor(def)
}

// Document is one labeled legacy document queued for batch migration.
type Document struct {
	Label string
	Raw   map[string]any
}

// Failure pairs a document label with the error that stopped its migration.
type Failure struct {
	Label string
	Err   error
}

// BatchResult partitions a batch into migrated configurations and per-label
// failures.
type BatchResult struct {
	Configs  []*schema.Configuration
	Failures []Failure
}

// MigrateBatch processes documents independently; one malformed document
// never blocks the rest.
func (m *Migrator) MigrateBatch(docs []Document) BatchResult {
	var res BatchResult
	for _, doc := range docs {
		cfg, err := m.Migrate(doc.Raw, doc.Label)
		if err != nil {
			slog.Debug("migration failed", "source", doc.Label, "error", err)
			res.Failures = append(res.Failures, Failure{Label: doc.Label, Err: err})
			continue
		}
		res.Configs = append(res.Configs, cfg)
	}
	return res
}
