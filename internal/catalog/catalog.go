package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

// AgentDefinition is a named role template. Definitions are immutable after
// load; the catalog exposes lookups only.
type AgentDefinition struct {
	ID             string              `yaml:"id"`
	Name           string              `yaml:"name"`
	Category       string              `yaml:"category"`
	Role           string              `yaml:"role"`
	Capabilities   []string            `yaml:"capabilities"`
	Verification   *VerificationPolicy `yaml:"verification"`
	Languages      []string            `yaml:"languages"`
	Frameworks     []string            `yaml:"frameworks"`
	PromptTemplate string              `yaml:"prompt"`
}

// VerificationPolicy is the per-agent truth-checking contract. Agents without
// one receive the synthesizer's generic default.
type VerificationPolicy struct {
	Checks               []string `yaml:"checks"`
	TruthThreshold       float64  `yaml:"truth_threshold"`
	MaxFilesPerOperation int      `yaml:"max_files_per_operation"`
}

// PresetDefinition is a reusable bundle of agent selections plus orchestrator
// defaults.
type PresetDefinition struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Topology string         `yaml:"topology"`
	Agents   []AgentRef     `yaml:"agents"`
	Defaults PresetDefaults `yaml:"defaults"`
}

type AgentRef struct {
	AgentID   string `yaml:"agent"`
	Required  bool   `yaml:"required"`
	ModelTier string `yaml:"model_tier"`
}

// PresetDefaults seed the orchestrator record; zero values mean "compute from
// the selection".
type PresetDefaults struct {
	MaxAgents           int    `yaml:"max_agents"`
	MaxConcurrentAgents int    `yaml:"max_concurrent"`
	Strategy            string `yaml:"strategy"`
}

// NotFoundError reports a lookup for an id the catalog does not contain.
type NotFoundError struct {
	Kind string // "agent" or "preset"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.ID)
}

// Catalog holds the loaded agent and preset definitions.
type Catalog struct {
	agents  map[string]AgentDefinition
	presets map[string]PresetDefinition
}

type overlayFile struct {
	Agents  []AgentDefinition  `yaml:"agents"`
	Presets []PresetDefinition `yaml:"presets"`
}

// Load builds a catalog from the builtin definitions plus an optional overlay
// directory of YAML files. Overlay entries replace builtins with the same id.
// dir == "" loads builtins only. Malformed entries abort the load and name
// the offending identifier.
func Load(dir string) (*Catalog, error) {
	c := &Catalog{
		agents:  make(map[string]AgentDefinition),
		presets: make(map[string]PresetDefinition),
	}

	for _, def := range builtinAgents {
		if err := c.addAgent(def); err != nil {
			return nil, fmt.Errorf("builtin catalog: %w", err)
		}
	}
	for _, def := range builtinPresets {
		if err := c.addPreset(def); err != nil {
			return nil, fmt.Errorf("builtin catalog: %w", err)
		}
	}

	if dir != "" {
		if err := c.loadOverlay(dir); err != nil {
			return nil, err
		}
	}

	// Preset references resolve against the final agent set, so an overlay
	// may both add an agent and reference it from a preset.
	for _, p := range c.presets {
		for _, ref := range p.Agents {
			if _, ok := c.agents[ref.AgentID]; !ok {
				return nil, fmt.Errorf("preset %q references unknown agent %q", p.ID, ref.AgentID)
			}
		}
	}

	return c, nil
}

func (c *Catalog) loadOverlay(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read catalog dir: %w", err)
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read catalog file %s: %w", name, err)
		}

		var of overlayFile
		if err := yaml.Unmarshal(data, &of); err != nil {
			return fmt.Errorf("parse catalog file %s: %w", name, err)
		}

		for _, def := range of.Agents {
			if err := c.addAgent(def); err != nil {
				return fmt.Errorf("catalog file %s: %w", name, err)
			}
		}
		for _, def := range of.Presets {
			if err := c.addPreset(def); err != nil {
				return fmt.Errorf("catalog file %s: %w", name, err)
			}
		}
	}

	return nil
}

func (c *Catalog) addAgent(def AgentDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("agent definition %q has no id", def.Name)
	}
	switch def.Role {
	case schema.RoleQueen, schema.RoleLead, schema.RoleWorker:
	default:
		return fmt.Errorf("agent %q: unknown role %q", def.ID, def.Role)
	}
	if v := def.Verification; v != nil {
		if len(v.Checks) == 0 {
			return fmt.Errorf("agent %q: verification policy without checks", def.ID)
		}
		if v.TruthThreshold < 0 || v.TruthThreshold > 1 {
			return fmt.Errorf("agent %q: truth threshold %v outside [0, 1]", def.ID, v.TruthThreshold)
		}
		if v.MaxFilesPerOperation < 1 {
			return fmt.Errorf("agent %q: max files per operation %d", def.ID, v.MaxFilesPerOperation)
		}
	}
	c.agents[def.ID] = def
	return nil
}

func (c *Catalog) addPreset(def PresetDefinition) error {
	if def.ID == "" {
		return fmt.Errorf("preset definition %q has no id", def.Name)
	}
	if !schema.ValidTopology(def.Topology) {
		return fmt.Errorf("preset %q: unknown topology %q", def.ID, def.Topology)
	}
	if def.Defaults.Strategy != "" && !schema.ValidStrategy(def.Defaults.Strategy) {
		return fmt.Errorf("preset %q: unknown strategy %q", def.ID, def.Defaults.Strategy)
	}
	seen := make(map[string]bool, len(def.Agents))
	for _, ref := range def.Agents {
		if ref.AgentID == "" {
			return fmt.Errorf("preset %q: agent reference without id", def.ID)
		}
		if seen[ref.AgentID] {
			return fmt.Errorf("preset %q: agent %q referenced twice", def.ID, ref.AgentID)
		}
		seen[ref.AgentID] = true
	}
	c.presets[def.ID] = def
	return nil
}

// Agent returns the definition for id.
func (c *Catalog) Agent(id string) (AgentDefinition, error) {
	def, ok := c.agents[id]
	if !ok {
		return AgentDefinition{}, &NotFoundError{Kind: "agent", ID: id}
	}
	return def, nil
}

// HasAgent reports whether id is in the catalog.
func (c *Catalog) HasAgent(id string) bool {
	_, ok := c.agents[id]
	return ok
}

// Preset returns the definition for id. The empty id is the "no preset"
// sentinel and returns the fallback preset rather than a not-found error.
func (c *Catalog) Preset(id string) (PresetDefinition, error) {
	if id == "" {
		return FallbackPreset(), nil
	}
	def, ok := c.presets[id]
	if !ok {
		return PresetDefinition{}, &NotFoundError{Kind: "preset", ID: id}
	}
	return def, nil
}

// FallbackPreset is the preset used when the caller selects none: a plain
// hierarchical topology with no agent references; limits are computed from
// the selection.
func FallbackPreset() PresetDefinition {
	return PresetDefinition{
		Name:     "Fallback",
		Topology: schema.TopologyHierarchical,
		Defaults: PresetDefaults{Strategy: schema.StrategyDevelopment},
	}
}

// ListAgents returns definitions sorted by id, optionally filtered by
// category.
func (c *Catalog) ListAgents(category string) []AgentDefinition {
	defs := make([]AgentDefinition, 0, len(c.agents))
	for _, def := range c.agents {
		if category != "" && def.Category != category {
			continue
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// ListPresets returns preset definitions sorted by id.
func (c *Catalog) ListPresets() []PresetDefinition {
	defs := make([]PresetDefinition, 0, len(c.presets))
	for _, def := range c.presets {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}
