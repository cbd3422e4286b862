package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

func TestLoadBuiltins(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	agents := c.ListAgents("")
	if len(agents) == 0 {
		t.Fatal("expected builtin agents")
	}
	if !sort.SliceIsSorted(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID }) {
		t.Error("expected agents sorted by id")
	}

	presets := c.ListPresets()
	if len(presets) == 0 {
		t.Fatal("expected builtin presets")
	}
}

func TestAgentLookup(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	def, err := c.Agent("queen")
	if err != nil {
		t.Fatalf("get queen: %v", err)
	}
	if def.Role != schema.RoleQueen {
		t.Errorf("expected role queen, got %s", def.Role)
	}

	_, err = c.Agent("nonexistent")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "agent" || nf.ID != "nonexistent" {
		t.Errorf("expected agent/nonexistent, got %s/%s", nf.Kind, nf.ID)
	}
}

func TestPresetLookup(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	p, err := c.Preset("development")
	if err != nil {
		t.Fatalf("get development: %v", err)
	}
	if p.Topology != schema.TopologyHierarchical {
		t.Errorf("expected hierarchical, got %s", p.Topology)
	}

	_, err = c.Preset("nonexistent")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "preset" {
		t.Errorf("expected kind preset, got %s", nf.Kind)
	}
}

func TestEmptyPresetIDIsFallback(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	p, err := c.Preset("")
	if err != nil {
		t.Fatalf("expected fallback preset, got error: %v", err)
	}
	if p.Topology != schema.TopologyHierarchical {
		t.Errorf("expected hierarchical fallback, got %s", p.Topology)
	}
	if p.Defaults.MaxAgents != 0 || p.Defaults.MaxConcurrentAgents != 0 {
		t.Errorf("expected fallback limits computed from selection, got %d/%d",
			p.Defaults.MaxAgents, p.Defaults.MaxConcurrentAgents)
	}
	if p.Defaults.Strategy != schema.StrategyDevelopment {
		t.Errorf("expected development strategy, got %s", p.Defaults.Strategy)
	}
}

func TestListAgentsByCategory(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	all := c.ListAgents("")
	core := c.ListAgents("core")
	if len(core) == 0 {
		t.Fatal("expected agents in the core category")
	}
	if len(core) >= len(all) {
		t.Errorf("expected category filter to narrow %d agents, got %d", len(all), len(core))
	}
	for _, a := range core {
		if a.Category != "core" {
			t.Errorf("expected category core, got %s for %s", a.Category, a.ID)
		}
	}
}

func writeOverlay(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "custom.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	return dir
}

func TestOverlayAddsAgentAndPreset(t *testing.T) {
	dir := writeOverlay(t, `
agents:
  - id: dba
    name: Database Admin
    category: operations
    role: worker
    capabilities: [sql, migrations]
presets:
  - id: db-work
    name: Database Work
    topology: sequential
    agents:
      - agent: dba
        required: true
      - agent: tester
    defaults:
      max_agents: 2
      max_concurrent: 1
      strategy: maintenance
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	def, err := c.Agent("dba")
	if err != nil {
		t.Fatalf("get dba: %v", err)
	}
	if def.Category != "operations" {
		t.Errorf("expected category operations, got %s", def.Category)
	}

	p, err := c.Preset("db-work")
	if err != nil {
		t.Fatalf("get db-work: %v", err)
	}
	if len(p.Agents) != 2 {
		t.Errorf("expected 2 agent refs, got %d", len(p.Agents))
	}
}

func TestOverlayReplacesBuiltin(t *testing.T) {
	dir := writeOverlay(t, `
agents:
  - id: tester
    name: Strict Tester
    category: testing
    role: worker
    verification:
      checks: [unit, fuzz]
      truth_threshold: 0.99
      max_files_per_operation: 3
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	def, err := c.Agent("tester")
	if err != nil {
		t.Fatalf("get tester: %v", err)
	}
	if def.Name != "Strict Tester" {
		t.Errorf("expected overlay to replace builtin, got name %s", def.Name)
	}
	if def.Verification == nil || def.Verification.TruthThreshold != 0.99 {
		t.Errorf("expected overlay verification policy, got %+v", def.Verification)
	}
}

func TestOverlayRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad role", `
agents:
  - id: weird
    name: Weird
    role: emperor
`},
		{"threshold out of range", `
agents:
  - id: weird
    name: Weird
    role: worker
    verification:
      checks: [test]
      truth_threshold: 1.5
      max_files_per_operation: 5
`},
		{"preset references unknown agent", `
presets:
  - id: ghost
    name: Ghost
    topology: mesh
    agents:
      - agent: does-not-exist
`},
		{"bad topology", `
presets:
  - id: warped
    name: Warped
    topology: pentagon
    agents:
      - agent: tester
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeOverlay(t, tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("expected a load error")
			}
		})
	}
}

func TestHasAgent(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !c.HasAgent("coder") {
		t.Error("expected coder to exist")
	}
	if c.HasAgent("nonexistent") {
		t.Error("expected nonexistent to be unknown")
	}
}
