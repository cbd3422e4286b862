package synth

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/catalog"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

func newTestSynthesizer(t *testing.T) *Synthesizer {
	t.Helper()
	cat, err := catalog.Load("")
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return New(cat)
}

func TestSynthesizeMinimal(t *testing.T) {
	s := newTestSynthesizer(t)

	cfg, err := s.Synthesize([]string{"queen", "backend-dev", "tester"}, "minimal", "ship the feature", nil)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}

	ids := make([]string, len(cfg.Agents))
	for i, a := range cfg.Agents {
		ids[i] = a.ID
	}
	want := []string{"backend-dev", "queen", "tester"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("expected agents %v, got %v", want, ids)
	}

	if cfg.Orchestrator.MaxAgents != 3 {
		t.Errorf("expected maxAgents 3, got %d", cfg.Orchestrator.MaxAgents)
	}
	if cfg.Orchestrator.MaxConcurrentAgents != 3 {
		t.Errorf("expected maxConcurrentAgents 3, got %d", cfg.Orchestrator.MaxConcurrentAgents)
	}
	if cfg.Orchestrator.Topology != schema.TopologyHierarchical {
		t.Errorf("expected hierarchical, got %s", cfg.Orchestrator.Topology)
	}
	if cfg.Task.Description != "ship the feature" {
		t.Errorf("expected task recorded, got %q", cfg.Task.Description)
	}
	if cfg.Task.PresetID != "minimal" {
		t.Errorf("expected presetId minimal, got %q", cfg.Task.PresetID)
	}
	if cfg.Metadata.Provenance != schema.ProvenanceSynthesized {
		t.Errorf("expected synthesized provenance, got %s", cfg.Metadata.Provenance)
	}
	if cfg.Metadata.Version != schema.CurrentVersion {
		t.Errorf("expected version %s, got %s", schema.CurrentVersion, cfg.Metadata.Version)
	}
	if cfg.Metadata.ID == "" {
		t.Error("expected a metadata id")
	}
}

func TestSynthesizeEmptyPresetUsesFallback(t *testing.T) {
	s := newTestSynthesizer(t)

	cfg, err := s.Synthesize([]string{"coder", "tester"}, "", "", nil)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if cfg.Orchestrator.Topology != schema.TopologyHierarchical {
		t.Errorf("expected hierarchical fallback, got %s", cfg.Orchestrator.Topology)
	}
	if cfg.Orchestrator.Strategy != schema.StrategyDevelopment {
		t.Errorf("expected development strategy, got %s", cfg.Orchestrator.Strategy)
	}
	if cfg.Orchestrator.MaxAgents != 2 || cfg.Orchestrator.MaxConcurrentAgents != 2 {
		t.Errorf("expected limits 2/2 from selection, got %d/%d",
			cfg.Orchestrator.MaxAgents, cfg.Orchestrator.MaxConcurrentAgents)
	}
}

func TestSynthesizeConcurrencyCap(t *testing.T) {
	s := newTestSynthesizer(t)

	// Ten agents with no preset limits: the soft cap applies.
	ids := []string{
		"queen", "planner", "researcher", "coder", "backend-dev",
		"frontend-dev", "mobile-dev", "tester", "reviewer", "api-docs",
	}
	cfg, err := s.Synthesize(ids, "", "", nil)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if cfg.Orchestrator.MaxAgents != 10 {
		t.Errorf("expected maxAgents 10, got %d", cfg.Orchestrator.MaxAgents)
	}
	if cfg.Orchestrator.MaxConcurrentAgents != schema.SoftConcurrencyCap {
		t.Errorf("expected maxConcurrentAgents %d, got %d",
			schema.SoftConcurrencyCap, cfg.Orchestrator.MaxConcurrentAgents)
	}
}

func TestSynthesizeConcurrencyOverrideAboveCap(t *testing.T) {
	s := newTestSynthesizer(t)

	ids := []string{
		"queen", "planner", "researcher", "coder", "backend-dev",
		"frontend-dev", "mobile-dev", "tester", "reviewer", "api-docs",
	}
	cfg, err := s.Synthesize(ids, "", "", &Overrides{MaxAgents: 12, MaxConcurrentAgents: 10})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if cfg.Orchestrator.MaxAgents != 12 {
		t.Errorf("expected maxAgents 12, got %d", cfg.Orchestrator.MaxAgents)
	}
	// Explicit override may exceed the soft cap.
	if cfg.Orchestrator.MaxConcurrentAgents != 10 {
		t.Errorf("expected maxConcurrentAgents 10, got %d", cfg.Orchestrator.MaxConcurrentAgents)
	}
}

func TestSynthesizeConcurrencyOverrideCappedAtMaxAgents(t *testing.T) {
	s := newTestSynthesizer(t)

	cfg, err := s.Synthesize([]string{"coder", "tester"}, "", "", &Overrides{MaxConcurrentAgents: 10})
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if cfg.Orchestrator.MaxConcurrentAgents != cfg.Orchestrator.MaxAgents {
		t.Errorf("expected concurrency capped at maxAgents=%d, got %d",
			cfg.Orchestrator.MaxAgents, cfg.Orchestrator.MaxConcurrentAgents)
	}
}

func TestSynthesizePresetDefaults(t *testing.T) {
	s := newTestSynthesizer(t)

	cfg, err := s.Synthesize([]string{"queen", "coder", "tester"}, "development", "", nil)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	if cfg.Orchestrator.MaxAgents != 8 {
		t.Errorf("expected preset maxAgents 8, got %d", cfg.Orchestrator.MaxAgents)
	}
	if cfg.Orchestrator.MaxConcurrentAgents != 4 {
		t.Errorf("expected preset maxConcurrentAgents 4, got %d", cfg.Orchestrator.MaxConcurrentAgents)
	}
}

func TestSynthesizeUnknownAgentsListsAll(t *testing.T) {
	s := newTestSynthesizer(t)

	_, err := s.Synthesize([]string{"coder", "ghost-two", "ghost-one"}, "", "", nil)
	var ua *UnknownAgentError
	if !errors.As(err, &ua) {
		t.Fatalf("expected UnknownAgentError, got %v", err)
	}
	want := []string{"ghost-one", "ghost-two"}
	if !reflect.DeepEqual(ua.IDs, want) {
		t.Errorf("expected ids %v, got %v", want, ua.IDs)
	}
}

func TestSynthesizeEmptySelection(t *testing.T) {
	s := newTestSynthesizer(t)

	_, err := s.Synthesize(nil, "", "", nil)
	var sie *schema.SchemaInvariantError
	if !errors.As(err, &sie) {
		t.Fatalf("expected SchemaInvariantError, got %v", err)
	}
	if len(sie.Violations) != 1 || sie.Violations[0].Invariant != "agents.nonempty" {
		t.Errorf("expected agents.nonempty, got %+v", sie.Violations)
	}
}

func TestSynthesizeUnknownPreset(t *testing.T) {
	s := newTestSynthesizer(t)

	_, err := s.Synthesize([]string{"coder"}, "imaginary", "", nil)
	var nf *catalog.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Kind != "preset" || nf.ID != "imaginary" {
		t.Errorf("expected preset/imaginary, got %s/%s", nf.Kind, nf.ID)
	}
}

func TestSynthesizeDefaultSpecialization(t *testing.T) {
	s := newTestSynthesizer(t)

	// researcher has no verification policy of its own.
	cfg, err := s.Synthesize([]string{"researcher"}, "", "", nil)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	sp := cfg.Agents[0].Specialization
	want := DefaultSpecialization()
	if !reflect.DeepEqual(sp.Verification, want.Verification) {
		t.Errorf("expected default checks %v, got %v", want.Verification, sp.Verification)
	}
	if sp.TruthThreshold != want.TruthThreshold {
		t.Errorf("expected threshold %v, got %v", want.TruthThreshold, sp.TruthThreshold)
	}
	if sp.MaxFilesPerOperation != want.MaxFilesPerOperation {
		t.Errorf("expected max files %d, got %d", want.MaxFilesPerOperation, sp.MaxFilesPerOperation)
	}
}

func TestSynthesizeAgentVerificationCopied(t *testing.T) {
	s := newTestSynthesizer(t)

	cfg, err := s.Synthesize([]string{"queen"}, "", "", nil)
	if err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	sp := cfg.Agents[0].Specialization
	def := DefaultSpecialization()
	if sp.TruthThreshold == def.TruthThreshold && reflect.DeepEqual(sp.Verification, def.Verification) {
		t.Error("expected queen to carry its own verification policy, got the default")
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{" tester", "coder", "coder", "", "tester "})
	want := []string{"coder", "tester"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFallbackConcurrency(t *testing.T) {
	tests := []struct {
		maxAgents, selected, want int
	}{
		{3, 3, 3},
		{10, 10, 8},
		{10, 4, 4},
		{2, 6, 2},
	}
	for _, tt := range tests {
		if got := FallbackConcurrency(tt.maxAgents, tt.selected); got != tt.want {
			t.Errorf("FallbackConcurrency(%d, %d): expected %d, got %d",
				tt.maxAgents, tt.selected, tt.want, got)
		}
	}
}
