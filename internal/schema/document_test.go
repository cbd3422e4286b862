package schema

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckDocumentAcceptsSaved(t *testing.T) {
	cfg := validConfig()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := CheckDocument(data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDocumentRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing sections", `{"agents": []}`},
		{"agents not array", `{"orchestrator": {}, "agents": {}, "memory": {}, "task": {}, "metadata": {}}`},
		{"bad json", `{"agents": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckDocument([]byte(tt.doc)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestCheckDocumentRejectsBadEnum(t *testing.T) {
	cfg := validConfig()
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	doc := strings.Replace(string(data), `"hierarchical"`, `"pentagon"`, 1)

	if err := CheckDocument([]byte(doc)); err == nil {
		t.Error("expected an error for unknown topology")
	}
}

func TestSaveLoadFile(t *testing.T) {
	cfg := validConfig()
	path := filepath.Join(t.TempDir(), "claude-flow.config.json")

	if err := Save(cfg, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Metadata.Version != CurrentVersion {
		t.Errorf("expected version %s, got %s", CurrentVersion, got.Metadata.Version)
	}
	if len(got.Agents) != 2 {
		t.Errorf("expected 2 agents, got %d", len(got.Agents))
	}
	if got.Orchestrator.Topology != TopologyHierarchical {
		t.Errorf("expected hierarchical topology, got %s", got.Orchestrator.Topology)
	}

	if err := Validate(got, nil); err != nil {
		t.Fatalf("loaded configuration failed validation: %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
