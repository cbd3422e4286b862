package schema

import (
	"reflect"
	"sort"
)

// ConfigDiff describes what changed between two configurations, typically an
// existing workspace document and a freshly migrated or synthesized one.
type ConfigDiff struct {
	AgentsAdded   []string
	AgentsRemoved []string
	AgentsChanged []string

	OrchestratorChanged bool
	NewOrchestrator     Orchestrator

	MemoryChanged bool
	NewMemory     Memory

	TaskChanged bool
	NewTask     Task

	VersionChanged bool
	NewVersion     string
}

// HasChanges reports whether anything beyond metadata differs.
func (d *ConfigDiff) HasChanges() bool {
	return len(d.AgentsAdded) > 0 ||
		len(d.AgentsRemoved) > 0 ||
		len(d.AgentsChanged) > 0 ||
		d.OrchestratorChanged ||
		d.MemoryChanged ||
		d.TaskChanged ||
		d.VersionChanged
}

// Diff compares two configurations field by field. Metadata ids and
// timestamps are ignored; they differ on every rebuild.
func Diff(old, new *Configuration) ConfigDiff {
	var d ConfigDiff

	oldAgents := agentsByID(old.Agents)
	newAgents := agentsByID(new.Agents)

	for id := range newAgents {
		if _, ok := oldAgents[id]; !ok {
			d.AgentsAdded = append(d.AgentsAdded, id)
		}
	}
	for id := range oldAgents {
		if _, ok := newAgents[id]; !ok {
			d.AgentsRemoved = append(d.AgentsRemoved, id)
		}
	}
	for id, newSpec := range newAgents {
		if oldSpec, ok := oldAgents[id]; ok {
			if !reflect.DeepEqual(oldSpec, newSpec) {
				d.AgentsChanged = append(d.AgentsChanged, id)
			}
		}
	}
	sort.Strings(d.AgentsAdded)
	sort.Strings(d.AgentsRemoved)
	sort.Strings(d.AgentsChanged)

	if old.Orchestrator != new.Orchestrator {
		d.OrchestratorChanged = true
		d.NewOrchestrator = new.Orchestrator
	}

	if !reflect.DeepEqual(old.Memory, new.Memory) {
		d.MemoryChanged = true
		d.NewMemory = new.Memory
	}

	if old.Task != new.Task {
		d.TaskChanged = true
		d.NewTask = new.Task
	}

	if old.Metadata.Version != new.Metadata.Version {
		d.VersionChanged = true
		d.NewVersion = new.Metadata.Version
	}

	return d
}

func agentsByID(agents []AgentSpec) map[string]AgentSpec {
	m := make(map[string]AgentSpec, len(agents))
	for _, a := range agents {
		m[a.ID] = a
	}
	return m
}
