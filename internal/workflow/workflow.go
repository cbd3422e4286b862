package workflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

// Definition describes a spawn workflow written into a workspace. Steps spawn
// in dependency order; steps within the same tier spawn concurrently.
type Definition struct {
	Name     string `json:"name"`
	PresetID string `json:"presetId,omitempty"`
	Schedule string `json:"schedule,omitempty"`
	Steps    []Step `json:"steps"`
}

// Step spawns one agent once every step named in DependsOn has spawned.
type Step struct {
	ID        string   `json:"id"`
	AgentID   string   `json:"agent"`
	DependsOn []string `json:"dependsOn,omitempty"`
}

// FromConfiguration derives the spawn workflow implied by a configuration's
// topology: hierarchical makes workers wait for the queen/lead tier, star
// makes everything wait for the hub, sequential and ring chain the agents in
// list order, mesh spawns everything at once.
func FromConfiguration(cfg *schema.Configuration) Definition {
	name := cfg.Task.PresetID
	if name == "" {
		name = "default"
	}
	def := Definition{Name: name, PresetID: cfg.Task.PresetID}

	agents := cfg.Agents
	switch cfg.Orchestrator.Topology {
	case schema.TopologySequential, schema.TopologyRing:
		for i, a := range agents {
			st := Step{ID: a.ID, AgentID: a.ID}
			if i > 0 {
				st.DependsOn = []string{agents[i-1].ID}
			}
			def.Steps = append(def.Steps, st)
		}

	case schema.TopologyStar:
		hub := hubAgent(agents)
		for _, a := range agents {
			st := Step{ID: a.ID, AgentID: a.ID}
			if a.ID != hub {
				st.DependsOn = []string{hub}
			}
			def.Steps = append(def.Steps, st)
		}

	case schema.TopologyHierarchical:
		var coordinators []string
		for _, a := range agents {
			if a.Role == schema.RoleQueen || a.Role == schema.RoleLead {
				coordinators = append(coordinators, a.ID)
			}
		}
		if len(coordinators) == 0 {
			coordinators = []string{hubAgent(agents)}
		}
		coordSet := make(map[string]bool, len(coordinators))
		for _, id := range coordinators {
			coordSet[id] = true
		}
		for _, a := range agents {
			st := Step{ID: a.ID, AgentID: a.ID}
			if !coordSet[a.ID] {
				st.DependsOn = append([]string(nil), coordinators...)
			}
			def.Steps = append(def.Steps, st)
		}

	default: // mesh: no spawn ordering
		for _, a := range agents {
			def.Steps = append(def.Steps, Step{ID: a.ID, AgentID: a.ID})
		}
	}

	return def
}

// hubAgent picks the spawn root: the first queen, else the first lead, else
// the first agent.
func hubAgent(agents []schema.AgentSpec) string {
	for _, a := range agents {
		if a.Role == schema.RoleQueen {
			return a.ID
		}
	}
	for _, a := range agents {
		if a.Role == schema.RoleLead {
			return a.ID
		}
	}
	return agents[0].ID
}

// BuildSpawnPlan layers the workflow's steps into spawn tiers using Kahn's
// algorithm. It returns an error if a step depends on an unknown step or the
// dependency graph contains a cycle.
func BuildSpawnPlan(def Definition) ([][]string, error) {
	stepSet := make(map[string]bool, len(def.Steps))
	for _, st := range def.Steps {
		if st.ID == "" {
			return nil, fmt.Errorf("workflow %q has a step without an id", def.Name)
		}
		if stepSet[st.ID] {
			return nil, fmt.Errorf("workflow %q declares step %q twice", def.Name, st.ID)
		}
		stepSet[st.ID] = true
	}

	dependents := make(map[string][]string)
	inDegree := make(map[string]int, len(def.Steps))
	for _, st := range def.Steps {
		for _, dep := range st.DependsOn {
			if !stepSet[dep] {
				return nil, fmt.Errorf("step %q depends on unknown step %q", st.ID, dep)
			}
			dependents[dep] = append(dependents[dep], st.ID)
			inDegree[st.ID]++
		}
	}

	depth := make(map[string]int, len(def.Steps))
	var queue []string
	for _, st := range def.Steps {
		if inDegree[st.ID] == 0 {
			queue = append(queue, st.ID)
		}
	}

	processed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		processed++

		for _, next := range dependents[id] {
			inDegree[next]--
			if d := depth[id] + 1; d > depth[next] {
				depth[next] = d
			}
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if processed != len(def.Steps) {
		var stuck []string
		for _, st := range def.Steps {
			if inDegree[st.ID] > 0 {
				stuck = append(stuck, st.ID)
			}
		}
		sort.Strings(stuck)
		return nil, fmt.Errorf("workflow %q contains a dependency cycle through: %s",
			def.Name, strings.Join(stuck, ", "))
	}

	maxDepth := 0
	for _, d := range depth {
		if d > maxDepth {
			maxDepth = d
		}
	}

	tiers := make([][]string, maxDepth+1)
	for _, st := range def.Steps {
		d := depth[st.ID]
		tiers[d] = append(tiers[d], st.ID)
	}
	return tiers, nil
}
