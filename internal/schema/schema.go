package schema

import "time"

// CurrentVersion is the schema version stamped on every configuration this
// tool produces. Migration rewrites older documents to exactly this version.
const CurrentVersion = "2.0.0-alpha.86"

// Topology values understood by the orchestrator.
const (
	TopologyHierarchical = "hierarchical"
	TopologyMesh         = "mesh"
	TopologyRing         = "ring"
	TopologyStar         = "star"
	TopologySequential   = "sequential"
)

// Strategy values understood by the orchestrator.
const (
	StrategyDevelopment  = "development"
	StrategyResearch     = "research"
	StrategyTesting      = "testing"
	StrategyAnalysis     = "analysis"
	StrategyOptimization = "optimization"
	StrategyMaintenance  = "maintenance"
)

// Provenance markers recorded in metadata.
const (
	ProvenanceSynthesized = "synthesized"
	ProvenanceMigrated    = "migrated"
)

// Agent roles.
const (
	RoleQueen  = "queen"
	RoleLead   = "lead"
	RoleWorker = "worker"
)

const (
	// MaxAgentsLimit bounds orchestrator.maxAgents.
	MaxAgentsLimit = 20
	// SoftConcurrencyCap is the default ceiling for maxConcurrentAgents.
	// Explicit overrides may exceed it, up to maxAgents.
	SoftConcurrencyCap = 8
	// MinHealthCheckIntervalMS is the lowest accepted health-check interval.
	MinHealthCheckIntervalMS = 1000
)

// Configuration is the versioned document handed to the orchestration CLI.
// A value is built once, by synthesis or migration, and never mutated;
// re-running either operation produces a fresh value.
type Configuration struct {
	Orchestrator Orchestrator `json:"orchestrator"`
	Agents       []AgentSpec  `json:"agents"`
	Memory       Memory       `json:"memory"`
	Task         Task         `json:"task"`
	Metadata     Metadata     `json:"metadata"`
}

type Orchestrator struct {
	MaxAgents           int            `json:"maxAgents"`
	MaxConcurrentAgents int            `json:"maxConcurrentAgents"`
	Topology            string         `json:"topology"`
	Strategy            string         `json:"strategy"`
	FaultTolerance      FaultTolerance `json:"faultTolerance"`
}

type FaultTolerance struct {
	Retries   int  `json:"retries"`
	Byzantine bool `json:"byzantine"`
	// Milliseconds between orchestrator health probes.
	HealthCheckIntervalMS int `json:"healthCheckInterval"`
}

// AgentSpec is one selected agent with its derived specialization block.
type AgentSpec struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Role           string         `json:"role"`
	Capabilities   []string       `json:"capabilities,omitempty"`
	Specialization Specialization `json:"specialization"`
}

type Specialization struct {
	Verification         []string `json:"verification"`
	TruthThreshold       float64  `json:"truthThreshold"`
	MaxFilesPerOperation int      `json:"maxFilesPerOperation"`
}

type Memory struct {
	Backend     string   `json:"backend"`
	Persistence bool     `json:"persistence"`
	CacheSizeMB int      `json:"cacheSizeMB"`
	Namespaces  []string `json:"namespaces"`
}

type Task struct {
	Description string `json:"description"`
	PresetID    string `json:"presetId,omitempty"`
}

type Metadata struct {
	ID         string    `json:"id"`
	Created    time.Time `json:"created"`
	Version    string    `json:"version"`
	Provenance string    `json:"provenance"`
	SourceFile string    `json:"sourceFile,omitempty"`
}

// ValidTopology reports whether t is one of the accepted topology values.
func ValidTopology(t string) bool {
	switch t {
	case TopologyHierarchical, TopologyMesh, TopologyRing, TopologyStar, TopologySequential:
		return true
	}
	return false
}

// ValidStrategy reports whether s is one of the accepted strategy values.
func ValidStrategy(s string) bool {
	switch s {
	case StrategyDevelopment, StrategyResearch, StrategyTesting,
		StrategyAnalysis, StrategyOptimization, StrategyMaintenance:
		return true
	}
	return false
}
