package catalog

import "github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"

// Builtin definitions ship with the tool so a bare install can synthesize
// configurations without an overlay directory. An overlay entry with the same
// id replaces the builtin one.

var builtinAgents = []AgentDefinition{
	{
		ID:           "queen",
		Name:         "Hive Queen",
		Category:     "hive-mind",
		Role:         schema.RoleQueen,
		Capabilities: []string{"orchestration", "delegation", "consensus"},
		Verification: &VerificationPolicy{
			Checks:               []string{"consensus", "validate"},
			TruthThreshold:       0.95,
			MaxFilesPerOperation: 20,
		},
		PromptTemplate: "You are the hive queen. Decompose the task, delegate to workers and arbitrate conflicting results.",
	},
	{
		ID:           "planner",
		Name:         "Planner",
		Category:     "core",
		Role:         schema.RoleLead,
		Capabilities: []string{"planning", "decomposition", "estimation"},
		Verification: &VerificationPolicy{
			Checks:               []string{"plan-review", "validate"},
			TruthThreshold:       0.9,
			MaxFilesPerOperation: 15,
		},
	},
	{
		ID:           "researcher",
		Name:         "Researcher",
		Category:     "core",
		Role:         schema.RoleWorker,
		Capabilities: []string{"research", "analysis", "summarization"},
	},
	{
		ID:           "coder",
		Name:         "Coder",
		Category:     "core",
		Role:         schema.RoleWorker,
		Capabilities: []string{"implementation", "refactoring", "debugging"},
		Verification: &VerificationPolicy{
			Checks:               []string{"lint", "test", "validate"},
			TruthThreshold:       0.85,
			MaxFilesPerOperation: 10,
		},
		Languages:      []string{"go", "typescript", "python"},
		PromptTemplate: "You implement the assigned change set. Keep diffs minimal and run the declared checks before reporting done.",
	},
	{
		ID:           "backend-dev",
		Name:         "Backend Developer",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"api-design", "database", "services"},
		Verification: &VerificationPolicy{
			Checks:               []string{"test", "integration-test", "validate"},
			TruthThreshold:       0.9,
			MaxFilesPerOperation: 12,
		},
		Languages:  []string{"go", "typescript"},
		Frameworks: []string{"gin", "express"},
	},
	{
		ID:           "frontend-dev",
		Name:         "Frontend Developer",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"ui", "state-management", "accessibility"},
		Languages:    []string{"typescript"},
		Frameworks:   []string{"react"},
	},
	{
		ID:           "mobile-dev",
		Name:         "Mobile Developer",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"mobile-ui", "offline-sync"},
		Languages:    []string{"typescript"},
		Frameworks:   []string{"react-native"},
	},
	{
		ID:           "ml-developer",
		Name:         "ML Developer",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"training", "evaluation", "data-pipelines"},
		Languages:    []string{"python"},
	},
	{
		ID:           "system-architect",
		Name:         "System Architect",
		Category:     "specialized",
		Role:         schema.RoleLead,
		Capabilities: []string{"architecture", "interfaces", "tradeoff-analysis"},
		Verification: &VerificationPolicy{
			Checks:               []string{"design-review", "validate"},
			TruthThreshold:       0.92,
			MaxFilesPerOperation: 25,
		},
	},
	{
		ID:           "tester",
		Name:         "Tester",
		Category:     "core",
		Role:         schema.RoleWorker,
		Capabilities: []string{"unit-testing", "integration-testing", "coverage"},
		Verification: &VerificationPolicy{
			Checks:               []string{"test", "coverage"},
			TruthThreshold:       0.9,
			MaxFilesPerOperation: 15,
		},
	},
	{
		ID:           "reviewer",
		Name:         "Reviewer",
		Category:     "core",
		Role:         schema.RoleWorker,
		Capabilities: []string{"code-review", "standards", "regression-hunting"},
		Verification: &VerificationPolicy{
			Checks:               []string{"review", "validate"},
			TruthThreshold:       0.9,
			MaxFilesPerOperation: 20,
		},
	},
	{
		ID:           "security-auditor",
		Name:         "Security Auditor",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"threat-modeling", "secrets-scan", "dependency-audit"},
		Verification: &VerificationPolicy{
			Checks:               []string{"audit", "secrets-scan", "validate"},
			TruthThreshold:       0.95,
			MaxFilesPerOperation: 30,
		},
	},
	{
		ID:           "perf-analyzer",
		Name:         "Performance Analyzer",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"profiling", "bottleneck-analysis"},
	},
	{
		ID:           "api-docs",
		Name:         "API Documenter",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"openapi", "reference-docs"},
	},
	{
		ID:           "cicd-engineer",
		Name:         "CI/CD Engineer",
		Category:     "specialized",
		Role:         schema.RoleWorker,
		Capabilities: []string{"pipelines", "releases", "environments"},
		Verification: &VerificationPolicy{
			Checks:               []string{"pipeline-dry-run", "validate"},
			TruthThreshold:       0.88,
			MaxFilesPerOperation: 10,
		},
	},
	{
		ID:           "swarm-memory-manager",
		Name:         "Swarm Memory Manager",
		Category:     "hive-mind",
		Role:         schema.RoleWorker,
		Capabilities: []string{"memory-curation", "namespace-hygiene"},
	},
	{
		ID:           "collective-intelligence-coordinator",
		Name:         "Collective Intelligence Coordinator",
		Category:     "hive-mind",
		Role:         schema.RoleLead,
		Capabilities: []string{"aggregation", "voting", "conflict-resolution"},
		Verification: &VerificationPolicy{
			Checks:               []string{"consensus"},
			TruthThreshold:       0.9,
			MaxFilesPerOperation: 10,
		},
	},
	{
		ID:           "adaptive-coordinator",
		Name:         "Adaptive Coordinator",
		Category:     "swarm",
		Role:         schema.RoleLead,
		Capabilities: []string{"topology-tuning", "load-balancing"},
	},
}

var builtinPresets = []PresetDefinition{
	{
		ID:       "minimal",
		Name:     "Minimal Hive",
		Topology: schema.TopologyHierarchical,
		Agents: []AgentRef{
			{AgentID: "queen", Required: true, ModelTier: "sonnet"},
			{AgentID: "coder", ModelTier: "sonnet"},
			{AgentID: "tester", ModelTier: "haiku"},
		},
		Defaults: PresetDefaults{Strategy: schema.StrategyDevelopment},
	},
	{
		ID:       "development",
		Name:     "Development Hive",
		Topology: schema.TopologyHierarchical,
		Agents: []AgentRef{
			{AgentID: "queen", Required: true, ModelTier: "opus"},
			{AgentID: "planner", Required: true, ModelTier: "sonnet"},
			{AgentID: "coder", Required: true, ModelTier: "sonnet"},
			{AgentID: "backend-dev", ModelTier: "sonnet"},
			{AgentID: "tester", Required: true, ModelTier: "haiku"},
			{AgentID: "reviewer", ModelTier: "sonnet"},
		},
		Defaults: PresetDefaults{
			MaxAgents:           8,
			MaxConcurrentAgents: 4,
			Strategy:            schema.StrategyDevelopment,
		},
	},
	{
		ID:       "research",
		Name:     "Research Mesh",
		Topology: schema.TopologyMesh,
		Agents: []AgentRef{
			{AgentID: "researcher", Required: true, ModelTier: "sonnet"},
			{AgentID: "collective-intelligence-coordinator", Required: true, ModelTier: "sonnet"},
			{AgentID: "swarm-memory-manager", ModelTier: "haiku"},
			{AgentID: "api-docs", ModelTier: "haiku"},
		},
		Defaults: PresetDefaults{
			MaxAgents:           5,
			MaxConcurrentAgents: 3,
			Strategy:            schema.StrategyResearch,
		},
	},
	{
		ID:       "testing",
		Name:     "Testing Chain",
		Topology: schema.TopologySequential,
		Agents: []AgentRef{
			{AgentID: "tester", Required: true, ModelTier: "sonnet"},
			{AgentID: "reviewer", Required: true, ModelTier: "sonnet"},
			{AgentID: "cicd-engineer", ModelTier: "haiku"},
		},
		Defaults: PresetDefaults{
			MaxAgents:           4,
			MaxConcurrentAgents: 2,
			Strategy:            schema.StrategyTesting,
		},
	},
	{
		ID:       "full-stack",
		Name:     "Full-Stack Hive",
		Topology: schema.TopologyHierarchical,
		Agents: []AgentRef{
			{AgentID: "queen", Required: true, ModelTier: "opus"},
			{AgentID: "system-architect", Required: true, ModelTier: "opus"},
			{AgentID: "backend-dev", Required: true, ModelTier: "sonnet"},
			{AgentID: "frontend-dev", Required: true, ModelTier: "sonnet"},
			{AgentID: "mobile-dev", ModelTier: "sonnet"},
			{AgentID: "tester", Required: true, ModelTier: "haiku"},
			{AgentID: "reviewer", ModelTier: "sonnet"},
			{AgentID: "cicd-engineer", ModelTier: "haiku"},
		},
		Defaults: PresetDefaults{
			MaxAgents:           10,
			MaxConcurrentAgents: 5,
			Strategy:            schema.StrategyDevelopment,
		},
	},
	{
		ID:       "security-review",
		Name:     "Security Review Ring",
		Topology: schema.TopologyRing,
		Agents: []AgentRef{
			{AgentID: "security-auditor", Required: true, ModelTier: "opus"},
			{AgentID: "reviewer", Required: true, ModelTier: "sonnet"},
			{AgentID: "tester", ModelTier: "haiku"},
		},
		Defaults: PresetDefaults{
			MaxAgents:           4,
			MaxConcurrentAgents: 2,
			Strategy:            schema.StrategyAnalysis,
		},
	},
}
