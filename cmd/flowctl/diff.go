package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

// runDiff compares two configuration documents, typically a workspace config
// against the output of a migration, and reports what changed.
func runDiff(cfg *config.Config, args []string) error {
	var files []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -f")
			}
			i++
			files = append(files, args[i])
		}
	}

	if len(files) != 2 {
		fmt.Fprintf(os.Stderr, "Usage: flowctl diff -f <old.json> -f <new.json>\n")
		return fmt.Errorf("diff needs exactly two -f flags")
	}

	oldCfg, err := schema.LoadFile(files[0])
	if err != nil {
		return err
	}
	newCfg, err := schema.LoadFile(files[1])
	if err != nil {
		return err
	}

	d := schema.Diff(oldCfg, newCfg)
	if !d.HasChanges() {
		fmt.Printf("No changes between %s and %s\n", files[0], files[1])
		return nil
	}

	if len(d.AgentsAdded) > 0 {
		fmt.Printf("Agents added:   %s\n", strings.Join(d.AgentsAdded, ", "))
	}
	if len(d.AgentsRemoved) > 0 {
		fmt.Printf("Agents removed: %s\n", strings.Join(d.AgentsRemoved, ", "))
	}
	if len(d.AgentsChanged) > 0 {
		fmt.Printf("Agents changed: %s\n", strings.Join(d.AgentsChanged, ", "))
	}
	if d.OrchestratorChanged {
		o := d.NewOrchestrator
		fmt.Printf("Orchestrator:   topology=%s strategy=%s maxAgents=%d maxConcurrent=%d\n",
			o.Topology, o.Strategy, o.MaxAgents, o.MaxConcurrentAgents)
	}
	if d.MemoryChanged {
		m := d.NewMemory
		fmt.Printf("Memory:         backend=%s cacheSizeMB=%d namespaces=%s\n",
			m.Backend, m.CacheSizeMB, strings.Join(m.Namespaces, ","))
	}
	if d.TaskChanged {
		fmt.Printf("Task:           %q\n", d.NewTask.Description)
	}
	if d.VersionChanged {
		fmt.Printf("Version:        %s -> %s\n", oldCfg.Metadata.Version, d.NewVersion)
	}
	return nil
}
