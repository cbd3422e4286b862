package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/workflow"
)

func runWorkflow(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		printWorkflowUsage()
		return nil
	}

	switch args[0] {
	case "plan":
		return workflowPlan(args[1:])
	case "add":
		return workflowAdd(cfg, args[1:])
	default:
		printWorkflowUsage()
		return fmt.Errorf("unknown workflow command: %s", args[0])
	}
}

func printWorkflowUsage() {
	fmt.Fprintf(os.Stderr, `Usage: flowctl workflow <command>

Commands:
  plan -f <config.json>                             Print the spawn plan tiers
  add -f <config.json> [-name <n>] [-schedule <s>]  Save a workflow derived from a configuration

Schedules are cron expressions or "@every <duration>".
`)
}

func workflowPlan(args []string) error {
	path, err := singleFileFlag(args, "flowctl workflow plan -f <config.json>")
	if err != nil {
		return err
	}

	conf, err := schema.LoadFile(path)
	if err != nil {
		return err
	}

	def := workflow.FromConfiguration(conf)
	tiers, err := workflow.BuildSpawnPlan(def)
	if err != nil {
		return err
	}

	for i, tier := range tiers {
		fmt.Printf("Tier %d: %s\n", i+1, strings.Join(tier, ", "))
	}
	return nil
}

func workflowAdd(cfg *config.Config, args []string) error {
	var path, name, schedule string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -f")
			}
			i++
			path = args[i]
		case "-name":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -name")
			}
			i++
			name = args[i]
		case "-schedule":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -schedule")
			}
			i++
			schedule = args[i]
		}
	}

	if path == "" {
		return fmt.Errorf("usage: flowctl workflow add -f <config.json> [-name <n>] [-schedule <s>]")
	}

	normalized, err := workflow.NormalizeSchedule(schedule)
	if err != nil {
		return fmt.Errorf("invalid -schedule: %w", err)
	}

	conf, err := schema.LoadFile(path)
	if err != nil {
		return err
	}

	def := workflow.FromConfiguration(conf)
	if name != "" {
		def.Name = name
	}
	def.Schedule = normalized

	tiers, err := workflow.BuildSpawnPlan(def)
	if err != nil {
		return err
	}

	dir := filepath.Join(cfg.Workspace.Root, "workflows")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create workflows dir: %w", err)
	}
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("encode workflow: %w", err)
	}
	out := filepath.Join(dir, def.Name+".json")
	if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write workflow: %w", err)
	}

	fmt.Printf("Workflow %q saved: %d steps, %d tiers, %s\n", def.Name, len(def.Steps), len(tiers), out)
	return nil
}

func singleFileFlag(args []string, usage string) (string, error) {
	var path string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return "", fmt.Errorf("missing value for -f")
			}
			i++
			path = args[i]
		}
	}
	if path == "" {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return path, nil
}
