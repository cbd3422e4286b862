package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/layout"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/migrate"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/store"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/synth"
)

func runInit(cfg *config.Config, args []string) error {
	var (
		agentsCSV string
		presetID  string
		task      string
		outPath   string
		dryRun    bool
		ov        synth.Overrides
	)

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-agents":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -agents")
			}
			i++
			agentsCSV = args[i]
		case "-preset":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -preset")
			}
			i++
			presetID = args[i]
		case "-task":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -task")
			}
			i++
			task = args[i]
		case "-out":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -out")
			}
			i++
			outPath = args[i]
		case "-max-agents":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -max-agents")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid -max-agents: %w", err)
			}
			ov.MaxAgents = n
		case "-max-concurrent":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -max-concurrent")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid -max-concurrent: %w", err)
			}
			ov.MaxConcurrentAgents = n
		case "-topology":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -topology")
			}
			i++
			ov.Topology = args[i]
		case "-strategy":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -strategy")
			}
			i++
			ov.Strategy = args[i]
		case "-retries":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -retries")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid -retries: %w", err)
			}
			ov.Retries = &n
		case "-byzantine":
			b := true
			ov.Byzantine = &b
		case "-health":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -health")
			}
			i++
			ms, err := migrate.ParseDurationMS(args[i])
			if err != nil {
				return fmt.Errorf("invalid -health: %w", err)
			}
			ov.HealthCheckIntervalMS = ms
		case "-dry-run":
			dryRun = true
		}
	}

	if agentsCSV == "" {
		fmt.Fprintf(os.Stderr, "Usage: flowctl init -agents <id,id,...> [-preset <id>] [-task <text>] [-out <file>] [-dry-run]\n")
		return fmt.Errorf("missing -agents flag")
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	conf, err := synth.New(cat).Synthesize(strings.Split(agentsCSV, ","), presetID, task, &ov)
	if err != nil {
		return err
	}

	if dryRun {
		data, err := json.MarshalIndent(conf, "", "  ")
		if err != nil {
			return fmt.Errorf("encode configuration: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	root := cfg.Workspace.Root
	created, err := layout.Materialize(conf, root)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = filepath.Join(root, "claude-flow.config.json")
	}
	if err := schema.Save(conf, outPath); err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	run := &store.Run{
		ID:            uuid.New().String(),
		Kind:          "init",
		Label:         outPath,
		ConfigVersion: conf.Metadata.Version,
		Agents:        len(conf.Agents),
	}
	if err := db.RecordRun(run); err != nil {
		slog.Warn("journal write failed", "error", err)
	}

	fmt.Printf("Workspace initialized: %d agents, %d paths, config %s\n",
		len(conf.Agents), len(created), outPath)
	return nil
}
