package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/catalog"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/store"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if os.Args[1] == "version" {
		fmt.Printf("flowctl %s\n", version)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg.Log.Level)

	args := os.Args[2:]
	switch os.Args[1] {
	case "agents":
		err = runAgents(cfg, args)
	case "presets":
		err = runPresets(cfg, args)
	case "init":
		err = runInit(cfg, args)
	case "migrate":
		err = runMigrate(cfg, args)
	case "validate":
		err = runValidate(cfg, args)
	case "diff":
		err = runDiff(cfg, args)
	case "workflow":
		err = runWorkflow(cfg, args)
	case "vault":
		err = runVault(cfg, args)
	case "runs":
		err = runRuns(cfg, args)
	case "backup":
		err = runBackup(cfg, args)
	case "restore":
		err = runRestore(cfg, args)
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		slog.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: flowctl <command>

Commands:
  agents     List catalog agents
  presets    List catalog presets
  init       Synthesize a configuration and materialize the workspace
  migrate    Migrate legacy configuration documents
  validate   Validate configuration files
  diff       Compare two configuration documents
  workflow   Plan or save workflows derived from a configuration
  vault      Manage sealed credentials
  runs       Show the operation journal
  backup     Archive the workspace
  restore    Unpack a workspace archive
  version    Print version
`)
}

func setupLogging(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	db, err := store.Open(cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return db, nil
}
