package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/migrate"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/store"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/vault"
)

func runMigrate(cfg *config.Config, args []string) error {
	var files []string
	var outDir string
	extractSecrets := false
	dryRun := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -f")
			}
			i++
			files = append(files, args[i])
		case "-out-dir":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -out-dir")
			}
			i++
			outDir = args[i]
		case "-extract-secrets":
			extractSecrets = true
		case "-dry-run":
			dryRun = true
		}
	}

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: flowctl migrate -f <legacy.json> [-f ...] [-out-dir <dir>] [-extract-secrets] [-dry-run]\n")
		return fmt.Errorf("missing -f flag")
	}
	if outDir == "" {
		outDir = filepath.Join(cfg.Workspace.Root, "migrated")
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	m := migrate.New(cat)

	// Documents that fail to read or parse join the same failure partition
	// as documents that fail migration.
	var failures []migrate.Failure
	var docs []migrate.Document
	for _, path := range files {
		label := filepath.Base(path)
		data, err := os.ReadFile(path)
		if err != nil {
			failures = append(failures, migrate.Failure{Label: label, Err: err})
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			failures = append(failures, migrate.Failure{Label: label, Err: fmt.Errorf("parse document: %w", err)})
			continue
		}
		docs = append(docs, migrate.Document{Label: label, Raw: raw})
	}

	res := m.MigrateBatch(docs)
	failures = append(failures, res.Failures...)

	if !dryRun && len(res.Configs) > 0 {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		for _, conf := range res.Configs {
			name := strings.TrimSuffix(conf.Metadata.SourceFile, filepath.Ext(conf.Metadata.SourceFile))
			out := filepath.Join(outDir, name+".config.json")
			if err := schema.Save(conf, out); err != nil {
				return err
			}
			run := &store.Run{
				ID:            uuid.New().String(),
				Kind:          "migrate",
				Label:         conf.Metadata.SourceFile,
				ConfigVersion: conf.Metadata.Version,
				Agents:        len(conf.Agents),
			}
			if err := db.RecordRun(run); err != nil {
				slog.Warn("journal write failed", "error", err)
			}
		}

		if extractSecrets {
			if err := sealDocumentSecrets(db, docs); err != nil {
				return err
			}
		}
	}

	fmt.Printf("Migrated %d of %d documents\n", len(res.Configs), len(files))
	for _, f := range failures {
		fmt.Printf("  %s: %v\n", f.Label, f.Err)
	}
	if len(failures) > 0 {
		return fmt.Errorf("%d of %d documents failed", len(failures), len(files))
	}
	return nil
}

// sealDocumentSecrets moves credentials found in legacy documents into the
// vault-backed store. Extraction covers every parsed document, including ones
// whose migration failed.
func sealDocumentSecrets(db *store.Store, docs []migrate.Document) error {
	v, err := vault.FromEnv()
	if err != nil {
		return err
	}

	count := 0
	for _, doc := range docs {
		for name, value := range migrate.ExtractSecrets(doc.Raw) {
			sealed, nonce, err := v.Seal([]byte(value))
			if err != nil {
				return fmt.Errorf("seal %s: %w", name, err)
			}
			if err := db.SaveSecret(&store.Secret{Name: name, Value: sealed, Nonce: nonce}); err != nil {
				return err
			}
			count++
		}
	}

	if count > 0 {
		fmt.Printf("Sealed %d secrets into the vault\n", count)
	}
	return nil
}
