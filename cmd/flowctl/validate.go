package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
)

func runValidate(cfg *config.Config, args []string) error {
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

	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "Usage: flowctl validate -f <config.json> [-f ...]\n")
		return fmt.Errorf("missing -f flag")
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		if err := validateFile(path, cat.HasAgent); err != nil {
			failed++
			fmt.Printf("%s: FAIL\n%v\n", path, indent(err.Error()))
			continue
		}
		fmt.Printf("%s: OK\n", path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(files))
	}
	return nil
}

// validateFile runs the structural check first so shape errors surface with
// JSON pointers, then the semantic invariants.
func validateFile(path string, known func(id string) bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := schema.CheckDocument(data); err != nil {
		return err
	}

	var conf schema.Configuration
	if err := json.Unmarshal(data, &conf); err != nil {
		return fmt.Errorf("parse configuration: %w", err)
	}

	return schema.Validate(&conf, known)
}

func indent(s string) string {
	out := "  "
	for _, r := range s {
		out += string(r)
		if r == '\n' {
			out += "  "
		}
	}
	return out
}
