package main

import (
	"fmt"
	"os"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/bundle"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
)

func runBackup(cfg *config.Config, args []string) error {
	var outputPath string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -f")
			}
			i++
			outputPath = args[i]
		}
	}

	if outputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: flowctl backup -f <output.tar.zst>\n")
		return fmt.Errorf("missing -f flag")
	}

	sum, err := bundle.Backup(cfg.Workspace.Root, outputPath)
	if err != nil {
		return err
	}

	info, _ := os.Stat(outputPath)
	size := int64(0)
	if info != nil {
		size = info.Size()
	}

	fmt.Printf("Backup complete: %d files, %s\n", sum.Files, bundle.FormatSize(size))
	return nil
}

func runRestore(cfg *config.Config, args []string) error {
	var inputPath string
	overwrite := false

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-f":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -f")
			}
			i++
			inputPath = args[i]
		case "-overwrite":
			overwrite = true
		}
	}

	if inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: flowctl restore -f <backup.tar.zst> [-overwrite]\n")
		return fmt.Errorf("missing -f flag")
	}

	sum, err := bundle.Restore(inputPath, cfg.Workspace.Root, overwrite)
	if err != nil {
		return err
	}

	fmt.Printf("Restore complete: %d files, %s\n", sum.Files, bundle.FormatSize(sum.Bytes))
	return nil
}
