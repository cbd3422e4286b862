package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
)

func runAgents(cfg *config.Config, args []string) error {
	var category string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-category":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -category")
			}
			i++
			category = args[i]
		}
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	agents := cat.ListAgents(category)
	if len(agents) == 0 {
		fmt.Println("No agents found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tROLE\tCAPABILITIES")
	for _, a := range agents {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Category, a.Role, strings.Join(a.Capabilities, ", "))
	}
	return w.Flush()
}

func runPresets(cfg *config.Config, args []string) error {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	presets := cat.ListPresets()
	if len(presets) == 0 {
		fmt.Println("No presets found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTOPOLOGY\tSTRATEGY\tAGENTS\tMAX\tCONCURRENT")
	for _, p := range presets {
		ids := make([]string, 0, len(p.Agents))
		for _, ref := range p.Agents {
			ids = append(ids, ref.AgentID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, p.Topology, p.Defaults.Strategy,
			strings.Join(ids, ", "), orDash(p.Defaults.MaxAgents), orDash(p.Defaults.MaxConcurrentAgents))
	}
	return w.Flush()
}

// orDash renders zero preset limits as "-" since zero means "compute from the
// selection".
func orDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
