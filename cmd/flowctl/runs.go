package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
)

func runRuns(cfg *config.Config, args []string) error {
	limit := 20

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-n":
			if i+1 >= len(args) {
				return fmt.Errorf("missing value for -n")
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("invalid -n: %w", err)
			}
			limit = n
		}
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tKIND\tLABEL\tVERSION\tAGENTS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Kind, r.Label, r.ConfigVersion, r.Agents)
	}
	return w.Flush()
}
