package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/config"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/store"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/vault"
)

func runVault(cfg *config.Config, args []string) error {
	if len(args) == 0 {
		printVaultUsage()
		return nil
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	switch args[0] {
	case "list":
		return vaultList(db)
	case "set":
		return vaultSet(db, args[1:])
	case "get":
		return vaultGet(db, args[1:])
	case "delete":
		return vaultDelete(db, args[1:])
	default:
		printVaultUsage()
		return fmt.Errorf("unknown vault command: %s", args[0])
	}
}

func printVaultUsage() {
	fmt.Fprintf(os.Stderr, `Usage: flowctl vault <command>

Commands:
  list                      List secrets (names only)
  set <name> -value <str>   Seal and store a secret
  set <name> -file <path>   Seal and store a file's contents
  get <name>                Unseal and print a secret
  delete <name>             Delete a secret

Environment:
  %s    Required for set/get. Encryption passphrase.
`, vault.EnvPassphrase)
}

func vaultList(db *store.Store) error {
	secrets, err := db.ListSecrets()
	if err != nil {
		return err
	}
	if len(secrets) == 0 {
		fmt.Println("No secrets stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCREATED\tUPDATED")
	for _, s := range secrets {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			s.Name,
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func vaultSet(db *store.Store, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: flowctl vault set <name> -value <string> | -file <path>")
	}

	name := args[0]
	var value []byte

	switch args[1] {
	case "-value":
		value = []byte(args[2])
	case "-file":
		data, err := os.ReadFile(args[2])
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		value = data
	default:
		return fmt.Errorf("expected -value or -file, got %s", args[1])
	}

	v, err := vault.FromEnv()
	if err != nil {
		return err
	}

	sealed, nonce, err := v.Seal(value)
	if err != nil {
		return fmt.Errorf("seal: %w", err)
	}

	if err := db.SaveSecret(&store.Secret{Name: name, Value: sealed, Nonce: nonce}); err != nil {
		return err
	}
	fmt.Printf("Secret %q saved\n", name)
	return nil
}

func vaultGet(db *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: flowctl vault get <name>")
	}

	sec, err := db.GetSecret(args[0])
	if err != nil {
		return err
	}
	if sec == nil {
		return fmt.Errorf("secret %q not found", args[0])
	}

	v, err := vault.FromEnv()
	if err != nil {
		return err
	}

	plaintext, err := v.Unseal(sec.Value, sec.Nonce)
	if err != nil {
		return err
	}

	fmt.Print(string(plaintext))
	if len(plaintext) > 0 && plaintext[len(plaintext)-1] != '\n' {
		fmt.Println()
	}
	return nil
}

func vaultDelete(db *store.Store, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: flowctl vault delete <name>")
	}
	if err := db.DeleteSecret(args[0]); err != nil {
		return err
	}
	fmt.Printf("Secret %q deleted\n", args[0])
	return nil
}
