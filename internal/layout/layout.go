package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/schema"
	"github.com/mssoftware-ms/04-AI-Chatbot-sub003/internal/workflow"
)

// skeletonDirs is the fixed directory set every workspace gets.
var skeletonDirs = []string{"agents", "memory-store", "sessions", "workflows"}

// FilesystemError wraps the I/O failure that stopped materialization after
// its single retry.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Materialize idempotently creates the workspace skeleton under root
// (agents/, memory-store/, sessions/, workflows/), writes one
// agents/<id>.json per selected agent and the spawn workflow derived from the
// configuration's topology. Files are overwritten in place, so re-running
// with the same configuration produces the same tree. Returns the created or
// refreshed paths, sorted.
//
// Concurrent calls against different roots are safe; calls against the same
// root must be serialized by the caller.
func Materialize(cfg *schema.Configuration, root string) ([]string, error) {
	created := make([]string, 0, len(skeletonDirs)+len(cfg.Agents)+1)

	for _, dir := range skeletonDirs {
		path := filepath.Join(root, dir)
		if err := retryOnce("create directory", path, func() error {
			return os.MkdirAll(path, 0o755)
		}); err != nil {
			return nil, err
		}
		created = append(created, path)
	}

	for _, agent := range cfg.Agents {
		data, err := json.MarshalIndent(agent, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal agent %s: %w", agent.ID, err)
		}
		data = append(data, '\n')

		path := filepath.Join(root, "agents", agent.ID+".json")
		if err := retryOnce("write agent file", path, func() error {
			return os.WriteFile(path, data, 0o644)
		}); err != nil {
			return nil, err
		}
		created = append(created, path)
	}

	def := workflow.FromConfiguration(cfg)
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal workflow %s: %w", def.Name, err)
	}
	data = append(data, '\n')

	path := filepath.Join(root, "workflows", workflowFileName(def.Name))
	if err := retryOnce("write workflow file", path, func() error {
		return os.WriteFile(path, data, 0o644)
	}); err != nil {
		return nil, err
	}
	created = append(created, path)

	sort.Strings(created)
	return created, nil
}

// workflowFileName keeps migrated preset ids from escaping workflows/.
func workflowFileName(name string) string {
	if name == "" || name == ".." || strings.ContainsAny(name, `/\`) {
		name = "default"
	}
	return name + ".json"
}

// retryOnce runs op, retrying a single time after a short pause so transient
// filesystem locks can clear. The second failure surfaces verbatim.
func retryOnce(opName, path string, op func() error) error {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(50*time.Millisecond), 1)
	if err := backoff.Retry(op, policy); err != nil {
		return &FilesystemError{Op: opName, Path: path, Err: err}
	}
	return nil
}
