package store

import (
	"fmt"
	"time"
)

// Run is one journal entry for an operation that produced or checked a
// configuration.
type Run struct {
	ID            string    `json:"id"`
	Kind          string    `json:"kind"`
	Label         string    `json:"label"`
	ConfigVersion string    `json:"config_version"`
	Agents        int       `json:"agents"`
	CreatedAt     time.Time `json:"created_at"`
}

func (s *Store) RecordRun(r *Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, kind, label, config_version, agents)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Label, r.ConfigVersion, r.Agents)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent entries, newest first. limit <= 0 means
// no limit.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`
		SELECT id, kind, label, config_version, agents, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Kind, &r.Label, &r.ConfigVersion, &r.Agents, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
