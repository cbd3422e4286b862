package schema

import (
	"encoding/json"
	"fmt"
	"os"
)

// Save serializes cfg as indented JSON to path. Persistence is a caller
// concern; the synthesis and migration operations themselves never write.
func Save(cfg *Configuration, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal configuration: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// LoadFile reads a serialized Configuration from path.
func LoadFile(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	return &cfg, nil
}
