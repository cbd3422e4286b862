package schema

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema is the JSON Schema for the current configuration version.
// CheckDocument uses it to reject structurally broken files before the
// invariant checks in Validate run.
const documentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["orchestrator", "agents", "memory", "task", "metadata"],
  "properties": {
    "orchestrator": {
      "type": "object",
      "required": ["maxAgents", "maxConcurrentAgents", "topology", "strategy", "faultTolerance"],
      "properties": {
        "maxAgents": {"type": "integer"},
        "maxConcurrentAgents": {"type": "integer"},
        "topology": {"enum": ["hierarchical", "mesh", "ring", "star", "sequential"]},
        "strategy": {"enum": ["development", "research", "testing", "analysis", "optimization", "maintenance"]},
        "faultTolerance": {
          "type": "object",
          "required": ["retries", "byzantine", "healthCheckInterval"],
          "properties": {
            "retries": {"type": "integer"},
            "byzantine": {"type": "boolean"},
            "healthCheckInterval": {"type": "integer"}
          }
        }
      }
    },
    "agents": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "role", "specialization"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string"},
          "role": {"enum": ["queen", "lead", "worker"]},
          "capabilities": {"type": "array", "items": {"type": "string"}},
          "specialization": {
            "type": "object",
            "required": ["verification", "truthThreshold", "maxFilesPerOperation"],
            "properties": {
              "verification": {"type": "array", "items": {"type": "string"}},
              "truthThreshold": {"type": "number"},
              "maxFilesPerOperation": {"type": "integer"}
            }
          }
        }
      }
    },
    "memory": {
      "type": "object",
      "required": ["backend", "persistence", "cacheSizeMB", "namespaces"],
      "properties": {
        "backend": {"type": "string"},
        "persistence": {"type": "boolean"},
        "cacheSizeMB": {"type": "integer"},
        "namespaces": {"type": "array", "items": {"type": "string"}}
      }
    },
    "task": {
      "type": "object",
      "required": ["description"],
      "properties": {
        "description": {"type": "string"},
        "presetId": {"type": "string"}
      }
    },
    "metadata": {
      "type": "object",
      "required": ["id", "created", "version", "provenance"],
      "properties": {
        "id": {"type": "string"},
        "created": {"type": "string"},
        "version": {"type": "string"},
        "provenance": {"enum": ["synthesized", "migrated"]},
        "sourceFile": {"type": "string"}
      }
    }
  }
}`

var compiledDocumentSchema = jsonschema.MustCompileString("configuration.schema.json", documentSchema)

// CheckDocument validates raw JSON against the current configuration schema.
func CheckDocument(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if err := compiledDocumentSchema.Validate(doc); err != nil {
		return fmt.Errorf("document does not match schema %s: %w", CurrentVersion, err)
	}
	return nil
}
