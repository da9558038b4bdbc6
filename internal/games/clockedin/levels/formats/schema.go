package formats

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed level.schema.json
var levelSchemaJSON string

const levelSchemaURL = "level.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Schema returns the compiled level schema.
func Schema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(levelSchemaURL, levelSchemaJSON)
	})
	return schema, schemaErr
}

// SchemaJSON returns the raw level schema document.
func SchemaJSON() string {
	return levelSchemaJSON
}

// ValidateDocument checks a decoded YAML document against the level
// schema. The document is round-tripped through JSON first so numbers and
// maps have the shapes the validator expects.
func ValidateDocument(doc any) error {
	s, err := Schema()
	if err != nil {
		return fmt.Errorf("compile level schema: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("level to json: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("level from json: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("level schema: %w", err)
	}
	return nil
}
