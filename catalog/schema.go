package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

// RenderSchema normalizes an opaque parameter schema into a plain
// map[string]any suitable for serialization and discovery search.
// A nil schema renders as nil. Values that do not marshal to a JSON
// object return an error.
func RenderSchema(schema any) (map[string]any, error) {
	if schema == nil {
		return nil, nil
	}
	if m, ok := schema.(map[string]any); ok {
		return m, nil
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("render schema: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("render schema: %w", err)
	}
	return out, nil
}

// SchemaFor derives a parameter schema from a Go type. Field
// descriptions come from jsonschema struct tags.
func SchemaFor[T any]() (map[string]any, error) {
	schema, err := jsonschema.For[T](&jsonschema.ForOptions{})
	if err != nil {
		return nil, err
	}
	return RenderSchema(schema)
}
