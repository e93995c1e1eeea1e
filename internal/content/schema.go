package content

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema is the JSON schema external catalog files must satisfy.
// The embedded catalog is covered by tests instead.
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topics": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":    map[string]any{"type": "string", "minLength": 1},
					"label": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "label"},
				"additionalProperties": false,
			},
		},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"topicId":    map[string]any{"type": "string", "minLength": 1},
					"skill":      map[string]any{"type": "string", "enum": []any{"recognition", "production"}},
					"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
					"prompt":     map[string]any{"type": "string", "minLength": 1},
					"choices": map[string]any{
						"type":     "array",
						"minItems": 2,
						"items":    map[string]any{"type": "string"},
					},
					"correctIndex": map[string]any{"type": "integer", "minimum": 0},
					"explanation":  map[string]any{"type": "string"},
					"rule":         map[string]any{"type": "string"},
					"trap":         map[string]any{"type": "string"},
					"memoryHook":   map[string]any{"type": "string"},
				},
				"required":             []any{"id", "topicId", "skill", "difficulty", "prompt", "choices", "correctIndex"},
				"additionalProperties": false,
			},
		},
		"flashcards": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":         map[string]any{"type": "string", "minLength": 1},
					"topicId":    map[string]any{"type": "string", "minLength": 1},
					"skill":      map[string]any{"type": "string", "enum": []any{"recognition", "production"}},
					"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 3},
					"front":      map[string]any{"type": "string", "minLength": 1},
					"back":       map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"id", "topicId", "skill", "difficulty", "front", "back"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"topics", "questions", "flashcards"},
	"additionalProperties": false,
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// validateCatalog checks raw catalog JSON against catalogSchema.
func validateCatalog(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compileOnce.Do(func() {
		// The jsonschema library expects a parsed JSON value, not raw bytes.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = err
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			compileErr = err
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", def); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = c.Compile("schema://catalog.json")
	})
	if compileErr != nil {
		return fmt.Errorf("compile catalog schema: %w", compileErr)
	}

	if err := compiledSchema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
