package testcases

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// catalogSchema describes a catalog file:
//
//	cases:
//	  - key: haiku
//	    label: "🌸 Haiku"
//	    templates:
//	      system: You are a poet.
//	      user: "Write a haiku about: {input}"
var catalogSchema = map[string]any{
	"type":     "object",
	"required": []string{"cases"},
	"properties": map[string]any{
		"cases": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items": map[string]any{
				"type":     "object",
				"required": []string{"key", "label", "templates"},
				"properties": map[string]any{
					"key":         map[string]any{"type": "string", "minLength": 1},
					"label":       map[string]any{"type": "string", "minLength": 1},
					"description": map[string]any{"type": "string"},
					"template":    map[string]any{"type": "string"},
					"example":     map[string]any{"type": "string"},
					"aspects": map[string]any{
						"type":  "array",
						"items": map[string]any{"type": "string"},
					},
					"templates": map[string]any{
						"type":     "object",
						"required": []string{"system", "user"},
						"properties": map[string]any{
							"system": map[string]any{"type": "string"},
							"user":   map[string]any{"type": "string", "pattern": `\{input\}`},
						},
					},
				},
			},
		},
	},
}

type catalogFile struct {
	Cases []TestCase `yaml:"cases"`
}

// LoadFile reads a YAML catalog, validates it against the catalog schema and
// returns it in file order.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates and decodes catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("parse catalog: empty document")
	}
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(catalogSchema), gojsonschema.NewBytesLoader(docJSON))
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, fmt.Errorf("catalog failed validation: %s", strings.Join(details, "; "))
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(file.Cases)
}
