package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schemas/*.schema.yaml
var schemaFS embed.FS

// Validator handles JSON schema validation of udpublish documents
type Validator struct {
	sitesSchema *jsonschema.Schema
	runSchema   *jsonschema.Schema
}

// NewValidator compiles the embedded schemas
func NewValidator() (*Validator, error) {
	v := &Validator{}

	sitesSchema, err := loadSchema("sites")
	if err != nil {
		return nil, fmt.Errorf("failed to load site registry schema: %w", err)
	}
	v.sitesSchema = sitesSchema

	runSchema, err := loadSchema("run")
	if err != nil {
		return nil, fmt.Errorf("failed to load run schema: %w", err)
	}
	v.runSchema = runSchema

	return v, nil
}

// ValidateSiteRegistry validates a decoded site registry document
func (v *Validator) ValidateSiteRegistry(data interface{}) error {
	if v.sitesSchema == nil {
		return fmt.Errorf("site registry schema not loaded")
	}
	return v.sitesSchema.Validate(data)
}

// ValidateRun validates a decoded run document
func (v *Validator) ValidateRun(data interface{}) error {
	if v.runSchema == nil {
		return fmt.Errorf("run schema not loaded")
	}
	return v.runSchema.Validate(data)
}

// Decode turns YAML into the generic JSON value tree the validator expects
func Decode(data []byte) (interface{}, error) {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Round-trip through JSON so numbers and maps have the types jsonschema expects
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert document to JSON: %w", err)
	}

	var out interface{}
	if err := json.Unmarshal(jsonData, &out); err != nil {
		return nil, fmt.Errorf("failed to convert document to JSON: %w", err)
	}
	return out, nil
}

// loadSchema loads and compiles an embedded YAML schema
func loadSchema(name string) (*jsonschema.Schema, error) {
	data, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.yaml", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	// Parse YAML to interface{} (supports both YAML and JSON)
	var schemaData interface{}
	if err := yaml.Unmarshal(data, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema file: %w", err)
	}

	// Convert to JSON for schema compiler
	jsonData, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	schemaURI := fmt.Sprintf("udpublish://%s/schema.json", name)
	compiler := jsonschema.NewCompiler()
	compiler.LoadURL = func(url string) (io.ReadCloser, error) {
		if url == schemaURI {
			return io.NopCloser(strings.NewReader(string(jsonData))), nil
		}
		return nil, fmt.Errorf("external schema reference not supported: %s", url)
	}

	return compiler.Compile(schemaURI)
}
