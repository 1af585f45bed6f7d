package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed course.embedded.schema.json
var embeddedSchemaData []byte

// Validator validates course configuration against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("course.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("course.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate validates configuration data against the schema. configData may
// be the typed Config struct or any value with yaml tags; the schema uses
// course.yml field names, so the round trip goes through yaml first.
func (v *Validator) Validate(configData interface{}) error {
	yamlData, err := yaml.Marshal(configData)
	if err != nil {
		return fmt.Errorf("failed to marshal config for validation: %w", err)
	}

	var generic interface{}
	if err := yaml.Unmarshal(yamlData, &generic); err != nil {
		return fmt.Errorf("failed to unmarshal config for validation: %w", err)
	}

	// Re-encode through encoding/json so the validator sees plain JSON
	// values (float64 numbers, string keys).
	jsonData, err := json.Marshal(generic)
	if err != nil {
		return fmt.Errorf("failed to convert config to JSON for validation: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()
	var dataToValidate interface{}
	if err := decoder.Decode(&dataToValidate); err != nil {
		return fmt.Errorf("failed to decode JSON for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		// Format the validation error to be more user-friendly.
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var errorMessages []string
			collectErrors(validationErr, &errorMessages)
			return fmt.Errorf("schema validation failed:\n%s", strings.Join(errorMessages, "\n"))
		}
		return fmt.Errorf("schema validation failed: %w", err)
	}

	return nil
}

// EmbeddedSchema returns the raw embedded course schema document.
func EmbeddedSchema() []byte {
	return embeddedSchemaData
}

// collectErrors recursively collects all validation errors into a slice
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if err.InstanceLocation != "" {
		*messages = append(*messages, fmt.Sprintf("- %s: %s", err.InstanceLocation, err.Message))
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
