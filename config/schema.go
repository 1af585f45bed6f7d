package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the base JSON Schema for the course configuration.
// It reflects the Config struct from types.go but excludes the 'Extensions'
// field, whose keys (logging and friends) are free-form.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Do not allow unknown fields inside the typed sections.
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for cleaner base schema.
		ExpandedStruct: true,
		// Use YAML field names for property names
		FieldNameTag: "yaml",
	}

	// Create a temporary struct that omits the Extensions field
	// so it's not included in the base schema.
	type BaseConfig struct {
		Course     CourseInfo     `yaml:"course" jsonschema:"required,description=Course metadata"`
		BaseURL    string         `yaml:"base_url,omitempty" jsonschema:"description=URL prefix the site is served under"`
		ContentDir string         `yaml:"content_dir,omitempty" jsonschema:"description=Directory holding markdown pages"`
		LayoutsDir string         `yaml:"layouts_dir,omitempty" jsonschema:"description=Directory holding layout templates"`
		StaticDir  string         `yaml:"static_dir,omitempty" jsonschema:"description=Directory copied verbatim into the output"`
		OutputDir  string         `yaml:"output_dir,omitempty" jsonschema:"description=Directory the site is written to"`
		Tracks     []Track        `yaml:"tracks,omitempty" jsonschema:"description=Course tracks matched against page tags"`
		Sections   []Section      `yaml:"sections,omitempty" jsonschema:"description=Sidebar sections in display order"`
		Content    ContentConfig  `yaml:"content,omitempty" jsonschema:"description=Content discovery settings"`
		Markdown   MarkdownConfig `yaml:"markdown,omitempty" jsonschema:"description=Markdown rendering settings"`
		Serve      ServeConfig    `yaml:"serve,omitempty" jsonschema:"description=Development server settings"`
		TUI        *TUIConfig     `yaml:"tui,omitempty" jsonschema:"description=TUI appearance settings"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "Lectern Course Configuration"
	schema.Description = "Base schema for course.yml properties."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
