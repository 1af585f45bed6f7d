package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// CourseInfo describes the course itself: the name and subtitle shown in the
// page header, the institution, and the authors listed in the footer.
type CourseInfo struct {
	Name           string   `yaml:"name" toml:"name" jsonschema:"required,description=Course name shown in the site header and page titles"`
	Subtitle       string   `yaml:"subtitle,omitempty" toml:"subtitle,omitempty" jsonschema:"description=Subtitle shown under the course name (e.g. the term)"`
	Institution    string   `yaml:"institution,omitempty" toml:"institution,omitempty" jsonschema:"description=Institution name shown in the footer"`
	InstitutionURL string   `yaml:"institution_url,omitempty" toml:"institution_url,omitempty" jsonschema:"description=Link target for the institution name"`
	Authors        []Author `yaml:"authors,omitempty" toml:"authors,omitempty" jsonschema:"description=Course authors listed in the footer"`
}

// Author is a single course author.
type Author struct {
	Name string `yaml:"name" toml:"name" jsonschema:"required,description=Author display name"`
	URL  string `yaml:"url,omitempty" toml:"url,omitempty" jsonschema:"description=Author homepage"`
}

// Track is a named course track. Pages reference tracks through their tags,
// and the rendered chrome shows a legend of all configured tracks.
type Track struct {
	ID   string `yaml:"id" toml:"id" jsonschema:"required,description=Track identifier matched against page tags"`
	Name string `yaml:"name" toml:"name" jsonschema:"required,description=Track display name shown in the legend"`
}

// Section is an ordered group of pages in the sidebar. The order of sections
// in course.yml and the order of pages within each section are preserved
// verbatim in the rendered navigation.
type Section struct {
	ID    string   `yaml:"id" toml:"id" jsonschema:"required,description=Section identifier (lowercase letters, numbers, hyphens)"`
	Name  string   `yaml:"name" toml:"name" jsonschema:"required,description=Section heading shown in the sidebar"`
	Pages []string `yaml:"pages,omitempty" toml:"pages,omitempty" jsonschema:"description=Content-relative page paths in sidebar order"`
}

// ContentConfig controls content discovery.
type ContentConfig struct {
	// Ignore lists patterns (gitignore-style) excluded from the content scan,
	// in addition to any .lecternignore file in the project root.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty" jsonschema:"description=Patterns excluded from the content scan"`
	// Drafts builds pages marked draft when true.
	Drafts *bool `yaml:"drafts,omitempty" toml:"drafts,omitempty" jsonschema:"description=Build pages marked as drafts (default: false)"`
}

// MarkdownConfig controls markdown rendering.
type MarkdownConfig struct {
	HighlightStyle string `yaml:"highlight_style,omitempty" toml:"highlight_style,omitempty" jsonschema:"description=Chroma style name for syntax highlighting (default: monokai)"`
	HardWraps      *bool  `yaml:"hard_wraps,omitempty" toml:"hard_wraps,omitempty" jsonschema:"description=Render single newlines as line breaks (default: false)"`
	TOC            *bool  `yaml:"toc,omitempty" toml:"toc,omitempty" jsonschema:"description=Extract a table of contents from page headings (default: true)"`
}

// ServeConfig controls the development server.
type ServeConfig struct {
	Port int   `yaml:"port,omitempty" toml:"port,omitempty" jsonschema:"description=Port for the development server (default: 1313)"`
	Open *bool `yaml:"open,omitempty" toml:"open,omitempty" jsonschema:"description=Open the browser when the server starts (default: false)"`
}

// TUIConfig holds TUI-specific settings.
type TUIConfig struct {
	Icons string `yaml:"icons,omitempty" toml:"icons,omitempty" jsonschema:"description=Icon set to use: nerd or ascii,enum=nerd,enum=ascii"`
	Theme string `yaml:"theme,omitempty" toml:"theme,omitempty" jsonschema:"description=Color theme for terminal interfaces,enum=kanagawa,enum=gruvbox,enum=terminal"`
}

// Config represents the course.yml configuration.
type Config struct {
	Course  CourseInfo `yaml:"course" toml:"course" jsonschema:"required,description=Course metadata"`
	BaseURL string     `yaml:"base_url,omitempty" toml:"base_url,omitempty" jsonschema:"description=URL prefix the site is served under (e.g. /hpc)"`

	ContentDir string `yaml:"content_dir,omitempty" toml:"content_dir,omitempty" jsonschema:"description=Directory holding markdown pages (default: content)"`
	LayoutsDir string `yaml:"layouts_dir,omitempty" toml:"layouts_dir,omitempty" jsonschema:"description=Directory holding layout templates (default: layouts)"`
	StaticDir  string `yaml:"static_dir,omitempty" toml:"static_dir,omitempty" jsonschema:"description=Directory copied verbatim into the output (default: static)"`
	OutputDir  string `yaml:"output_dir,omitempty" toml:"output_dir,omitempty" jsonschema:"description=Directory the site is written to (default: public)"`

	Tracks   []Track   `yaml:"tracks,omitempty" toml:"tracks,omitempty" jsonschema:"description=Course tracks shown in the legend and matched against page tags"`
	Sections []Section `yaml:"sections,omitempty" toml:"sections,omitempty" jsonschema:"description=Sidebar sections in display order"`

	Content  ContentConfig  `yaml:"content,omitempty" toml:"content,omitempty" jsonschema:"description=Content discovery settings"`
	Markdown MarkdownConfig `yaml:"markdown,omitempty" toml:"markdown,omitempty" jsonschema:"description=Markdown rendering settings"`
	Serve    ServeConfig    `yaml:"serve,omitempty" toml:"serve,omitempty" jsonschema:"description=Development server settings"`
	TUI      *TUIConfig     `yaml:"tui,omitempty" toml:"tui,omitempty" jsonschema:"description=TUI appearance settings"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" jsonschema:"-"`

	// projectRoot is the directory containing the loaded config file.
	// Empty when the config was parsed from bytes.
	projectRoot string
	// configPath is the path of the loaded config file.
	configPath string
}

// SetDefaults sets default values for configuration
func (c *Config) SetDefaults() {
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.LayoutsDir == "" {
		c.LayoutsDir = "layouts"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public"
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = 1313
	}
	if c.Markdown.HighlightStyle == "" {
		c.Markdown.HighlightStyle = "monokai"
	}

	// Normalize the base URL to "/prefix" form with no trailing slash.
	// An empty base URL means the site is served from the root.
	if c.BaseURL != "" {
		c.BaseURL = "/" + strings.Trim(c.BaseURL, "/")
		if c.BaseURL == "/" {
			c.BaseURL = ""
		}
	}
}

// DraftsEnabled reports whether draft pages should be built.
func (c *Config) DraftsEnabled() bool {
	return c.Content.Drafts != nil && *c.Content.Drafts
}

// HardWraps reports whether single newlines render as line breaks.
func (c *Config) HardWraps() bool {
	return c.Markdown.HardWraps != nil && *c.Markdown.HardWraps
}

// TOCEnabled reports whether a table of contents is extracted per page.
// Enabled by default.
func (c *Config) TOCEnabled() bool {
	return c.Markdown.TOC == nil || *c.Markdown.TOC
}

// ServeOpen reports whether the browser opens when the server starts.
func (c *Config) ServeOpen() bool {
	return c.Serve.Open != nil && *c.Serve.Open
}

// ProjectRoot returns the directory containing the loaded config file, or ""
// when the config was not loaded from disk.
func (c *Config) ProjectRoot() string {
	return c.projectRoot
}

// ConfigPath returns the path of the loaded config file, or "" when the
// config was not loaded from disk.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// AbsContentDir returns the content directory resolved against the project root.
func (c *Config) AbsContentDir() string {
	return c.absDir(c.ContentDir)
}

// AbsLayoutsDir returns the layouts directory resolved against the project root.
func (c *Config) AbsLayoutsDir() string {
	return c.absDir(c.LayoutsDir)
}

// AbsStaticDir returns the static directory resolved against the project root.
func (c *Config) AbsStaticDir() string {
	return c.absDir(c.StaticDir)
}

// AbsOutputDir returns the output directory resolved against the project root.
func (c *Config) AbsOutputDir() string {
	return c.absDir(c.OutputDir)
}

// StateDir returns the tool-owned .lectern directory for this project.
func (c *Config) StateDir() string {
	return filepath.Join(c.projectRoot, ".lectern")
}

func (c *Config) absDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.projectRoot, dir)
}

// SectionFor returns the section listing the given content-relative page
// path, or nil when the page is not listed in any section.
func (c *Config) SectionFor(page string) *Section {
	for i := range c.Sections {
		for _, p := range c.Sections[i].Pages {
			if p == page {
				return &c.Sections[i]
			}
		}
	}
	return nil
}

// TrackByID returns the track with the given id, or nil.
func (c *Config) TrackByID(id string) *Track {
	for i := range c.Tracks {
		if c.Tracks[i].ID == id {
			return &c.Tracks[i]
		}
	}
	return nil
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded course.yml into the provided target struct. The target must be a pointer.
// This provides a type-safe way for extensions to access their
// custom configuration sections.
//
// Example:
//
//	var logCfg logging.Config
//	err := cfg.UnmarshalExtension("logging", &logCfg)
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}
