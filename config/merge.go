package config

import (
	"os"
	"path/filepath"
)

// LoadWithOverrides loads configuration from a base file and applies any
// course.override files found next to it.
func LoadWithOverrides(baseFile string) (*Config, error) {
	// Load base configuration without defaults or validation applied yet
	config, err := parseConfigFile(baseFile)
	if err != nil {
		return nil, err
	}

	// Look for override files
	dir := filepath.Dir(baseFile)
	overrides := []string{
		filepath.Join(dir, "course.override.yml"),
		filepath.Join(dir, "course.override.yaml"),
		filepath.Join(dir, ".course.override.yml"),
		filepath.Join(dir, ".course.override.yaml"),
	}

	for _, overrideFile := range overrides {
		if _, err := os.Stat(overrideFile); err == nil {
			override, err := parseConfigFile(overrideFile)
			if err != nil {
				return nil, err
			}

			config = mergeConfigs(config, override)
		}
	}

	config.projectRoot = dir
	config.configPath = baseFile
	config.SetDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// mergeConfigs merges override configuration into base. Scalars win when set,
// slices replace wholesale, and extension maps merge key by key.
func mergeConfigs(base, override *Config) *Config {
	result := *base

	result.Course = mergeCourse(result.Course, override.Course)

	if override.BaseURL != "" {
		result.BaseURL = override.BaseURL
	}
	if override.ContentDir != "" {
		result.ContentDir = override.ContentDir
	}
	if override.LayoutsDir != "" {
		result.LayoutsDir = override.LayoutsDir
	}
	if override.StaticDir != "" {
		result.StaticDir = override.StaticDir
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}

	if len(override.Tracks) > 0 {
		result.Tracks = override.Tracks
	}
	if len(override.Sections) > 0 {
		result.Sections = override.Sections
	}

	if len(override.Content.Ignore) > 0 {
		result.Content.Ignore = override.Content.Ignore
	}
	if override.Content.Drafts != nil {
		result.Content.Drafts = override.Content.Drafts
	}

	if override.Markdown.HighlightStyle != "" {
		result.Markdown.HighlightStyle = override.Markdown.HighlightStyle
	}
	if override.Markdown.HardWraps != nil {
		result.Markdown.HardWraps = override.Markdown.HardWraps
	}
	if override.Markdown.TOC != nil {
		result.Markdown.TOC = override.Markdown.TOC
	}

	if override.Serve.Port != 0 {
		result.Serve.Port = override.Serve.Port
	}
	if override.Serve.Open != nil {
		result.Serve.Open = override.Serve.Open
	}

	if override.TUI != nil {
		if result.TUI == nil {
			result.TUI = override.TUI
		} else {
			merged := *result.TUI
			if override.TUI.Icons != "" {
				merged.Icons = override.TUI.Icons
			}
			if override.TUI.Theme != "" {
				merged.Theme = override.TUI.Theme
			}
			result.TUI = &merged
		}
	}

	// Merge extensions
	if override.Extensions != nil {
		if result.Extensions == nil {
			result.Extensions = make(map[string]interface{})
		}
		for key, value := range override.Extensions {
			// If both base and override have the same extension key, merge them
			if baseValue, exists := result.Extensions[key]; exists {
				if baseMap, baseOk := baseValue.(map[string]interface{}); baseOk {
					if overrideMap, overrideOk := value.(map[string]interface{}); overrideOk {
						// Merge the maps
						mergedMap := make(map[string]interface{})
						for k, v := range baseMap {
							mergedMap[k] = v
						}
						for k, v := range overrideMap {
							mergedMap[k] = v
						}
						result.Extensions[key] = mergedMap
						continue
					}
				}
			}
			// Otherwise just replace
			result.Extensions[key] = value
		}
	}

	return &result
}

func mergeCourse(base, override CourseInfo) CourseInfo {
	result := base

	if override.Name != "" {
		result.Name = override.Name
	}
	if override.Subtitle != "" {
		result.Subtitle = override.Subtitle
	}
	if override.Institution != "" {
		result.Institution = override.Institution
	}
	if override.InstitutionURL != "" {
		result.InstitutionURL = override.InstitutionURL
	}
	if len(override.Authors) > 0 {
		result.Authors = override.Authors
	}

	return result
}
