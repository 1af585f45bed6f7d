package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/lectern/lectern/errors"
)

var sectionIDRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Course.Name) == "" {
		return errors.New(errors.ErrCodeConfigValidation, "course.name cannot be empty")
	}

	// Validate sections
	seenSections := make(map[string]bool)
	for _, section := range c.Sections {
		if err := validateSectionID(section.ID); err != nil {
			return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("invalid section id '%s'", section.ID)).
				WithDetail("section", section.ID)
		}
		if seenSections[section.ID] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("duplicate section id '%s'", section.ID)).
				WithDetail("section", section.ID)
		}
		seenSections[section.ID] = true

		if strings.TrimSpace(section.Name) == "" {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("section '%s' has no name", section.ID)).
				WithDetail("section", section.ID)
		}

		for _, page := range section.Pages {
			if err := validatePagePath(page); err != nil {
				return errors.Wrap(err, errors.ErrCodeConfigValidation, fmt.Sprintf("invalid page path in section '%s'", section.ID)).
					WithDetail("section", section.ID).
					WithDetail("page", page)
			}
		}
	}

	// Validate tracks
	seenTracks := make(map[string]bool)
	for _, track := range c.Tracks {
		if strings.TrimSpace(track.ID) == "" {
			return errors.New(errors.ErrCodeConfigValidation, "track id cannot be empty")
		}
		if seenTracks[track.ID] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("duplicate track id '%s'", track.ID)).
				WithDetail("track", track.ID)
		}
		seenTracks[track.ID] = true

		if strings.TrimSpace(track.Name) == "" {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("track '%s' has no name", track.ID)).
				WithDetail("track", track.ID)
		}
	}

	// Validate serve settings
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("serve.port %d is out of range", c.Serve.Port)).
			WithDetail("port", c.Serve.Port)
	}

	// Validate directories
	for field, dir := range map[string]string{
		"content_dir": c.ContentDir,
		"layouts_dir": c.LayoutsDir,
		"static_dir":  c.StaticDir,
		"output_dir":  c.OutputDir,
	} {
		if err := validatePath(field, dir); err != nil {
			return err
		}
	}

	return nil
}

// ValidateSemantics performs cross-field validation: each page may be listed
// in at most one section, and when the config was loaded from disk every
// listed page must exist under the content directory.
func (c *Config) ValidateSemantics() error {
	// A page belongs to exactly one section
	pageSection := make(map[string]string)
	for _, section := range c.Sections {
		for _, page := range section.Pages {
			if first, exists := pageSection[page]; exists {
				return errors.DuplicatePage(page, first, section.ID)
			}
			pageSection[page] = section.ID
		}
	}

	// Listed pages must exist on disk. Skipped when the config was parsed
	// from bytes and has no project root to resolve against.
	if c.projectRoot != "" {
		contentDir := c.AbsContentDir()
		for _, section := range c.Sections {
			for _, page := range section.Pages {
				path := filepath.Join(contentDir, filepath.FromSlash(page))
				if info, err := os.Stat(path); err != nil || info.IsDir() {
					return errors.PageNotFound(page, section.ID)
				}
			}
		}
	}

	return nil
}

func validateSectionID(id string) error {
	if !sectionIDRegex.MatchString(id) {
		return errors.New(errors.ErrCodeInvalidInput, "section id must contain only lowercase letters, numbers, underscores, and hyphens").
			WithDetail("id", id)
	}
	return nil
}

func validatePagePath(page string) error {
	if strings.TrimSpace(page) == "" {
		return errors.New(errors.ErrCodeConfigValidation, "page path cannot be empty")
	}
	if strings.HasPrefix(page, "/") {
		return errors.New(errors.ErrCodeConfigValidation, "page path must be relative to the content directory").
			WithDetail("page", page)
	}
	if strings.Contains(page, "\\") {
		return errors.New(errors.ErrCodeConfigValidation, "page path must use forward slashes").
			WithDetail("page", page)
	}
	for _, part := range strings.Split(page, "/") {
		if part == ".." {
			return errors.New(errors.ErrCodeConfigValidation, "page path cannot traverse outside the content directory").
				WithDetail("page", page)
		}
	}
	return nil
}

// validatePath validates that a path is appropriate for the current OS
func validatePath(fieldName, path string) error {
	if path == "" {
		return nil
	}

	// Check for Windows absolute paths on Unix systems
	if runtime.GOOS != "windows" && filepath.IsAbs(path) && strings.Contains(path, "\\") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Windows-style path on Unix system", fieldName)).
			WithDetail("path", path)
	}

	// Check for Unix absolute paths on Windows systems
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("%s contains Unix-style path on Windows system", fieldName)).
			WithDetail("path", path)
	}

	return nil
}
