package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/lectern/lectern/command"
	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/errors"
)

// PageOptions describe the page to scaffold. Zero-valued fields are left out
// of the generated front-matter.
type PageOptions struct {
	Title          string
	Description    string
	Tags           []string
	Chapter        string
	Section        string
	ExerciseNumber string
	IndepthNumber  string
	YouTubeID      string
	Draft          bool

	// SectionID, when set, appends the page to that section in course.yml.
	SectionID string
}

var titleCaser = cases.Title(language.English)

// NewPage creates a content page at relPath (relative to the content
// directory, slash-separated) and optionally registers it in course.yml.
// The created absolute path is returned.
func NewPage(cfg *config.Config, relPath string, opts PageOptions) (string, error) {
	sb := command.NewSafeBuilder()
	if err := sb.Validate("pagePath", relPath); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid page path")
	}
	if !strings.HasSuffix(relPath, ".md") {
		relPath += ".md"
	}
	if opts.SectionID != "" {
		if err := sb.Validate("sectionID", opts.SectionID); err != nil {
			return "", errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid section id")
		}
		if cfg.SectionFor(relPath) != nil {
			return "", errors.DuplicatePage(relPath, cfg.SectionFor(relPath).ID, opts.SectionID)
		}
	}

	path := filepath.Join(cfg.AbsContentDir(), filepath.FromSlash(relPath))
	if _, err := os.Stat(path); err == nil {
		return "", errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("page already exists: %s", relPath))
	}

	if opts.Title == "" {
		opts.Title = SuggestTitle(relPath)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.OutputWrite(path, err)
	}
	if err := os.WriteFile(path, []byte(pageSource(opts)), 0644); err != nil {
		return "", errors.OutputWrite(path, err)
	}

	if opts.SectionID != "" {
		if err := appendToSection(cfg.ConfigPath(), opts.SectionID, relPath); err != nil {
			return path, err
		}
	}
	return path, nil
}

// SuggestTitle derives a human title from a page path: the filename stem
// with separators spaced out and title casing applied.
func SuggestTitle(relPath string) string {
	stem := strings.TrimSuffix(filepath.Base(filepath.FromSlash(relPath)), ".md")
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return titleCaser.String(stem)
}

func pageSource(opts PageOptions) string {
	var b strings.Builder
	b.WriteString("---\n")
	writeField := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", key, quoteIfNeeded(value))
		}
	}
	writeField("title", opts.Title)
	writeField("description", opts.Description)
	if len(opts.Tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(opts.Tags, ", "))
	}
	writeField("chapter", opts.Chapter)
	writeField("section", opts.Section)
	writeField("exercise_number", opts.ExerciseNumber)
	writeField("indepth_number", opts.IndepthNumber)
	writeField("youtube_id", opts.YouTubeID)
	if opts.Draft {
		b.WriteString("draft: true\n")
	}
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n", opts.Title)
	return b.String()
}

// quoteIfNeeded wraps values yaml would misread as non-strings.
func quoteIfNeeded(value string) string {
	if strings.ContainsAny(value, ":#[]{}\"'") || strings.TrimSpace(value) != value {
		return fmt.Sprintf("%q", value)
	}
	return value
}

// appendToSection adds the page to the section's pages list by editing the
// yaml document tree, preserving comments and key order in course.yml.
func appendToSection(configPath, sectionID, relPath string) error {
	if filepath.Ext(configPath) == ".toml" {
		return errors.New(errors.ErrCodeInvalidInput,
			"cannot edit TOML configuration automatically; add the page to course.toml by hand")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read configuration")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse configuration")
	}
	if len(doc.Content) == 0 {
		return errors.ConfigInvalid("empty configuration document")
	}

	section := findSectionNode(doc.Content[0], sectionID)
	if section == nil {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("section '%s' not found in %s", sectionID, filepath.Base(configPath)))
	}

	pages := mappingValue(section, "pages")
	if pages == nil {
		pages = &yaml.Node{Kind: yaml.SequenceNode}
		section.Content = append(section.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "pages"},
			pages)
	}
	pages.Content = append(pages.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: relPath})

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to serialize configuration")
	}
	if err := os.WriteFile(configPath, out, 0644); err != nil {
		return errors.OutputWrite(configPath, err)
	}
	return nil
}

// findSectionNode locates the mapping node of the section with the given id.
func findSectionNode(root *yaml.Node, sectionID string) *yaml.Node {
	sections := mappingValue(root, "sections")
	if sections == nil || sections.Kind != yaml.SequenceNode {
		return nil
	}
	for _, section := range sections.Content {
		if id := mappingValue(section, "id"); id != nil && id.Value == sectionID {
			return section
		}
	}
	return nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
