package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/tui/pagenav"
)

// NewPagesCmd creates the `pages` command.
func NewPagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Browse course pages in an interactive navigator",
		Long: `Lists every page grouped by section. In a terminal this opens an
interactive, filterable table; selecting a page prints its source path, so
it composes with an editor:

  vim "$(lectern pages)"

Pages on disk but not listed in any section appear under "(unlisted)".

Examples:
  # Interactive navigator
  lectern pages

  # Static table (also used automatically when piped)
  lectern pages --plain

  # Structured listing
  lectern pages --json
`,
		RunE: runPagesE,
	}

	cmd.Flags().Bool("plain", false, "Print a static table instead of the interactive navigator")

	return cmd
}

func runPagesE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	sections, lookup, unlisted, err := collectPages(cfg)
	if err != nil {
		return err
	}

	if opts.JSONOutput {
		return printPagesJSON(cmd, sections, lookup, unlisted)
	}

	plain, _ := cmd.Flags().GetBool("plain")
	interactive := !plain && isatty.IsTerminal(os.Stdout.Fd())

	if !interactive {
		model := pagenav.New(sections, lookup, unlisted)
		fmt.Fprint(cmd.OutOrStdout(), model.PlainTable())
		return nil
	}

	selected, err := pagenav.Run(sections, lookup, unlisted)
	if err != nil {
		return err
	}
	if selected != nil {
		fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(cfg.AbsContentDir(), filepath.FromSlash(selected.ID)))
	}
	return nil
}

// collectPages loads every page and groups it by declared section, keeping
// course.yml order. Drafts are included: the navigator marks them instead of
// hiding them.
func collectPages(cfg *config.Config) ([]nav.SectionMeta, nav.PageLookup, []*content.Page, error) {
	scanner := &content.Scanner{
		ContentDir:  cfg.AbsContentDir(),
		ProjectRoot: cfg.ProjectRoot(),
		Patterns:    cfg.Content.Ignore,
	}
	paths, err := scanner.Scan()
	if err != nil {
		return nil, nil, nil, err
	}

	byID := make(map[string]*content.Page, len(paths))
	order := make([]*content.Page, 0, len(paths))
	for _, rel := range paths {
		page, err := content.LoadPage(cfg.AbsContentDir(), rel, cfg.BaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		byID[page.ID] = page
		order = append(order, page)
	}

	var sections []nav.SectionMeta
	lookup := nav.PageLookup{}
	listed := make(map[string]bool)
	for _, section := range cfg.Sections {
		sections = append(sections, nav.SectionMeta{ID: section.ID, Name: section.Name})
		for _, id := range section.Pages {
			page, ok := byID[id]
			if !ok {
				continue
			}
			lookup[section.ID] = append(lookup[section.ID], page)
			listed[id] = true
		}
	}

	var unlisted []*content.Page
	for _, page := range order {
		if !listed[page.ID] {
			unlisted = append(unlisted, page)
		}
	}
	return sections, lookup, unlisted, nil
}

func printPagesJSON(cmd *cobra.Command, sections []nav.SectionMeta, lookup nav.PageLookup, unlisted []*content.Page) error {
	type pageJSON struct {
		ID       string   `json:"id"`
		Title    string   `json:"title"`
		Category string   `json:"category"`
		Label    string   `json:"label"`
		Href     string   `json:"href"`
		Tags     []string `json:"tags,omitempty"`
		Draft    bool     `json:"draft,omitempty"`
	}
	type sectionJSON struct {
		ID    string     `json:"id"`
		Name  string     `json:"name"`
		Pages []pageJSON `json:"pages"`
	}

	toJSON := func(page *content.Page) pageJSON {
		return pageJSON{
			ID:       page.ID,
			Title:    page.DisplayTitle(),
			Category: string(page.Category()),
			Label:    nav.Label(page),
			Href:     page.Href,
			Tags:     page.Tags,
			Draft:    page.Draft,
		}
	}

	var out []sectionJSON
	for _, meta := range sections {
		section := sectionJSON{ID: meta.ID, Name: meta.Name, Pages: []pageJSON{}}
		for _, page := range lookup[meta.ID] {
			section.Pages = append(section.Pages, toJSON(page))
		}
		out = append(out, section)
	}
	if len(unlisted) > 0 {
		section := sectionJSON{ID: "", Name: "(unlisted)"}
		for _, page := range unlisted {
			section.Pages = append(section.Pages, toJSON(page))
		}
		out = append(out, section)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
