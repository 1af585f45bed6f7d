// Package check implements `lectern check`: a non-building lint pass over a
// course project. Errors are problems that would fail or corrupt a build;
// warnings are course-consistency issues like duplicate exercise numbers or
// links to pages that do not exist.
package check

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/render"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one problem discovered in the project.
type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Path     string   `json:"path,omitempty"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	if f.Path != "" {
		return fmt.Sprintf("%s [%s] %s: %s", f.Severity, f.Code, f.Path, f.Message)
	}
	return fmt.Sprintf("%s [%s] %s", f.Severity, f.Code, f.Message)
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Checker runs all checks against one loaded configuration.
type Checker struct {
	cfg *config.Config
	log *logrus.Entry
}

// New creates a checker.
func New(cfg *config.Config) *Checker {
	return &Checker{cfg: cfg, log: logging.NewLogger("check")}
}

// Run executes every check and returns the findings, errors first. The
// returned error is reserved for failures of the checker itself.
func (c *Checker) Run(ctx context.Context) ([]Finding, error) {
	var findings []Finding

	findings = append(findings, c.checkSchema()...)

	renderer, layoutFindings := c.checkLayouts()
	findings = append(findings, layoutFindings...)

	pages, parseFindings, err := c.loadPages(ctx)
	if err != nil {
		return findings, err
	}
	findings = append(findings, parseFindings...)

	findings = append(findings, c.checkNumbering(pages)...)
	findings = append(findings, c.checkTags(pages)...)
	findings = append(findings, c.checkListing(pages)...)
	if renderer != nil {
		findings = append(findings, c.checkLinks(renderer, pages)...)
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity == SeverityError && findings[j].Severity != SeverityError
	})
	return findings, nil
}

func (c *Checker) checkSchema() []Finding {
	validator, err := config.NewSchemaValidator()
	if err != nil {
		return []Finding{{
			Severity: SeverityError,
			Code:     "config-schema",
			Message:  fmt.Sprintf("cannot load configuration schema: %v", err),
		}}
	}
	if err := validator.Validate(c.cfg); err != nil {
		return []Finding{{
			Severity: SeverityError,
			Code:     "config-schema",
			Path:     filepath.Base(c.cfg.ConfigPath()),
			Message:  err.Error(),
		}}
	}
	return nil
}

func (c *Checker) checkLayouts() (*render.Renderer, []Finding) {
	renderer, err := render.New(c.cfg)
	if err != nil {
		return nil, []Finding{{
			Severity: SeverityError,
			Code:     "layout",
			Path:     c.cfg.LayoutsDir,
			Message:  err.Error(),
		}}
	}
	return renderer, nil
}

// loadPages parses every content page, converting parse failures into
// findings instead of aborting.
func (c *Checker) loadPages(ctx context.Context) ([]*content.Page, []Finding, error) {
	scanner := &content.Scanner{
		ContentDir:  c.cfg.AbsContentDir(),
		ProjectRoot: c.cfg.ProjectRoot(),
		Patterns:    c.cfg.Content.Ignore,
	}
	paths, err := scanner.Scan()
	if err != nil {
		return nil, nil, err
	}

	var pages []*content.Page
	var findings []Finding
	for _, rel := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		page, err := content.LoadPage(c.cfg.AbsContentDir(), rel, c.cfg.BaseURL)
		if err != nil {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Code:     "page-parse",
				Path:     rel,
				Message:  err.Error(),
			})
			continue
		}
		pages = append(pages, page)
	}
	return pages, findings, nil
}

// checkNumbering warns about duplicate exercise numbers, in-depth numbers,
// and chapter.section pairs. Numbering is free-form, so duplicates are legal
// but usually an authoring mistake.
func (c *Checker) checkNumbering(pages []*content.Page) []Finding {
	exercises := make(map[string][]string)
	indepths := make(map[string][]string)
	chapters := make(map[string][]string)

	for _, page := range pages {
		if page.ExerciseNumber != "" {
			exercises[page.ExerciseNumber] = append(exercises[page.ExerciseNumber], page.ID)
		}
		if page.IndepthNumber != "" {
			indepths[page.IndepthNumber] = append(indepths[page.IndepthNumber], page.ID)
		}
		if page.Chapter != "" && page.Section != "" {
			key := page.Chapter + "." + page.Section
			chapters[key] = append(chapters[key], page.ID)
		}
	}

	var findings []Finding
	findings = append(findings, duplicateFindings("duplicate-exercise-number", "exercise number", exercises)...)
	findings = append(findings, duplicateFindings("duplicate-indepth-number", "in-depth number", indepths)...)
	findings = append(findings, duplicateFindings("duplicate-chapter-section", "chapter.section", chapters)...)
	return findings
}

func duplicateFindings(code, label string, byKey map[string][]string) []Finding {
	keys := make([]string, 0, len(byKey))
	for key, ids := range byKey {
		if len(ids) > 1 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var findings []Finding
	for _, key := range keys {
		ids := byKey[key]
		sort.Strings(ids)
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Code:     code,
			Message: fmt.Sprintf("%s %s used by %d pages: %s",
				label, key, len(ids), strings.Join(ids, ", ")),
		})
	}
	return findings
}

// checkTags warns about tags that do not name a configured track. The check
// only applies when tracks are declared.
func (c *Checker) checkTags(pages []*content.Page) []Finding {
	if len(c.cfg.Tracks) == 0 {
		return nil
	}

	var findings []Finding
	for _, page := range pages {
		for _, tag := range page.Tags {
			if c.cfg.TrackByID(tag) == nil {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Code:     "unknown-tag",
					Path:     page.ID,
					Message:  fmt.Sprintf("tag '%s' does not name a configured track", tag),
				})
			}
		}
	}
	return findings
}

// checkListing warns about pages on disk that no section lists. index.md is
// the landing page and is exempt.
func (c *Checker) checkListing(pages []*content.Page) []Finding {
	var findings []Finding
	for _, page := range pages {
		if page.ID == "index.md" {
			continue
		}
		if c.cfg.SectionFor(page.ID) == nil {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Code:     "unlisted-page",
				Path:     page.ID,
				Message:  "page is not listed in any section",
			})
		}
	}
	return findings
}

// checkLinks renders each page body and verifies that internal links point
// at a built page or a static asset.
func (c *Checker) checkLinks(renderer *render.Renderer, pages []*content.Page) []Finding {
	known := c.knownTargets(pages)

	var findings []Finding
	for _, page := range pages {
		html, err := renderer.Markdown(page.Body)
		if err != nil {
			// Render failures surface at build time; skip link checking here.
			c.log.WithError(err).WithField("page", page.ID).Debug("Skipping link check")
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
		if err != nil {
			continue
		}

		doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
			href, _ := sel.Attr("href")
			if !internalLink(href) {
				return
			}
			if !known[normalizeTarget(href)] {
				findings = append(findings, Finding{
					Severity: SeverityWarning,
					Code:     "broken-link",
					Path:     page.ID,
					Message:  fmt.Sprintf("link target '%s' does not exist", href),
				})
			}
		})
	}
	return findings
}

// knownTargets collects every URL path the built site will answer: page
// hrefs and static assets, both under the configured base URL.
func (c *Checker) knownTargets(pages []*content.Page) map[string]bool {
	known := make(map[string]bool)
	base := strings.TrimSuffix(c.cfg.BaseURL, "/")
	known[normalizeTarget(base+"/")] = true

	for _, page := range pages {
		known[normalizeTarget(page.Href)] = true
	}

	staticDir := c.cfg.AbsStaticDir()
	filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return nil
		}
		known[normalizeTarget(base+"/"+filepath.ToSlash(rel))] = true
		return nil
	})
	return known
}

// internalLink reports whether href is a site-relative link worth checking.
func internalLink(href string) bool {
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	if strings.Contains(href, "://") || strings.HasPrefix(href, "mailto:") {
		return false
	}
	return strings.HasPrefix(href, "/")
}

func normalizeTarget(href string) string {
	if idx := strings.IndexAny(href, "#?"); idx != -1 {
		href = href[:idx]
	}
	href = strings.TrimSuffix(href, "/")
	if href == "" {
		return "/"
	}
	return href
}
