// Package convert implements `lectern import`: turning existing HTML course
// material into markdown content pages with synthesized front-matter. The
// usual source is a legacy hand-written course site being migrated.
package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/logging"
)

// Result describes one imported page.
type Result struct {
	Source     string
	OutputPath string
	Title      string
}

// Importer converts HTML documents into content pages.
type Importer struct {
	cfg       *config.Config
	converter *md.Converter
	log       *logrus.Entry
}

// NewImporter creates an importer for the given configuration.
func NewImporter(cfg *config.Config) *Importer {
	converter := md.NewConverter("", true, nil)
	return &Importer{
		cfg:       cfg,
		converter: converter,
		log:       logging.NewLogger("import"),
	}
}

// ImportFile converts one HTML file into a content page at relPath (relative
// to the content directory, slash-separated). When relPath is empty the
// output name is derived from the source filename.
func (im *Importer) ImportFile(sourcePath, relPath string) (*Result, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.ImportFailed(sourcePath, err)
	}

	if relPath == "" {
		stem := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
		relPath = stem + ".md"
	}
	if !strings.HasSuffix(relPath, ".md") {
		relPath += ".md"
	}

	page, err := im.Convert(data)
	if err != nil {
		return nil, errors.ImportFailed(sourcePath, err)
	}

	out := filepath.Join(im.cfg.AbsContentDir(), filepath.FromSlash(relPath))
	if _, err := os.Stat(out); err == nil {
		return nil, errors.ImportFailed(sourcePath,
			fmt.Errorf("content page already exists: %s", relPath))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, errors.OutputWrite(out, err)
	}
	if err := os.WriteFile(out, []byte(page.Source()), 0644); err != nil {
		return nil, errors.OutputWrite(out, err)
	}

	im.log.WithField("source", sourcePath).WithField("page", relPath).Info("Imported page")
	return &Result{Source: sourcePath, OutputPath: out, Title: page.Title}, nil
}

// ConvertedPage is the intermediate form between HTML input and the written
// markdown file.
type ConvertedPage struct {
	Title       string
	Description string
	Markdown    string
}

// Source renders the page as a markdown file with YAML front-matter.
func (p *ConvertedPage) Source() string {
	var b strings.Builder
	b.WriteString("---\n")
	if p.Title != "" {
		fmt.Fprintf(&b, "title: %q\n", p.Title)
	}
	if p.Description != "" {
		fmt.Fprintf(&b, "description: %q\n", p.Description)
	}
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(p.Markdown))
	b.WriteString("\n")
	return b.String()
}

// Convert extracts metadata and the main content region from an HTML
// document and converts the content to markdown. The region is the first of
// <main>, <article>, or <body> that exists.
func (im *Importer) Convert(html []byte) (*ConvertedPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(html)))
	if err != nil {
		return nil, err
	}

	page := &ConvertedPage{
		Title:       extractTitle(doc),
		Description: extractDescription(doc),
	}

	region := doc.Find("main").First()
	if region.Length() == 0 {
		region = doc.Find("article").First()
	}
	if region.Length() == 0 {
		region = doc.Find("body").First()
	}
	if region.Length() == 0 {
		return nil, fmt.Errorf("document has no content region")
	}

	// The page title becomes front-matter; drop the leading h1 so it does
	// not render twice.
	if h1 := region.Find("h1").First(); h1.Length() > 0 && page.Title != "" {
		h1.Remove()
	}

	markdown := im.converter.Convert(region)
	if strings.TrimSpace(markdown) == "" {
		return nil, fmt.Errorf("document converted to empty markdown")
	}
	page.Markdown = markdown
	return page, nil
}

// extractTitle prefers the first h1 over <title>, which usually carries site
// branding suffixes.
func extractTitle(doc *goquery.Document) string {
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	// Strip " | Site Name" / " - Site Name" decorations.
	for _, sep := range []string{" | ", " – ", " - ", " · "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
			break
		}
	}
	return strings.TrimSpace(title)
}

func extractDescription(doc *goquery.Document) string {
	desc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")
	return strings.TrimSpace(desc)
}
