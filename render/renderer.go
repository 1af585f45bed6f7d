// Package render turns parsed pages into final HTML documents. It owns the
// goldmark markdown pipeline, the user layout templates, and the embedded
// chrome fragments (sidebar, head, footer, track legend) handed to layouts
// as pre-rendered HTML.
package render

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/version"
)

//go:embed templates/*.tmpl
var chromeFS embed.FS

// Renderer renders pages for one build. It is safe for concurrent use: all
// fields are read-only after New, and template execution is re-entrant.
type Renderer struct {
	cfg      *config.Config
	markdown goldmark.Markdown
	layouts  *template.Template
	chrome   *template.Template
}

// New creates a renderer from the course configuration, loading the user
// layouts and the embedded chrome templates.
func New(cfg *config.Config) (*Renderer, error) {
	layouts, err := loadLayouts(cfg.AbsLayoutsDir())
	if err != nil {
		return nil, err
	}

	chrome, err := template.ParseFS(chromeFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTemplateParse, "failed to parse embedded chrome templates")
	}

	return &Renderer{
		cfg:      cfg,
		markdown: newMarkdown(cfg),
		layouts:  layouts,
		chrome:   chrome,
	}, nil
}

// Page renders a single page against its per-render sidebar and returns the
// complete HTML document.
func (r *Renderer) Page(page *content.Page, sidebar *nav.Sidebar) ([]byte, error) {
	body, err := r.Markdown(page.Body)
	if err != nil {
		return nil, errors.ContentParse(page.ID, err)
	}
	page.HTML = template.HTML(body)

	data, err := r.pageData(page, sidebar)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	layout := r.layoutFor(page.Layout)
	if err := r.layouts.ExecuteTemplate(&out, layout, data); err != nil {
		return nil, errors.TemplateExec(page.ID, err)
	}
	return out.Bytes(), nil
}

// pageData assembles everything a layout can reference, including the
// pre-rendered chrome fragments.
func (r *Renderer) pageData(page *content.Page, sidebar *nav.Sidebar) (*PageData, error) {
	sidebarHTML, err := r.chromeFragment("sidebar.html.tmpl", sidebar)
	if err != nil {
		return nil, errors.TemplateExec(page.ID, err)
	}

	headHTML, err := r.chromeFragment("head.html.tmpl", headData{
		PageTitle:   page.DisplayTitle(),
		CourseName:  r.cfg.Course.Name,
		Description: page.Description,
		BaseURL:     r.cfg.BaseURL,
		Version:     version.Version,
	})
	if err != nil {
		return nil, errors.TemplateExec(page.ID, err)
	}

	footerHTML, err := r.chromeFragment("footer.html.tmpl", r.cfg.Course)
	if err != nil {
		return nil, errors.TemplateExec(page.ID, err)
	}

	tracksHTML, err := r.chromeFragment("tracks.html.tmpl", r.cfg)
	if err != nil {
		return nil, errors.TemplateExec(page.ID, err)
	}

	var toc []Heading
	if r.cfg.TOCEnabled() {
		toc, err = ExtractTOC(string(page.HTML))
		if err != nil {
			return nil, errors.ContentParse(page.ID, err)
		}
	}

	return &PageData{
		Course:      r.cfg.Course,
		Config:      r.cfg,
		Page:        page,
		Sidebar:     sidebar,
		SidebarHTML: sidebarHTML,
		HeadHTML:    headHTML,
		FooterHTML:  footerHTML,
		TracksHTML:  tracksHTML,
		Content:     page.HTML,
		TOC:         toc,
	}, nil
}

func (r *Renderer) chromeFragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.chrome.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// headData feeds the embedded head fragment.
type headData struct {
	PageTitle   string
	CourseName  string
	Description string
	BaseURL     string
	Version     string
}
