package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/testutil"
)

func newTestRenderer(t *testing.T) (*Renderer, *config.Config) {
	t.Helper()
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)
	r, err := New(cfg)
	require.NoError(t, err)
	return r, cfg
}

func loadPage(t *testing.T, cfg *config.Config, rel string) *content.Page {
	t.Helper()
	page, err := content.LoadPage(cfg.AbsContentDir(), rel, cfg.BaseURL)
	require.NoError(t, err)
	return page
}

func sidebarFor(cfg *config.Config, pages []*content.Page, currentID string) *nav.Sidebar {
	lookup := nav.PageLookup{}
	var sections []nav.SectionMeta
	for _, s := range cfg.Sections {
		sections = append(sections, nav.SectionMeta{ID: s.ID, Name: s.Name})
		for _, id := range s.Pages {
			for _, p := range pages {
				if p.ID == id {
					lookup[s.ID] = append(lookup[s.ID], p)
				}
			}
		}
	}
	return nav.Build(sections, lookup, currentID)
}

func TestPageRendersFullDocument(t *testing.T) {
	r, cfg := newTestRenderer(t)
	intro := loadPage(t, cfg, "mod1/intro.md")
	debugging := loadPage(t, cfg, "mod1/debugging.md")
	pages := []*content.Page{intro, debugging}

	out, err := r.Page(intro, sidebarFor(cfg, pages, intro.ID))
	require.NoError(t, err)
	html := string(out)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<title>Introduction · Scientific Computing</title>")
	assert.Contains(t, html, `class="course-nav"`)
	assert.Contains(t, html, "<h1 id=\"introduction\">Introduction</h1>")
	assert.Contains(t, html, "Test University")
}

func TestSidebarMarkupHooks(t *testing.T) {
	r, cfg := newTestRenderer(t)
	intro := loadPage(t, cfg, "mod1/intro.md")
	debugging := loadPage(t, cfg, "mod1/debugging.md")
	pages := []*content.Page{intro, debugging}

	out, err := r.Page(debugging, sidebarFor(cfg, pages, debugging.ID))
	require.NoError(t, err)
	html := string(out)

	// Current page carries the active class and its category.
	assert.Contains(t, html, `class="nav-entry exercise active"`)
	assert.Contains(t, html, `<span class="nav-label">Exercise 3:</span> Debugging`)
	// The other entry stays inactive with its tag class.
	assert.Contains(t, html, `class="nav-entry lecture tag_basic"`)
	assert.Contains(t, html, `<span class="nav-label">1.1</span> Introduction`)
}

func TestMissingOptionalFrontMatterDegrades(t *testing.T) {
	r, cfg := newTestRenderer(t)

	page, err := content.ParsePage("mod1/03_pointers.md", "", []byte("just a body\n"), cfg.BaseURL)
	require.NoError(t, err)

	out, err := r.Page(page, sidebarFor(cfg, []*content.Page{page}, page.ID))
	require.NoError(t, err)
	html := string(out)

	// Title falls back to the filename stem, description meta is omitted.
	assert.Contains(t, html, "<title>03_pointers · Scientific Computing</title>")
	assert.NotContains(t, html, `name="description"`)
}

func TestPerPageLayoutSelection(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WriteFile(t, root, "layouts/slides.html",
		"<!DOCTYPE html>\n<div class=\"slides\">{{ .Content }}</div>\n")
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)
	r, err := New(cfg)
	require.NoError(t, err)

	page, err := content.ParsePage("deck.md", "", []byte("---\nlayout: slides.html\n---\n# Deck\n"), "")
	require.NoError(t, err)

	out, err := r.Page(page, nav.Build(nil, nil, page.ID))
	require.NoError(t, err)
	assert.Contains(t, string(out), `class="slides"`)

	// An unknown layout name falls back to base.html.
	page2, err := content.ParsePage("other.md", "", []byte("---\nlayout: nope.html\n---\nbody\n"), "")
	require.NoError(t, err)
	out2, err := r.Page(page2, nav.Build(nil, nil, page2.ID))
	require.NoError(t, err)
	assert.Contains(t, string(out2), `class="course-nav"`)
}

func TestMissingBaseLayout(t *testing.T) {
	root := testutil.NewCourseProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "layouts", "base.html")))
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base.html")
}

func TestExtractTOC(t *testing.T) {
	html := `<h1 id="top">Title</h1>
<h2 id="first">First section</h2>
<p>text</p>
<h3 id="detail">A detail</h3>
<h2 id="second">Second section</h2>
<h2>No id, skipped</h2>`

	toc, err := ExtractTOC(html)
	require.NoError(t, err)

	want := []Heading{
		{ID: "first", Text: "First section", Level: 2},
		{ID: "detail", Text: "A detail", Level: 3},
		{ID: "second", Text: "Second section", Level: 2},
	}
	assert.Equal(t, want, toc)
}

func TestYouTubeEmbedURL(t *testing.T) {
	d := &PageData{Page: &content.Page{YouTubeID: "abc123"}}
	assert.Equal(t, "https://www.youtube-nocookie.com/embed/abc123", d.YouTubeEmbedURL())

	d = &PageData{Page: &content.Page{}}
	assert.Equal(t, "", d.YouTubeEmbedURL())
}

func TestMarkdownRendererOptions(t *testing.T) {
	r, cfg := newTestRenderer(t)

	// Raw HTML passes through unescaped
	out, err := r.Markdown([]byte("<details><summary>hint</summary></details>\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<details>")

	// Hard wraps are off by default and honored when configured
	out, err = r.Markdown([]byte("line one\nline two\n"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<br")

	wraps := true
	cfg.Markdown.HardWraps = &wraps
	r2, err := New(cfg)
	require.NoError(t, err)
	out, err = r2.Markdown([]byte("line one\nline two\n"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<br")
}

func TestSyntaxHighlighting(t *testing.T) {
	r, _ := newTestRenderer(t)
	out, err := r.Markdown([]byte("```c\nint main(void) { return 0; }\n```\n"))
	require.NoError(t, err)
	// Chroma emits inline-styled spans instead of a bare <pre><code> block.
	assert.True(t, strings.Contains(string(out), "chroma") || strings.Contains(string(out), "<span"),
		"expected highlighted output, got: %s", out)
}
