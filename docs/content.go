package docs

var topics = []Topic{
	{
		Name:    "quickstart",
		Title:   "Quick Start",
		Summary: "Create and serve a course site in five minutes",
		Content: topicQuickstart,
	},
	{
		Name:    "config",
		Title:   "Configuration Reference",
		Summary: "course.yml fields, defaults, and overrides",
		Content: topicConfig,
	},
	{
		Name:    "frontmatter",
		Title:   "Front-matter Reference",
		Summary: "Page metadata fields and how they drive the sidebar",
		Content: topicFrontmatter,
	},
	{
		Name:    "navigation",
		Title:   "Sidebar and Navigation",
		Summary: "Sections, categories, labels, and CSS hooks",
		Content: topicNavigation,
	},
	{
		Name:    "layouts",
		Title:   "Layouts and Templates",
		Summary: "Writing base.html and per-page layouts",
		Content: topicLayouts,
	},
	{
		Name:    "importing",
		Title:   "Importing Existing Material",
		Summary: "Converting legacy HTML pages into content",
		Content: topicImporting,
	},
}

const topicQuickstart = `# Quick Start

1. Create a project:

    mkdir my-course && cd my-course
    lectern init --name "My Course"

   This writes course.yml, a welcome page, a base layout, and a stylesheet.

2. Start the development server:

    lectern serve

   The site is served on http://localhost:1313/ and rebuilds whenever
   content, layouts, or static files change. Open tabs reload themselves.

3. Add pages:

    lectern new mod1/intro.md --section mod1 --title "Introduction"

4. Publish:

    lectern build

   The finished site is written to public/. Copy it to any static host.
`

const topicConfig = `# Configuration Reference

Lectern looks for course.yml (or course.yaml, course.toml) in the current
directory and its parents. A course.override.yml next to it overrides
individual settings and is usually kept out of version control.

    course:
      name: Scientific Computing     # required
      subtitle: Winter 2026
      institution: Example University
      institution_url: https://example.edu
      authors:
        - name: A. Teacher
          url: https://example.edu/~teacher

    base_url: /sc/                   # prefix when not serving from /
    content_dir: content             # defaults shown
    layouts_dir: layouts
    static_dir: static
    output_dir: public

    tracks:                          # optional difficulty tracks
      - id: basic
        name: Basic Track

    sections:                        # sidebar structure, in order
      - id: mod1
        name: Module 1
        pages:
          - mod1/intro.md

    content:
      drafts: false                  # build pages marked draft: true
      ignore:                        # glob patterns to skip
        - "**/notes-*.md"

    markdown:
      highlight_style: monokai
      hard_wraps: false
      toc: false

    serve:
      port: 1313
      open: false

Values support ${VAR} and ${VAR:-default} environment expansion.
`

const topicFrontmatter = `# Front-matter Reference

Pages start with a YAML block between --- markers (TOML between +++ also
works):

    ---
    title: Debugging
    description: Finding bugs with gdb and valgrind.
    tags: [basic]
    chapter: 2
    section: 3
    exercise_number: 3
    indepth_number: 1
    youtube_id: dQw4w9WgXcQ
    draft: false
    layout: wide.html
    ---

All fields are optional. A page without a title falls back to its filename
stem. Numbering fields are free-form strings; "2" and "2b" are both fine.

The category of a page follows from its fields, checked in order:

  - exercise_number set    -> exercise
  - indepth_number set     -> indepth
  - otherwise              -> lecture

Unknown front-matter keys are kept and exposed to layouts via .Page.Extra.
`

const topicNavigation = `# Sidebar and Navigation

The sidebar is generated from the sections list in course.yml. Every page
render gets its own sidebar with exactly that page marked active.

Entry labels depend on the category:

  - exercises      "Exercise 3: Debugging"
  - in-depth       "In-depth 1: Cache Effects"
  - lectures       "2.3" from chapter and section, when both are set

CSS hooks on each entry:

  - category class: lecture, exercise, or indepth
  - active on the current page
  - one class per tag, sanitized: "advanced mpi" becomes tag_advanced_mpi

Pages on disk that no section lists still build at their URL; they simply
do not appear in the sidebar. lectern check warns about them.
`

const topicLayouts = `# Layouts and Templates

Layouts are Go html/template files in layouts/. base.html is required and
renders every page unless front-matter names another layout.

The data passed to a layout includes:

  - .Content       the rendered page body (HTML)
  - .Page          the page with all front-matter fields
  - .Course        course metadata from course.yml
  - .Sidebar       the structured sidebar, for custom markup
  - .SidebarHTML   pre-rendered sidebar, easiest to start with
  - .HeadHTML      title, description, and stylesheet tags
  - .FooterHTML    authors and institution
  - .TracksHTML    the track legend
  - .TOC           h2/h3 headings when markdown.toc is enabled

A minimal base.html:

    <!DOCTYPE html>
    <html>
    <head>{{ .HeadHTML }}</head>
    <body>
    {{ .SidebarHTML }}
    <main>{{ .Content }}</main>
    {{ .FooterHTML }}
    </body>
    </html>
`

const topicImporting = `# Importing Existing Material

lectern import converts an HTML page into a content page:

    lectern import old-site/floating-point.html mod2/floating-point.md

The importer reads the first of <main>, <article>, or <body> as the
content region, converts it to markdown, and synthesizes front-matter:
the title from the first h1 (falling back to <title>), the description
from the meta description tag.

Review the result by hand. Numbering fields, tags, and video ids are not
guessed; add them after import, then run lectern check.
`
