// Package scaffold creates new course projects and content pages. `lectern
// init` lays down a working skeleton; `lectern new` adds a page with
// front-matter filled in from flags.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/logging"
)

const courseTemplate = `# Course configuration. Run "lectern schema" to see all settings.
course:
  name: %s
  # subtitle: Winter 2026
  # institution: Example University
  # institution_url: https://example.edu
  # authors:
  #   - name: Your Name
  #     url: https://example.edu/~you

# tracks:
#   - id: basic
#     name: Basic Track

sections:
  - id: welcome
    name: Welcome
    pages:
      - welcome.md
`

const welcomePage = `---
title: Welcome
description: Start here.
---

# Welcome

This is your first page. Edit ` + "`content/welcome.md`" + ` and run
` + "`lectern serve`" + ` to see changes live.
`

const baseLayout = `<!DOCTYPE html>
<html lang="en">
<head>
{{ .HeadHTML }}
</head>
<body>
<div class="layout">
{{ .SidebarHTML }}
<main class="page">
{{ if .Page.DisplayTitle }}<h1>{{ .Page.DisplayTitle }}</h1>{{ end }}
{{ .Content }}
</main>
</div>
{{ .FooterHTML }}
</body>
</html>
`

const defaultStyles = `body { margin: 0; font-family: system-ui, sans-serif; }
.layout { display: flex; min-height: 100vh; }
.page { flex: 1; padding: 2rem 3rem; max-width: 52rem; }

.course-nav { width: 17rem; padding: 1.5rem; background: #f6f6f4; }
.course-nav h2 { font-size: 0.8rem; text-transform: uppercase; color: #666; }
.course-nav ul { list-style: none; padding: 0; }
.nav-entry { display: block; padding: 0.25rem 0.5rem; color: inherit; text-decoration: none; }
.nav-entry.active { background: #e2e8f0; border-radius: 4px; font-weight: 600; }
.nav-entry.exercise .nav-label { color: #b45309; }
.nav-entry.indepth .nav-label { color: #6d28d9; }
`

const ignoreTemplate = `# Glob patterns for content files to skip, one per line.
# drafts/**
`

// Init creates a course skeleton under root and returns the created paths,
// relative to root. It refuses to touch a directory that already has a
// course configuration.
func Init(root string, courseName string) ([]string, error) {
	for _, name := range config.ConfigFileNames {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return nil, errors.ProjectExists(filepath.Join(root, name))
		}
	}
	if courseName == "" {
		courseName = "My Course"
	}

	files := []struct {
		rel  string
		body string
	}{
		{"course.yml", fmt.Sprintf(courseTemplate, courseName)},
		{"content/welcome.md", welcomePage},
		{"layouts/base.html", baseLayout},
		{"static/style.css", defaultStyles},
		{".lecternignore", ignoreTemplate},
	}

	log := logging.NewLogger("scaffold")
	created := make([]string, 0, len(files))
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return created, errors.OutputWrite(path, err)
		}
		if err := os.WriteFile(path, []byte(f.body), 0644); err != nil {
			return created, errors.OutputWrite(path, err)
		}
		log.WithField("file", f.rel).Debug("Created")
		created = append(created, f.rel)
	}
	return created, nil
}
