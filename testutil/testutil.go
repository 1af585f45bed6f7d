package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MinimalCourseYML is a course.yml with one section and two pages, matching
// the pages written by NewCourseProject.
const MinimalCourseYML = `course:
  name: Scientific Computing
  subtitle: Winter 2026
  institution: Test University
  authors:
    - name: A. Teacher
tracks:
  - id: basic
    name: Basic Track
sections:
  - id: mod1
    name: Module 1
    pages:
      - mod1/intro.md
      - mod1/debugging.md
`

// BaseLayout is a minimal working base.html wired to the pre-rendered
// chrome fragments.
const BaseLayout = `<!DOCTYPE html>
<html>
<head>{{ .HeadHTML }}</head>
<body>
{{ .SidebarHTML }}
<main>{{ .Content }}</main>
{{ .FooterHTML }}
</body>
</html>
`

// NewCourseProject creates a temporary course project on disk: course.yml,
// a content tree with one section of two pages, a base layout, and a static
// file. It returns the project root.
func NewCourseProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	WriteFile(t, root, "course.yml", MinimalCourseYML)
	WriteFile(t, root, "layouts/base.html", BaseLayout)
	WriteFile(t, root, "static/style.css", "body { margin: 0 }\n")
	WriteFile(t, root, "content/index.md", "---\ntitle: Welcome\n---\n# Welcome\n")
	WriteFile(t, root, "content/mod1/intro.md", `---
title: Introduction
chapter: 1
section: 1
tags: [basic]
---
# Introduction

First lecture.
`)
	WriteFile(t, root, "content/mod1/debugging.md", `---
title: Debugging
exercise_number: 3
---
Find the bug in the linked list.
`)

	return root
}

// WriteFile writes a file under root, creating parent directories. rel is
// slash-separated.
func WriteFile(t *testing.T, root, rel, body string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// WritePage writes a content page with the given front-matter block and body.
func WritePage(t *testing.T, root, rel, frontMatter, body string) string {
	t.Helper()
	source := body
	if frontMatter != "" {
		source = "---\n" + frontMatter + "---\n" + body
	}
	return WriteFile(t, root, filepath.ToSlash(filepath.Join("content", rel)), source)
}

// ReadFile reads a file under root and fails the test on error.
func ReadFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
