package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageYAMLFrontMatter(t *testing.T) {
	source := []byte(`---
title: Debugging
description: Finding the bug in a linked list
tags: [debugging, "parallel track"]
chapter: 2
section: 3
exercise_number: 3
youtube_id: abc123
extra_key: kept
---
# Body

Some markdown.
`)
	page, err := ParsePage("mod1/debugging.md", "/src/mod1/debugging.md", source, "/hpc")
	require.NoError(t, err)

	assert.Equal(t, "mod1/debugging.md", page.ID)
	assert.Equal(t, "/hpc/mod1/debugging/", page.Href)
	assert.Equal(t, "Debugging", page.Title)
	assert.Equal(t, "Finding the bug in a linked list", page.Description)
	assert.Equal(t, []string{"debugging", "parallel track"}, page.Tags)

	// Numeric front-matter values decode as display strings.
	assert.Equal(t, "2", page.Chapter)
	assert.Equal(t, "3", page.Section)
	assert.Equal(t, "3", page.ExerciseNumber)
	assert.Equal(t, "abc123", page.YouTubeID)

	assert.Equal(t, "kept", page.Extra["extra_key"])
	assert.Contains(t, string(page.Body), "# Body")
}

func TestParsePageTOMLFrontMatter(t *testing.T) {
	source := []byte(`+++
title = "Pinned Threads"
indepth_number = "2"
+++
body
`)
	page, err := ParsePage("mod2/pinning.md", "", source, "")
	require.NoError(t, err)

	assert.Equal(t, "Pinned Threads", page.Title)
	assert.Equal(t, "2", page.IndepthNumber)
	assert.Equal(t, CategoryIndepth, page.Category())
}

func TestParsePageNoFrontMatter(t *testing.T) {
	page, err := ParsePage("notes.md", "", []byte("# Just markdown\n"), "")
	require.NoError(t, err)

	assert.Equal(t, CategoryLecture, page.Category())
	assert.Equal(t, "notes", page.DisplayTitle())
	assert.Empty(t, page.Extra)
}

func TestCategoryDerivation(t *testing.T) {
	tests := []struct {
		name     string
		exercise string
		indepth  string
		want     Category
	}{
		{"exercise wins over indepth", "1", "2", CategoryExercise},
		{"indepth alone", "", "2", CategoryIndepth},
		{"neither", "", "", CategoryLecture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Page{ExerciseNumber: tt.exercise, IndepthNumber: tt.indepth}
			assert.Equal(t, tt.want, p.Category())
		})
	}
}

func TestDisplayTitleFallback(t *testing.T) {
	p := &Page{ID: "mod1/03_pointers.md"}
	assert.Equal(t, "03_pointers", p.DisplayTitle())

	p.Title = "Pointers"
	assert.Equal(t, "Pointers", p.DisplayTitle())
}

func TestHrefFor(t *testing.T) {
	tests := []struct {
		relPath string
		baseURL string
		want    string
	}{
		{"index.md", "", "/"},
		{"index.md", "/hpc", "/hpc/"},
		{"about.md", "", "/about/"},
		{"mod1/index.md", "", "/mod1/"},
		{"mod1/03_pointers.md", "/hpc", "/hpc/mod1/03_pointers/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HrefFor(tt.relPath, tt.baseURL), "HrefFor(%q, %q)", tt.relPath, tt.baseURL)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"index.md", "index.html"},
		{"about.md", "about/index.html"},
		{"mod1/index.md", "mod1/index.html"},
		{"mod1/03_pointers.md", "mod1/03_pointers/index.html"},
	}
	for _, tt := range tests {
		p := &Page{ID: tt.id}
		assert.Equal(t, tt.want, p.OutputPath(), "OutputPath(%q)", tt.id)
	}
}
