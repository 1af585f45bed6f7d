package scaffold

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/config"
	lecterrors "github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/site"
	"github.com/lectern/lectern/testutil"
)

func TestInitCreatesWorkingProject(t *testing.T) {
	root := t.TempDir()

	created, err := Init(root, "Numerical Methods")
	require.NoError(t, err)
	assert.Contains(t, created, "course.yml")
	assert.Contains(t, created, "content/welcome.md")
	assert.Contains(t, created, "layouts/base.html")

	// The skeleton must load and build without edits.
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)
	assert.Equal(t, "Numerical Methods", cfg.Course.Name)

	report, err := site.NewBuilder(cfg, site.Options{}).Build(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Successful)

	_, err = os.Stat(filepath.Join(root, "public", "welcome", "index.html"))
	assert.NoError(t, err)
}

func TestInitRefusesExistingProject(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "course.yml", "course:\n  name: Existing\n")

	_, err := Init(root, "New Course")
	require.Error(t, err)
	assert.True(t, lecterrors.Is(err, lecterrors.ErrCodeProjectExists))
}

func TestNewPageWritesFrontMatter(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	path, err := NewPage(cfg, "mod2/heat-equation.md", PageOptions{
		Description:    "Solving the heat equation numerically.",
		Tags:           []string{"advanced", "pde"},
		ExerciseNumber: "7",
	})
	require.NoError(t, err)

	body := testutil.ReadFile(t, root, "content/mod2/heat-equation.md")
	assert.Contains(t, body, "title: Heat Equation")
	assert.Contains(t, body, "description: \"Solving the heat equation numerically.\"")
	assert.Contains(t, body, "tags: [advanced, pde]")
	assert.Contains(t, body, "exercise_number: \"7\"")
	assert.Equal(t, filepath.Join(cfg.AbsContentDir(), "mod2", "heat-equation.md"), path)
}

func TestNewPageAppendsToSection(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, err = NewPage(cfg, "mod1/profiling.md", PageOptions{
		Title:     "Profiling",
		SectionID: "mod1",
	})
	require.NoError(t, err)

	// Reload: the page is listed and the project still validates.
	cfg, err = config.LoadFrom(root)
	require.NoError(t, err)
	section := cfg.SectionFor("mod1/profiling.md")
	require.NotNil(t, section)
	assert.Equal(t, "mod1", section.ID)
	assert.Equal(t, []string{
		"mod1/intro.md", "mod1/debugging.md", "mod1/profiling.md",
	}, section.Pages)
}

func TestNewPageRejectsUnknownSection(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, err = NewPage(cfg, "mod9/extra.md", PageOptions{SectionID: "mod9"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section 'mod9' not found")
}

func TestNewPageRejectsExistingPage(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, err = NewPage(cfg, "mod1/intro.md", PageOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestNewPageRejectsTraversal(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, err = NewPage(cfg, "../outside.md", PageOptions{})
	require.Error(t, err)
}

func TestSuggestTitle(t *testing.T) {
	assert.Equal(t, "Heat Equation", SuggestTitle("mod2/heat-equation.md"))
	assert.Equal(t, "Linked Lists", SuggestTitle("linked_lists.md"))
	assert.Equal(t, "Intro", SuggestTitle("mod1/intro.md"))
}
