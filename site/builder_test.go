package site

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/state"
	"github.com/lectern/lectern/testutil"
)

func buildProject(t *testing.T, root string, opts Options) *Report {
	t.Helper()
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	report, err := NewBuilder(cfg, opts).Build(context.Background())
	require.NoError(t, err)
	require.True(t, report.Successful)
	return report
}

func TestBuildWritesPrettyURLs(t *testing.T) {
	root := testutil.NewCourseProject(t)
	buildProject(t, root, Options{})

	for _, rel := range []string{
		"public/index.html",
		"public/mod1/intro/index.html",
		"public/mod1/debugging/index.html",
		"public/style.css",
	} {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		assert.NoError(t, err, rel)
	}
}

func TestBuildMarksEachPageActive(t *testing.T) {
	root := testutil.NewCourseProject(t)
	buildProject(t, root, Options{})

	intro := testutil.ReadFile(t, root, "public/mod1/intro/index.html")
	debugging := testutil.ReadFile(t, root, "public/mod1/debugging/index.html")

	assert.Contains(t, intro, `nav-entry lecture active tag_basic`)
	assert.NotContains(t, intro, `nav-entry exercise active`)
	assert.Contains(t, debugging, `nav-entry exercise active`)
}

func TestBuildWarnsOnUnlistedPage(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "scratch.md", "", "orphan page\n")

	report := buildProject(t, root, Options{})

	assert.Contains(t, report.Warnings, "page 'scratch.md' is not listed in any section")
	// The page still builds standalone.
	_, err := os.Stat(filepath.Join(root, "public", "scratch", "index.html"))
	assert.NoError(t, err)
}

func TestBuildSkipsDraftsByDefault(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "wip.md", "draft: true\n", "not ready\n")

	buildProject(t, root, Options{})
	_, err := os.Stat(filepath.Join(root, "public", "wip", "index.html"))
	assert.True(t, os.IsNotExist(err), "draft page should not be built")

	buildProject(t, root, Options{Drafts: true})
	_, err = os.Stat(filepath.Join(root, "public", "wip", "index.html"))
	assert.NoError(t, err, "draft page should build with drafts enabled")
}

func TestBuildCleansStaleOutput(t *testing.T) {
	root := testutil.NewCourseProject(t)
	stale := testutil.WriteFile(t, root, "public/old/index.html", "stale")

	buildProject(t, root, Options{})
	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale output should be removed")
}

func TestBuildRecordsState(t *testing.T) {
	root := testutil.NewCourseProject(t)
	report := buildProject(t, root, Options{RecordState: true})

	record, err := state.LastBuild(root)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, report.ID, record.ID)
	assert.Equal(t, report.PageCount(), record.Pages)
	assert.True(t, record.Successful)
}

func TestLiveReloadInjection(t *testing.T) {
	root := testutil.NewCourseProject(t)
	buildProject(t, root, Options{LiveReload: true})

	html := testutil.ReadFile(t, root, "public/index.html")
	assert.Contains(t, html, "livereload.js")
}

func TestInjectLiveReloadPlacement(t *testing.T) {
	doc := []byte("<html><body><p>x</p></body></html>")
	got := string(InjectLiveReload(doc))
	assert.Contains(t, got, "<script src=\"/livereload.js\" defer></script>\n</body>")

	// Documents without a body tag still get the script.
	got = string(InjectLiveReload([]byte("plain")))
	assert.Contains(t, got, "livereload.js")
}

func TestBuildStageTimings(t *testing.T) {
	root := testutil.NewCourseProject(t)
	report := buildProject(t, root, Options{})

	var names []string
	for _, stage := range report.Stages {
		names = append(names, stage.Name)
	}
	assert.Equal(t, []string{
		"clean output", "copy static", "load renderer",
		"scan content", "parse pages", "assemble sections", "render pages",
	}, names)
}
