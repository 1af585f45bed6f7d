package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/testutil"
)

func runChecks(t *testing.T, root string) []Finding {
	t.Helper()
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	findings, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	return findings
}

func codes(findings []Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func TestCleanProjectHasNoFindings(t *testing.T) {
	root := testutil.NewCourseProject(t)
	findings := runChecks(t, root)
	assert.Empty(t, findings)
	assert.False(t, HasErrors(findings))
}

func TestDuplicateExerciseNumbers(t *testing.T) {
	root := testutil.NewCourseProject(t)
	// debugging.md already uses exercise_number 3.
	testutil.WritePage(t, root, "extra.md", "exercise_number: 3\n", "body\n")

	findings := runChecks(t, root)
	assert.Contains(t, codes(findings), "duplicate-exercise-number")

	for _, f := range findings {
		if f.Code == "duplicate-exercise-number" {
			assert.Equal(t, SeverityWarning, f.Severity)
			assert.Contains(t, f.Message, "extra.md")
			assert.Contains(t, f.Message, "mod1/debugging.md")
		}
	}
}

func TestDuplicateChapterSection(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "other.md", "chapter: 1\nsection: 1\n", "body\n")

	findings := runChecks(t, root)
	assert.Contains(t, codes(findings), "duplicate-chapter-section")
}

func TestUnknownTagWarning(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "mod1/tagged.md", "tags: [nonexistent]\n", "body\n")

	findings := runChecks(t, root)
	found := false
	for _, f := range findings {
		if f.Code == "unknown-tag" {
			found = true
			assert.Equal(t, "mod1/tagged.md", f.Path)
			assert.Contains(t, f.Message, "nonexistent")
		}
	}
	assert.True(t, found)
}

func TestUnlistedPageWarning(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "orphan.md", "", "body\n")

	findings := runChecks(t, root)
	assert.Contains(t, codes(findings), "unlisted-page")
}

func TestIndexPageIsNotUnlisted(t *testing.T) {
	root := testutil.NewCourseProject(t)
	findings := runChecks(t, root)
	assert.NotContains(t, codes(findings), "unlisted-page")
}

func TestFrontMatterParseError(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WriteFile(t, root, "content/mod1/broken.md", "---\ntitle: [unclosed\n---\nbody\n")

	findings := runChecks(t, root)
	require.Contains(t, codes(findings), "page-parse")
	assert.True(t, HasErrors(findings))
	// Errors sort before warnings.
	assert.Equal(t, SeverityError, findings[0].Severity)
}

func TestMissingBaseLayout(t *testing.T) {
	root := testutil.NewCourseProject(t)
	require.NoError(t, os.Remove(filepath.Join(root, "layouts", "base.html")))

	findings := runChecks(t, root)
	assert.Contains(t, codes(findings), "layout")
	assert.True(t, HasErrors(findings))
}

func TestBrokenInternalLink(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "mod1/links.md", "title: Links\n",
		"[good](/mod1/intro/) and [bad](/mod9/missing/) and [asset](/style.css) and [external](https://example.com/x)\n")

	findings := runChecks(t, root)

	var broken []Finding
	for _, f := range findings {
		if f.Code == "broken-link" {
			broken = append(broken, f)
		}
	}
	require.Len(t, broken, 1)
	assert.Equal(t, "mod1/links.md", broken[0].Path)
	assert.Contains(t, broken[0].Message, "/mod9/missing/")
}

func TestFindingString(t *testing.T) {
	f := Finding{Severity: SeverityWarning, Code: "unknown-tag", Path: "a.md", Message: "boom"}
	assert.Equal(t, "warning [unknown-tag] a.md: boom", f.String())

	f = Finding{Severity: SeverityError, Code: "config-schema", Message: "bad"}
	assert.Equal(t, "error [config-schema] bad", f.String())
}
