package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/testutil"
)

func TestValidateRejectsEmptyCourseName(t *testing.T) {
	_, err := LoadFromBytes([]byte("course:\n  name: \"  \"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course.name")
}

func TestValidateRejectsBadSectionID(t *testing.T) {
	tests := []string{"Mod1", "-leading", "spa ces", ""}
	for _, id := range tests {
		_, err := LoadFromBytes([]byte(`course:
  name: X
sections:
  - id: "` + id + `"
    name: Some Section
`))
		assert.Error(t, err, "section id %q should be rejected", id)
	}
}

func TestValidateRejectsDuplicateSectionID(t *testing.T) {
	_, err := LoadFromBytes([]byte(`course:
  name: X
sections:
  - id: mod1
    name: First
  - id: mod1
    name: Second
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate section id")
}

func TestValidateRejectsBadPagePaths(t *testing.T) {
	tests := []struct {
		page string
		want string
	}{
		{"/abs/path.md", "relative"},
		{"a/../../etc/passwd", "traverse"},
		{"win\\path.md", "forward slashes"},
	}
	for _, tt := range tests {
		_, err := LoadFromBytes([]byte(`course:
  name: X
sections:
  - id: mod1
    name: Module 1
    pages:
      - '` + tt.page + `'
`))
		require.Error(t, err, tt.page)
		assert.Contains(t, err.Error(), tt.want, tt.page)
	}
}

func TestValidateRejectsPortOutOfRange(t *testing.T) {
	_, err := LoadFromBytes([]byte("course:\n  name: X\nserve:\n  port: 99999\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}

func TestSemanticsRejectPageInTwoSections(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WriteFile(t, root, "course.yml", `course:
  name: Scientific Computing
sections:
  - id: mod1
    name: Module 1
    pages:
      - mod1/intro.md
  - id: mod2
    name: Module 2
    pages:
      - mod1/intro.md
`)

	_, err := LoadFrom(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mod1/intro.md")
	assert.Contains(t, err.Error(), "appears in sections")
}

func TestSemanticsRejectListedPageMissingOnDisk(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WriteFile(t, root, "course.yml", `course:
  name: Scientific Computing
sections:
  - id: mod1
    name: Module 1
    pages:
      - mod1/does-not-exist.md
`)

	_, err := LoadFrom(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.md")
}

func TestSemanticsSkippedWithoutProjectRoot(t *testing.T) {
	// Parsed from bytes there is no content dir to check against, so only
	// the duplicate-listing rule applies.
	cfg, err := LoadFromBytes([]byte(`course:
  name: X
sections:
  - id: mod1
    name: Module 1
    pages:
      - mod1/never-written.md
`))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.ProjectRoot())
}

func TestTrackAndSectionHelpers(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := LoadFrom(root)
	require.NoError(t, err)

	require.NotNil(t, cfg.TrackByID("basic"))
	assert.Nil(t, cfg.TrackByID("advanced"))

	section := cfg.SectionFor("mod1/intro.md")
	require.NotNil(t, section)
	assert.Equal(t, "mod1", section.ID)
	assert.Nil(t, cfg.SectionFor("nope.md"))
}

func TestLoadSingleFileReportsCode(t *testing.T) {
	_, err := Load("/definitely/not/here/course.yml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}
