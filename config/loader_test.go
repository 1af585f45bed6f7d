package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/testutil"
)

func TestLoadFromWalksUpToProjectRoot(t *testing.T) {
	root := testutil.NewCourseProject(t)
	nested := filepath.Join(root, "content", "mod1")

	cfg, err := LoadFrom(nested)
	require.NoError(t, err)

	assert.Equal(t, "Scientific Computing", cfg.Course.Name)
	assert.Equal(t, root, cfg.ProjectRoot())
	assert.Equal(t, filepath.Join(root, "course.yml"), cfg.ConfigPath())
}

func TestLoadFromNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := LoadFrom(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestFindConfigFilePrecedence(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "course.toml", "[course]\nname = \"TOML Course\"\n")
	testutil.WriteFile(t, root, "course.yml", "course:\n  name: YAML Course\n")

	path, err := FindConfigFile(root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "course.yml"), path)
}

func TestLoadTOML(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "course.toml", `[course]
name = "Numerics"
subtitle = "Summer 2026"

[serve]
port = 4000
`)

	cfg, err := LoadFrom(root)
	require.NoError(t, err)
	assert.Equal(t, "Numerics", cfg.Course.Name)
	assert.Equal(t, "Summer 2026", cfg.Course.Subtitle)
	assert.Equal(t, 4000, cfg.Serve.Port)
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("COURSE_TERM", "Winter 2026")

	root := t.TempDir()
	testutil.WriteFile(t, root, "course.yml", `course:
  name: "${COURSE_NAME:-Default Course}"
  subtitle: "${COURSE_TERM}"
`)

	cfg, err := LoadFrom(root)
	require.NoError(t, err)
	assert.Equal(t, "Default Course", cfg.Course.Name)
	assert.Equal(t, "Winter 2026", cfg.Course.Subtitle)
}

func TestOverrideFileMerging(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WriteFile(t, root, "course.override.yml", "serve:\n  port: 9999\n")

	cfg, err := LoadFrom(root)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Serve.Port)
	// untouched fields survive the merge
	assert.Equal(t, "Scientific Computing", cfg.Course.Name)
	require.Len(t, cfg.Sections, 1)
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("course:\n  name: Minimal\n"))
	require.NoError(t, err)

	assert.Equal(t, "content", cfg.ContentDir)
	assert.Equal(t, "layouts", cfg.LayoutsDir)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, 1313, cfg.Serve.Port)
	assert.Equal(t, "monokai", cfg.Markdown.HighlightStyle)
}

func TestBaseURLNormalization(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hpc", "/hpc"},
		{"/hpc/", "/hpc"},
		{"hpc/2026/", "/hpc/2026"},
		{"/", ""},
	}
	for _, tt := range tests {
		cfg, err := LoadFromBytes([]byte("course:\n  name: X\nbase_url: \"" + tt.in + "\"\n"))
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, cfg.BaseURL, tt.in)
	}
}

func TestUnmarshalExtension(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`course:
  name: X
logging:
  level: debug
`))
	require.NoError(t, err)

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)

	// missing extensions are not an error
	var other struct{}
	assert.NoError(t, cfg.UnmarshalExtension("absent", &other))
}
