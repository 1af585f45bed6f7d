package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestScanFindsMarkdownSorted(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	writeFile(t, contentDir, "mod2/b.md", "b")
	writeFile(t, contentDir, "mod1/a.md", "a")
	writeFile(t, contentDir, "index.md", "home")
	writeFile(t, contentDir, "static-notes.txt", "not markdown")

	s := &Scanner{ContentDir: contentDir, ProjectRoot: root}
	pages, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"index.md", "mod1/a.md", "mod2/b.md"}, pages)
}

func TestScanAppliesConfigPatterns(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	writeFile(t, contentDir, "keep.md", "")
	writeFile(t, contentDir, "drafts/wip.md", "")

	s := &Scanner{ContentDir: contentDir, ProjectRoot: root, Patterns: []string{"drafts/*"}}
	pages, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.md"}, pages)
}

func TestScanAppliesIgnoreFile(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	writeFile(t, contentDir, "keep.md", "")
	writeFile(t, contentDir, "scratch/notes.md", "")
	writeFile(t, contentDir, "TEMPLATE.md", "")

	ignore := "# scratch space\nscratch/\nTEMPLATE.md\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, IgnoreFileName), []byte(ignore), 0644))

	s := &Scanner{ContentDir: contentDir, ProjectRoot: root}
	pages, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"keep.md"}, pages)
}

func TestScanSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	writeFile(t, contentDir, "visible.md", "")
	writeFile(t, contentDir, ".obsidian/cache.md", "")

	s := &Scanner{ContentDir: contentDir, ProjectRoot: root}
	pages, err := s.Scan()
	require.NoError(t, err)

	assert.Equal(t, []string{"visible.md"}, pages)
}
