package convert

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/testutil"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>Floating Point | Old Course Site</title>
  <meta name="description" content="Why 0.1 + 0.2 is not 0.3.">
</head>
<body>
  <nav><a href="/">Home</a></nav>
  <main>
    <h1>Floating Point</h1>
    <p>Machine numbers are <strong>not</strong> real numbers.</p>
    <pre><code>0.1 + 0.2 == 0.30000000000000004</code></pre>
  </main>
  <footer>Copyright</footer>
</body>
</html>
`

func newImporter(t *testing.T) (*Importer, string) {
	t.Helper()
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)
	return NewImporter(cfg), root
}

func TestConvertExtractsMetadata(t *testing.T) {
	im, _ := newImporter(t)

	page, err := im.Convert([]byte(sampleHTML))
	require.NoError(t, err)

	assert.Equal(t, "Floating Point", page.Title)
	assert.Equal(t, "Why 0.1 + 0.2 is not 0.3.", page.Description)
	assert.Contains(t, page.Markdown, "**not**")
	// Navigation and footer are outside <main> and must not leak in.
	assert.NotContains(t, page.Markdown, "Home")
	assert.NotContains(t, page.Markdown, "Copyright")
	// The h1 moved into front-matter.
	assert.NotContains(t, page.Markdown, "# Floating Point")
}

func TestConvertTitleFallsBackToTitleTag(t *testing.T) {
	im, _ := newImporter(t)

	page, err := im.Convert([]byte(`<html><head><title>Loops - My Site</title></head><body><p>for loops</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Loops", page.Title)
}

func TestConvertUsesBodyWithoutMain(t *testing.T) {
	im, _ := newImporter(t)

	page, err := im.Convert([]byte(`<html><body><article><p>from article</p></article></body></html>`))
	require.NoError(t, err)
	assert.Contains(t, page.Markdown, "from article")
}

func TestConvertRejectsEmptyDocument(t *testing.T) {
	im, _ := newImporter(t)

	_, err := im.Convert([]byte(`<html><body></body></html>`))
	require.Error(t, err)
}

func TestImportFileWritesLoadablePage(t *testing.T) {
	im, root := newImporter(t)
	source := testutil.WriteFile(t, root, "legacy/floating-point.html", sampleHTML)

	result, err := im.ImportFile(source, "mod2/floating-point.md")
	require.NoError(t, err)
	assert.Equal(t, "Floating Point", result.Title)

	// The written page parses as regular content.
	page, err := content.LoadPage(filepath.Join(root, "content"), "mod2/floating-point.md", "")
	require.NoError(t, err)
	assert.Equal(t, "Floating Point", page.Title)
	assert.Equal(t, "Why 0.1 + 0.2 is not 0.3.", page.Description)
	assert.Contains(t, string(page.Body), "not")
}

func TestImportFileDefaultName(t *testing.T) {
	im, root := newImporter(t)
	source := testutil.WriteFile(t, root, "legacy/loops.html", sampleHTML)

	result, err := im.ImportFile(source, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "content", "loops.md"), result.OutputPath)
}

func TestImportFileRefusesOverwrite(t *testing.T) {
	im, root := newImporter(t)
	source := testutil.WriteFile(t, root, "legacy/intro.html", sampleHTML)

	_, err := im.ImportFile(source, "mod1/intro.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
