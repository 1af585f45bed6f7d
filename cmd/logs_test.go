package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLogFile(t *testing.T, dir, name, body string, mod time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	require.NoError(t, os.Chtimes(path, mod, mod))
	return path
}

func TestFindLatestLogFilePrefersNonEmpty(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := writeLogFile(t, dir, "site-2026-08-26.log", "line\n", now.Add(-2*time.Hour))
	writeLogFile(t, dir, "site-2026-08-28.log", "", now)

	found, err := findLatestLogFile(dir)
	require.NoError(t, err)
	assert.Equal(t, old, found)
}

func TestFindLatestLogFilePicksNewest(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	writeLogFile(t, dir, "site-2026-08-26.log", "old\n", now.Add(-2*time.Hour))
	newest := writeLogFile(t, dir, "site-2026-08-28.log", "new\n", now)

	found, err := findLatestLogFile(dir)
	require.NoError(t, err)
	assert.Equal(t, newest, found)
}

func TestFindLatestLogFileEmptyDir(t *testing.T) {
	_, err := findLatestLogFile(t.TempDir())
	assert.Error(t, err)
}

func TestPrintTailLines(t *testing.T) {
	dir := t.TempDir()
	path := writeLogFile(t, dir, "site.log", "one\ntwo\nthree\n", time.Now())

	var buf bytes.Buffer
	require.NoError(t, printTailLines(&buf, path, 2, false))
	assert.Equal(t, "two\nthree\n", buf.String())

	buf.Reset()
	require.NoError(t, printTailLines(&buf, path, -1, false))
	assert.Equal(t, "one\ntwo\nthree\n", buf.String())
}

func TestPrintLogJSONWrapsRawLines(t *testing.T) {
	var buf bytes.Buffer
	printLogJSON(&buf, "not json at all")
	assert.JSONEq(t, `{"raw_line":"not json at all"}`, buf.String())

	buf.Reset()
	printLogJSON(&buf, `{"level":"info","msg":"hello"}`)
	assert.JSONEq(t, `{"level":"info","msg":"hello"}`, buf.String())
}
