package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/testutil"
)

func TestCollectPages(t *testing.T) {
	root := testutil.NewCourseProject(t)
	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	sections, lookup, unlisted, err := collectPages(cfg)
	require.NoError(t, err)

	require.Len(t, sections, 1)
	assert.Equal(t, "mod1", sections[0].ID)

	ids := []string{}
	for _, page := range lookup["mod1"] {
		ids = append(ids, page.ID)
	}
	assert.Equal(t, []string{"mod1/intro.md", "mod1/debugging.md"}, ids)

	// index.md is on disk but listed in no section
	require.Len(t, unlisted, 1)
	assert.Equal(t, "index.md", unlisted[0].ID)
}

func TestCollectPagesIncludesDrafts(t *testing.T) {
	root := testutil.NewCourseProject(t)
	testutil.WritePage(t, root, "mod1/wip.md", "title: WIP\ndraft: true\n", "Not done.")

	cfg, err := config.LoadFrom(root)
	require.NoError(t, err)

	_, _, unlisted, err := collectPages(cfg)
	require.NoError(t, err)

	found := false
	for _, page := range unlisted {
		if page.ID == "mod1/wip.md" {
			found = true
			assert.True(t, page.Draft)
		}
	}
	assert.True(t, found)
}
