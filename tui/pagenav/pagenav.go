// Package pagenav implements the interactive page navigator behind
// `lectern pages`: the course content grouped by section in a filterable
// table. Selecting a page prints its source path, so the command composes
// with $EDITOR.
package pagenav

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/tui"
)

// New creates a navigator model over the assembled sections. Pages outside
// any section are grouped under an "(unlisted)" pseudo-section at the end.
func New(sections []nav.SectionMeta, lookup nav.PageLookup, unlisted []*content.Page) *Model {
	var entries []entry
	for _, meta := range sections {
		for _, page := range lookup[meta.ID] {
			entries = append(entries, entry{section: meta.Name, page: page})
		}
	}
	for _, page := range unlisted {
		entries = append(entries, entry{section: "(unlisted)", page: page})
	}

	m := &Model{
		entries: entries,
		keys:    DefaultKeyMap,
	}
	m.filterInput = newFilterInput()
	m.applyFilter()
	return m
}

// Run starts the navigator and returns the selected page, or nil when the
// user quit without selecting.
func Run(sections []nav.SectionMeta, lookup nav.PageLookup, unlisted []*content.Page) (*content.Page, error) {
	tui.InitializeTUI()

	m := New(sections, lookup, unlisted)
	program := tea.NewProgram(m, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("page navigator failed: %w", err)
	}

	model, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", final)
	}
	return model.SelectedPage, nil
}
