package pagenav

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lectern/lectern/content"
)

// entry is one selectable row: a page under its section heading.
type entry struct {
	section string
	page    *content.Page
}

// Model represents the state of the page navigator TUI.
type Model struct {
	entries  []entry // full list, declared order
	filtered []entry // list after text filtering

	keys         KeyMap
	filterInput  textinput.Model
	cursor       int
	scrollOffset int
	width        int
	height       int
	lastKeyWasG  bool // track 'g' for the 'gg' combo

	// SelectedPage is set when the user confirms a selection.
	SelectedPage *content.Page
}

// Init is the first command that will be executed.
func (m *Model) Init() tea.Cmd {
	return nil
}

func newFilterInput() textinput.Model {
	input := textinput.New()
	input.Placeholder = "filter pages"
	input.Prompt = "/"
	input.CharLimit = 64
	return input
}

// applyFilter recomputes the filtered list from the current filter text.
// Matching is a case-insensitive substring test over title, path, section,
// and tags.
func (m *Model) applyFilter() {
	text := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if text == "" {
		m.filtered = m.entries
	} else {
		m.filtered = nil
		for _, e := range m.entries {
			if entryMatches(e, text) {
				m.filtered = append(m.filtered, e)
			}
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func entryMatches(e entry, text string) bool {
	if strings.Contains(strings.ToLower(e.page.DisplayTitle()), text) {
		return true
	}
	if strings.Contains(strings.ToLower(e.page.ID), text) {
		return true
	}
	if strings.Contains(strings.ToLower(e.section), text) {
		return true
	}
	for _, tag := range e.page.Tags {
		if strings.Contains(strings.ToLower(tag), text) {
			return true
		}
	}
	return false
}
