package pagenav

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Handle filter input when it's focused
		if m.filterInput.Focused() {
			switch {
			case key.Matches(msg, m.keys.Quit): // Esc or Ctrl+C
				m.filterInput.Blur()
				m.applyFilter()
				return m, nil
			case key.Matches(msg, m.keys.Up):
				if m.cursor > 0 {
					m.cursor--
				}
				return m, nil
			case key.Matches(msg, m.keys.Down):
				if m.cursor < len(m.filtered)-1 {
					m.cursor++
				}
				return m, nil
			case key.Matches(msg, m.keys.Select):
				if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
					m.SelectedPage = m.filtered[m.cursor].page
					return m, tea.Quit
				}
				return m, nil
			default:
				var cmd tea.Cmd
				m.filterInput, cmd = m.filterInput.Update(msg)
				m.applyFilter()
				m.cursor = 0
				return m, cmd
			}
		}

		switch {
		case key.Matches(msg, m.keys.Search):
			m.filterInput.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keys.Select):
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				m.SelectedPage = m.filtered[m.cursor].page
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Top):
			// Handle 'gg' - go to top
			if m.lastKeyWasG {
				m.cursor = 0
				m.ensureCursorVisible()
				m.lastKeyWasG = false
			} else {
				m.lastKeyWasG = true
			}

		case key.Matches(msg, m.keys.Bottom):
			if len(m.filtered) > 0 {
				m.cursor = len(m.filtered) - 1
				m.ensureCursorVisible()
			}
			m.lastKeyWasG = false

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.ensureCursorVisible()
			}
			m.lastKeyWasG = false

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				m.ensureCursorVisible()
			}
			m.lastKeyWasG = false

		case key.Matches(msg, m.keys.PageUp):
			m.cursor -= m.height / 2
			if m.cursor < 0 {
				m.cursor = 0
			}
			m.ensureCursorVisible()
			m.lastKeyWasG = false

		case key.Matches(msg, m.keys.PageDown):
			m.cursor += m.height / 2
			if m.cursor >= len(m.filtered) {
				m.cursor = len(m.filtered) - 1
			}
			m.ensureCursorVisible()
			m.lastKeyWasG = false

		default:
			m.lastKeyWasG = false
		}
	}

	return m, nil
}

// ensureCursorVisible adjusts the scroll offset so the cursor stays inside
// the table viewport.
func (m *Model) ensureCursorVisible() {
	available := m.tableHeight()
	if available < 1 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+available {
		m.scrollOffset = m.cursor - available + 1
	}
}
