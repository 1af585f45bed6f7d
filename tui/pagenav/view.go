package pagenav

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/tui/components/table"
	"github.com/lectern/lectern/tui/theme"
)

const (
	headerHeight = 3
	footerHeight = 3
	topMargin    = 1
)

// tableHeight returns the number of table rows that fit in the main area.
func (m *Model) tableHeight() int {
	mainAreaHeight := m.height - headerHeight - footerHeight - topMargin
	available := mainAreaHeight - 9
	if available < 1 {
		available = 1
	}
	return available
}

// View renders the TUI with a table-based display.
func (m *Model) View() string {
	if m.width < 40 || m.height < 10 {
		return "Terminal too small. Please resize."
	}

	mainAreaHeight := m.height - headerHeight - footerHeight - topMargin
	if mainAreaHeight < 5 {
		return "Terminal too small. Please resize."
	}

	headerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultColors.Orange).
		Width(m.width - 4).
		Height(headerHeight - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(true)

	mainContentStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultColors.Border).
		Width(m.width - 4).
		Height(mainAreaHeight - 2).
		Padding(1)

	footerStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.DefaultColors.Orange).
		Width(m.width - 4).
		Height(footerHeight - 2).
		Align(lipgloss.Center, lipgloss.Center)

	header := headerStyle.Render("COURSE PAGES")
	mainContent := mainContentStyle.Render(m.buildTableView(m.tableHeight()))
	footer := footerStyle.Render(m.footerContent())

	layout := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		mainContent,
		footer,
	)

	// Add top margin to prevent border cutoff
	return "\n" + layout
}

func (m *Model) footerContent() string {
	if m.filterInput.Focused() {
		return m.filterInput.View()
	}
	if filter := m.filterInput.Value(); filter != "" {
		return fmt.Sprintf("Filter: %s", filter)
	}
	return "Press / to filter, enter to open, q to quit"
}

// buildTableView constructs and renders the main table of pages.
func (m *Model) buildTableView(availableHeight int) string {
	if len(m.filtered) == 0 {
		if m.filterInput.Value() != "" {
			return "No pages match the filter."
		}
		return "No pages found.\n\nTip: add markdown files under content/"
	}

	allRows := m.buildTableRows()

	startIdx := m.scrollOffset
	endIdx := startIdx + availableHeight
	if endIdx > len(allRows) {
		endIdx = len(allRows)
	}
	if startIdx >= len(allRows) {
		startIdx = 0
		endIdx = len(allRows)
		if endIdx > availableHeight {
			endIdx = availableHeight
		}
	}

	visibleRows := allRows[startIdx:endIdx]

	relativeCursor := m.cursor - m.scrollOffset
	if relativeCursor < 0 {
		relativeCursor = 0
	}
	if relativeCursor >= len(visibleRows) {
		relativeCursor = len(visibleRows) - 1
	}

	mainContent := table.SelectableTable(
		[]string{"C", "LABEL", "TITLE", "SECTION", "PAGE"},
		visibleRows,
		relativeCursor,
	)

	if len(allRows) > availableHeight {
		mainContent += "\n" + lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf("Showing %d-%d of %d pages", startIdx+1, endIdx, len(allRows)),
		)
	}

	return mainContent
}

// buildTableRows creates the data rows for the page table. Section names are
// only printed on their first row so the grouping reads as a hierarchy.
func (m *Model) buildTableRows() [][]string {
	t := theme.DefaultTheme

	var rows [][]string
	lastSection := ""
	for _, e := range m.filtered {
		section := e.section
		if section == lastSection {
			section = ""
		} else {
			lastSection = section
			section = t.SectionHeading.Render(section)
		}

		label := nav.Label(e.page)
		title := t.PageEntry.Render(e.page.DisplayTitle())
		if e.page.Draft {
			title += " " + t.DraftEntry.Render("(draft)")
		}
		if e.page.YouTubeID != "" {
			title += " " + theme.IconVideo
		}

		rows = append(rows, []string{
			categoryGlyph(e.page.Category()),
			label,
			title,
			section,
			t.Muted.Render(e.page.ID),
		})
	}
	return rows
}

func categoryGlyph(category content.Category) string {
	return theme.CategoryIcon(string(category))
}

// PlainTable renders the same rows as a static table for --plain output and
// non-TTY terminals.
func (m *Model) PlainTable() string {
	var b strings.Builder
	b.WriteString(table.SimpleTable(
		[]string{"C", "LABEL", "TITLE", "SECTION", "PAGE"},
		m.buildTableRows(),
	))
	b.WriteString("\n")
	return b.String()
}
