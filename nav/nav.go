// Package nav builds the sidebar navigation for a page render. It is a pure
// projection: declared sections plus the pages grouped under them go in,
// ordered render-ready entries come out. No I/O, no shared state; every
// render gets a fresh Sidebar with that render's page marked active.
package nav

import (
	"fmt"

	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/util/sanitize"
)

// SectionMeta is one declared sidebar section: its identifier and display
// name, in course-metadata order.
type SectionMeta struct {
	ID   string
	Name string
}

// PageLookup maps a section id to the ordered pages of that section. Order
// within a section is the order declared in course.yml, never sorted.
type PageLookup map[string][]*content.Page

// Entry is one render-ready sidebar row.
type Entry struct {
	Href         string
	Title        string
	Description  string
	Category     content.Category
	DisplayLabel string
	Active       bool
	TagClasses   []string
	YouTubeID    string
}

// Section is a sidebar group with its entries in declared order.
type Section struct {
	ID      string
	Name    string
	Entries []Entry
}

// Sidebar is the derived navigation view for a single render.
type Sidebar struct {
	Sections []Section
}

// Build projects sections and their pages into a Sidebar, marking the page
// whose id equals currentID as active. When currentID names no listed page
// (the home page, an unlisted page) no entry is active. Sections with no
// pages are preserved with empty Entries, keeping declared order.
func Build(sections []SectionMeta, lookup PageLookup, currentID string) *Sidebar {
	sidebar := &Sidebar{Sections: make([]Section, 0, len(sections))}

	for _, meta := range sections {
		section := Section{ID: meta.ID, Name: meta.Name}
		for _, page := range lookup[meta.ID] {
			section.Entries = append(section.Entries, buildEntry(page, currentID))
		}
		sidebar.Sections = append(sidebar.Sections, section)
	}

	return sidebar
}

// ActiveEntry returns the active entry, or nil when no listed page is
// current.
func (s *Sidebar) ActiveEntry() *Entry {
	for i := range s.Sections {
		for j := range s.Sections[i].Entries {
			if s.Sections[i].Entries[j].Active {
				return &s.Sections[i].Entries[j]
			}
		}
	}
	return nil
}

// Label returns the display label for a page, the same text a sidebar entry
// would carry.
func Label(page *content.Page) string {
	return displayLabel(page)
}

func buildEntry(page *content.Page, currentID string) Entry {
	return Entry{
		Href:         page.Href,
		Title:        page.DisplayTitle(),
		Description:  page.Description,
		Category:     page.Category(),
		DisplayLabel: displayLabel(page),
		Active:       page.ID == currentID,
		TagClasses:   tagClasses(page.Tags),
		YouTubeID:    page.YouTubeID,
	}
}

// displayLabel synthesizes the label shown before the entry title. Exercises
// and in-depth pages label by their own numbering; a lecture gets a
// "chapter.section" label only when both fields are present.
func displayLabel(page *content.Page) string {
	switch page.Category() {
	case content.CategoryExercise:
		return fmt.Sprintf("Exercise %s:", page.ExerciseNumber)
	case content.CategoryIndepth:
		return fmt.Sprintf("In-depth %s:", page.IndepthNumber)
	default:
		if page.Chapter != "" && page.Section != "" {
			return fmt.Sprintf("%s.%s", page.Chapter, page.Section)
		}
		return ""
	}
}

func tagClasses(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	classes := make([]string, 0, len(tags))
	for _, tag := range tags {
		if class := sanitize.ForTagClass(tag); class != "" {
			classes = append(classes, class)
		}
	}
	if len(classes) == 0 {
		return nil
	}
	return classes
}
