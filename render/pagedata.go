package render

import (
	"html/template"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/nav"
)

// PageData is the template context handed to user layouts. The chrome
// fragments come pre-rendered; the structured values (Sidebar, Page, TOC)
// are there for layouts that want to render their own markup.
type PageData struct {
	Course  config.CourseInfo
	Config  *config.Config
	Page    *content.Page
	Sidebar *nav.Sidebar

	SidebarHTML template.HTML
	HeadHTML    template.HTML
	FooterHTML  template.HTML
	TracksHTML  template.HTML

	// Content is the rendered page body.
	Content template.HTML

	TOC []Heading
}

// Title returns the display title of the current page.
func (d *PageData) Title() string {
	return d.Page.DisplayTitle()
}

// YouTubeEmbedURL returns the embed URL for the page's video, or "" when the
// page has none.
func (d *PageData) YouTubeEmbedURL() string {
	if d.Page.YouTubeID == "" {
		return ""
	}
	return "https://www.youtube-nocookie.com/embed/" + d.Page.YouTubeID
}
