package render

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Heading is one table-of-contents entry extracted from rendered HTML.
type Heading struct {
	ID    string
	Text  string
	Level int
}

// ExtractTOC walks the rendered body for h2 and h3 headings carrying the
// auto-generated ids. h1 is skipped: it duplicates the page title.
func ExtractTOC(html string) ([]Heading, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var toc []Heading
	doc.Find("h2, h3").Each(func(_ int, sel *goquery.Selection) {
		id, ok := sel.Attr("id")
		if !ok {
			return
		}
		level := 2
		if goquery.NodeName(sel) == "h3" {
			level = 3
		}
		toc = append(toc, Heading{
			ID:    id,
			Text:  strings.TrimSpace(sel.Text()),
			Level: level,
		})
	})
	return toc, nil
}
