package render

import (
	"html/template"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/lectern/lectern/errors"
)

// BaseLayoutName is the layout every course must provide at the layouts root.
const BaseLayoutName = "base.html"

// loadLayouts parses the user layout files. base.html and everything under
// layouts/partials/ form the base set; remaining top-level .html files are
// parsed on top so a page can select them by name through its `layout`
// front-matter.
func loadLayouts(layoutsDir string) (*template.Template, error) {
	var basePath string
	var partials []string
	var others []string

	err := filepath.WalkDir(layoutsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".html") {
			return nil
		}
		switch {
		case d.Name() == BaseLayoutName && filepath.Dir(path) == layoutsDir:
			basePath = path
		case strings.HasPrefix(filepath.Dir(path), filepath.Join(layoutsDir, "partials")):
			partials = append(partials, path)
		default:
			others = append(others, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTemplateParse, "failed to walk layouts directory").
			WithDetail("dir", layoutsDir)
	}

	if basePath == "" {
		return nil, errors.LayoutNotFound(BaseLayoutName, layoutsDir)
	}

	files := append([]string{basePath}, partials...)
	layouts, err := template.ParseFiles(files...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTemplateParse, "failed to parse base layout and partials")
	}

	if len(others) > 0 {
		layouts, err = layouts.ParseFiles(others...)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeTemplateParse, "failed to parse page layouts")
		}
	}

	return layouts, nil
}

// layoutFor picks the template to execute for a page. A `layout` front-matter
// value selects a top-level layout file by name when it exists; anything else
// falls back to base.html.
func (r *Renderer) layoutFor(pageLayout string) string {
	if pageLayout != "" && r.layouts.Lookup(pageLayout) != nil {
		return pageLayout
	}
	return BaseLayoutName
}
