package content

import (
	"bytes"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/mitchellh/mapstructure"

	"github.com/lectern/lectern/errors"
)

// Category classifies a page for navigation and styling purposes.
type Category string

const (
	CategoryLecture  Category = "lecture"
	CategoryExercise Category = "exercise"
	CategoryIndepth  Category = "indepth"
)

// Page is a single content page: its identity, front-matter, and (after the
// render stage) its rendered body. All front-matter fields are optional; a
// markdown file with no front-matter at all is a valid lecture page.
type Page struct {
	// ID is the content-relative source path, slash-separated
	// (e.g. "mod1/03_pointers.md"). It identifies the page everywhere:
	// section listings in course.yml, the active-page check, warnings.
	ID string

	// SourcePath is the absolute path of the source file.
	SourcePath string

	// Href is the BaseURL-joined pretty URL the page is published under
	// (e.g. "/hpc/mod1/03_pointers/").
	Href string

	Title          string
	Description    string
	Tags           []string
	Date           string
	Chapter        string
	Section        string
	ExerciseNumber string
	IndepthNumber  string
	YouTubeID      string
	Layout         string
	Draft          bool

	// Extra holds front-matter keys the typed fields don't cover, preserved
	// for user layouts.
	Extra map[string]interface{}

	// Body is the raw markdown after the front-matter block.
	Body []byte

	// HTML is the rendered body, filled by the build pipeline.
	HTML template.HTML
}

// frontMatter is the typed front-matter block. Decoding goes through
// mapstructure with weak typing so `exercise_number: 3` and
// `exercise_number: "3"` both land as the string "3".
type frontMatter struct {
	Title          string   `mapstructure:"title"`
	Description    string   `mapstructure:"description"`
	Tags           []string `mapstructure:"tags"`
	Date           string   `mapstructure:"date"`
	Chapter        string   `mapstructure:"chapter"`
	Section        string   `mapstructure:"section"`
	ExerciseNumber string   `mapstructure:"exercise_number"`
	IndepthNumber  string   `mapstructure:"indepth_number"`
	YouTubeID      string   `mapstructure:"youtube_id"`
	Layout         string   `mapstructure:"layout"`
	Draft          bool     `mapstructure:"draft"`
}

// knownFrontMatterKeys are the keys consumed by the typed struct; everything
// else is preserved in Page.Extra.
var knownFrontMatterKeys = map[string]bool{
	"title": true, "description": true, "tags": true, "date": true,
	"chapter": true, "section": true, "exercise_number": true,
	"indepth_number": true, "youtube_id": true, "layout": true, "draft": true,
}

// LoadPage reads and parses one content page. relPath is the content-relative
// source path in slash form; baseURL is the normalized site prefix ("" or
// "/prefix").
func LoadPage(contentDir, relPath, baseURL string) (*Page, error) {
	sourcePath := filepath.Join(contentDir, filepath.FromSlash(relPath))
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, errors.ContentParse(relPath, err)
	}
	return ParsePage(relPath, sourcePath, data, baseURL)
}

// ParsePage parses page source already in memory. Front-matter may be YAML
// ("---" fences) or TOML ("+++" fences); a file without front-matter is
// treated as a plain lecture page.
func ParsePage(relPath, sourcePath string, data []byte, baseURL string) (*Page, error) {
	raw := make(map[string]interface{})
	body, err := frontmatter.Parse(bytes.NewReader(data), &raw)
	if err != nil {
		return nil, errors.ContentParse(relPath, err)
	}

	var fm frontMatter
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fm,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.ContentParse(relPath, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.ContentParse(relPath, err)
	}

	var extra map[string]interface{}
	for key, value := range raw {
		if knownFrontMatterKeys[key] {
			continue
		}
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra[key] = value
	}

	page := &Page{
		ID:             relPath,
		SourcePath:     sourcePath,
		Href:           HrefFor(relPath, baseURL),
		Title:          fm.Title,
		Description:    fm.Description,
		Tags:           fm.Tags,
		Date:           fm.Date,
		Chapter:        fm.Chapter,
		Section:        fm.Section,
		ExerciseNumber: fm.ExerciseNumber,
		IndepthNumber:  fm.IndepthNumber,
		YouTubeID:      fm.YouTubeID,
		Layout:         fm.Layout,
		Draft:          fm.Draft,
		Extra:          extra,
		Body:           body,
	}
	return page, nil
}

// Category derives the page classification from its numbering front-matter.
// An exercise number wins over an in-depth number when both are set.
func (p *Page) Category() Category {
	switch {
	case p.ExerciseNumber != "":
		return CategoryExercise
	case p.IndepthNumber != "":
		return CategoryIndepth
	default:
		return CategoryLecture
	}
}

// DisplayTitle returns the front-matter title, falling back to the source
// filename without its extension. The stem is used verbatim, no case-mangling.
func (p *Page) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return Stem(p.ID)
}

// Stem returns the final path element of a slash-separated page id without
// its extension ("mod1/03_pointers.md" -> "03_pointers").
func Stem(id string) string {
	base := path.Base(id)
	return strings.TrimSuffix(base, path.Ext(base))
}

// HrefFor maps a content-relative source path to its pretty URL under
// baseURL. An index.md maps to its directory root.
func HrefFor(relPath, baseURL string) string {
	dir := path.Dir(relPath)
	stem := Stem(relPath)

	var p string
	switch {
	case stem == "index" && (dir == "." || dir == ""):
		p = "/"
	case stem == "index":
		p = "/" + dir + "/"
	case dir == "." || dir == "":
		p = "/" + stem + "/"
	default:
		p = "/" + dir + "/" + stem + "/"
	}
	return baseURL + p
}

// OutputPath returns the output-relative file the rendered page is written
// to ("mod1/03_pointers.md" -> "mod1/03_pointers/index.html").
func (p *Page) OutputPath() string {
	dir := path.Dir(p.ID)
	stem := Stem(p.ID)

	switch {
	case stem == "index" && (dir == "." || dir == ""):
		return "index.html"
	case stem == "index":
		return path.Join(dir, "index.html")
	case dir == "." || dir == "":
		return path.Join(stem, "index.html")
	default:
		return path.Join(dir, stem, "index.html")
	}
}
