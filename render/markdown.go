package render

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/errors"
)

// newMarkdown builds the goldmark pipeline from the course configuration.
// Raw HTML passes through unescaped: course notebooks embed iframes, <details>
// blocks, and MathJax markup directly in their markdown.
func newMarkdown(cfg *config.Config) goldmark.Markdown {
	rendererOptions := []renderer.Option{
		gmhtml.WithUnsafe(),
	}
	if cfg.HardWraps() {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}

	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(cfg.Markdown.HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithLineNumbers(false),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// Markdown converts a markdown body to HTML using the renderer's pipeline.
func (r *Renderer) Markdown(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert(source, &buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMarkdownRender, "markdown conversion failed")
	}
	return buf.Bytes(), nil
}
