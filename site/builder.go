// Package site runs the build pipeline: scan, parse, assemble, render,
// write. Stages are sequential; page parsing and rendering fan out across a
// worker group. Each render recomputes the sidebar with its own page marked
// current, so no state is shared between renders.
package site

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/errors"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/pkg/profiling"
	"github.com/lectern/lectern/render"
	"github.com/lectern/lectern/state"
)

// Options tweak a single build run.
type Options struct {
	// Drafts builds pages marked draft, overriding content.drafts.
	Drafts bool
	// LiveReload injects the live-reload client script into every page.
	LiveReload bool
	// RecordState persists the build record to .lectern/state.yml.
	RecordState bool
}

// Builder executes builds for one loaded course configuration.
type Builder struct {
	cfg  *config.Config
	opts Options
}

// NewBuilder creates a builder for the given configuration.
func NewBuilder(cfg *config.Config, opts Options) *Builder {
	return &Builder{cfg: cfg, opts: opts}
}

// Build runs the full pipeline and returns the report. The returned error is
// non-nil only when the build failed; warnings ride on the report.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	log := logging.NewLogger("site")

	report := &Report{
		ID:        uuid.NewString()[:8],
		StartedAt: time.Now(),
	}
	log.WithField("build", report.ID).Info("Build started")

	stages := []struct {
		name string
		run  func(context.Context, *Report) error
	}{
		{"clean output", b.cleanOutput},
		{"copy static", b.copyStatic},
		{"load renderer", b.loadRenderer},
		{"scan content", b.scanContent},
		{"parse pages", b.parsePages},
		{"assemble sections", b.assembleSections},
		{"render pages", b.renderPages},
	}

	var failed error
	for _, stage := range stages {
		stop := profiling.Start(stage.name)
		start := time.Now()
		err := stage.run(ctx, report)
		stop.Stop()
		report.Stages = append(report.Stages, StageTiming{Name: stage.name, Duration: time.Since(start)})
		if err != nil {
			failed = err
			break
		}
	}

	report.Duration = time.Since(report.StartedAt)
	report.Successful = failed == nil

	if b.opts.RecordState && b.cfg.ProjectRoot() != "" {
		record := state.BuildRecord{
			ID:         report.ID,
			StartedAt:  report.StartedAt,
			Duration:   report.Duration,
			Pages:      len(report.pages),
			Warnings:   report.Warnings,
			OutputDir:  b.cfg.OutputDir,
			Successful: report.Successful,
		}
		if err := state.SaveBuildRecord(b.cfg.ProjectRoot(), record); err != nil {
			log.WithError(err).Warn("Failed to persist build record")
		}
	}

	if failed != nil {
		log.WithField("build", report.ID).WithError(failed).Error("Build failed")
		return report, failed
	}

	log.WithField("build", report.ID).
		WithField("pages", len(report.pages)).
		WithField("duration", report.Duration.Round(time.Millisecond)).
		Info("Build complete")
	return report, nil
}

func (b *Builder) cleanOutput(_ context.Context, _ *Report) error {
	out := b.cfg.AbsOutputDir()
	if err := os.RemoveAll(out); err != nil {
		return errors.OutputWrite(out, err)
	}
	if err := os.MkdirAll(out, 0755); err != nil {
		return errors.OutputWrite(out, err)
	}
	return nil
}

func (b *Builder) copyStatic(_ context.Context, _ *Report) error {
	staticDir := b.cfg.AbsStaticDir()
	if _, err := os.Stat(staticDir); os.IsNotExist(err) {
		return nil
	}
	out := b.cfg.AbsOutputDir()

	return filepath.WalkDir(staticDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(staticDir, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(out, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}
		if err := copyFile(p, dst); err != nil {
			return errors.Wrap(err, errors.ErrCodeStaticCopy, "failed to copy static asset").
				WithDetail("asset", rel)
		}
		return nil
	})
}

func (b *Builder) loadRenderer(_ context.Context, r *Report) error {
	renderer, err := render.New(b.cfg)
	if err != nil {
		return err
	}
	r.renderer = renderer
	return nil
}

func (b *Builder) scanContent(_ context.Context, r *Report) error {
	scanner := &content.Scanner{
		ContentDir:  b.cfg.AbsContentDir(),
		ProjectRoot: b.cfg.ProjectRoot(),
		Patterns:    b.cfg.Content.Ignore,
	}
	paths, err := scanner.Scan()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBuildFailed, "content scan failed")
	}
	r.sourcePaths = paths
	return nil
}

// parsePages loads and parses every scanned page in parallel, then restores
// scan order. Draft pages drop out here unless drafts are enabled.
func (b *Builder) parsePages(ctx context.Context, r *Report) error {
	includeDrafts := b.opts.Drafts || b.cfg.DraftsEnabled()

	parsed := make([]*content.Page, len(r.sourcePaths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, rel := range r.sourcePaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			page, err := content.LoadPage(b.cfg.AbsContentDir(), rel, b.cfg.BaseURL)
			if err != nil {
				return err
			}
			parsed[i] = page
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, page := range parsed {
		if page.Draft && !includeDrafts {
			continue
		}
		r.pages = append(r.pages, page)
	}
	return nil
}

// assembleSections groups parsed pages by their declared section, keeping
// course.yml order. Pages on disk but not listed anywhere still build
// standalone, with a warning.
func (b *Builder) assembleSections(_ context.Context, r *Report) error {
	byID := make(map[string]*content.Page, len(r.pages))
	for _, page := range r.pages {
		byID[page.ID] = page
	}

	r.lookup = nav.PageLookup{}
	listed := make(map[string]bool)
	for _, section := range b.cfg.Sections {
		r.sections = append(r.sections, nav.SectionMeta{ID: section.ID, Name: section.Name})
		for _, id := range section.Pages {
			page, ok := byID[id]
			if !ok {
				// Listed pages are stat-checked at config load; reaching
				// here means the page was excluded by an ignore pattern or
				// is an unbuilt draft.
				r.Warn(fmt.Sprintf("section '%s' lists '%s', which was not built", section.ID, id))
				continue
			}
			r.lookup[section.ID] = append(r.lookup[section.ID], page)
			listed[id] = true
		}
	}

	for _, page := range r.pages {
		if !listed[page.ID] && page.ID != "index.md" {
			r.Warn(fmt.Sprintf("page '%s' is not listed in any section", page.ID))
		}
	}
	return nil
}

// renderPages writes every page, recomputing the sidebar per render so the
// active entry always matches the page being written.
func (b *Builder) renderPages(ctx context.Context, r *Report) error {
	out := b.cfg.AbsOutputDir()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, page := range r.pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sidebar := nav.Build(r.sections, r.lookup, page.ID)
			doc, err := r.renderer.Page(page, sidebar)
			if err != nil {
				return err
			}
			if b.opts.LiveReload {
				doc = InjectLiveReload(doc)
			}

			dst := filepath.Join(out, filepath.FromSlash(page.OutputPath()))
			if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
				return errors.OutputWrite(dst, err)
			}
			if err := os.WriteFile(dst, doc, 0644); err != nil {
				return errors.OutputWrite(dst, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// InjectLiveReload inserts the live-reload client script before </body>, or
// appends it when the document has no closing body tag.
func InjectLiveReload(doc []byte) []byte {
	const script = `<script src="/livereload.js" defer></script>`
	html := string(doc)
	if idx := strings.LastIndex(html, "</body>"); idx != -1 {
		return []byte(html[:idx] + script + "\n" + html[idx:])
	}
	return append(doc, []byte("\n"+script+"\n")...)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
