package site

import (
	"fmt"
	"sync"
	"time"

	"github.com/lectern/lectern/content"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/nav"
	"github.com/lectern/lectern/render"
)

// Report is the outcome of one build run.
type Report struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Stages     []StageTiming
	Warnings   []string
	Successful bool

	// pipeline state carried between stages
	renderer    *render.Renderer
	sourcePaths []string
	pages       []*content.Page
	sections    []nav.SectionMeta
	lookup      nav.PageLookup

	warnMu sync.Mutex
}

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Name     string
	Duration time.Duration
}

// Warn records a non-fatal build finding.
func (r *Report) Warn(message string) {
	r.warnMu.Lock()
	defer r.warnMu.Unlock()
	r.Warnings = append(r.Warnings, message)
}

// PageCount returns the number of pages built.
func (r *Report) PageCount() int {
	return len(r.pages)
}

// Pages returns the built pages in scan order.
func (r *Report) Pages() []*content.Page {
	return r.pages
}

// Sections returns the declared section metadata in sidebar order.
func (r *Report) Sections() []nav.SectionMeta {
	return r.sections
}

// Lookup returns the section-to-pages mapping assembled during the build.
func (r *Report) Lookup() nav.PageLookup {
	return r.lookup
}

// Print writes a human-readable build summary through the pretty logger.
func (r *Report) Print(outputDir string) {
	pretty := logging.NewPrettyLogger()

	if r.Successful {
		pretty.Success(fmt.Sprintf("Built %d pages in %s", r.PageCount(), r.Duration.Round(time.Millisecond)))
	} else {
		pretty.WarnPretty(fmt.Sprintf("Build %s failed after %s", r.ID, r.Duration.Round(time.Millisecond)))
	}
	pretty.Field("build", r.ID)
	pretty.Path("output", outputDir)

	for _, warning := range r.Warnings {
		pretty.WarnPretty(warning)
	}
}
