package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *LecternError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("course configuration not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *LecternError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// ContentParse creates a front-matter or markdown parse error for a page
func ContentParse(path string, err error) *LecternError {
	return Wrap(err, ErrCodeContentParse, fmt.Sprintf("failed to parse page: %s", path)).
		WithDetail("path", path)
}

// PageNotFound creates an error for a section listing a page with no source file
func PageNotFound(page string, section string) *LecternError {
	return New(ErrCodePageNotFound,
		fmt.Sprintf("page '%s' listed in section '%s' does not exist", page, section)).
		WithDetail("page", page).
		WithDetail("section", section)
}

// DuplicatePage creates an error for a page listed in more than one section
func DuplicatePage(page string, first string, second string) *LecternError {
	return New(ErrCodeDuplicatePage,
		fmt.Sprintf("page '%s' appears in sections '%s' and '%s'", page, first, second)).
		WithDetail("page", page).
		WithDetail("sections", []string{first, second})
}

// LayoutNotFound creates an error for a missing layout file
func LayoutNotFound(name string, dir string) *LecternError {
	return New(ErrCodeLayoutNotFound, fmt.Sprintf("layout '%s' not found in %s", name, dir)).
		WithDetail("layout", name).
		WithDetail("dir", dir)
}

// TemplateExec creates a template execution error for a page
func TemplateExec(page string, err error) *LecternError {
	return Wrap(err, ErrCodeTemplateExec, fmt.Sprintf("failed to render page: %s", page)).
		WithDetail("page", page)
}

// OutputWrite creates an output write error
func OutputWrite(path string, err error) *LecternError {
	return Wrap(err, ErrCodeOutputWrite, fmt.Sprintf("failed to write output: %s", path)).
		WithDetail("path", path)
}

// ServerStart creates a server startup error
func ServerStart(addr string, err error) *LecternError {
	return Wrap(err, ErrCodeServerStart, fmt.Sprintf("failed to start server on %s", addr)).
		WithDetail("addr", addr)
}

// ProjectExists creates an error for scaffolding over an existing project
func ProjectExists(path string) *LecternError {
	return New(ErrCodeProjectExists,
		fmt.Sprintf("a course project already exists at %s", path)).
		WithDetail("path", path)
}

// ImportFailed creates an HTML import error
func ImportFailed(source string, err error) *LecternError {
	return Wrap(err, ErrCodeImportFailed, fmt.Sprintf("failed to import: %s", source)).
		WithDetail("source", source)
}
