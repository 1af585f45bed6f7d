package cli

import (
	"fmt"
	"os"

	"github.com/lectern/lectern/errors"
)

// ErrorHandler provides user-friendly error messages
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
	}
}

// Handle provides user-friendly error messages based on error type
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(os.Stderr, "❌ No course configuration found. Run 'lectern init' to create a new course.\n")
		return err

	case errors.ErrCodePageNotFound:
		if lecternErr, ok := err.(*errors.LecternError); ok {
			fmt.Fprintf(os.Stderr, "❌ Page '%s' is listed in course.yml but does not exist under content/\n",
				lecternErr.Details["page"])
			fmt.Fprintf(os.Stderr, "Create it with 'lectern new %s' or remove it from the section.\n",
				lecternErr.Details["page"])
		}
		return err

	case errors.ErrCodeDuplicatePage:
		if lecternErr, ok := err.(*errors.LecternError); ok {
			fmt.Fprintf(os.Stderr, "❌ Page '%s' appears in more than one section\n",
				lecternErr.Details["page"])
			fmt.Fprintf(os.Stderr, "Each page may be listed in exactly one section of course.yml.\n")
		}
		return err

	case errors.ErrCodeLayoutNotFound:
		if lecternErr, ok := err.(*errors.LecternError); ok {
			fmt.Fprintf(os.Stderr, "❌ Layout '%s' not found\n", lecternErr.Details["layout"])
			fmt.Fprintf(os.Stderr, "Every project needs a layouts/base.html. Run 'lectern docs layouts' for a starting point.\n")
		}
		return err

	case errors.ErrCodeServerStart:
		if lecternErr, ok := err.(*errors.LecternError); ok {
			fmt.Fprintf(os.Stderr, "❌ Could not start the server on %s\n", lecternErr.Details["addr"])
			fmt.Fprintf(os.Stderr, "The port may be in use; try 'lectern serve --port 0' or another port.\n")
		}
		return err

	case errors.ErrCodeProjectExists:
		fmt.Fprintf(os.Stderr, "❌ This directory already contains a course configuration.\n")
		fmt.Fprintf(os.Stderr, "Run 'lectern init' in an empty directory instead.\n")
		return err

	default:
		// Generic error handling
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)

		// If verbose mode, show full error details
		if h.Verbose {
			if lecternErr, ok := err.(*errors.LecternError); ok {
				fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", lecternErr.ToJSON())
			}
		}
		return err
	}
}
