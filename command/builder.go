package command

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultTimeout is the default command execution timeout
	DefaultTimeout = 2 * time.Minute

	// MaxTimeout is the maximum allowed timeout
	MaxTimeout = 10 * time.Minute
)

// SafeBuilder provides validated external command execution. Lectern shells
// out rarely (opening the browser from `serve --open` is the main case), and
// everything that reaches an argv goes through a validator first.
type SafeBuilder struct {
	defaultTimeout time.Duration
	validators     map[string]func(string) error
	executor       Executor
}

// NewSafeBuilder creates a new SafeBuilder instance with a RealExecutor
func NewSafeBuilder() *SafeBuilder {
	return NewSafeBuilderWithExecutor(&RealExecutor{})
}

// NewSafeBuilderWithExecutor creates a new SafeBuilder with a custom Executor
func NewSafeBuilderWithExecutor(exec Executor) *SafeBuilder {
	return &SafeBuilder{
		defaultTimeout: DefaultTimeout,
		validators:     makeDefaultValidators(),
		executor:       exec,
	}
}

// makeDefaultValidators returns the default set of validators
func makeDefaultValidators() map[string]func(string) error {
	return map[string]func(string) error{
		"sectionID": validateSectionID,
		"pagePath":  validatePagePath,
		"url":       validateURL,
	}
}

// validateSectionID ensures section identifiers are safe for filenames and
// CSS hooks: lowercase letters, digits, underscores, hyphens.
func validateSectionID(id string) error {
	if id == "" {
		return fmt.Errorf("section id cannot be empty")
	}

	validID := regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	if !validID.MatchString(id) {
		return fmt.Errorf("invalid section id: %s (must contain only lowercase letters, digits, underscores, and hyphens)", id)
	}

	if len(id) > 63 {
		return fmt.Errorf("section id too long: %s (max 63 characters)", id)
	}

	return nil
}

// validatePagePath ensures a content-relative page path cannot escape the
// content directory.
func validatePagePath(path string) error {
	if path == "" {
		return fmt.Errorf("page path cannot be empty")
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("page path must be relative: %s", path)
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return fmt.Errorf("page path must not contain '..': %s", path)
		}
	}
	return nil
}

// validateURL ensures only http(s) URLs are handed to the browser opener.
func validateURL(url string) error {
	if url == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("only http(s) urls can be opened: %s", url)
	}
	return nil
}

// Command represents a safe command configuration
type Command struct {
	ctx      context.Context
	name     string
	args     []string
	timeout  time.Duration
	executor Executor
}

// Build creates a new command with validation
func (sb *SafeBuilder) Build(ctx context.Context, name string, args ...string) (*Command, error) {
	// Validate command name
	if name == "" {
		return nil, fmt.Errorf("command name cannot be empty")
	}

	// Apply timeout to context
	timeoutCtx, cancel := context.WithTimeout(ctx, sb.defaultTimeout)

	// Important: We don't call cancel here as the caller needs to execute the command
	// The cancel will be handled by the command execution
	_ = cancel

	return &Command{
		ctx:      timeoutCtx,
		name:     name,
		args:     args,
		timeout:  sb.defaultTimeout,
		executor: sb.executor,
	}, nil
}

// WithTimeout sets a custom timeout for the command
func (c *Command) WithTimeout(timeout time.Duration) *Command {
	if timeout > MaxTimeout {
		timeout = MaxTimeout
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	_ = cancel // Will be handled during execution

	c.ctx = ctx
	c.timeout = timeout
	return c
}

// Validate validates specific arguments
func (sb *SafeBuilder) Validate(argType string, value string) error {
	validator, exists := sb.validators[argType]
	if !exists {
		return fmt.Errorf("no validator for argument type: %s", argType)
	}

	return validator(value)
}

// Exec creates and returns an exec.Cmd
func (c *Command) Exec() *exec.Cmd {
	return c.executor.CommandContext(c.ctx, c.name, c.args...)
}

// OpenBrowser builds the platform-specific command that opens url in the
// user's browser. The URL is validated before anything is executed.
func (sb *SafeBuilder) OpenBrowser(ctx context.Context, url string) (*Command, error) {
	if err := sb.Validate("url", url); err != nil {
		return nil, err
	}

	switch runtime.GOOS {
	case "darwin":
		return sb.Build(ctx, "open", url)
	case "windows":
		return sb.Build(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return sb.Build(ctx, "xdg-open", url)
	}
}
