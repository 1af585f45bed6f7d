package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/check"
	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/logging"
)

// NewCheckCmd creates the `check` command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Lint the course without building it",
		Long: `Validates the project: config schema, layouts, page front-matter,
duplicate exercise/in-depth/chapter numbering, unknown tags, unlisted pages
and broken internal links.

Errors are problems that would fail a build; warnings are consistency
issues. The command exits non-zero when any error is found.

Examples:
  lectern check
  lectern check --json
`,
		RunE: runCheckE,
	}

	return cmd
}

func runCheckE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	findings, err := check.New(cfg).Run(cmd.Context())
	if err != nil {
		return err
	}

	if opts.JSONOutput {
		data, err := json.MarshalIndent(findings, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	} else {
		pretty := logging.NewPrettyLogger()
		if len(findings) == 0 {
			pretty.Success("No problems found")
			return nil
		}
		for _, f := range findings {
			if f.Severity == check.SeverityError {
				pretty.ErrorPretty(f.String(), nil)
			} else {
				pretty.WarnPretty(f.String())
			}
		}
	}

	if check.HasErrors(findings) {
		errorCount := 0
		for _, f := range findings {
			if f.Severity == check.SeverityError {
				errorCount++
			}
		}
		return fmt.Errorf("check found %d error(s)", errorCount)
	}
	return nil
}
