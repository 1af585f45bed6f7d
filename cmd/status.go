package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/state"
)

// NewStatusCmd creates the `status` command.
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the result of the last build",
		Long: `Prints the record of the last completed build: when it ran, how long it
took, how many pages were written and any warnings it produced.

Examples:
  lectern status
  lectern status --json
`,
		RunE: runStatusE,
	}

	return cmd
}

func runStatusE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	record, err := state.LastBuild(cfg.ProjectRoot())
	if err != nil {
		return err
	}

	pretty := logging.NewPrettyLogger()
	if record == nil {
		pretty.InfoPretty("No build recorded yet. Run 'lectern build' first.")
		return nil
	}

	if opts.JSONOutput {
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if record.Successful {
		pretty.Success(fmt.Sprintf("Last build %s succeeded", record.ID))
	} else {
		pretty.WarnPretty(fmt.Sprintf("Last build %s failed", record.ID))
	}
	pretty.Field("started", record.StartedAt.Format(time.RFC1123))
	pretty.Field("duration", record.Duration.Round(time.Millisecond).String())
	pretty.Field("pages", record.Pages)
	pretty.Path("output", record.OutputDir)
	for _, warning := range record.Warnings {
		pretty.WarnPretty(warning)
	}
	return nil
}
