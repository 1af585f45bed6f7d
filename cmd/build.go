package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/site"
)

// NewBuildCmd creates the `build` command.
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the course site into the output directory",
		Long: `Builds every page under the content directory into a static site.

The output directory (public/ by default) is recreated from scratch on each
build: static assets are copied in, every markdown page is rendered through
the base layout, and the sidebar is recomputed per page so the entry for the
page being rendered carries the active class.

Examples:
  # Build the course in the current directory
  lectern build

  # Include pages marked draft: true
  lectern build --drafts

  # Machine-readable build report
  lectern build --json
`,
		RunE: runBuildE,
	}

	cmd.Flags().Bool("drafts", false, "Build pages marked as drafts")

	return cmd
}

func runBuildE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	drafts, _ := cmd.Flags().GetBool("drafts")

	builder := site.NewBuilder(cfg, site.Options{
		Drafts:      drafts,
		RecordState: true,
	})
	report, err := builder.Build(cmd.Context())
	if err != nil {
		return err
	}

	if opts.JSONOutput {
		return printBuildJSON(cmd, report, cfg.OutputDir)
	}

	report.Print(cfg.AbsOutputDir())
	return nil
}

func printBuildJSON(cmd *cobra.Command, report *site.Report, outputDir string) error {
	type stageJSON struct {
		Name       string `json:"name"`
		DurationMs int64  `json:"duration_ms"`
	}
	out := struct {
		ID         string      `json:"id"`
		StartedAt  time.Time   `json:"started_at"`
		DurationMs int64       `json:"duration_ms"`
		Pages      int         `json:"pages"`
		OutputDir  string      `json:"output_dir"`
		Warnings   []string    `json:"warnings,omitempty"`
		Stages     []stageJSON `json:"stages"`
		Successful bool        `json:"successful"`
	}{
		ID:         report.ID,
		StartedAt:  report.StartedAt,
		DurationMs: report.Duration.Milliseconds(),
		Pages:      report.PageCount(),
		OutputDir:  outputDir,
		Warnings:   report.Warnings,
		Successful: report.Successful,
	}
	for _, stage := range report.Stages {
		out.Stages = append(out.Stages, stageJSON{Name: stage.Name, DurationMs: stage.Duration.Milliseconds()})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
