package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/docs"
	"github.com/lectern/lectern/logging"
)

// NewDocsCmd creates the `docs` command.
func NewDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show built-in documentation",
		Long: `Without arguments, lists the available topics. With a topic name, renders
that article in the terminal.

Examples:
  lectern docs
  lectern docs frontmatter
  lectern docs layouts
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDocsE,
	}

	return cmd
}

func runDocsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	if len(args) == 1 {
		topic, err := docs.Get(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderMarkdown(topic.Content))
		return nil
	}

	topics := docs.All()

	if opts.JSONOutput {
		type topicJSON struct {
			Name    string `json:"name"`
			Title   string `json:"title"`
			Summary string `json:"summary"`
		}
		out := make([]topicJSON, 0, len(topics))
		for _, t := range topics {
			out = append(out, topicJSON{Name: t.Name, Title: t.Title, Summary: t.Summary})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	pretty := logging.NewPrettyLogger()
	pretty.InfoPretty("Available topics:")
	pretty.Blank()
	for _, t := range topics {
		pretty.Field(t.Name, t.Summary)
	}
	pretty.Blank()
	pretty.InfoPretty("Read one with: lectern docs <topic>")
	return nil
}
