package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/scaffold"
)

// NewNewCmd creates the `new` command.
func NewNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <page-path>",
		Short: "Create a new content page",
		Long: `Creates a markdown page under the content directory, pre-filled with
front-matter from the given flags. The .md extension is optional. With
--section the page is also appended to that section's page list in
course.yml.

Examples:
  # A plain lecture page (title suggested from the filename)
  lectern new mod1/memory-layout

  # An exercise, listed in a section
  lectern new mod1/stack-smashing --exercise 4 --section basics

  # A numbered lecture with a video
  lectern new mod2/heat-equation --chapter 2 --section-number 3 --youtube dQw4w9WgXcQ

  # A draft in-depth article
  lectern new extras/simd-deep-dive --indepth 2 --draft
`,
		Args: cobra.ExactArgs(1),
		RunE: runNewE,
	}

	cmd.Flags().String("title", "", "Page title (default: derived from the filename)")
	cmd.Flags().String("description", "", "Page description")
	cmd.Flags().StringSlice("tags", nil, "Tags, comma-separated")
	cmd.Flags().String("chapter", "", "Chapter number")
	cmd.Flags().String("section-number", "", "Section number within the chapter")
	cmd.Flags().String("exercise", "", "Exercise number (makes the page an exercise)")
	cmd.Flags().String("indepth", "", "In-depth number (makes the page an in-depth article)")
	cmd.Flags().String("youtube", "", "YouTube video ID")
	cmd.Flags().Bool("draft", false, "Mark the page as a draft")
	cmd.Flags().StringP("section", "s", "", "Section ID to list the page under in course.yml")

	return cmd
}

func runNewE(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	opts := scaffold.PageOptions{}
	opts.Title, _ = cmd.Flags().GetString("title")
	opts.Description, _ = cmd.Flags().GetString("description")
	opts.Tags, _ = cmd.Flags().GetStringSlice("tags")
	opts.Chapter, _ = cmd.Flags().GetString("chapter")
	opts.Section, _ = cmd.Flags().GetString("section-number")
	opts.ExerciseNumber, _ = cmd.Flags().GetString("exercise")
	opts.IndepthNumber, _ = cmd.Flags().GetString("indepth")
	opts.YouTubeID, _ = cmd.Flags().GetString("youtube")
	opts.Draft, _ = cmd.Flags().GetBool("draft")
	opts.SectionID, _ = cmd.Flags().GetString("section")

	path, err := scaffold.NewPage(cfg, args[0], opts)
	if err != nil {
		return err
	}

	pretty := logging.NewPrettyLogger()
	pretty.Success("Created page")
	pretty.Path("page", path)
	if opts.SectionID != "" {
		pretty.Field("section", opts.SectionID)
	}
	return nil
}
