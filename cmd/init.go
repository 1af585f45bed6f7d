package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/logging"
	"github.com/lectern/lectern/scaffold"
)

// NewInitCmd creates the `init` command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a new course project",
		Long: `Scaffolds a minimal course: a commented course.yml, a welcome page, the
base layout and a starter stylesheet. Refuses to run when a config file
already exists.

Examples:
  # Scaffold into the current directory, named after it
  lectern init

  # Scaffold into a new directory
  lectern init my-course

  # Scaffold with an explicit course name
  lectern init my-course --name "Systems Programming"
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInitE,
	}

	cmd.Flags().String("name", "", "Course name (default: the directory name)")

	return cmd
}

func runInitE(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	if name == "" {
		name = filepath.Base(root)
	}

	created, err := scaffold.Init(root, name)
	if err != nil {
		return err
	}

	pretty := logging.NewPrettyLogger()
	pretty.Success("Created course '" + name + "'")
	for _, rel := range created {
		pretty.Path("created", rel)
	}
	pretty.Blank()
	pretty.InfoPretty("Next: lectern serve")
	return nil
}
