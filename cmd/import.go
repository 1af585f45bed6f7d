package cmd

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/cli"
	"github.com/lectern/lectern/convert"
	"github.com/lectern/lectern/logging"
)

// NewImportCmd creates the `import` command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file-or-dir>",
		Short: "Import HTML pages as content pages",
		Long: `Converts HTML documents into markdown content pages. The title is taken
from the first <h1> (or the <title> tag), the description from the meta
description, and the body from <main>, <article> or <body> in that order of
preference. For migrating an existing course site.

Given a directory, every .html file in it is imported. Pages are named
after their source files unless --into names a single target page.

Examples:
  # Import one page, named after the source file
  lectern import old-site/lesson.html

  # Import one page under an explicit path
  lectern import old-site/lesson.html --into mod3/pointers

  # Import a whole directory under a content prefix
  lectern import old-site/ --into legacy
`,
		Args: cobra.ExactArgs(1),
		RunE: runImportE,
	}

	cmd.Flags().String("into", "", "Content-relative target: a page path for a file, a directory prefix for a directory")

	return cmd
}

func runImportE(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}

	source := args[0]
	into, _ := cmd.Flags().GetString("into")

	importer := convert.NewImporter(cfg)
	pretty := logging.NewPrettyLogger()

	info, err := os.Stat(source)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		result, err := importer.ImportFile(source, into)
		if err != nil {
			return err
		}
		pretty.Success("Imported '" + result.Title + "'")
		pretty.Path("source", result.Source)
		pretty.Path("page", result.OutputPath)
		return nil
	}

	imported := 0
	err = filepath.WalkDir(source, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".html") {
			return nil
		}

		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		relPath := stem
		if into != "" {
			relPath = path.Join(into, stem)
		}

		result, err := importer.ImportFile(p, relPath)
		if err != nil {
			return err
		}
		pretty.Success("Imported '" + result.Title + "'")
		pretty.Path("page", result.OutputPath)
		imported++
		return nil
	})
	if err != nil {
		return err
	}

	if imported == 0 {
		pretty.WarnPretty("No .html files found in " + source)
	}
	return nil
}
