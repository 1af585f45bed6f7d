package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern/lectern/config"
	"github.com/lectern/lectern/schema"
)

// NewSchemaCmd creates the `schema` command.
func NewSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the course.yml JSON schema",
		Long: `Prints the JSON schema that course.yml is validated against. Point your
editor's YAML language server at it for completion and inline validation.

By default the schema embedded in the binary is printed; --generate derives
it from the config types instead.

Examples:
  lectern schema > course.schema.json
  lectern schema --generate
`,
		RunE: runSchemaE,
	}

	cmd.Flags().Bool("generate", false, "Generate the schema from the config types instead of the embedded copy")

	return cmd
}

func runSchemaE(cmd *cobra.Command, args []string) error {
	generate, _ := cmd.Flags().GetBool("generate")

	var data []byte
	if generate {
		generated, err := config.GenerateSchema()
		if err != nil {
			return err
		}
		data = generated
	} else {
		data = schema.EmbeddedSchema()
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
