package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/prismaflow/pkg/template"
)

// templateCommand creates the template command.
func (c *CLI) templateCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the example CSV template",
		Long: `Write the PRISMA 2020 template CSV with example counts, box texts and
tooltips. Edit the n column and render it with 'prismaflow render'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "-" && !force {
				if _, err := os.Stat(output); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", output)
				}
			}
			if err := writeArtifact(output, template.CSV()); err != nil {
				return err
			}
			if output == "-" {
				return nil
			}
			c.Logger.Debug("wrote template", "path", output)
			printSuccess("Template written")
			printFile(output)
			printNextStep("Render it with", "prismaflow render "+output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", template.FileName, "output file (- for stdout)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}
