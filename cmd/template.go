package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// templateCmd groups the template commands
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Inspect or replace the personal template",
}

var templateGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the resolved template and the tier it came from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			content, source := a.templates.ResolveWithSource()
			fmt.Fprintf(cmd.ErrOrStderr(), "source: %s\n", source)
			fmt.Fprintln(cmd.OutOrStdout(), string(content))
			return nil
		})
	},
}

var templateSaveCmd = &cobra.Command{
	Use:   "save [file|-]",
	Short: "Validate a JSON document and store it as the personal template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd, args[0])
		if err != nil {
			return err
		}
		return withApplication(func(a *application) error {
			if err := a.templates.Save(content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", a.templates.PersonalPath())
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateGetCmd, templateSaveCmd)
}
