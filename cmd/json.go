package cmd

import (
	"fmt"

	"site-settings/core/jsonfile"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// jsonCmd groups the raw JSON file commands
var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Read or write any JSON file with validation",
}

var jsonReadCmd = &cobra.Command{
	Use:   "read [path]",
	Short: "Validate and print a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := jsonfile.Read(afero.NewOsFs(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	},
}

var jsonWriteCmd = &cobra.Command{
	Use:   "write [path] [file|-]",
	Short: "Validate a JSON document and write it pretty-printed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd, args[1])
		if err != nil {
			return err
		}
		if err := jsonfile.Write(afero.NewOsFs(), args[0], content); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(jsonCmd)
	jsonCmd.AddCommand(jsonReadCmd, jsonWriteCmd)
}
