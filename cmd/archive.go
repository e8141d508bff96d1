package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// archiveCmd groups the archive commands
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Back up server folders to object storage",
}

var archiveUploadCmd = &cobra.Command{
	Use:   "upload [name]",
	Short: "Pack a server folder and upload it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			res, err := a.archive.Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (%d files, %d bytes)\n", res.Key, res.Files, res.Size)
			return nil
		})
	},
}

var archiveListCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List the archives of a server, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			objects, err := a.archive.List(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, o := range objects {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", o.Key, o.Size)
			}
			return nil
		})
	},
}

var archiveRestoreCmd = &cobra.Command{
	Use:   "restore [name] [key]",
	Short: "Restore an archive into a server folder that does not exist",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			files, err := a.archive.Restore(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d files into %s\n", files, args[0])
			return nil
		})
	},
}

var archivePruneCmd = &cobra.Command{
	Use:   "prune [name]",
	Short: "Remove all but the newest archives of a server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		return withApplication(func(a *application) error {
			removed, err := a.archive.Prune(cmd.Context(), args[0], keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d archives\n", removed)
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveUploadCmd, archiveListCmd, archiveRestoreCmd, archivePruneCmd)
	archivePruneCmd.Flags().Int("keep", 5, "Number of archives to keep")
}
