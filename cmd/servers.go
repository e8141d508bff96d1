package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var useTemplateFlag bool

// serversCmd groups the server lifecycle commands
var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Manage server configuration histories",
}

var serversListCmd = &cobra.Command{
	Use:   "list",
	Short: "List servers under the root",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			names, err := a.servers.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Root: %s\n", a.servers.Root())
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			return nil
		})
	},
}

var serversSnapshotsCmd = &cobra.Command{
	Use:   "snapshots [name]",
	Short: "List the snapshots of a server, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			names, err := a.servers.Snapshots(args[0])
			if err != nil {
				return err
			}
			for _, n := range names {
				fmt.Fprintln(cmd.OutOrStdout(), n)
			}
			return nil
		})
	},
}

var serversLatestCmd = &cobra.Command{
	Use:   "latest [name]",
	Short: "Print the newest snapshot of a server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			latest, err := a.servers.Latest(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s, %d snapshots)\n", latest.File, orNone(latest.Date), latest.Count)
			fmt.Fprintln(cmd.OutOrStdout(), string(latest.Content))
			return nil
		})
	},
}

var serversCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a server seeded with the template or the minimal configuration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			path, err := a.servers.Create(cmd.Context(), args[0], useTemplateFlag)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		})
	},
}

var serversSaveCmd = &cobra.Command{
	Use:   "save [name] [file|-]",
	Short: "Save a JSON document as a new snapshot",
	Long:  `Reads the document from a file, or from standard input when the file is "-", and writes it as a new snapshot.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := readInput(cmd, args[1])
		if err != nil {
			return err
		}
		return withApplication(func(a *application) error {
			path, err := a.servers.Save(cmd.Context(), args[0], content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		})
	},
}

var serversCopyCmd = &cobra.Command{
	Use:   "copy [source] [target]",
	Short: "Copy a server history under a new name",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			count, err := a.servers.Copy(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %d files from %s to %s\n", count, args[0], args[1])
			return nil
		})
	},
}

var serversDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Soft-delete a server by renaming its folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			backup, err := a.servers.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved to %s\n", backup)
			return nil
		})
	},
}

var serversChangelogCmd = &cobra.Command{
	Use:   "changelog [name]",
	Short: "Print the change log of a server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			text, err := a.servers.Changelog(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		})
	},
}

var serversMissingCmd = &cobra.Command{
	Use:   "missing [name]",
	Short: "List template keys absent from the newest snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApplication(func(a *application) error {
			items, err := a.servers.MissingTemplateItems(args[0])
			if err != nil {
				return err
			}
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) = %s\n", it.Path, it.Type, it.Value)
			}
			return nil
		})
	},
}

func init() {
	RootCmd.AddCommand(serversCmd)
	serversCmd.AddCommand(serversListCmd, serversSnapshotsCmd, serversLatestCmd, serversCreateCmd,
		serversSaveCmd, serversCopyCmd, serversDeleteCmd, serversChangelogCmd, serversMissingCmd)

	serversCreateCmd.Flags().BoolVar(&useTemplateFlag, "template", false, "Seed from the resolved template instead of the minimal configuration")
}

// withApplication wires the services, runs fn and releases them.
func withApplication(fn func(a *application) error) error {
	a, err := newApplication()
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func orNone(s string) string {
	if s == "" {
		return "no date"
	}
	return s
}
