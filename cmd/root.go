package cmd

import (
	"fmt"
	"os"

	"site-settings/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlag string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "site-settings",
	Short: "Site Settings configuration manager",
	Long: `Site Settings keeps a dated history of JSON configuration snapshots per server.
It creates, versions, copies and soft-deletes server folders on a shared or local root,
seeding new servers from a personal, team-wide or built-in template.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console format with development timestamps reads better in a terminal.
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "Directory holding the server folders (overrides WORKSPACE_ROOT_DIR)")
}
