package cmd

import (
	"fmt"
	"runtime"

	"monopoly/meta"

	"github.com/spf13/cobra"
)

var (
	// Version is set with -ldflags at build time.
	Version = "dev"
	Commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "monopoly %s (commit %s)\n", Version, Commit)
		fmt.Fprintf(cmd.OutOrStdout(), "storage version: %d\n", meta.STORAGE_VERSION)
		fmt.Fprintf(cmd.OutOrStdout(), "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
