package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show paths used by the application",
	Example: `  # Show all application paths
  plmp3 paths`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Config directory: %s\n", config.ConfigDir)
		fmt.Fprintf(out, "Config file: %s\n", filepath.Join(config.ConfigDir, "config.toml"))
		fmt.Fprintf(out, "Cache directory: %s\n", config.CacheDir)
		fmt.Fprintf(out, "Log file: %s\n", config.LogFilePath)
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
