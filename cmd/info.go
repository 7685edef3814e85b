package cmd

import (
	"encoding/json"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rtzll/plmp3/internal"
)

// infoCmd probes a playlist without downloading it
var infoCmd = &cobra.Command{
	Use:   "info <playlist_url>",
	Short: "Show playlist metadata without downloading",
	Example: `  # List the entries of a playlist
  plmp3 info "https://www.youtube.com/playlist?list=PLxxxxxxxxxxxxxxxx"

  # Save entries to file as pretty JSON
  plmp3 info PLxxxxxxxxxxxxxxxx -o playlist.json --pretty`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config, appOptions...)

		info, err := app.Info(cmd.Context(), internal.ParseArg(args[0]))
		if err != nil {
			return err
		}

		var jsonData []byte
		pretty, _ := cmd.Flags().GetBool("pretty")
		if pretty {
			jsonData, err = json.MarshalIndent(info, "", "  ")
		} else {
			jsonData, err = json.Marshal(info)
		}
		if err != nil {
			return errors.Wrap(err, "converting playlist info to JSON")
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, jsonData, 0644)
		}

		_, err = cmd.OutOrStdout().Write(append(jsonData, '\n'))
		return err
	},
}

func init() {
	infoCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	infoCmd.Flags().Bool("pretty", false, "Format output as pretty JSON")
	rootCmd.AddCommand(infoCmd)
}
