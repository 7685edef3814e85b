package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rtzll/plmp3/internal"
)

// doctorCmd checks the external tools a download relies on
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that yt-dlp, ffmpeg and ffprobe are available",
	Example: `  # Check dependencies
  plmp3 doctor`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		// never download from here, only report what a download would find
		transcoder := internal.NewTranscoder(&internal.DefaultCommandRunner{}, false)
		report := internal.DependencyStatus(cmd.Context(), internal.ResolveYTDLP, transcoder)

		switch {
		case report.YTDLPFound:
			fmt.Fprintf(out, "yt-dlp: %s\n", report.YTDLPPath)
		case config.AutoInstall:
			fmt.Fprintln(out, "yt-dlp: not installed (will be installed automatically on first download)")
		default:
			fmt.Fprintln(out, "yt-dlp: not found")
		}

		if report.FFmpegFound {
			fmt.Fprintf(out, "ffmpeg: %s (%s)\n", report.FFmpegPath, report.FFmpegVersion)
		} else {
			fmt.Fprintln(out, "ffmpeg: not found")
		}
		if report.FFprobeFound {
			fmt.Fprintf(out, "ffprobe: %s\n", report.FFprobePath)
		} else {
			fmt.Fprintln(out, "ffprobe: not found")
		}

		missingFFmpeg := !report.FFmpegFound || !report.FFprobeFound
		if missingFFmpeg && config.AutoInstall {
			fmt.Fprintln(out, "ffmpeg/ffprobe will be installed automatically on first download where supported")
		}
		if (missingFFmpeg || !report.YTDLPFound) && !config.AutoInstall {
			return errors.New("missing dependencies")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
