package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/rtzll/plmp3/internal"
)

var (
	config *internal.Config

	// appOptions are applied to every App the root command builds
	appOptions []internal.AppOption
)

// errReported marks errors whose message already reached the user
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plmp3 <playlist_url> [output_directory]",
	Short: "Download a playlist as MP3 files with metadata",
	Long: `plmp3 downloads every video of a playlist and converts it to an audio file
with embedded metadata.

Extraction is done by yt-dlp and transcoding by ffmpeg, which must be on PATH.
Files are written as <output_directory>/<title>.<ext>.

Default output directory is 'downloads' if not specified.`,
	Example: `  # Download a playlist into ./downloads
  plmp3 "https://www.youtube.com/playlist?list=PLxxxxxxxxxxxxxxxx"

  # Download into ./music
  plmp3 "https://www.youtube.com/playlist?list=PLxxxxxxxxxxxxxxxx" music

  # Use a bare playlist ID and a different codec
  plmp3 PLxxxxxxxxxxxxxxxx --audio-format m4a --audio-quality 256`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return internal.HandleVerboseFlag(cmd, config)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		inv, err := internal.ParseInvocation(args)
		if err != nil {
			_ = cmd.Help()
			return errors.Mark(err, errReported)
		}

		if suggestions := cmd.SuggestionsFor(args[0]); internal.IsLikelyCommand(args[0], suggestions) {
			return errors.Newf("'%s' doesn't look like a playlist URL or ID. Did you mean '%s'?", args[0], strings.Join(suggestions, "', '"))
		}

		if err := internal.HandleDownloadFlags(cmd, config); err != nil {
			return err
		}

		logger, closer, err := internal.NewLogger(config)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: run log disabled: %v\n", err)
		}
		defer closer.Close()

		options := append([]internal.AppOption{internal.WithLogger(logger)}, appOptions...)
		app := internal.NewApp(config, options...)

		result := app.Run(cmd.Context(), inv)
		if result.Status.ExitCode() != 0 {
			return errors.Mark(result.Err, errReported)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Cancelling the context kills the running yt-dlp process
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := internal.InitConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	config = cfg

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	return execute(ctx, os.Args[1:])
}

// execute runs the command tree with args and prints errors nobody reported yet
func execute(ctx context.Context, args []string) error {
	// cobra falls back to os.Args for a nil slice
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error occurred: %v\n", err)
	}
	return err
}

func init() {
	internal.AddDownloadFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
}
