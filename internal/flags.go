package internal

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// AddDownloadFlags adds flags that tune the backend configuration
func AddDownloadFlags(cmd *cobra.Command) {
	cmd.Flags().String("audio-format", "", "Target audio codec (mp3, m4a, aac, flac, opus, vorbis, wav, alac, best)")
	cmd.Flags().String("audio-quality", "", "Audio bitrate in kbps (e.g. 192) or VBR level 0-10")
	cmd.Flags().BoolP("quiet", "q", false, "Suppress status lines and backend progress")
	cmd.Flags().Bool("no-warnings", false, "Hide backend warnings")
	cmd.Flags().Bool("ignore-errors", false, "Skip unavailable entries instead of failing")
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return errors.Wrap(err, "failed to get verbose flag")
	}
	if verbose {
		config.Verbose = true
	}
	return nil
}

// HandleDownloadFlags copies explicitly set download flags over config values
func HandleDownloadFlags(cmd *cobra.Command, config *Config) error {
	flags := cmd.Flags()

	if flags.Changed("audio-format") {
		v, err := flags.GetString("audio-format")
		if err != nil {
			return errors.Wrap(err, "failed to get audio-format flag")
		}
		config.AudioFormat = v
	}
	if flags.Changed("audio-quality") {
		v, err := flags.GetString("audio-quality")
		if err != nil {
			return errors.Wrap(err, "failed to get audio-quality flag")
		}
		config.AudioQuality = v
	}

	for name, target := range map[string]*bool{
		"quiet":         &config.Quiet,
		"no-warnings":   &config.NoWarnings,
		"ignore-errors": &config.IgnoreErrors,
	} {
		if !flags.Changed(name) {
			continue
		}
		v, err := flags.GetBool(name)
		if err != nil {
			return errors.Wrapf(err, "failed to get %s flag", name)
		}
		*target = v
	}

	return config.Validate()
}
