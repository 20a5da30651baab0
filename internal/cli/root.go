// Package cli implements the audioinfo command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simonhull/audioinfo/internal/config"
	"github.com/simonhull/audioinfo/internal/logger"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:   "audioinfo",
		Short: "Structural metadata for MP3, WAV and Ogg Vorbis audio",
		Long: `audioinfo - reads duration, sample rate, channel count and bit depth
straight from audio container headers, without decoding any audio.

Commands:
  - serve: run the HTTP analysis service
  - inspect: print metadata for local files
  - dump: print the container layout of a file
  - version: print build information`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Name() == "serve" {
				return
			}
			slog.SetDefault(logger.NewWithWriter(cmd.ErrOrStderr(), config.LogConfig{Level: logLevel, Format: "text"}))
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	root.AddCommand(
		newServeCommand(),
		newInspectCommand(),
		newDumpCommand(),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command tree and returns its error.
// This is called by main.main().
func Execute() error {
	return NewRootCommand().Execute()
}
