package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simonhull/audioinfo"
)

// fileReport is the --json form of one inspected file.
type fileReport struct {
	Path              string  `json:"path"`
	Format            string  `json:"format,omitempty"`
	Duration          float64 `json:"duration,omitempty"`
	DurationEstimated bool    `json:"duration_estimated,omitempty"`
	SampleRate        int     `json:"sample_rate,omitempty"`
	Channels          int     `json:"channels_count,omitempty"`
	BitDepth          *int    `json:"bit_depth,omitempty"`
	Bitrate           int     `json:"bitrate,omitempty"`
	Error             string  `json:"error,omitempty"`
}

func newInspectCommand() *cobra.Command {
	var (
		formatLabel string
		asJSON      bool
		maxSize     int64
	)

	cmd := &cobra.Command{
		Use:   "inspect <file>...",
		Short: "Print structural metadata for audio files",
		Long: `Print duration, sample rate, channel count and bit depth for each file.

Files are processed concurrently. The container is detected from content,
falling back to the file extension; --format forces a label.

Examples:
  audioinfo inspect song.mp3 take.wav
  audioinfo inspect --json --format ogg stream.bin`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []audioinfo.Option{audioinfo.WithMaxSize(maxSize)}
			if formatLabel != "" {
				f, err := audioinfo.ParseFormat(formatLabel)
				if err != nil {
					return err
				}
				opts = append(opts, audioinfo.WithFormat(f))
			}

			results, err := audioinfo.ExtractFiles(cmd.Context(), args, opts...)
			if err != nil {
				return err
			}

			reports := make([]fileReport, len(results))
			failed := 0
			for i, r := range results {
				reports[i] = newFileReport(args[i], r)
				if r.Err != nil {
					failed++
					slog.Debug("extraction failed", "path", args[i], "kind", audioinfo.KindOf(r.Err), "error", r.Err)
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(out, reports); err != nil {
					return err
				}
			} else {
				writeText(out, args, results)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&formatLabel, "format", "f", "", "Force the container: mp3, wav or ogg")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	cmd.Flags().Int64Var(&maxSize, "max-size", audioinfo.DefaultMaxSize, "Largest file to read, in bytes")
	return cmd
}

func newFileReport(path string, r audioinfo.Result) fileReport {
	rep := fileReport{Path: path}
	if r.Err != nil {
		rep.Error = r.Err.Error()
		return rep
	}
	m := r.Metadata
	rep.Format = m.Format.String()
	rep.Duration = m.Duration
	rep.DurationEstimated = m.DurationEstimated
	rep.SampleRate = m.SampleRate
	rep.Channels = m.Channels
	rep.Bitrate = m.Bitrate
	if m.HasBitDepth() {
		depth := m.BitDepth
		rep.BitDepth = &depth
	}
	return rep
}

func writeJSON(w io.Writer, reports []fileReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func writeText(w io.Writer, paths []string, results []audioinfo.Result) {
	for i, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s: error: %v\n", paths[i], r.Err)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", paths[i], r.Metadata)
	}
}
