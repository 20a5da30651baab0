package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/mp3"
	"github.com/simonhull/audioinfo/internal/ogg"
	"github.com/simonhull/audioinfo/internal/wav"
)

func newDumpCommand() *cobra.Command {
	var formatLabel string

	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print the container layout of an audio file",
		Long: `Print what the parsers see in a file: ID3 tags, the first MPEG frame
and any Xing/Info/VBRI header for MP3; the RIFF chunk list for WAV; the
page sequence for Ogg.

Useful to confirm what we are able to read from a file that extracts
unexpected values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var format audioinfo.Format
			if formatLabel != "" {
				format, err = audioinfo.ParseFormat(formatLabel)
			} else {
				format, err = audioinfo.DetectFormat(data)
			}
			if err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), format, data)
		},
	}
	cmd.Flags().StringVarP(&formatLabel, "format", "f", "", "Force the container: mp3, wav or ogg")
	return cmd
}

func dump(w io.Writer, format audioinfo.Format, data []byte) error {
	fmt.Fprintf(w, "%s, %d bytes\n", format, len(data))
	switch format {
	case audioinfo.FormatMP3:
		return dumpMP3(w, data)
	case audioinfo.FormatWAV:
		return dumpWAV(w, data)
	case audioinfo.FormatOggVorbis:
		return dumpOgg(w, data)
	default:
		return fmt.Errorf("no layout dump for %s", format)
	}
}

func dumpMP3(w io.Writer, data []byte) error {
	s, err := mp3.Inspect(data)
	if err != nil {
		return err
	}
	for _, tag := range s.ID3v2 {
		fmt.Fprintf(w, "ID3v2.%d.%d (size: %d, offset: %d)\n", tag.Version, tag.Revision, tag.TotalSize(), tag.Offset)
	}
	fmt.Fprintf(w, "audio (offset: %d, end: %d)\n", s.AudioStart, s.AudioEnd)
	fmt.Fprintf(w, "  frame (offset: %d, length: %d) %s\n", s.FrameOffset, s.Header.FrameLength(), s.Header)
	if s.VBR != nil {
		fmt.Fprintf(w, "  %s (frames: %d, bytes: %d)\n", s.VBR.Tag, s.VBR.Frames, s.VBR.Bytes)
	}
	if s.HasID3v1 {
		fmt.Fprintf(w, "ID3v1 (size: 128, offset: %d)\n", s.AudioEnd)
	}
	return nil
}

func dumpWAV(w io.Writer, data []byte) error {
	chunks, err := wav.Chunks(data)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "RIFF WAVE (size: %d, offset: 0)\n", len(data))
	for _, ch := range chunks {
		fmt.Fprintf(w, "  %s (size: %d, offset: %d)\n", ch.ID, ch.Size, ch.Offset)
	}
	return nil
}

func dumpOgg(w io.Writer, data []byte) error {
	// Pages read before an error are still printed.
	pages, err := ogg.Pages(data)
	for _, p := range pages {
		flags := ""
		if p.BOS() {
			flags += " BOS"
		}
		if p.Continued() {
			flags += " continued"
		}
		if p.EOS() {
			flags += " EOS"
		}
		fmt.Fprintf(w, "page %d (serial: %08x, granule: %d, size: %d, offset: %d)%s\n",
			p.SequenceNumber, p.SerialNumber, p.GranulePosition, p.Size(), p.Offset, flags)
	}
	return err
}
