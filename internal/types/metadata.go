// Package types provides the core data structures shared by the container
// parsers: the format enumeration, the metadata record and the error taxonomy.
package types

import (
	"fmt"
	"math"
	"time"
)

// Metadata is the structural description of one audio buffer.
//
// All numeric fields come from the container itself. A Metadata value is
// built once per extraction and never modified afterwards.
type Metadata struct {
	// Duration in seconds.
	Duration float64
	// SampleRate in Hz.
	SampleRate int
	// Channels is the channel count (1 = mono).
	Channels int
	// Format is the container that was parsed.
	Format Format
	// BitDepth is bits per sample for PCM formats; 0 means not applicable.
	BitDepth int
	// Bitrate in bits per second, 0 if the container gives no indication.
	Bitrate int
	// DurationEstimated is set when Duration is a heuristic rather than
	// read from the container: the MP3 constant-bitrate fallback, or an Ogg
	// stream that ends before its final page.
	DurationEstimated bool
}

// Length returns Duration as a time.Duration, rounded to the nearest microsecond.
func (m Metadata) Length() time.Duration {
	return time.Duration(math.Round(m.Duration*1e6)) * time.Microsecond
}

// HasBitDepth reports whether the format carries a fixed sample bit depth.
func (m Metadata) HasBitDepth() bool {
	return m.BitDepth > 0
}

// String returns a human-readable representation.
// Example output: "WAV_PCM 44.1kHz 16-bit stereo 3m25.2s".
func (m Metadata) String() string {
	s := fmt.Sprintf("%s %.1fkHz", m.Format, float64(m.SampleRate)/1000)
	if m.HasBitDepth() {
		s += fmt.Sprintf(" %d-bit", m.BitDepth)
	}
	if ch := channelDescription(m.Channels); ch != "" {
		s += " " + ch
	}
	if m.Bitrate > 0 && !m.HasBitDepth() {
		s += fmt.Sprintf(" %dkbps", m.Bitrate/1000)
	}
	s += " " + m.Length().Round(100*time.Millisecond).String()
	if m.DurationEstimated {
		s += " (estimated)"
	}
	return s
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	case 4:
		return "quad"
	case 6:
		return "5.1"
	case 8:
		return "7.1"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
