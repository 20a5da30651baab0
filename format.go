package audioinfo

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/simonhull/audioinfo/internal/sniff"
	"github.com/simonhull/audioinfo/internal/types"
)

// Format is an alias to types.Format.
type Format = types.Format

// Re-export all format constants.
const (
	FormatUnknown   = types.FormatUnknown
	FormatMP3       = types.FormatMP3
	FormatWAV       = types.FormatWAV
	FormatOggVorbis = types.FormatOggVorbis
)

// SupportedFormats returns every format Extract accepts.
func SupportedFormats() []Format {
	return types.SupportedFormats()
}

// ParseFormat maps a label such as "audio/wav" or "OGG_VORBIS" to a Format.
func ParseFormat(label string) (Format, error) {
	return types.ParseFormat(label)
}

// DetectFormat classifies data by content.
func DetectFormat(data []byte) (Format, error) {
	return sniff.Classify(data)
}

// formatFromExtension maps a file extension to a Format.
func formatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range types.SupportedFormats() {
		if slices.Contains(f.Extensions(), ext) {
			return f
		}
	}
	return FormatUnknown
}
