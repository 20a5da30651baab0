package types

import (
	"strings"

	"github.com/simonhull/audioinfo/internal/binary"
)

// Format represents a supported audio container.
//
// The set is closed: every value other than FormatUnknown has exactly one
// registered parser, which the dispatcher checks at start-up.
type Format int

const (
	// FormatUnknown represents an unknown or unsupported format.
	FormatUnknown Format = iota
	// FormatMP3 represents MPEG audio (layers I-III) with optional ID3 tags.
	FormatMP3
	// FormatWAV represents RIFF/WAVE files.
	FormatWAV
	// FormatOggVorbis represents Vorbis audio in an Ogg container.
	FormatOggVorbis
)

// SupportedFormats returns every format the engine can parse, in enum order.
func SupportedFormats() []Format {
	return []Format{FormatMP3, FormatWAV, FormatOggVorbis}
}

// String returns the enumeration name used in configuration and logs.
func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatWAV:
		return "WAV_PCM"
	case FormatOggVorbis:
		return "OGG_VORBIS"
	default:
		return "UNKNOWN"
	}
}

// MIMEType returns the label surfaced to API clients.
func (f Format) MIMEType() string {
	switch f {
	case FormatMP3:
		return "audio/mpeg"
	case FormatWAV:
		return "audio/wav"
	case FormatOggVorbis:
		return "audio/ogg"
	default:
		return ""
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatMP3:
		return []string{".mp3", ".mp2", ".mpga"}
	case FormatWAV:
		return []string{".wav", ".wave"}
	case FormatOggVorbis:
		return []string{".ogg", ".oga"}
	default:
		return nil
	}
}

// Supported reports whether f is one of SupportedFormats.
func (f Format) Supported() bool {
	return f > FormatUnknown && f <= FormatOggVorbis
}

// labels maps every accepted label (MIME types and enum names) to a format.
var labels = map[string]Format{
	"audio/mpeg":  FormatMP3,
	"audio/mp3":   FormatMP3,
	"audio/x-mp3": FormatMP3,
	"mp3":         FormatMP3,
	"audio/wav":   FormatWAV,
	"audio/wave":  FormatWAV,
	"audio/x-wav": FormatWAV,
	"wav":         FormatWAV,
	"wav_pcm":     FormatWAV,
	"audio/ogg":   FormatOggVorbis,
	"ogg":         FormatOggVorbis,
	"ogg_vorbis":  FormatOggVorbis,
}

// ParseFormat maps a format label to a Format.
//
// Labels are matched case-insensitively and may be a MIME type
// ("audio/x-wav") or an enumeration name ("OGG_VORBIS"). Anything else
// fails with *UnsupportedFormatError.
func ParseFormat(label string) (Format, error) {
	if f, ok := labels[strings.ToLower(strings.TrimSpace(label))]; ok {
		return f, nil
	}
	return FormatUnknown, &UnsupportedFormatError{Label: label, Reason: "label is not one of MP3, WAV_PCM, OGG_VORBIS"}
}

// DetectFormat determines the container by examining magic bytes.
//
// It is the fallback classifier used when MIME sniffing yields nothing
// usable. Detection does not validate the container structure; the parser
// does that.
func DetectFormat(data []byte) (Format, error) {
	// Need at least 4 bytes for any meaningful detection
	if len(data) < 4 {
		return FormatUnknown, &UnsupportedFormatError{Reason: "buffer too small"}
	}

	c := binary.NewCursor(data)
	magic, err := c.Peek(4, "magic bytes")
	if err != nil {
		return FormatUnknown, &UnsupportedFormatError{Reason: "failed to read header"}
	}

	switch {
	case string(magic[:3]) == "ID3":
		return FormatMP3, nil
	case string(magic) == "OggS":
		// Opus and FLAC-in-Ogg are still labelled Ogg; the parser reports
		// them as unsupported variants.
		return FormatOggVorbis, nil
	case string(magic) == "RIFF" && len(data) >= 12 && string(data[8:12]) == "WAVE":
		return FormatWAV, nil
	}

	// MPEG audio frame sync (11 bits set) with a non-reserved layer.
	// This catches MP3 files without ID3 tags.
	if magic[0] == 0xFF && magic[1]&0xE0 == 0xE0 && magic[1]&0x06 != 0 {
		return FormatMP3, nil
	}

	return FormatUnknown, &UnsupportedFormatError{Reason: "unrecognised file signature"}
}
