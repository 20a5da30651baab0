package audioinfo

import (
	"testing"

	"github.com/simonhull/audioinfo/internal/fixtures"
)

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"song.mp3", FormatMP3},
		{"/music/LOUD.MP3", FormatMP3},
		{"take.wav", FormatWAV},
		{"take.wave", FormatWAV},
		{"track.ogg", FormatOggVorbis},
		{"track.oga", FormatOggVorbis},
		{"track.flac", FormatUnknown},
		{"no-extension", FormatUnknown},
	}

	for _, tt := range tests {
		if got := formatFromExtension(tt.path); got != tt.want {
			t.Errorf("formatFromExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestDetectFormat_Content(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav", fixtures.WAV(1, 8000, 8, 10), FormatWAV},
		{"ogg", fixtures.OggVorbis(1, 8000, 8000), FormatOggVorbis},
		{"mp3", fixtures.Concat(fixtures.ID3v2(0), fixtures.CBRHeader()), FormatMP3},
	}

	for _, tt := range tests {
		got, err := DetectFormat(tt.data)
		if err != nil {
			t.Errorf("%s: DetectFormat failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: DetectFormat() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("audio/ogg")
	if err != nil || f != FormatOggVorbis {
		t.Errorf("ParseFormat(audio/ogg) = %v, %v", f, err)
	}
	if _, err := ParseFormat("audio/aac"); err == nil {
		t.Error("expected error for audio/aac")
	}
}
