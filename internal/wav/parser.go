// Package wav extracts stream properties from RIFF/WAVE files.
package wav

import (
	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
)

// Parse reads the fmt and data chunks of a WAVE buffer.
//
// Chunks are visited in file order and the walk stops once both are
// found. A missing data chunk yields a zero duration.
func Parse(data []byte) (*types.Metadata, error) {
	var (
		format   *FormatChunk
		dataSize int64 = -1
	)

	err := walk(data, func(c *binary.Cursor, ch Chunk) (bool, error) {
		switch ch.ID {
		case "fmt ":
			if format != nil {
				break
			}
			f, err := readFormatChunk(c, ch)
			if err != nil {
				return false, err
			}
			format = &f
		case "data":
			if dataSize < 0 {
				dataSize = int64(ch.Size)
			}
		}
		return format == nil || dataSize < 0, nil
	})
	if err != nil {
		return nil, err
	}

	if format == nil {
		return nil, &types.OutOfBoundsError{What: "fmt chunk", Offset: len(data), Size: len(data)}
	}

	byteRate := format.EffectiveByteRate()
	if byteRate == 0 {
		return nil, types.Malformed(riffHeaderSize, "no byte rate in fmt chunk and %d bits per sample", format.BitsPerSample)
	}

	meta := &types.Metadata{
		Format:     types.FormatWAV,
		SampleRate: int(format.SampleRate),
		Channels:   int(format.Channels),
		BitDepth:   int(format.BitsPerSample),
		Bitrate:    int(byteRate * 8),
	}
	if dataSize > 0 {
		meta.Duration = float64(dataSize) / float64(byteRate)
	}
	return meta, nil
}

// init registers the WAV parser
func init() {
	registry.Register(types.FormatWAV, registry.ParserFunc(Parse))
}
