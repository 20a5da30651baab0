package wav

import (
	"fmt"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

// WAVE format tags.
const (
	TagPCM        uint16 = 0x0001
	TagADPCM      uint16 = 0x0002
	TagFloat      uint16 = 0x0003
	TagALaw       uint16 = 0x0006
	TagMuLaw      uint16 = 0x0007
	TagExtensible uint16 = 0xFFFE
)

const (
	fmtMinSize = 16
	// cbSize(2) + valid bits(2) + channel mask(4) precede the sub-format GUID.
	extensibleSubFormatOffset = 24
)

// FormatChunk is the decoded payload of a "fmt " chunk.
type FormatChunk struct {
	Tag           uint16 // Resolved tag: the sub-format for WAVE_FORMAT_EXTENSIBLE
	Extensible    bool
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// TagName returns a short name for the format tag.
func (f FormatChunk) TagName() string {
	switch f.Tag {
	case TagPCM:
		return "PCM"
	case TagADPCM:
		return "ADPCM"
	case TagFloat:
		return "IEEE float"
	case TagALaw:
		return "A-law"
	case TagMuLaw:
		return "mu-law"
	case TagExtensible:
		return "extensible"
	default:
		return fmt.Sprintf("0x%04X", f.Tag)
	}
}

// uncompressed reports whether the byte rate is fully determined by the
// sample layout.
func (f FormatChunk) uncompressed() bool {
	return f.Tag == TagPCM || f.Tag == TagFloat
}

// EffectiveByteRate returns the byte rate used for duration.
//
// The stored value is replaced by sample_rate * channels * ceil(bits/8)
// when it is zero or, for uncompressed formats, disagrees with that product.
func (f FormatChunk) EffectiveByteRate() uint64 {
	computed := uint64(f.SampleRate) * uint64(f.Channels) * uint64((f.BitsPerSample+7)/8)
	stored := uint64(f.ByteRate)
	if stored == 0 || (f.uncompressed() && computed != 0 && stored != computed) {
		return computed
	}
	return stored
}

// readFormatChunk decodes a fmt chunk whose payload starts at c's position.
func readFormatChunk(c *binary.Cursor, ch Chunk) (FormatChunk, error) {
	if ch.Size < fmtMinSize {
		return FormatChunk{}, types.Malformed(ch.Offset, "fmt chunk is %d bytes, need %d", ch.Size, fmtMinSize)
	}

	r := binary.NewChain(c, binary.LittleEndian)
	var f FormatChunk
	f.Tag = r.U16("format tag")
	f.Channels = r.U16("channel count")
	f.SampleRate = r.U32("sample rate")
	f.ByteRate = r.U32("byte rate")
	f.BlockAlign = r.U16("block align")
	f.BitsPerSample = r.U16("bits per sample")
	if err := r.Error(); err != nil {
		return FormatChunk{}, err
	}

	if f.Tag == TagExtensible && ch.Size >= extensibleSubFormatOffset+2 {
		if err := c.Seek(ch.DataOffset() + extensibleSubFormatOffset); err != nil {
			return FormatChunk{}, err
		}
		sub, err := c.U16(binary.LittleEndian, "extensible sub-format")
		if err != nil {
			return FormatChunk{}, err
		}
		f.Tag = sub
		f.Extensible = true
	}

	if f.Channels == 0 {
		return FormatChunk{}, types.Malformed(ch.DataOffset()+2, "zero channels")
	}
	if f.SampleRate == 0 {
		return FormatChunk{}, types.Malformed(ch.DataOffset()+4, "zero sample rate")
	}
	return f, nil
}
