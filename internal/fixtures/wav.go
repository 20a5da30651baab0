package fixtures

import (
	"encoding/binary"
)

// WAVE format tags.
const (
	FormatPCM        = 0x0001
	FormatFloat      = 0x0003
	FormatExtensible = 0xFFFE
)

// Fmt describes a WAVE fmt chunk. Zero ByteRate and BlockAlign are
// computed from the other fields.
type Fmt struct {
	Tag        uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	SubFormat  uint16 // only written when Tag is FormatExtensible
}

// Bytes returns the fmt chunk payload (16 bytes, or 40 for extensible).
func (f Fmt) Bytes() []byte {
	blockAlign := f.BlockAlign
	if blockAlign == 0 {
		blockAlign = f.Channels * ((f.Bits + 7) / 8)
	}
	byteRate := f.ByteRate
	if byteRate == 0 {
		byteRate = f.SampleRate * uint32(blockAlign)
	}

	size := 16
	if f.Tag == FormatExtensible {
		size = 40
	}
	out := make([]byte, size)
	binary.LittleEndian.PutUint16(out[0:], f.Tag)
	binary.LittleEndian.PutUint16(out[2:], f.Channels)
	binary.LittleEndian.PutUint32(out[4:], f.SampleRate)
	binary.LittleEndian.PutUint32(out[8:], byteRate)
	binary.LittleEndian.PutUint16(out[12:], blockAlign)
	binary.LittleEndian.PutUint16(out[14:], f.Bits)
	if f.Tag == FormatExtensible {
		binary.LittleEndian.PutUint16(out[16:], 22) // cbSize
		binary.LittleEndian.PutUint16(out[18:], f.Bits)
		binary.LittleEndian.PutUint16(out[24:], f.SubFormat)
		// KSDATAFORMAT_SUBTYPE GUID tail
		copy(out[26:], []byte{0x00, 0x00, 0x00, 0x00, 0x10, 0x00, 0x80, 0x00, 0x00, 0xAA, 0x00, 0x38, 0x9B, 0x71})
	}
	return out
}

// Chunk returns a RIFF chunk with its pad byte when body has odd length.
func Chunk(id string, body []byte) []byte {
	out := make([]byte, 8, 8+len(body)+1)
	copy(out, id)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 == 1 {
		out = append(out, 0)
	}
	return out
}

// RIFF wraps chunks in a RIFF/WAVE header with a correct size field.
func RIFF(chunks ...[]byte) []byte {
	body := Concat(chunks...)
	out := make([]byte, 12, 12+len(body))
	copy(out, "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(4+len(body)))
	copy(out[8:], "WAVE")
	return append(out, body...)
}

// WAV returns a canonical PCM file with dataSize bytes of silence.
func WAV(channels uint16, sampleRate uint32, bits uint16, dataSize int) []byte {
	f := Fmt{Tag: FormatPCM, Channels: channels, SampleRate: sampleRate, Bits: bits}
	return RIFF(Chunk("fmt ", f.Bytes()), Chunk("data", make([]byte, dataSize)))
}
