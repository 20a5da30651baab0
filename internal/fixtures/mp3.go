// Package fixtures builds small synthetic audio containers for tests.
//
// Every builder returns a fresh slice. Audio payloads are zero bytes; only
// container structure is meaningful.
package fixtures

import (
	"bytes"
	"encoding/binary"
)

// MPEGHeader returns a 4-byte MPEG audio frame header without CRC.
//
// version uses the header encoding (3 = MPEG-1, 2 = MPEG-2, 0 = MPEG-2.5),
// layer is 1, 2 or 3, and mode is the 2-bit channel mode (3 = mono).
func MPEGHeader(version, layer, bitrateIndex, rateIndex, mode byte, padding bool) []byte {
	pad := byte(0)
	if padding {
		pad = 1
	}
	return []byte{
		0xFF,
		0xE0 | (version&3)<<3 | ((4-layer)&3)<<1 | 1,
		bitrateIndex<<4 | (rateIndex&3)<<2 | pad<<1,
		(mode & 3) << 6,
	}
}

// CBRHeader is MPEG-1 Layer III, 128 kbps, 44100 Hz, stereo.
// Its frames are 417 bytes long.
func CBRHeader() []byte {
	return MPEGHeader(3, 3, 9, 0, 0, false)
}

// CBRFrameLength is the frame size of CBRHeader.
const CBRFrameLength = 417

// MPEGFrames repeats header every frameLen bytes and truncates the result
// to size bytes.
func MPEGFrames(header []byte, frameLen, size int) []byte {
	out := make([]byte, size)
	for off := 0; off < size; off += frameLen {
		copy(out[off:], header)
	}
	return out
}

// XingFrame returns one frame of frameLen bytes holding a Xing (or Info)
// header at sideInfo bytes after the frame header. Zero counts are omitted
// from the flags.
func XingFrame(header []byte, frameLen, sideInfo int, tag string, frames, size uint32) []byte {
	out := make([]byte, frameLen)
	copy(out, header)

	var flags uint32
	body := new(bytes.Buffer)
	if frames > 0 {
		flags |= 1
		_ = binary.Write(body, binary.BigEndian, frames)
	}
	if size > 0 {
		flags |= 2
		_ = binary.Write(body, binary.BigEndian, size)
	}

	off := 4 + sideInfo
	copy(out[off:], tag)
	binary.BigEndian.PutUint32(out[off+4:], flags)
	copy(out[off+8:], body.Bytes())
	return out
}

// VBRIFrame returns one frame of frameLen bytes holding a VBRI header.
func VBRIFrame(header []byte, frameLen int, frames, size uint32) []byte {
	out := make([]byte, frameLen)
	copy(out, header)

	off := 4 + 32
	copy(out[off:], "VBRI")
	binary.BigEndian.PutUint16(out[off+4:], 1)    // version
	binary.BigEndian.PutUint16(out[off+6:], 1105) // delay
	binary.BigEndian.PutUint16(out[off+8:], 75)   // quality
	binary.BigEndian.PutUint32(out[off+10:], size)
	binary.BigEndian.PutUint32(out[off+14:], frames)
	return out
}

// ID3v2 returns an ID3v2.3 tag with bodySize zero bytes of content.
func ID3v2(bodySize int) []byte {
	out := make([]byte, 10+bodySize)
	copy(out, "ID3")
	out[3] = 3
	putSynchsafe(out[6:10], uint32(bodySize))
	return out
}

// ID3v1 returns a 128-byte ID3v1 tag.
func ID3v1() []byte {
	out := make([]byte, 128)
	copy(out, "TAG")
	copy(out[3:], "Title")
	return out
}

func putSynchsafe(b []byte, n uint32) {
	b[0] = byte(n>>21) & 0x7F
	b[1] = byte(n>>14) & 0x7F
	b[2] = byte(n>>7) & 0x7F
	b[3] = byte(n) & 0x7F
}

// Concat joins byte slices into a new slice.
func Concat(parts ...[]byte) []byte {
	return bytes.Join(parts, nil)
}
