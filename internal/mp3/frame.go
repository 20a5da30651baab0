package mp3

import (
	"fmt"

	"github.com/simonhull/audioinfo/internal/binary"
)

// Version is the MPEG audio version, using the header's 2-bit encoding.
type Version uint8

const (
	// MPEG25 is the unofficial MPEG 2.5 extension for low sample rates.
	MPEG25 Version = 0
	// MPEG2 is MPEG-2 LSF (ISO/IEC 13818-3).
	MPEG2 Version = 2
	// MPEG1 is ISO/IEC 11172-3.
	MPEG1 Version = 3
)

func (v Version) String() string {
	switch v {
	case MPEG1:
		return "MPEG-1"
	case MPEG2:
		return "MPEG-2"
	case MPEG25:
		return "MPEG-2.5"
	default:
		return "reserved"
	}
}

// Layer is the MPEG audio layer (1, 2 or 3).
type Layer uint8

// ChannelMode is the header's 2-bit channel mode.
type ChannelMode uint8

const (
	Stereo ChannelMode = iota
	JointStereo
	DualChannel
	SingleChannel
)

func (m ChannelMode) String() string {
	return [...]string{"stereo", "joint stereo", "dual channel", "single channel"}[m&3]
}

// bitrates in kbps, indexed [MPEG-1 or not][layer-1][index].
// Index 0 is "free format" and 15 is "bad"; both are rejected.
var bitrates = [2][3][16]int{
	{ // MPEG-1
		{0, 32, 64, 96, 128, 160, 192, 224, 256, 288, 320, 352, 384, 416, 448, 0},
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 384, 0},
		{0, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320, 0},
	},
	{ // MPEG-2 and MPEG-2.5
		{0, 32, 48, 56, 64, 80, 96, 112, 128, 144, 160, 176, 192, 224, 256, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
		{0, 8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 144, 160, 0},
	},
}

// sampleRates in Hz, indexed [version][index]. Index 3 is reserved.
var sampleRates = map[Version][3]int{
	MPEG1:  {44100, 48000, 32000},
	MPEG2:  {22050, 24000, 16000},
	MPEG25: {11025, 12000, 8000},
}

// FrameHeader is a decoded 4-byte MPEG audio frame header.
type FrameHeader struct {
	Version     Version
	Layer       Layer
	Protected   bool // a 16-bit CRC follows the header
	Bitrate     int  // bits per second
	SampleRate  int  // Hz
	Padding     bool
	ChannelMode ChannelMode
}

// frameHeaderSize is the size of the fixed frame header.
const frameHeaderSize = 4

// ParseFrameHeader decodes and validates a frame header.
//
// A header is valid only if every field decodes to a defined value: sync
// bits set, version, layer and sample-rate index not reserved, bitrate index
// neither free-format nor bad, emphasis not reserved.
func ParseFrameHeader(b []byte) (FrameHeader, error) {
	if len(b) < frameHeaderSize {
		return FrameHeader{}, fmt.Errorf("frame header needs %d bytes, have %d", frameHeaderSize, len(b))
	}
	h := binary.Decode[uint32](b, binary.BigEndian)

	if h&0xFFE00000 != 0xFFE00000 {
		return FrameHeader{}, fmt.Errorf("invalid frame sync")
	}

	version := Version((h >> 19) & 0x3)
	if version == 1 {
		return FrameHeader{}, fmt.Errorf("reserved MPEG version")
	}

	layerBits := (h >> 17) & 0x3
	if layerBits == 0 {
		return FrameHeader{}, fmt.Errorf("reserved layer")
	}
	layer := Layer(4 - layerBits)

	bitrateIdx := (h >> 12) & 0xF
	if bitrateIdx == 0 {
		return FrameHeader{}, fmt.Errorf("free-format bitrate")
	}
	if bitrateIdx == 0xF {
		return FrameHeader{}, fmt.Errorf("bad bitrate index")
	}

	rateIdx := (h >> 10) & 0x3
	if rateIdx == 3 {
		return FrameHeader{}, fmt.Errorf("reserved sample rate index")
	}

	if h&0x3 == 2 {
		return FrameHeader{}, fmt.Errorf("reserved emphasis")
	}

	row := 1
	if version == MPEG1 {
		row = 0
	}

	return FrameHeader{
		Version:     version,
		Layer:       layer,
		Protected:   (h>>16)&0x1 == 0,
		Bitrate:     bitrates[row][layer-1][bitrateIdx] * 1000,
		SampleRate:  sampleRates[version][rateIdx],
		Padding:     (h>>9)&0x1 == 1,
		ChannelMode: ChannelMode((h >> 6) & 0x3),
	}, nil
}

// Channels returns 1 for single-channel mode and 2 otherwise.
func (h FrameHeader) Channels() int {
	if h.ChannelMode == SingleChannel {
		return 1
	}
	return 2
}

// SamplesPerFrame returns the number of PCM samples per channel in one frame.
func (h FrameHeader) SamplesPerFrame() int {
	switch {
	case h.Layer == 1:
		return 384
	case h.Layer == 3 && h.Version != MPEG1:
		return 576
	default:
		return 1152
	}
}

// FrameLength returns the frame size in bytes, header included.
func (h FrameHeader) FrameLength() int {
	pad := 0
	if h.Padding {
		pad = 1
	}
	if h.Layer == 1 {
		return (12*h.Bitrate/h.SampleRate + pad) * 4
	}
	return h.SamplesPerFrame()/8*h.Bitrate/h.SampleRate + pad
}

// sideInfoSize returns the layer III side information length, which is
// where encoders place the Xing/Info header.
func (h FrameHeader) sideInfoSize() int {
	mono := h.ChannelMode == SingleChannel
	switch {
	case h.Version == MPEG1 && mono:
		return 17
	case h.Version == MPEG1:
		return 32
	case mono:
		return 9
	default:
		return 17
	}
}

// sameStream reports whether two headers plausibly belong to one stream.
func (h FrameHeader) sameStream(o FrameHeader) bool {
	return h.Version == o.Version && h.Layer == o.Layer && h.SampleRate == o.SampleRate
}

func (h FrameHeader) String() string {
	return fmt.Sprintf("%s Layer %d, %d kbps, %d Hz, %s", h.Version, h.Layer, h.Bitrate/1000, h.SampleRate, h.ChannelMode)
}
