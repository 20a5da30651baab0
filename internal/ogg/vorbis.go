package ogg

import (
	"bytes"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

const identificationSize = 30

// Identification is the Vorbis identification header (packet type 0x01).
type Identification struct {
	Version        uint32
	Channels       uint8
	SampleRate     uint32
	BitrateMaximum int32 // Optional, can be 0
	BitrateNominal int32 // Optional, can be 0
	BitrateMinimum int32 // Optional, can be 0
	BlockSize0     int
	BlockSize1     int
}

// codecSignatures identify the first packet of codecs that Ogg can carry
// but that are not parsed here.
var codecSignatures = []struct {
	prefix string
	name   string
}{
	{"OpusHead", "Opus"},
	{"\x7fFLAC", "FLAC"},
	{"Speex   ", "Speex"},
	{"\x80theora", "Theora"},
	{"fishead\x00", "Skeleton"},
	{"PCM     ", "OggPCM"},
}

// parseIdentification parses the first packet of a logical stream.
//
// Known non-Vorbis codecs are reported as unsupported variants; anything
// else that is not a valid identification header is malformed. offset is
// the packet's position in the file.
func parseIdentification(packet []byte, offset int) (*Identification, error) {
	for _, sig := range codecSignatures {
		if bytes.HasPrefix(packet, []byte(sig.prefix)) {
			return nil, types.Unsupported("%s stream in Ogg", sig.name)
		}
	}

	// Verify packet type (0x01 = identification) and "vorbis" magic marker
	if len(packet) < 7 || packet[0] != 0x01 || string(packet[1:7]) != "vorbis" {
		return nil, types.Malformed(offset, "first packet is not a Vorbis identification header")
	}
	if len(packet) < identificationSize {
		return nil, types.Malformed(offset, "identification header too short: %d bytes", len(packet))
	}

	c := binary.NewCursor(packet)
	_ = c.Skip(7, "packet type and signature")
	r := binary.NewChain(c, binary.LittleEndian)

	id := &Identification{}
	id.Version = r.U32("vorbis version")
	id.Channels = binary.ReadChained[uint8](r, "channel count")
	id.SampleRate = r.U32("sample rate")
	id.BitrateMaximum = int32(r.U32("maximum bitrate"))
	id.BitrateNominal = int32(r.U32("nominal bitrate"))
	id.BitrateMinimum = int32(r.U32("minimum bitrate"))
	blockSizes := binary.ReadChained[uint8](r, "block sizes")
	framing := binary.ReadChained[uint8](r, "framing flag")
	if err := r.Error(); err != nil {
		return nil, err
	}

	if id.Version != 0 {
		return nil, types.Unsupported("Vorbis version %d", id.Version)
	}
	if id.Channels == 0 {
		return nil, types.Malformed(offset+11, "zero channels")
	}
	if id.SampleRate == 0 {
		return nil, types.Malformed(offset+12, "zero sample rate")
	}

	exp0, exp1 := blockSizes&0x0F, blockSizes>>4
	if exp0 < 6 || exp1 > 13 || exp0 > exp1 {
		return nil, types.Malformed(offset+28, "invalid block sizes 2^%d, 2^%d", exp0, exp1)
	}
	id.BlockSize0, id.BlockSize1 = 1<<exp0, 1<<exp1

	if framing&0x01 == 0 {
		return nil, types.Malformed(offset+29, "framing bit not set")
	}
	return id, nil
}
