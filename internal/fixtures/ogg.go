package fixtures

import (
	"encoding/binary"
)

// Ogg header-type flags.
const (
	OggContinued = 0x01
	OggBOS       = 0x02
	OggEOS       = 0x04
)

// OggPage returns one page carrying packets, each terminated in its lacing.
func OggPage(headerType byte, granule int64, serial, sequence uint32, packets ...[]byte) []byte {
	var lacing, payload []byte
	for _, p := range packets {
		n := len(p)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}
		lacing = append(lacing, byte(n))
		payload = append(payload, p...)
	}

	out := make([]byte, 27, 27+len(lacing)+len(payload))
	copy(out, "OggS")
	out[4] = 0
	out[5] = headerType
	binary.LittleEndian.PutUint64(out[6:], uint64(granule))
	binary.LittleEndian.PutUint32(out[14:], serial)
	binary.LittleEndian.PutUint32(out[18:], sequence)
	out[26] = byte(len(lacing))
	out = append(out, lacing...)
	out = append(out, payload...)
	binary.LittleEndian.PutUint32(out[22:], oggCRC(out))
	return out
}

// VorbisID returns a Vorbis identification packet.
func VorbisID(channels byte, sampleRate, nominal uint32) []byte {
	out := make([]byte, 30)
	out[0] = 0x01
	copy(out[1:], "vorbis")
	out[11] = channels
	binary.LittleEndian.PutUint32(out[12:], sampleRate)
	binary.LittleEndian.PutUint32(out[20:], nominal)
	out[28] = 0xB8 // blocksize_0 = 8, blocksize_1 = 11
	out[29] = 0x01 // framing
	return out
}

// VorbisComment returns a minimal Vorbis comment packet.
func VorbisComment() []byte {
	out := []byte{0x03}
	out = append(out, "vorbis"...)
	vendor := "fixtures"
	out = binary.LittleEndian.AppendUint32(out, uint32(len(vendor)))
	out = append(out, vendor...)
	out = binary.LittleEndian.AppendUint32(out, 0)
	return append(out, 0x01)
}

// OggVorbis returns a three-page Vorbis stream whose final granule is
// finalGranule.
func OggVorbis(channels byte, sampleRate uint32, finalGranule int64) []byte {
	const serial = 0x1234
	return Concat(
		OggPage(OggBOS, 0, serial, 0, VorbisID(channels, sampleRate, 128000)),
		OggPage(0, 0, serial, 1, VorbisComment()),
		OggPage(OggEOS, finalGranule, serial, 2, make([]byte, 64)),
	)
}

var oggCRCTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04C11DB7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

// oggCRC computes the page checksum with the checksum field zeroed.
func oggCRC(page []byte) uint32 {
	var crc uint32
	for i, b := range page {
		if i >= 22 && i < 26 {
			b = 0
		}
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}
