package mp3

import (
	"bytes"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

const (
	id3v2HeaderSize = 10
	id3v1Size       = 128
)

// ID3v2Header represents an ID3v2 tag header
type ID3v2Header struct {
	Offset   int    // Position of the "ID3" marker
	Version  byte   // Major version (2, 3 or 4)
	Revision byte   // Minor version
	Flags    byte   // Unsynchronisation, extended header, experimental, footer
	Size     uint32 // Tag size (excluding header and footer), synchsafe
}

// TotalSize returns the number of bytes the tag occupies, footer included.
func (h ID3v2Header) TotalSize() int {
	n := id3v2HeaderSize + int(h.Size)
	if h.Version == 4 && h.Flags&0x10 != 0 {
		n += id3v2HeaderSize
	}
	return n
}

// skipID3v2 advances c past every ID3v2 tag found at its position.
//
// Some taggers prepend a new tag without removing the old one, so tags are
// skipped until the next bytes are not "ID3". A tag whose declared size runs
// past the buffer is reported as truncated.
func skipID3v2(c *binary.Cursor) ([]ID3v2Header, error) {
	var tags []ID3v2Header
	for {
		marker, err := c.Peek(3, "ID3v2 marker")
		if err != nil || string(marker) != "ID3" {
			return tags, nil
		}

		start := c.Pos()
		buf, err := c.Peek(id3v2HeaderSize, "ID3v2 header")
		if err != nil {
			return tags, err
		}

		if buf[3] == 0xFF || buf[4] == 0xFF {
			return tags, types.Malformed(start, "invalid ID3v2 version 2.%d.%d", buf[3], buf[4])
		}
		for _, b := range buf[6:10] {
			if b&0x80 != 0 {
				return tags, types.Malformed(start+6, "ID3v2 size is not synchsafe")
			}
		}

		header := ID3v2Header{
			Offset:   start,
			Version:  buf[3],
			Revision: buf[4],
			Flags:    buf[5],
			Size:     decodeSynchsafe(buf[6:10]),
		}
		if err := c.Skip(header.TotalSize(), "ID3v2 tag"); err != nil {
			return tags, err
		}
		tags = append(tags, header)
	}
}

// hasID3v1 reports whether data ends with a 128-byte ID3v1 tag.
func hasID3v1(data []byte) bool {
	return len(data) >= id3v1Size && bytes.Equal(data[len(data)-id3v1Size:len(data)-id3v1Size+3], []byte("TAG"))
}

// decodeSynchsafe decodes a 4-byte synchsafe integer (7 bits per byte).
func decodeSynchsafe(b []byte) uint32 {
	if len(b) != 4 {
		return 0
	}
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}
