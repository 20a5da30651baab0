package ogg

import (
	"bytes"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

const (
	pageHeaderSize = 27
	capturePattern = "OggS"
)

// Header-type flags.
const (
	flagContinued = 0x01
	flagBOS       = 0x02
	flagEOS       = 0x04
)

// Page represents an Ogg page.
//
// An Ogg page is the fundamental unit of the Ogg container format.
// Each page contains a header and payload data.
type Page struct {
	Offset          int    // Position of the capture pattern
	HeaderType      byte   // Bit flags: 0x01=continued, 0x02=BOS, 0x04=EOS
	GranulePosition int64  // Position in samples, -1 if no packet ends here
	SerialNumber    uint32 // Logical bitstream identifier
	SequenceNumber  uint32 // Page sequence number
	Checksum        uint32
	Segments        []byte // Lacing values
	Data            []byte // Page payload (one or more packets)
}

// Continued reports whether the page starts with a continued packet.
func (p *Page) Continued() bool { return p.HeaderType&flagContinued != 0 }

// BOS reports whether the page begins a logical stream.
func (p *Page) BOS() bool { return p.HeaderType&flagBOS != 0 }

// EOS reports whether the page ends a logical stream.
func (p *Page) EOS() bool { return p.HeaderType&flagEOS != 0 }

// Size returns the page size in bytes, header included.
func (p *Page) Size() int {
	return pageHeaderSize + len(p.Segments) + len(p.Data)
}

// readPage reads the Ogg page at the cursor position and leaves the cursor
// after its payload. On error the cursor position is unspecified.
func readPage(c *binary.Cursor) (*Page, error) {
	offset := c.Pos()
	if _, err := c.Peek(pageHeaderSize, "Ogg page header"); err != nil {
		return nil, err
	}

	// Verify "OggS" magic marker
	magic, _ := c.String(4, "Ogg capture pattern")
	if magic != capturePattern {
		return nil, types.Malformed(offset, "invalid Ogg capture pattern %q", magic)
	}

	// The header is known to be present, so the chain cannot fail here.
	r := binary.NewChain(c, binary.LittleEndian)
	version := binary.ReadChained[uint8](r, "version")
	page := &Page{Offset: offset}
	page.HeaderType = binary.ReadChained[uint8](r, "header type")
	page.GranulePosition = int64(binary.ReadChained[uint64](r, "granule position"))
	page.SerialNumber = r.U32("serial number")
	page.SequenceNumber = r.U32("sequence number")
	page.Checksum = r.U32("checksum")
	segmentCount := binary.ReadChained[uint8](r, "segment count")
	if err := r.Error(); err != nil {
		return nil, err
	}

	if version != 0 {
		return nil, types.Malformed(offset+4, "unsupported Ogg stream structure version %d", version)
	}
	if page.HeaderType&^(flagContinued|flagBOS|flagEOS) != 0 {
		return nil, types.Malformed(offset+5, "undefined header-type flags 0x%02x", page.HeaderType)
	}

	// Read segment table (each byte is size of a segment, 0-255)
	segments, err := c.Bytes(int(segmentCount), "segment table")
	if err != nil {
		return nil, err
	}
	page.Segments = segments

	// Calculate total data size
	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}

	if page.Data, err = c.Bytes(dataSize, "page data"); err != nil {
		return nil, err
	}
	return page, nil
}

// firstPacket returns the first packet that starts on page, or the page's
// whole payload if that packet continues on the next page.
func firstPacket(page *Page) []byte {
	size := 0
	for _, seg := range page.Segments {
		size += int(seg)
		if seg < 255 {
			break
		}
	}
	return page.Data[:size]
}

// resync returns the offset of the next capture pattern after from, or -1.
func resync(data []byte, from int) int {
	if from >= len(data) {
		return -1
	}
	i := bytes.Index(data[from:], []byte(capturePattern))
	if i < 0 {
		return -1
	}
	return from + i
}

// Pages reads consecutive pages from the start of data.
//
// On error the pages read so far are returned along with it.
func Pages(data []byte) ([]*Page, error) {
	c := binary.NewCursor(data)
	var pages []*Page
	for c.Remaining() > 0 {
		page, err := readPage(c)
		if err != nil {
			return pages, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}
