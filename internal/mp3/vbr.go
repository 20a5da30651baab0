package mp3

import (
	"github.com/simonhull/audioinfo/internal/binary"
)

// VBRHeader is the metadata frame LAME (Xing/Info) or Fraunhofer (VBRI)
// encoders write in place of the first audio frame.
type VBRHeader struct {
	Tag    string // "Xing", "Info" or "VBRI"
	Frames uint32 // Total frame count, 0 if absent
	Bytes  uint32 // Total stream size in bytes, 0 if absent
}

// Xing flag bits.
const (
	xingFramesFlag = 0x1
	xingBytesFlag  = 0x2
)

// vbriOffset is the fixed VBRI position after the frame header.
const vbriOffset = 32

// readVBRHeader looks for a Xing/Info or VBRI header in the frame at
// frameOffset. It returns nil when neither is present or the frame is
// too short to hold one; absence is not an error.
func readVBRHeader(data []byte, frameOffset int, h FrameHeader) *VBRHeader {
	if h.Layer != 3 {
		return nil
	}

	// Xing/Info sits right after the side information.
	c := binary.NewCursor(data)
	if err := c.Seek(frameOffset + frameHeaderSize + h.sideInfoSize()); err == nil {
		if tag, err := c.String(4, "Xing tag"); err == nil && (tag == "Xing" || tag == "Info") {
			return readXing(c, tag)
		}
	}

	if err := c.Seek(frameOffset + frameHeaderSize + vbriOffset); err != nil {
		return nil
	}
	if tag, err := c.String(4, "VBRI tag"); err != nil || tag != "VBRI" {
		return nil
	}

	// version(2) + delay(2) + quality(2), then bytes and frames
	if err := c.Skip(6, "VBRI version, delay and quality"); err != nil {
		return nil
	}
	ch := binary.NewChain(c, binary.BigEndian)
	vbri := &VBRHeader{Tag: "VBRI"}
	vbri.Bytes = ch.U32("VBRI byte count")
	vbri.Frames = ch.U32("VBRI frame count")
	if ch.Error() != nil {
		return nil
	}
	return vbri
}

// readXing reads the flag-controlled fields that follow a Xing/Info tag.
func readXing(c *binary.Cursor, tag string) *VBRHeader {
	flags, err := c.U32(binary.BigEndian, "Xing flags")
	if err != nil {
		return nil
	}

	xing := &VBRHeader{Tag: tag}
	if flags&xingFramesFlag != 0 {
		if xing.Frames, err = c.U32(binary.BigEndian, "Xing frame count"); err != nil {
			return nil
		}
	}
	if flags&xingBytesFlag != 0 {
		if xing.Bytes, err = c.U32(binary.BigEndian, "Xing byte count"); err != nil {
			return nil
		}
	}
	return xing
}
