package wav

import (
	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/types"
)

const (
	riffHeaderSize  = 12
	chunkHeaderSize = 8
)

// Chunk represents a RIFF chunk header
type Chunk struct {
	ID     string // 4-character chunk ID
	Size   uint32 // Payload size, excluding header and pad byte
	Offset int    // Position of the chunk header in the file
}

// DataOffset returns the file offset where the chunk's payload starts
func (c Chunk) DataOffset() int {
	return c.Offset + chunkHeaderSize
}

// End returns the offset of the next chunk, pad byte included.
func (c Chunk) End() int {
	return c.DataOffset() + int(c.Size) + int(c.Size&1)
}

// readRIFFHeader validates the 12-byte RIFF/WAVE header.
func readRIFFHeader(c *binary.Cursor) error {
	if _, err := c.Peek(riffHeaderSize, "RIFF header"); err != nil {
		return err
	}

	id, err := c.String(4, "RIFF chunk ID")
	if err != nil {
		return err
	}
	switch id {
	case "RIFF":
	case "RIFX", "RF64":
		return types.Unsupported("%s container", id)
	default:
		return types.Malformed(0, "expected RIFF, got %q", id)
	}

	if _, err := c.U32(binary.LittleEndian, "RIFF size"); err != nil {
		return err
	}

	form, err := c.String(4, "RIFF form type")
	if err != nil {
		return err
	}
	if form != "WAVE" {
		return types.Malformed(8, "expected WAVE form, got %q", form)
	}
	return nil
}

// walk calls fn for each chunk after the RIFF header until fn returns
// false or the buffer is exhausted. fn is positioned at the chunk payload.
// A chunk whose payload runs past the buffer is reported as truncated.
func walk(data []byte, fn func(c *binary.Cursor, ch Chunk) (bool, error)) error {
	c := binary.NewCursor(data)
	if err := readRIFFHeader(c); err != nil {
		return err
	}

	for c.Remaining() >= chunkHeaderSize {
		ch := Chunk{Offset: c.Pos()}
		id, err := c.String(4, "chunk ID")
		if err != nil {
			return err
		}
		ch.ID = id
		if ch.Size, err = c.U32(binary.LittleEndian, "chunk size"); err != nil {
			return err
		}

		if _, err := c.Peek(int(ch.Size), ch.ID+" chunk"); err != nil {
			return err
		}

		more, err := fn(c, ch)
		if err != nil || !more {
			return err
		}

		// The final pad byte may be missing; stop there instead of failing.
		if err := c.Seek(min(ch.End(), c.Len())); err != nil {
			return err
		}
	}
	return nil
}

// Chunks lists the chunk headers of a WAVE file in order.
//
// On error the chunks read so far are returned along with it.
func Chunks(data []byte) ([]Chunk, error) {
	var chunks []Chunk
	err := walk(data, func(_ *binary.Cursor, ch Chunk) (bool, error) {
		chunks = append(chunks, ch)
		return true, nil
	})
	return chunks, err
}
