// Package mp3 extracts stream properties from MPEG audio files.
//
// Only frame headers are read. Duration comes from a Xing/Info or VBRI
// header when the encoder wrote one; otherwise it is estimated from the
// first frame's bitrate, which is exact for constant-bitrate streams and an
// approximation for VBR streams without a metadata frame. Such estimates are
// flagged with Metadata.DurationEstimated.
package mp3

import (
	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
)

// Stream describes the layout of an MPEG audio buffer.
type Stream struct {
	ID3v2       []ID3v2Header // Tags skipped at the start
	HasID3v1    bool          // A 128-byte ID3v1 tag ends the buffer
	AudioStart  int           // First byte after the ID3v2 tags
	AudioEnd    int           // End of audio (ID3v1 excluded)
	FrameOffset int           // Position of the first frame used
	Header      FrameHeader   // Header of that frame
	VBR         *VBRHeader    // Nil if the first frame is plain audio
}

// Inspect locates the tags, first frame and VBR header in data.
func Inspect(data []byte) (*Stream, error) {
	c := binary.NewCursor(data)
	if _, err := c.Peek(frameHeaderSize, "MPEG frame header"); err != nil {
		return nil, err
	}

	tags, err := skipID3v2(c)
	if err != nil {
		return nil, err
	}

	s := &Stream{
		ID3v2:      tags,
		AudioStart: c.Pos(),
		AudioEnd:   len(data),
	}
	if hasID3v1(data) && len(data)-id3v1Size >= s.AudioStart {
		s.HasID3v1 = true
		s.AudioEnd = len(data) - id3v1Size
	}

	if s.AudioEnd-s.AudioStart < frameHeaderSize || allZero(data[s.AudioStart:s.AudioEnd]) {
		return nil, &types.OutOfBoundsError{
			What:   "MPEG audio frames",
			Offset: s.AudioStart,
			Length: frameHeaderSize,
			Size:   len(data),
		}
	}

	s.FrameOffset, s.Header, err = findFirstFrame(data, s.AudioStart, s.AudioEnd)
	if err != nil {
		return nil, err
	}
	s.VBR = readVBRHeader(data[:s.AudioEnd], s.FrameOffset, s.Header)
	return s, nil
}

// findFirstFrame scans [start, end) for the first usable frame header.
//
// A candidate is confirmed when the following frame is also a valid header
// of the same stream, or would start past end. The first confirmed candidate
// wins; if none is confirmed the first valid one is used, which keeps
// single-frame and heavily damaged files readable.
func findFirstFrame(data []byte, start, end int) (int, FrameHeader, error) {
	var (
		firstOffset = -1
		firstHeader FrameHeader
		firstReject error
		rejectAt    int
	)

	for off := start; off+frameHeaderSize <= end; off++ {
		if data[off] != 0xFF || data[off+1]&0xE0 != 0xE0 {
			continue
		}

		h, err := ParseFrameHeader(data[off:end])
		if err != nil {
			if firstReject == nil {
				firstReject, rejectAt = err, off
			}
			continue
		}

		if firstOffset < 0 {
			firstOffset, firstHeader = off, h
		}

		next := off + h.FrameLength()
		if next+frameHeaderSize > end {
			return off, h, nil
		}
		if nh, err := ParseFrameHeader(data[next:end]); err == nil && nh.sameStream(h) {
			return off, h, nil
		}
	}

	if firstOffset >= 0 {
		return firstOffset, firstHeader, nil
	}
	if firstReject != nil {
		return 0, FrameHeader{}, types.Malformed(rejectAt, "no valid MPEG frame header: %v", firstReject)
	}
	return 0, FrameHeader{}, types.Malformed(start, "no MPEG frame sync found")
}

// Parse extracts sample rate, channel count and duration from an MP3 buffer.
func Parse(data []byte) (*types.Metadata, error) {
	s, err := Inspect(data)
	if err != nil {
		return nil, err
	}

	h := s.Header
	meta := &types.Metadata{
		Format:     types.FormatMP3,
		SampleRate: h.SampleRate,
		Channels:   h.Channels(),
		Bitrate:    h.Bitrate,
	}

	if s.VBR != nil && s.VBR.Frames > 0 {
		samples := float64(s.VBR.Frames) * float64(h.SamplesPerFrame())
		meta.Duration = samples / float64(h.SampleRate)

		size := int(s.VBR.Bytes)
		if size == 0 {
			size = s.AudioEnd - s.FrameOffset
		}
		if meta.Duration > 0 {
			meta.Bitrate = int(float64(size) * 8 / meta.Duration)
		}
		return meta, nil
	}

	// Constant-bitrate assumption: only exact when every frame shares the
	// first frame's bitrate.
	meta.Duration = float64(s.AudioEnd-s.FrameOffset) * 8 / float64(h.Bitrate)
	meta.DurationEstimated = true
	return meta, nil
}

// allZero reports whether b contains only zero bytes.
func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// init registers the MP3 parser
func init() {
	registry.Register(types.FormatMP3, registry.ParserFunc(Parse))
}
