// Package ogg extracts stream properties from Ogg Vorbis files.
//
// The identification header on the first page gives the channel count and
// sample rate; the duration comes from the granule position of the first
// logical stream's last page. Page payloads after the first are never read.
package ogg

import (
	"errors"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
)

// Stream is the result of scanning the first logical stream.
type Stream struct {
	Serial       uint32
	Header       *Identification
	LastGranule  int64 // -1 if no page carried a granule position
	Pages        int   // Pages of this stream that were read
	Complete     bool  // The EOS page was reached
	Resyncs      int   // Times the scan skipped a corrupt page
	TruncatedEnd bool  // The buffer ended inside a page
}

// Duration returns the stream duration in seconds.
func (s *Stream) Duration() float64 {
	if s.LastGranule <= 0 {
		return 0
	}
	return float64(s.LastGranule) / float64(s.Header.SampleRate)
}

// Inspect parses the first page and walks the remaining page headers.
func Inspect(data []byte) (*Stream, error) {
	c := binary.NewCursor(data)

	first, err := readPage(c)
	if err != nil {
		return nil, err
	}
	if first.Continued() {
		return nil, types.Malformed(first.Offset+5, "first page continues a packet")
	}
	if len(first.Segments) == 0 {
		return nil, types.Malformed(first.Offset+26, "first page has no segments")
	}

	header, err := parseIdentification(firstPacket(first), first.Offset+pageHeaderSize+len(first.Segments))
	if err != nil {
		return nil, err
	}

	s := &Stream{
		Serial:      first.SerialNumber,
		Header:      header,
		LastGranule: -1,
		Pages:       1,
		Complete:    first.EOS(),
	}
	s.track(first)

	for !s.Complete && c.Remaining() > 0 {
		pos := c.Pos()
		page, err := readPage(c)
		if err == nil {
			if page.SerialNumber == s.Serial {
				s.Pages++
				s.track(page)
				s.Complete = page.EOS()
			}
			continue
		}

		// Corrupt page: skip ahead to the next capture pattern. A page
		// running past the buffer is only a cut tail when nothing follows.
		next := resync(data, pos+1)
		if next < 0 {
			s.TruncatedEnd = errors.Is(err, types.ErrTruncated)
			break
		}
		s.Resyncs++
		if err := c.Seek(next); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// track records the granule position of a page of the stream.
func (s *Stream) track(page *Page) {
	// -1 marks a page on which no packet ends.
	if page.GranulePosition >= 0 {
		s.LastGranule = page.GranulePosition
	}
}

// Parse extracts sample rate, channel count and duration from an Ogg
// Vorbis buffer.
func Parse(data []byte) (*types.Metadata, error) {
	s, err := Inspect(data)
	if err != nil {
		return nil, err
	}

	meta := &types.Metadata{
		Format:            types.FormatOggVorbis,
		SampleRate:        int(s.Header.SampleRate),
		Channels:          int(s.Header.Channels),
		Duration:          s.Duration(),
		DurationEstimated: !s.Complete,
	}
	if s.Header.BitrateNominal > 0 {
		meta.Bitrate = int(s.Header.BitrateNominal)
	} else if meta.Duration > 0 {
		meta.Bitrate = int(float64(len(data)) * 8 / meta.Duration)
	}
	return meta, nil
}

// init registers the Ogg Vorbis parser
func init() {
	registry.Register(types.FormatOggVorbis, registry.ParserFunc(Parse))
}
