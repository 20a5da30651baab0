package ogg

import (
	"errors"
	"math"
	"testing"

	"github.com/simonhull/audioinfo/internal/binary"
	"github.com/simonhull/audioinfo/internal/fixtures"
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
)

const (
	epsilon = 1e-9
	serial  = 0x1234
)

// createOggVorbis builds id, comment and audio pages; the last page carries
// finalGranule and the EOS flag.
func createOggVorbis(channels byte, rate uint32, granules ...int64) []byte {
	pages := [][]byte{
		fixtures.OggPage(fixtures.OggBOS, 0, serial, 0, fixtures.VorbisID(channels, rate, 0)),
		fixtures.OggPage(0, 0, serial, 1, fixtures.VorbisComment()),
	}
	for i, g := range granules {
		flags := byte(0)
		if i == len(granules)-1 {
			flags = fixtures.OggEOS
		}
		pages = append(pages, fixtures.OggPage(flags, g, serial, uint32(i+2), make([]byte, 100)))
	}
	return fixtures.Concat(pages...)
}

func TestParse_VorbisStream(t *testing.T) {
	data := fixtures.OggVorbis(2, 48000, 96000)

	meta, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if meta.Format != types.FormatOggVorbis {
		t.Errorf("Format = %v, want OGG_VORBIS", meta.Format)
	}
	if meta.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", meta.SampleRate)
	}
	if meta.Channels != 2 {
		t.Errorf("Channels = %d, want 2", meta.Channels)
	}
	if math.Abs(meta.Duration-2.0) > epsilon {
		t.Errorf("Duration = %v, want 2.0", meta.Duration)
	}
	if meta.BitDepth != 0 {
		t.Errorf("BitDepth = %d, want 0", meta.BitDepth)
	}
	if meta.Bitrate != 128000 {
		t.Errorf("Bitrate = %d, want nominal 128000", meta.Bitrate)
	}
	if meta.DurationEstimated {
		t.Error("complete stream should not be estimated")
	}
}

func TestParse_BitrateWithoutNominal(t *testing.T) {
	data := createOggVorbis(1, 44100, 44100, 88200)

	meta, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if want := int(float64(len(data)) * 8 / 2.0); meta.Bitrate != want {
		t.Errorf("Bitrate = %d, want %d", meta.Bitrate, want)
	}
}

func TestParse_TruncatedTail(t *testing.T) {
	data := createOggVorbis(2, 44100, 44100, 88200, 132300)
	cut := data[:len(data)-50]

	meta, err := Parse(cut)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if math.Abs(meta.Duration-2.0) > epsilon {
		t.Errorf("Duration = %v, want 2.0 from the last complete page", meta.Duration)
	}
	if !meta.DurationEstimated {
		t.Error("expected DurationEstimated for truncated stream")
	}

	s, err := Inspect(cut)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if !s.TruncatedEnd {
		t.Error("expected TruncatedEnd")
	}
	if s.Complete {
		t.Error("stream should not be complete")
	}
}

func TestParse_HeadersOnly(t *testing.T) {
	data := createOggVorbis(2, 44100)

	meta, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if meta.Duration != 0 {
		t.Errorf("Duration = %v, want 0", meta.Duration)
	}
	if !meta.DurationEstimated {
		t.Error("stream without EOS should be estimated")
	}
}

func TestInspect_Resync(t *testing.T) {
	bad := fixtures.OggPage(0, 999999, serial, 2, make([]byte, 20))
	bad[4] = 1 // stream structure version

	data := fixtures.Concat(
		fixtures.OggPage(fixtures.OggBOS, 0, serial, 0, fixtures.VorbisID(1, 8000, 0)),
		fixtures.OggPage(0, 0, serial, 1, fixtures.VorbisComment()),
		bad,
		fixtures.OggPage(fixtures.OggEOS, 24000, serial, 3, make([]byte, 20)),
	)

	s, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if s.Resyncs != 1 {
		t.Errorf("Resyncs = %d, want 1", s.Resyncs)
	}
	if !s.Complete {
		t.Error("expected EOS page after resync")
	}
	if math.Abs(s.Duration()-3.0) > epsilon {
		t.Errorf("Duration() = %v, want 3.0", s.Duration())
	}
}

func TestInspect_ResyncAfterOversizedPage(t *testing.T) {
	bad := fixtures.OggPage(0, 48000, serial, 2, make([]byte, 20))
	bad[26] = 200 // lacing table runs past the end of the buffer

	data := fixtures.Concat(
		fixtures.OggPage(fixtures.OggBOS, 0, serial, 0, fixtures.VorbisID(2, 48000, 0)),
		fixtures.OggPage(0, 0, serial, 1, fixtures.VorbisComment()),
		bad,
		fixtures.OggPage(fixtures.OggEOS, 96000, serial, 3, make([]byte, 20)),
	)

	s, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if s.Resyncs < 1 {
		t.Errorf("Resyncs = %d, want at least 1", s.Resyncs)
	}
	if s.TruncatedEnd {
		t.Error("damaged middle page reported as a truncated end")
	}
	if !s.Complete {
		t.Error("expected EOS page after resync")
	}
	if math.Abs(s.Duration()-2.0) > epsilon {
		t.Errorf("Duration() = %v, want 2.0", s.Duration())
	}
}

func TestInspect_GarbageTail(t *testing.T) {
	data := fixtures.Concat(
		fixtures.OggPage(fixtures.OggBOS, 0, serial, 0, fixtures.VorbisID(1, 8000, 0)),
		fixtures.OggPage(0, 8000, serial, 1, make([]byte, 20)),
		[]byte("this is not a page and never will be"),
	)

	meta, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if math.Abs(meta.Duration-1.0) > epsilon {
		t.Errorf("Duration = %v, want 1.0", meta.Duration)
	}
	if !meta.DurationEstimated {
		t.Error("expected DurationEstimated")
	}
}

func TestInspect_IgnoresOtherStreams(t *testing.T) {
	data := fixtures.Concat(
		fixtures.OggPage(fixtures.OggBOS, 0, serial, 0, fixtures.VorbisID(2, 44100, 0)),
		fixtures.OggPage(fixtures.OggBOS, 0, 0x9999, 0, []byte("\x80theora")),
		fixtures.OggPage(0, 44100, serial, 1, make([]byte, 50)),
		fixtures.OggPage(0, 10_000_000, 0x9999, 1, make([]byte, 50)),
		fixtures.OggPage(0, -1, serial, 2, make([]byte, 255)),
		fixtures.OggPage(fixtures.OggEOS, 88200, serial, 3, make([]byte, 50)),
		fixtures.OggPage(fixtures.OggEOS, 20_000_000, 0x9999, 2, make([]byte, 50)),
	)

	s, err := Inspect(data)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if s.Pages != 4 {
		t.Errorf("Pages = %d, want 4", s.Pages)
	}
	if s.LastGranule != 88200 {
		t.Errorf("LastGranule = %d, want 88200", s.LastGranule)
	}
	if math.Abs(s.Duration()-2.0) > epsilon {
		t.Errorf("Duration() = %v, want 2.0", s.Duration())
	}
}

func TestInspect_IdentificationFields(t *testing.T) {
	s, err := Inspect(fixtures.OggVorbis(6, 96000, 0))
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}

	h := s.Header
	if h.Channels != 6 || h.SampleRate != 96000 {
		t.Errorf("got %d ch at %d Hz", h.Channels, h.SampleRate)
	}
	if h.BitrateNominal != 128000 {
		t.Errorf("BitrateNominal = %d, want 128000", h.BitrateNominal)
	}
	if h.BlockSize0 != 256 || h.BlockSize1 != 2048 {
		t.Errorf("block sizes = %d, %d, want 256, 2048", h.BlockSize0, h.BlockSize1)
	}
	if s.Serial != serial {
		t.Errorf("Serial = %#x, want %#x", s.Serial, serial)
	}
}

func TestPages(t *testing.T) {
	data := fixtures.OggVorbis(2, 48000, 96000)

	pages, err := Pages(data)
	if err != nil {
		t.Fatalf("Pages failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("got %d pages, want 3", len(pages))
	}

	if !pages[0].BOS() || pages[0].EOS() || pages[0].Continued() {
		t.Errorf("first page flags = %#x, want BOS only", pages[0].HeaderType)
	}
	if !pages[2].EOS() {
		t.Error("last page should be EOS")
	}
	if pages[2].GranulePosition != 96000 {
		t.Errorf("GranulePosition = %d, want 96000", pages[2].GranulePosition)
	}

	offset := 0
	for i, p := range pages {
		if p.Offset != offset {
			t.Errorf("page %d Offset = %d, want %d", i, p.Offset, offset)
		}
		if p.SequenceNumber != uint32(i) {
			t.Errorf("page %d SequenceNumber = %d", i, p.SequenceNumber)
		}
		offset += p.Size()
	}
	if offset != len(data) {
		t.Errorf("pages cover %d bytes, want %d", offset, len(data))
	}

	partial, err := Pages(data[:len(data)-1])
	if !errors.Is(err, types.ErrTruncated) {
		t.Errorf("err = %v, want truncated", err)
	}
	if len(partial) != 2 {
		t.Errorf("got %d pages before the error, want 2", len(partial))
	}
}

func readPageAt(data []byte) (*Page, error) {
	return readPage(binary.NewCursor(data))
}

func TestFirstPacket(t *testing.T) {
	long := make([]byte, 300)
	page, err := readPageAt(fixtures.OggPage(0, 0, 1, 0, long, make([]byte, 10)))
	if err != nil {
		t.Fatalf("readPage failed: %v", err)
	}
	if got := len(firstPacket(page)); got != 300 {
		t.Errorf("first packet is %d bytes, want 300", got)
	}
	if len(page.Segments) != 3 {
		t.Errorf("lacing has %d values, want 3", len(page.Segments))
	}
}

func TestParse_Errors(t *testing.T) {
	versioned := fixtures.VorbisID(2, 44100, 0)
	versioned[7] = 1
	noChannels := fixtures.VorbisID(0, 44100, 0)
	noRate := fixtures.VorbisID(2, 0, 0)
	noFraming := fixtures.VorbisID(2, 44100, 0)
	noFraming[29] = 0
	badBlocks := fixtures.VorbisID(2, 44100, 0)
	badBlocks[28] = 0x8B // blocksize_0 > blocksize_1

	page := func(packet []byte) []byte {
		return fixtures.OggPage(fixtures.OggBOS, 0, serial, 0, packet)
	}
	valid := fixtures.OggVorbis(2, 44100, 44100)

	badFlags := append([]byte(nil), valid...)
	badFlags[5] = 0x08
	badVersion := append([]byte(nil), valid...)
	badVersion[4] = 1
	notOgg := append([]byte(nil), valid...)
	copy(notOgg, "RIFF")

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, types.ErrTruncated},
		{"shorter than a page header", []byte("OggS\x00\x02"), types.ErrTruncated},
		{"foreign short buffer", []byte("abc"), types.ErrTruncated},
		{"first page cut", valid[:40], types.ErrTruncated},
		{"all zero", make([]byte, 100), types.ErrMalformedHeader},
		{"not Ogg", notOgg, types.ErrMalformedHeader},
		{"undefined flags", badFlags, types.ErrMalformedHeader},
		{"stream version", badVersion, types.ErrMalformedHeader},
		{"no segments", fixtures.OggPage(fixtures.OggBOS, 0, serial, 0), types.ErrMalformedHeader},
		{"first page continued", fixtures.OggPage(fixtures.OggBOS|fixtures.OggContinued, 0, serial, 0, fixtures.VorbisID(2, 44100, 0)), types.ErrMalformedHeader},
		{"unknown codec", page([]byte("\x01something else")), types.ErrMalformedHeader},
		{"short identification", page(fixtures.VorbisID(2, 44100, 0)[:20]), types.ErrMalformedHeader},
		{"zero channels", page(noChannels), types.ErrMalformedHeader},
		{"zero sample rate", page(noRate), types.ErrMalformedHeader},
		{"framing bit", page(noFraming), types.ErrMalformedHeader},
		{"block sizes", page(badBlocks), types.ErrMalformedHeader},
		{"vorbis version", page(versioned), types.ErrUnsupportedVariant},
		{"opus", page([]byte("OpusHead\x01\x02\x38\x01\x80\xbb\x00\x00\x00\x00\x00")), types.ErrUnsupportedVariant},
		{"flac", page([]byte("\x7fFLAC\x01\x00\x00\x01fLaC")), types.ErrUnsupportedVariant},
		{"speex", page([]byte("Speex   1.2.0")), types.ErrUnsupportedVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	data := createOggVorbis(2, 44100, 44100, 88200)
	a, errA := Parse(data)
	b, errB := Parse(data)
	if errA != nil || errB != nil {
		t.Fatalf("Parse failed: %v, %v", errA, errB)
	}
	if *a != *b {
		t.Errorf("results differ: %+v vs %+v", a, b)
	}
}

func TestRegistered(t *testing.T) {
	if registry.Get(types.FormatOggVorbis) == nil {
		t.Fatal("Ogg Vorbis parser not registered")
	}
}
