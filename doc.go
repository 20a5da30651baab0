// Package audioinfo extracts structural metadata from audio containers.
//
// Given a fully buffered file and its container format, audioinfo parses
// just enough of the binary structure to report duration, sample rate,
// channel count and, for PCM, bit depth. Audio payloads are never decoded.
//
// # Quick Start
//
// Extracting metadata from a buffer whose format is known:
//
//	meta, err := audioinfo.Extract(data, audioinfo.FormatWAV)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%.2fs at %d Hz, %d channels\n", meta.Duration, meta.SampleRate, meta.Channels)
//
// Reading a file and detecting its format from content:
//
//	meta, err := audioinfo.ExtractFile("song.mp3")
//
// # Supported Formats
//
//   - MP3: MPEG-1, MPEG-2 and MPEG-2.5 audio, layers I-III, with ID3v2/ID3v1
//     tags skipped and Xing/Info/VBRI headers honoured
//   - WAV: RIFF/WAVE with PCM, IEEE float, WAVE_FORMAT_EXTENSIBLE and
//     compressed format tags
//   - Ogg Vorbis: the first logical stream of an Ogg file
//
// # Error Handling
//
// Every failure is an *ExtractionError carrying an ErrorKind. The kinds can
// also be matched with errors.Is against the sentinels:
//
//	_, err := audioinfo.Extract(data, audioinfo.FormatMP3)
//	switch {
//	case errors.Is(err, audioinfo.ErrTruncated):
//		// the buffer ended early
//	case errors.Is(err, audioinfo.ErrMalformedHeader):
//		// the bytes are not a valid MP3 stream
//	}
//
// A parser fault is reported as KindInternal instead of crashing the
// caller.
//
// # Precision
//
// MP3 files without a Xing, Info or VBRI frame count have their duration
// estimated from the first frame's bitrate. This is exact for constant
// bitrate streams only; Metadata.DurationEstimated flags such results. Ogg
// streams that end before their last page are flagged the same way.
//
// # Concurrency
//
// Extraction holds no state between calls and is safe for concurrent use.
// ExtractMany and ExtractFiles process batches in parallel, bounded by the
// number of CPUs.
package audioinfo
