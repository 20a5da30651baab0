package audioinfo

import (
	"fmt"

	_ "github.com/simonhull/audioinfo/internal/mp3" // Register MP3 parser
	_ "github.com/simonhull/audioinfo/internal/ogg" // Register Ogg Vorbis parser
	"github.com/simonhull/audioinfo/internal/registry"
	"github.com/simonhull/audioinfo/internal/types"
	_ "github.com/simonhull/audioinfo/internal/wav" // Register WAV parser
)

// Every supported format must have a parser; a gap is a build defect.
func init() {
	if missing := registry.Missing(types.SupportedFormats()); len(missing) > 0 {
		panic(fmt.Sprintf("audioinfo: no parser registered for %v", missing))
	}
}

// Extract parses data as the given container format.
//
// The format is trusted to pick the parser, but the bytes are verified:
// a WAV label on MP3 data fails with KindMalformedHeader. Formats outside
// SupportedFormats fail with KindUnsupportedFormat without parsing.
//
// Every error is an *ExtractionError.
//
// Example:
//
//	meta, err := audioinfo.Extract(data, audioinfo.FormatOggVorbis)
//	if err != nil {
//		return err
//	}
//	fmt.Println(meta.Duration)
func Extract(data []byte, format Format) (*Metadata, error) {
	if !format.Supported() {
		return nil, &ExtractionError{
			Format: FormatUnknown,
			Kind:   KindUnsupportedFormat,
			Err:    &UnsupportedFormatError{Label: format.String(), Reason: "no parser for this format"},
		}
	}

	parser := registry.Get(format)
	if parser == nil {
		return nil, &ExtractionError{
			Format: format,
			Kind:   KindInternal,
			Err:    fmt.Errorf("no parser registered for %s", format),
		}
	}

	meta, err := parse(format, parser, data)
	if err != nil {
		return nil, err
	}
	if meta.Format != format {
		return nil, &ExtractionError{
			Format: format,
			Kind:   KindInternal,
			Err:    fmt.Errorf("parser returned %s metadata", meta.Format),
		}
	}
	return meta, nil
}

// ExtractLabel is like Extract but takes a format label such as
// "audio/mpeg", "WAV_PCM" or "ogg".
func ExtractLabel(data []byte, label string) (*Metadata, error) {
	format, err := types.ParseFormat(label)
	if err != nil {
		return nil, &ExtractionError{Format: FormatUnknown, Kind: KindUnsupportedFormat, Err: err}
	}
	return Extract(data, format)
}

// parse runs parser and converts panics and errors into *ExtractionError.
func parse(format Format, parser registry.Parser, data []byte) (meta *Metadata, err error) {
	defer func() {
		if r := recover(); r != nil {
			meta = nil
			err = &ExtractionError{
				Format: format,
				Kind:   KindInternal,
				Err:    fmt.Errorf("parser panic: %v", r),
			}
		}
	}()

	meta, err = parser.Parse(data)
	if err != nil {
		return nil, newExtractionError(format, err)
	}
	if meta == nil {
		return nil, &ExtractionError{Format: format, Kind: KindInternal, Err: fmt.Errorf("parser returned no metadata")}
	}
	return meta, nil
}
