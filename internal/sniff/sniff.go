// Package sniff classifies audio buffers by content.
//
// MIME detection from github.com/gabriel-vasile/mimetype runs first; when it
// does not name one of the supported containers the magic-byte check in
// types.DetectFormat gets the final say.
package sniff

import (
	"github.com/gabriel-vasile/mimetype"

	"github.com/simonhull/audioinfo/internal/types"
)

// Classifier maps a buffer to a container format.
type Classifier interface {
	Classify(data []byte) (types.Format, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(data []byte) (types.Format, error)

// Classify calls f(data).
func (f ClassifierFunc) Classify(data []byte) (types.Format, error) {
	return f(data)
}

// Default is the MIME-then-magic classifier.
var Default Classifier = ClassifierFunc(Classify)

// mimeFormats lists the MIME types mapped to formats. Ogg is matched on
// the container type so that non-Vorbis Ogg reaches the parser and is
// reported as an unsupported variant.
var mimeFormats = []struct {
	mime   string
	format types.Format
}{
	{"audio/mpeg", types.FormatMP3},
	{"audio/wav", types.FormatWAV},
	{"audio/ogg", types.FormatOggVorbis},
	{"application/ogg", types.FormatOggVorbis},
}

// Result is the outcome of classifying a buffer.
type Result struct {
	Format types.Format
	MIME   string // As reported by mimetype, before mapping
}

// Detect classifies data and reports the detected MIME type.
func Detect(data []byte) (Result, error) {
	mt := mimetype.Detect(data)
	res := Result{MIME: mt.String()}

	for m := mt; m != nil; m = m.Parent() {
		for _, mf := range mimeFormats {
			if m.Is(mf.mime) {
				res.Format = mf.format
				return res, nil
			}
		}
	}

	f, err := types.DetectFormat(data)
	if err != nil {
		return res, err
	}
	res.Format = f
	return res, nil
}

// Classify returns the container format of data.
func Classify(data []byte) (types.Format, error) {
	res, err := Detect(data)
	return res.Format, err
}
