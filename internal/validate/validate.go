// Package validate turns untrusted request payloads into labeled audio
// buffers: it decodes, enforces the size limit and classifies the content.
package validate

import (
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/config"
	"github.com/simonhull/audioinfo/internal/sniff"
)

// Validator checks payloads against a size limit and a classifier.
type Validator struct {
	MaxSize    int64
	Classifier sniff.Classifier
}

// New returns a Validator with the given limit and the default classifier.
func New(maxSize int64) *Validator {
	if maxSize <= 0 {
		maxSize = config.DefaultMaxUploadSize
	}
	return &Validator{MaxSize: maxSize, Classifier: sniff.Default}
}

// FromBase64 decodes a standard base64 payload and classifies it.
func (v *Validator) FromBase64(encoded string) (audioinfo.Input, error) {
	encoded = strings.TrimSpace(encoded)

	// DecodedLen over-reports by at most two padding bytes.
	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > v.MaxSize+2 {
		return audioinfo.Input{}, TooLarge(v.MaxSize, nil)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return audioinfo.Input{}, BadRequest(MsgInvalidBase64, err)
	}
	return v.classify(data)
}

// FromReader reads a payload of declaredSize bytes from r and classifies
// it. A declaredSize of zero or less means unknown.
func (v *Validator) FromReader(r io.Reader, declaredSize int64) (audioinfo.Input, error) {
	if declaredSize > v.MaxSize {
		return audioinfo.Input{}, TooLarge(v.MaxSize, nil)
	}

	data, err := io.ReadAll(io.LimitReader(r, v.MaxSize+1))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return audioinfo.Input{}, TooLarge(v.MaxSize, err)
		}
		return audioinfo.Input{}, BadRequest(MsgProcessing, err)
	}
	return v.classify(data)
}

func (v *Validator) classify(data []byte) (audioinfo.Input, error) {
	if int64(len(data)) > v.MaxSize {
		return audioinfo.Input{}, TooLarge(v.MaxSize, nil)
	}

	c := v.Classifier
	if c == nil {
		c = sniff.Default
	}
	format, err := c.Classify(data)
	if err != nil {
		return audioinfo.Input{}, BadRequest(MsgNotSupported, err)
	}
	return audioinfo.Input{Data: data, Format: format}, nil
}
