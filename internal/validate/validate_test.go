package validate

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/fixtures"
	"github.com/simonhull/audioinfo/internal/sniff"
)

func requireError(t *testing.T, err error, message string) *Error {
	t.Helper()
	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, http.StatusBadRequest, verr.Status)
	assert.Equal(t, message, verr.Message)
	return verr
}

func TestFromBase64(t *testing.T) {
	v := New(1 << 20)

	tests := []struct {
		name string
		data []byte
		want audioinfo.Format
	}{
		{"wav", fixtures.WAV(2, 44100, 16, 4000), audioinfo.FormatWAV},
		{"mp3", fixtures.MPEGFrames(fixtures.CBRHeader(), fixtures.CBRFrameLength, 4*fixtures.CBRFrameLength), audioinfo.FormatMP3},
		{"ogg", fixtures.OggVorbis(2, 44100, 44100), audioinfo.FormatOggVorbis},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := v.FromBase64(base64.StdEncoding.EncodeToString(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, in.Format)
			assert.Equal(t, tt.data, in.Data)
		})
	}
}

func TestFromBase64_Rejections(t *testing.T) {
	v := New(1024)

	requireError(t, mustFail(v.FromBase64("not base64!")), MsgInvalidBase64)
	requireError(t, mustFail(v.FromBase64(base64.StdEncoding.EncodeToString([]byte("hello, plain text")))), MsgNotSupported)
	requireError(t, mustFail(v.FromBase64("")), MsgNotSupported)

	big := base64.StdEncoding.EncodeToString(make([]byte, 4096))
	requireError(t, mustFail(v.FromBase64(big)), "File size exceeds max limit (1024 bytes)")
}

func TestFromBase64_ExactLimit(t *testing.T) {
	data := fixtures.WAV(1, 8000, 8, 956)
	require.Len(t, data, 1000)

	_, err := New(1000).FromBase64(base64.StdEncoding.EncodeToString(data))
	require.NoError(t, err)

	_, err = New(999).FromBase64(base64.StdEncoding.EncodeToString(data))
	requireError(t, err, "File size exceeds max limit (999 bytes)")
}

func TestFromReader(t *testing.T) {
	v := New(10 << 20)
	data := fixtures.WAV(1, 22050, 16, 2000)

	in, err := v.FromReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, audioinfo.FormatWAV, in.Format)

	in, err = v.FromReader(bytes.NewReader(data), 0)
	require.NoError(t, err)
	assert.Len(t, in.Data, len(data))
}

func TestFromReader_Limits(t *testing.T) {
	v := New(2 << 20)

	_, err := v.FromReader(bytes.NewReader(nil), 3<<20)
	requireError(t, err, "File size exceeds max limit (2MB)")

	// Declared size lies; the actual bytes still count.
	_, err = v.FromReader(bytes.NewReader(make([]byte, 3<<20)), 10)
	requireError(t, err, "File size exceeds max limit (2MB)")
}

func TestFromReader_MaxBytesReader(t *testing.T) {
	v := New(1 << 20)
	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(bytes.NewReader(make([]byte, 64))), 16)

	_, err := v.FromReader(body, 0)
	verr := requireError(t, err, "File size exceeds max limit (1MB)")
	var mbe *http.MaxBytesError
	assert.ErrorAs(t, verr, &mbe)
}

func TestFromReader_ReadError(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := New(1024).FromReader(io.MultiReader(bytes.NewReader([]byte("RIFF")), errReader{boom}), 0)
	verr := requireError(t, err, MsgProcessing)
	assert.ErrorIs(t, verr, boom)
}

func TestCustomClassifier(t *testing.T) {
	v := New(1024)
	v.Classifier = sniff.ClassifierFunc(func([]byte) (audioinfo.Format, error) {
		return audioinfo.FormatOggVorbis, nil
	})

	in, err := v.FromReader(bytes.NewReader([]byte("anything")), 0)
	require.NoError(t, err)
	assert.Equal(t, audioinfo.FormatOggVorbis, in.Format)
}

func TestNew_DefaultLimit(t *testing.T) {
	assert.Equal(t, int64(10<<20), New(0).MaxSize)
}

func TestErrorMessageIsUserSafe(t *testing.T) {
	err := BadRequest(MsgInvalidBase64, errors.New("illegal base64 data at input byte 3"))
	assert.Equal(t, MsgInvalidBase64, err.Error())
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func mustFail(_ audioinfo.Input, err error) error { return err }
