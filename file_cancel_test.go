package audioinfo_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/audioinfo"
	"github.com/simonhull/audioinfo/internal/fixtures"
)

func writeTestFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// TestExtractFiles_Cancellation verifies that a cancelled context stops the batch
func TestExtractFiles_Cancellation(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 5)
	for i := range paths {
		paths[i] = writeTestFile(t, dir, filepath.Base(t.Name())+string(rune('a'+i))+".wav", fixtures.WAV(1, 8000, 8, 800))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	results, err := audioinfo.ExtractFiles(ctx, paths)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestExtractFiles_OrderAndPartialFailure(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeTestFile(t, dir, "a.wav", fixtures.WAV(2, 44100, 16, 176400)),
		filepath.Join(dir, "missing.wav"),
		writeTestFile(t, dir, "c.ogg", fixtures.OggVorbis(1, 8000, 24000)),
		writeTestFile(t, dir, "d.mp3", fixtures.MPEGFrames(fixtures.CBRHeader(), fixtures.CBRFrameLength, 32000)),
		writeTestFile(t, dir, "e.mp3", make([]byte, 100)),
	}

	results, err := audioinfo.ExtractFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	require.NoError(t, results[0].Err)
	assert.InDelta(t, 1.0, results[0].Metadata.Duration, 1e-9)

	assert.ErrorIs(t, results[1].Err, os.ErrNotExist)

	require.NoError(t, results[2].Err)
	assert.InDelta(t, 3.0, results[2].Metadata.Duration, 1e-9)

	require.NoError(t, results[3].Err)
	assert.InDelta(t, 2.0, results[3].Metadata.Duration, 1e-9)

	// Zero bytes have no signature; the extension picks MP3.
	assert.ErrorIs(t, results[4].Err, audioinfo.ErrTruncated)
}

func TestExtractMany(t *testing.T) {
	inputs := make([]audioinfo.Input, 20)
	for i := range inputs {
		inputs[i] = audioinfo.Input{
			Data:   fixtures.WAV(1, 8000, 16, 1600*(i+1)),
			Format: audioinfo.FormatWAV,
		}
	}
	inputs[7].Format = audioinfo.FormatMP3

	results, err := audioinfo.ExtractMany(context.Background(), inputs...)
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, r := range results {
		if i == 7 {
			assert.Equal(t, audioinfo.KindMalformedHeader, audioinfo.KindOf(r.Err))
			continue
		}
		require.NoError(t, r.Err)
		assert.InDelta(t, 0.1*float64(i+1), r.Metadata.Duration, 1e-9)
	}
}

func TestExtractMany_Empty(t *testing.T) {
	results, err := audioinfo.ExtractMany(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestExtractFile_Options(t *testing.T) {
	dir := t.TempDir()
	wav := fixtures.WAV(1, 8000, 16, 16000)
	path := writeTestFile(t, dir, "clip.bin", wav)

	meta, err := audioinfo.ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, audioinfo.FormatWAV, meta.Format)

	_, err = audioinfo.ExtractFile(path, audioinfo.WithFormat(audioinfo.FormatOggVorbis))
	assert.ErrorIs(t, err, audioinfo.ErrMalformedHeader)

	_, err = audioinfo.ExtractFile(path, audioinfo.WithMaxSize(1000))
	var tooLarge *audioinfo.FileTooLargeError
	require.True(t, errors.As(err, &tooLarge))
	assert.Equal(t, int64(len(wav)), tooLarge.Size)
	assert.Equal(t, int64(1000), tooLarge.Limit)

	_, err = audioinfo.ExtractFile(path, audioinfo.WithMaxSize(0))
	assert.NoError(t, err)
}

func TestExtractFile_UnknownContent(t *testing.T) {
	path := writeTestFile(t, t.TempDir(), "notes.txt", []byte("definitely not audio"))

	_, err := audioinfo.ExtractFile(path)
	assert.Equal(t, audioinfo.KindUnsupportedFormat, audioinfo.KindOf(err))
}
