package audioinfo

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// FileTooLargeError is returned when a file exceeds the configured size limit.
type FileTooLargeError struct {
	Path  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: %d bytes exceeds limit of %d", e.Path, e.Size, e.Limit)
}

// ExtractFile reads a file and extracts its metadata.
//
// The format is detected from content, falling back to the file extension,
// unless WithFormat is given. Files larger than the size limit are refused
// before being read.
//
// Example:
//
//	meta, err := audioinfo.ExtractFile("song.ogg")
//	if err != nil {
//		return err
//	}
//	fmt.Println(meta)
func ExtractFile(path string, opts ...Option) (*Metadata, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	data, err := readFile(path, options.maxSize)
	if err != nil {
		return nil, err
	}

	format := options.format
	if format == FormatUnknown {
		format, err = DetectFormat(data)
		if err != nil {
			if format = formatFromExtension(path); format == FormatUnknown {
				return nil, &ExtractionError{Kind: KindUnsupportedFormat, Err: fmt.Errorf("%s: %w", path, err)}
			}
		}
	}

	return Extract(data, format)
}

// readFile reads at most limit bytes of path (no limit when limit is 0).
func readFile(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	if limit > 0 && stat.Size() > limit {
		return nil, &FileTooLargeError{Path: path, Size: stat.Size(), Limit: limit}
	}

	var r io.Reader = f
	if limit > 0 {
		// The file may grow between Stat and Read.
		r = io.LimitReader(f, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, &FileTooLargeError{Path: path, Size: int64(len(data)), Limit: limit}
	}
	return data, nil
}

// ExtractMany extracts metadata from several buffers concurrently.
//
// Results are returned in input order, each with its own error. The only
// error returned directly is the context's, in which case no results are
// returned.
//
// Example:
//
//	results, err := audioinfo.ExtractMany(ctx,
//	    audioinfo.Input{Data: a, Format: audioinfo.FormatMP3},
//	    audioinfo.Input{Data: b, Format: audioinfo.FormatWAV},
//	)
func ExtractMany(ctx context.Context, inputs ...Input) ([]Result, error) {
	return run(ctx, len(inputs), func(i int) Result {
		meta, err := Extract(inputs[i].Data, inputs[i].Format)
		return Result{Metadata: meta, Err: err}
	})
}

// ExtractFiles extracts metadata from several files concurrently.
//
// It behaves like ExtractMany; per-file errors (including I/O errors) are
// reported in the corresponding Result.
func ExtractFiles(ctx context.Context, paths []string, opts ...Option) ([]Result, error) {
	return run(ctx, len(paths), func(i int) Result {
		meta, err := ExtractFile(paths[i], opts...)
		if err != nil {
			err = fmt.Errorf("%s: %w", paths[i], err)
		}
		return Result{Metadata: meta, Err: err}
	})
}

// run calls task for 0..n-1 with at most runtime.NumCPU() in flight.
func run(ctx context.Context, n int, task func(i int) Result) ([]Result, error) {
	if n == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU()) // Limit concurrent operations

	results := make([]Result, n)

	for i := range n {
		g.Go(func() error {
			// Check for cancellation
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = task(i)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
