package audioinfo

// DefaultMaxSize is the largest file ExtractFile reads unless WithMaxSize
// says otherwise.
const DefaultMaxSize = 10 << 20

// Option configures file extraction.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	meta, err := audioinfo.ExtractFile("clip.bin",
//	    audioinfo.WithFormat(audioinfo.FormatWAV),
//	    audioinfo.WithMaxSize(50<<20),
//	)
type Option func(*extractOptions)

// extractOptions holds configuration for reading files.
type extractOptions struct {
	format  Format // Skip detection when set
	maxSize int64  // Maximum file size in bytes (0 = no limit)
}

// defaultOptions returns the default configuration.
func defaultOptions() *extractOptions {
	return &extractOptions{
		format:  FormatUnknown,
		maxSize: DefaultMaxSize,
	}
}

// WithFormat skips content detection and parses files as f.
//
// The parser still verifies the structure, so a wrong format fails with
// KindMalformedHeader rather than producing made-up values.
func WithFormat(f Format) Option {
	return func(o *extractOptions) {
		o.format = f
	}
}

// WithMaxSize sets the largest file that will be read. Zero or a negative
// value removes the limit.
func WithMaxSize(n int64) Option {
	return func(o *extractOptions) {
		o.maxSize = max(n, 0)
	}
}
