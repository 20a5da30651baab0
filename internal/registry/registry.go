// Package registry maps container formats to their parsers.
package registry

import (
	"github.com/simonhull/audioinfo/internal/types"
)

// Parser is the interface all container parsers implement.
type Parser interface {
	// Parse extracts structural metadata from a fully buffered file.
	// Implementations must not retain or modify data.
	Parse(data []byte) (*types.Metadata, error)
}

// ParserFunc adapts a plain function to the Parser interface.
type ParserFunc func(data []byte) (*types.Metadata, error)

// Parse calls f(data).
func (f ParserFunc) Parse(data []byte) (*types.Metadata, error) {
	return f(data)
}

// parsers maps formats to their parsers.
var parsers = make(map[types.Format]Parser)

// Register registers a parser for a format.
// This is called by format packages during initialization (init functions).
func Register(format types.Format, parser Parser) {
	parsers[format] = parser
}

// Get returns the parser for a given format.
// Returns nil if no parser is registered for the format.
func Get(format types.Format) Parser {
	return parsers[format]
}

// Missing returns the formats in want that have no registered parser.
func Missing(want []types.Format) []types.Format {
	var missing []types.Format
	for _, f := range want {
		if parsers[f] == nil {
			missing = append(missing, f)
		}
	}
	return missing
}
