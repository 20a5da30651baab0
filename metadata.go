package audioinfo

import (
	"github.com/simonhull/audioinfo/internal/types"
)

// Metadata is an alias to types.Metadata.
type Metadata = types.Metadata

// Input is one buffer to extract from.
//
// Data is owned by the caller and is neither modified nor retained.
type Input struct {
	Data   []byte
	Format Format
}

// Result pairs the outcome of one extraction in a batch.
type Result struct {
	Metadata *Metadata
	Err      error
}
