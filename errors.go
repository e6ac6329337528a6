package tagfile

import (
	"github.com/simonhull/tagfile/internal/types"
)

// ParseError is an alias to types.ParseError.
// Re-exporting from internal/types to maintain public API.
type ParseError = types.ParseError

// Error kinds, re-exported from internal/types. Test with errors.Is:
//
//	if errors.Is(err, tagfile.ErrInvalidUTF8) { ... }
var (
	ErrIO                  = types.ErrIO
	ErrOutOfMemory         = types.ErrOutOfMemory
	ErrInvalidUTF8         = types.ErrInvalidUTF8
	ErrNullByte            = types.ErrNullByte
	ErrIllegalTagCharacter = types.ErrIllegalTagCharacter
	ErrEmptyTag            = types.ErrEmptyTag
)
