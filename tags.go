package tagfile

import (
	"github.com/simonhull/tagfile/internal/metafile"
	"github.com/simonhull/tagfile/internal/types"
)

// Element is an alias to types.Element.
type Element = types.Element

// List is an alias to types.List.
type List = types.List

// Tags is an alias to types.Tags.
type Tags = types.Tags

// IsTagCharacter reports whether c is allowed in a tag name
// (0x20 through 0x7D, excluding '=').
func IsTagCharacter(c byte) bool {
	return metafile.IsTagCharacter(c)
}
