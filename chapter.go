package tagfile

import "github.com/simonhull/tagfile/internal/vorbis"

// Chapter is an alias to vorbis.Chapter.
type Chapter = vorbis.Chapter

// Chapters extracts the CHAPTERxxx / CHAPTERxxxNAME chapter list from a
// parsed file, sorted by chapter number. It returns nil when the file has no
// usable chapter tags.
func Chapters(list List) []Chapter {
	return vorbis.ParseChapters(list.Entries())
}
