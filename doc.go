// Package tagfile parses human-editable metadata files into ordered
// tag/value pairs.
//
// The file format follows the Vorbis comment field rules and is what audio
// tag editors use to let people edit embedded metadata in a text editor:
//
//	TITLE=Jóga
//	ARTIST=Björk
//	LYRICS=
//		All these accidents
//		that happen
//	GENRE=Electronic
//
// # Format
//
//   - One TAG=VALUE entry per line, separated by '\n'.
//   - Tag names use bytes 0x20 through 0x7D except '='.
//   - TAG= followed by lines starting with a tab is a multi-line value; the
//     lines (without the tab) are joined with '\n'.
//   - Blank lines between entries are ignored.
//   - The content must be valid UTF-8 and must not contain NUL bytes. A
//     leading UTF-8 byte-order mark is skipped.
//
// # Quick Start
//
//	list, err := tagfile.ParseFile("tags.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, e := range list.All() {
//		fmt.Printf("%s = %q\n", e.Tag, e.Value)
//	}
//
// A List always ends with a sentinel Element whose Tag is empty. Use
// List.Entries or List.All to skip it, or List.Tags for case-insensitive
// lookup:
//
//	tags := list.Tags()
//	fmt.Println(tags.GetFirst("title"))
//
// # Error Handling
//
// Parsing is all-or-nothing: the first problem aborts the parse and no
// partial list is returned. Errors are *ParseError values carrying the file
// path, line and column; test the kind with errors.Is:
//
//	_, err := tagfile.ParseFile("tags.txt")
//	switch {
//	case errors.Is(err, tagfile.ErrInvalidUTF8):
//	case errors.Is(err, tagfile.ErrIllegalTagCharacter):
//	case errors.Is(err, fs.ErrNotExist):
//	}
//
// # Logging
//
// tagfile logs through go.uber.org/zap at debug level. It is silent by
// default; install a logger with SetLogger or per call with WithLogger.
//
// # Batch Processing
//
// ParseMany parses files concurrently and fails fast. CheckMany parses every
// file and reports all failures at once, which suits linting a directory of
// metadata files.
package tagfile
