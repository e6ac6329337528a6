package types

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every *ParseError carries exactly one of these as its Kind,
// so callers can test with errors.Is.
var (
	// ErrIO reports a failure opening, sizing or reading the source file.
	ErrIO = errors.New("i/o failure")

	// ErrOutOfMemory reports that the parse exceeded its memory limit.
	ErrOutOfMemory = errors.New("insufficient memory")

	// ErrInvalidUTF8 reports malformed UTF-8 in the file content.
	ErrInvalidUTF8 = errors.New("invalid utf-8")

	// ErrNullByte reports a NUL byte anywhere in the file.
	ErrNullByte = errors.New("metadata file mustn't contain null bytes")

	// ErrIllegalTagCharacter reports a byte outside the tag character set.
	ErrIllegalTagCharacter = errors.New("illegal character used in tag")

	// ErrEmptyTag reports an '=' with no tag name before it.
	ErrEmptyTag = errors.New("empty tags are not permitted")
)

// ParseError describes why a metadata file could not be parsed.
//
// Offset, Line and Column locate the problem in the raw file content
// (including a byte-order mark, if any). They are zero when the error is not
// tied to a position, such as an I/O failure.
type ParseError struct {
	// Kind is one of the Err* sentinels
	Kind error

	// Underlying cause (os errors, budget errors), may be nil
	Err error

	Path   string
	Detail string

	Offset int64
	Line   int // 1-based, 0 if unknown
	Column int // 1-based byte column, 0 if unknown
}

func (e *ParseError) Error() string {
	var b strings.Builder

	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d, col %d: ", e.Line, e.Column)
	}

	if e.Kind != nil {
		b.WriteString(e.Kind.Error())
	} else {
		b.WriteString("parse failed")
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *ParseError) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Locate fills in Line and Column for Offset within data.
func (e *ParseError) Locate(data []byte) {
	if e.Offset < 0 || e.Offset > int64(len(data)) {
		return
	}
	line, col := 1, 1
	for _, c := range data[:e.Offset] {
		if c == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	e.Line = line
	e.Column = col
}
