// Package utf8check validates UTF-8 text and describes the first defect found.
//
// The rules follow the canonical UTF-8 encoding table: overlong encodings,
// surrogates and code points above U+10FFFF are rejected, as are the legacy
// 5- and 6-byte forms.
package utf8check

import (
	"fmt"
	"strings"
)

// Defect classifies why a byte sequence is not valid UTF-8.
type Defect int

const (
	// DefectNone means the input is valid.
	DefectNone Defect = iota

	// DefectLengthMarker means the lead byte does not announce a sequence
	// length (a bare continuation byte, 0xFE or 0xFF).
	DefectLengthMarker

	// DefectTruncated means the input ends before the announced sequence does.
	DefectTruncated

	// DefectInvalidSequence means the sequence is malformed, overlong, or
	// encodes a code point outside the Unicode range.
	DefectInvalidSequence
)

// String returns a short description of the defect.
func (d Defect) String() string {
	switch d {
	case DefectNone:
		return "valid"
	case DefectLengthMarker:
		return "length marker wrong"
	case DefectTruncated:
		return "too few bytes"
	case DefectInvalidSequence:
		return "invalid sequence"
	default:
		return fmt.Sprintf("Defect(%d)", int(d))
	}
}

// Result is the outcome of a single Validate call.
//
// Result owns a copy of the offending bytes, so it stays valid after the
// input buffer is reused.
type Result struct {
	// Sequence holds the offending bytes (nil when valid)
	Sequence []byte

	// Offset of the first byte of the offending sequence
	Offset int

	Defect Defect
}

// Valid reports whether the validated input was well-formed.
func (r Result) Valid() bool {
	return r.Defect == DefectNone
}

// Printable returns the offending sequence with every byte outside
// 0x20..0x7D replaced by '?'.
func (r Result) Printable() string {
	b := make([]byte, len(r.Sequence))
	for i, c := range r.Sequence {
		if c < 0x20 || c > 0x7D {
			b[i] = '?'
		} else {
			b[i] = c
		}
	}
	return string(b)
}

// Hex returns the offending sequence as space separated upper-case hex.
func (r Result) Hex() string {
	var sb strings.Builder
	for i, c := range r.Sequence {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

// String describes the result in a human-readable form, e.g.
//
//	invalid sequence "??": C0 80
func (r Result) String() string {
	if r.Valid() {
		return r.Defect.String()
	}
	return fmt.Sprintf("%s %q: %s", r.Defect, r.Printable(), r.Hex())
}

// Validate reports whether b is valid UTF-8.
//
// Scanning stops at the first defect; the returned Result describes it.
func Validate(b []byte) Result {
	for j := 0; j < len(b); {
		n, ok := sequenceLength(b[j])
		if !ok {
			return failure(b, j, 1, DefectLengthMarker)
		}
		if n > len(b)-j {
			return failure(b, j, len(b)-j, DefectTruncated)
		}
		if !wellFormed(b[j : j+n]) {
			return failure(b, j, n, DefectInvalidSequence)
		}
		j += n
	}
	return Result{}
}

// sequenceLength derives the announced sequence length from a lead byte.
func sequenceLength(c byte) (int, bool) {
	switch {
	case c&0x80 == 0:
		return 1, true
	case c&0x40 == 0:
		// 10xxxxxx: continuation byte in lead position
		return 0, false
	case c&0x20 == 0:
		return 2, true
	case c&0x10 == 0:
		return 3, true
	case c&0x08 == 0:
		return 4, true
	case c&0x04 == 0:
		return 5, true
	case c&0x02 == 0:
		return 6, true
	default:
		return 0, false
	}
}

func isCont(c byte) bool {
	return c&0xC0 == 0x80
}

// wellFormed checks one complete sequence whose length matches its lead byte.
func wellFormed(s []byte) bool {
	switch len(s) {
	case 1:
		return true
	case 2:
		// C0 and C1 can only produce overlong encodings
		return isCont(s[1]) && s[0]&0xFE != 0xC0
	case 3:
		if !isCont(s[2]) {
			return false
		}
		switch {
		case s[0] == 0xE0:
			return s[1] >= 0xA0 && s[1] <= 0xBF
		case s[0] == 0xED:
			// excludes UTF-16 surrogates
			return s[1] >= 0x80 && s[1] <= 0x9F
		default:
			return isCont(s[1])
		}
	case 4:
		if !isCont(s[2]) || !isCont(s[3]) {
			return false
		}
		switch {
		case s[0] == 0xF0:
			return s[1] >= 0x90 && s[1] <= 0xBF
		case s[0] >= 0xF1 && s[0] <= 0xF3:
			return isCont(s[1])
		case s[0] == 0xF4:
			return s[1] >= 0x80 && s[1] <= 0x8F
		default:
			// F5..F7 are beyond U+10FFFF
			return false
		}
	default:
		// 5- and 6-byte forms are not allowed in UTF-8 anymore
		return false
	}
}

func failure(b []byte, off, n int, d Defect) Result {
	seq := make([]byte, n)
	copy(seq, b[off:off+n])
	return Result{
		Sequence: seq,
		Offset:   off,
		Defect:   d,
	}
}
