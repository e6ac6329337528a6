// Package metafile parses text metadata files made of Vorbis-comment style
// TAG=VALUE lines.
//
// A file is a sequence of newline separated entries:
//
//	TITLE=Hello
//	LYRICS=
//		first line
//		second line
//	ARTIST=World
//
// An entry with an empty value followed by tab-indented lines is a
// multi-line value; the indented lines are joined with '\n'. Blank lines
// between entries are ignored. The content must be valid UTF-8 without NUL
// bytes, optionally preceded by a UTF-8 byte-order mark.
package metafile

import (
	"bytes"
	"errors"

	"go.uber.org/zap"

	"github.com/simonhull/tagfile/internal/growbuf"
	"github.com/simonhull/tagfile/internal/types"
	"github.com/simonhull/tagfile/internal/utf8check"
)

// BOM is the UTF-8 byte-order mark.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Config carries per-parse settings.
type Config struct {
	// Path is used in error messages only
	Path string

	// Budget caps the memory claimed by the parse (nil = unlimited)
	Budget *growbuf.Budget

	// Logger receives debug output (nil = no-op)
	Logger *zap.Logger
}

type state int

const (
	stateTag state = iota
	stateValue
	stateMultilineValue
	stateMultilineIndent
)

func (s state) String() string {
	switch s {
	case stateTag:
		return "TAG"
	case stateValue:
		return "VALUE"
	case stateMultilineValue:
		return "MULTILINE_VALUE"
	case stateMultilineIndent:
		return "MULTILINE_INDENT"
	default:
		return "UNKNOWN"
	}
}

// IsTagCharacter reports whether c may appear in a tag name.
//
// This is the field name character set of the Vorbis comment
// specification: 0x20 through 0x7D, excluding '='.
// https://xiph.org/vorbis/doc/v-comment.html
func IsTagCharacter(c byte) bool {
	return c >= 0x20 && c <= 0x7D && c != '='
}

type parser struct {
	data   []byte
	path   string
	budget *growbuf.Budget

	state state
	pos   int // next byte to examine; may run one past len(data)
	mark  int // start of the text being accumulated

	tag   string
	value *growbuf.Bytes
	out   *growbuf.List[types.Element]

	blankLines int
}

// Parse parses data into a sentinel-terminated list.
//
// On failure no list is returned and all partial state is discarded. The
// error is always a *types.ParseError whose Kind identifies the problem and
// whose Line/Column locate it in data.
func Parse(data []byte, cfg Config) (types.List, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &parser{
		data:   data,
		path:   cfg.Path,
		budget: cfg.Budget,
		value:  growbuf.NewBytes(cfg.Budget),
		out:    growbuf.NewList[types.Element](cfg.Budget),
	}

	list, err := p.run()
	if err != nil {
		p.discard()

		var pe *types.ParseError
		if errors.As(err, &pe) {
			pe.Locate(data)
			logger.Debug("metadata parse failed",
				zap.String("path", cfg.Path),
				zap.String("state", p.state.String()),
				zap.Int64("offset", pe.Offset),
				zap.Error(err))
		}
		return nil, err
	}

	logger.Debug("parsed metadata",
		zap.String("path", cfg.Path),
		zap.Int("size", len(data)),
		zap.Int("elements", list.Len()),
		zap.Int("blank_lines", p.blankLines))

	return list, nil
}

func (p *parser) run() (types.List, error) {
	if bytes.HasPrefix(p.data, BOM) {
		p.pos = len(BOM)
	}

	body := p.data[p.pos:]
	if res := utf8check.Validate(body); !res.Valid() {
		return nil, p.errorAt(types.ErrInvalidUTF8, p.pos+res.Offset, res.String(), nil)
	}
	// A NUL anywhere wins over any syntax error that precedes it.
	if i := bytes.IndexByte(body, 0); i >= 0 {
		return nil, p.errorAt(types.ErrNullByte, p.pos+i, "", nil)
	}

	p.mark = p.pos
	for p.pos < len(p.data) || p.state != stateTag {
		consumed, err := p.step(p.current())
		if err != nil {
			return nil, err
		}
		if consumed {
			p.pos++
		}
	}

	if err := p.push(types.Element{}); err != nil {
		return nil, err
	}
	return types.List(p.out.Items()), nil
}

// current returns the byte at pos, or a synthetic newline past the end so
// the last line is terminated even when the file is not.
func (p *parser) current() byte {
	if p.pos < len(p.data) {
		return p.data[p.pos]
	}
	return '\n'
}

// step feeds one byte to the state machine. It reports whether the byte was
// consumed; an unconsumed byte is fed again under the new state.
func (p *parser) step(c byte) (bool, error) {
	if c == 0 {
		return false, p.errorAt(types.ErrNullByte, p.pos, "", nil)
	}

	switch p.state {
	case stateTag:
		return true, p.stepTag(c)
	case stateValue:
		return true, p.stepValue(c)
	case stateMultilineValue:
		return true, p.stepMultilineValue(c)
	case stateMultilineIndent:
		return p.stepMultilineIndent(c)
	default:
		panic("metafile: unknown parser state " + p.state.String())
	}
}

func (p *parser) stepTag(c byte) error {
	// Ignore empty lines while waiting for a tag.
	if c == '\n' && p.pos == p.mark {
		p.mark = p.pos + 1
		p.blankLines++
		return nil
	}

	if c != '=' {
		if !IsTagCharacter(c) {
			return p.errorAt(types.ErrIllegalTagCharacter, p.pos, "", nil)
		}
		return nil
	}

	if p.pos == p.mark {
		return p.errorAt(types.ErrEmptyTag, p.pos, "", nil)
	}

	tag, err := p.text(p.data[p.mark:p.pos])
	if err != nil {
		return err
	}
	p.tag = tag
	p.state = stateValue
	p.mark = p.pos + 1
	return nil
}

func (p *parser) stepValue(c byte) error {
	if c != '\n' {
		return nil
	}

	// TAG= followed directly by a newline opens a multi-line value.
	if p.pos == p.mark {
		p.value.Reset()
		p.state = stateMultilineIndent
		return nil
	}

	value, err := p.text(p.data[p.mark:p.pos])
	if err != nil {
		return err
	}
	if err := p.emit(value); err != nil {
		return err
	}
	p.mark = p.pos + 1
	return nil
}

func (p *parser) stepMultilineValue(c byte) error {
	if c != '\n' {
		return nil
	}

	if err := p.value.Append(p.data[p.mark:p.pos]); err != nil {
		return p.errorAt(types.ErrOutOfMemory, p.pos, "", err)
	}
	p.state = stateMultilineIndent
	return nil
}

func (p *parser) stepMultilineIndent(c byte) (bool, error) {
	if c == '\t' {
		if p.value.Len() > 0 {
			if err := p.value.AppendByte('\n'); err != nil {
				return false, p.errorAt(types.ErrOutOfMemory, p.pos, "", err)
			}
		}
		p.state = stateMultilineValue
		p.mark = p.pos + 1
		return true, nil
	}

	// Any other byte ends the block and starts the next line, which is
	// reprocessed as a tag.
	if err := p.budget.Reserve(p.value.Len()); err != nil {
		return false, p.errorAt(types.ErrOutOfMemory, p.pos, "", err)
	}
	value := p.value.String()
	p.value.Reset()
	if err := p.emit(value); err != nil {
		return false, err
	}
	p.mark = p.pos
	return false, nil
}

// emit appends the pending tag with value to the output and returns to TAG.
func (p *parser) emit(value string) error {
	if err := p.push(types.Element{Tag: p.tag, Value: value}); err != nil {
		return err
	}
	p.tag = ""
	p.state = stateTag
	return nil
}

func (p *parser) push(e types.Element) error {
	if err := p.out.Push(e); err != nil {
		return p.errorAt(types.ErrOutOfMemory, p.pos, "", err)
	}
	return nil
}

// text copies b into a new string charged to the budget.
func (p *parser) text(b []byte) (string, error) {
	if err := p.budget.Reserve(len(b)); err != nil {
		return "", p.errorAt(types.ErrOutOfMemory, p.pos, "", err)
	}
	return string(b), nil
}

// discard drops everything accumulated so far.
func (p *parser) discard() {
	p.tag = ""
	p.value.Reset()
	p.out.Reset()
}

func (p *parser) errorAt(kind error, off int, detail string, cause error) error {
	return &types.ParseError{
		Kind:   kind,
		Err:    cause,
		Path:   p.path,
		Detail: detail,
		Offset: int64(min(off, len(p.data))),
	}
}
