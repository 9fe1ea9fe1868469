package peg

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrNestingTooDeep is wrapped by a ParseError if rule applications nest
// deeper than the configured maximum depth.
var ErrNestingTooDeep = errors.New("nesting too deep")

// ParseError is returned if an input text does not match a grammar.
//
// Pos is the byte offset of the farthest position the matcher reached
// before failing. Expected lists the terminals which would have allowed the
// match to continue at Pos, and Rule names the rule in which the failure
// occurred. Err is set for failures other than a mismatch, e.g.
// ErrNestingTooDeep, or for errors raised by clients folding a concrete tree.
type ParseError struct {
	Text     string
	Pos      int
	Expected []string
	Rule     string
	Err      error
}

// NewParseError creates a ParseError for an error found at byte offset pos of
// text. It is intended for clients which detect semantic errors while folding
// a concrete tree.
func NewParseError(text string, pos int, err error) *ParseError {
	return &ParseError{Text: text, Pos: pos, Err: err}
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at offset %d", e.Pos)
	if e.Rule != "" {
		fmt.Fprintf(&b, " in %s", e.Rule)
	}
	switch {
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	case len(e.Expected) == 1:
		fmt.Fprintf(&b, ": expected %s", e.Expected[0])
	case len(e.Expected) > 1:
		fmt.Fprintf(&b, ": expected one of %s", strings.Join(e.Expected, ", "))
	default:
		b.WriteString(": no match")
	}
	fmt.Fprintf(&b, " near %q", e.excerpt())
	return b.String()
}

// Unwrap returns the cause of the error, if any.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Column returns the 0-based position of the error in runes.
func (e *ParseError) Column() int {
	pos := e.Pos
	if pos > len(e.Text) {
		pos = len(e.Text)
	}
	return utf8.RuneCountInString(e.Text[:pos])
}

const excerptLen = 16

func (e *ParseError) excerpt() string {
	if e.Pos >= len(e.Text) {
		return "<end of input>"
	}
	rest := e.Text[e.Pos:]
	if len(rest) > excerptLen {
		cut := excerptLen
		for cut > 0 && !utf8.RuneStart(rest[cut]) {
			cut--
		}
		rest = rest[:cut] + "…"
	}
	return rest
}
