// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package parser implements generic parser combinators over a text buffer.
//
// A Parser is a function from a position in an input buffer to either a
// parsed value and the remaining input, or failure. Parsers are composed
// with sequencing (Then, Left, Right, Concat), ordered alternation (Or,
// Choice), repetition (Many, Many1), and lazy recursion (Lazy), over a small
// set of primitives that match literals and runs of bytes.
//
// Alternation is strictly first-match: Or(a, b) tries a, and tries b only if
// a fails. Ambiguity in a grammar is therefore resolved by the order in which
// its alternatives are listed, and an alternative that shadows a later one
// makes the later one unreachable.
//
// Failure carries no recovery information. When a parse fails, Run reports
// a *SyntaxError at the farthest position any primitive reached.
package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/typeinject"

	"go4.org/mem"
)

// A Parser consumes a prefix of its input and produces a value of type T.
// If the parser does not match, it reports false and the returned input and
// value are meaningless.
type Parser[T any] func(Input) (T, Input, bool)

// Input is an immutable position within a text buffer.
type Input struct {
	st  *state
	off int
}

type state struct {
	src  string
	text mem.RO
	far  int // farthest offset at which a primitive failed
}

// NewInput constructs an Input positioned at the start of text.
func NewInput(text string) Input {
	return Input{st: &state{src: text, text: mem.S(text)}}
}

// Offset reports the byte offset of in from the start of its buffer.
func (in Input) Offset() int { return in.off }

// Rest returns the unconsumed text of in.
func (in Input) Rest() string { return in.st.src[in.off:] }

// AtEnd reports whether in has no more text.
func (in Input) AtEnd() bool { return in.off >= in.st.text.Len() }

// peek returns the next byte of input, if any.
func (in Input) peek() (byte, bool) {
	if in.AtEnd() {
		return 0, false
	}
	return in.st.text.At(in.off), true
}

// view returns the unconsumed text of in as a read-only view.
func (in Input) view() mem.RO { return in.st.text.SliceFrom(in.off) }

func (in Input) advance(n int) Input { return Input{st: in.st, off: in.off + n} }

// since returns the text consumed between start and in.
func (in Input) since(start Input) string { return in.st.src[start.off:in.off] }

// fail records a failed match at in.
func (in Input) fail() {
	if in.off > in.st.far {
		in.st.far = in.off
	}
}

// Run applies p to text. On success it returns the parsed value and the
// unconsumed remainder of text. On failure it reports a *SyntaxError.
func Run[T any](p Parser[T], text string) (T, string, error) {
	in := NewInput(text)
	v, rest, ok := p(in)
	if !ok {
		var zero T
		return zero, text, newSyntaxError(in.st, in.st.far)
	}
	return v, rest.Rest(), nil
}

// Complete applies p to text and requires it to consume all of text apart
// from trailing whitespace.
func Complete[T any](p Parser[T], text string) (T, error) {
	v, _, err := Run(Left(p, Left(Spaces(), End())), text)
	return v, err
}

// SyntaxError is the concrete type of errors reported by Run. A failure at
// the end of the input wraps io.ErrUnexpectedEOF.
type SyntaxError struct {
	Offset   int               // byte offset of the failure, 0-based
	Location typeinject.LineCol // line and column of the failure, 1-based
	Message  string

	err error
}

func newSyntaxError(st *state, off int) *SyntaxError {
	line := 1 + strings.Count(st.src[:off], "\n")
	col := off + 1
	if i := strings.LastIndexByte(st.src[:off], '\n'); i >= 0 {
		col = off - i
	}
	serr := &SyntaxError{
		Offset:   off,
		Location: typeinject.LineCol{Line: line, Column: col},
		Message:  "unexpected end of input",
		err:      io.ErrUnexpectedEOF,
	}
	if off < len(st.src) {
		serr.Message = fmt.Sprintf("unexpected %q", st.src[off])
		serr.err = nil
	}
	return serr
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
