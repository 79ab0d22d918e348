// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package swift

import (
	"fmt"

	"github.com/creachadair/typeinject"
)

type tokenKind byte

const (
	tokIdent  tokenKind = iota // identifiers and keywords, including `quoted`
	tokNumber                  // numeric literals
	tokString                  // string literals of all kinds
	tokPunct                   // single-byte punctuation, or "->"
)

type token struct {
	kind tokenKind
	text string
	span typeinject.Span
	at   typeinject.LineCol
	nl   bool // a line break precedes the token
}

type lexer struct {
	src  []byte
	pos  int
	line int
	col  int
	nl   bool
	toks []token
}

// lexError reports a lexical error at a position in the source.
type lexError struct {
	At      typeinject.LineCol
	Message string
}

func (e *lexError) Error() string { return fmt.Sprintf("%v: %s", e.At, e.Message) }

// lex splits src into tokens. Whitespace and comments are discarded.
func lex(src []byte) ([]token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	for {
		if err := lx.skipSpace(); err != nil {
			return nil, err
		}
		if lx.eof() {
			return lx.toks, nil
		}
		start, at := lx.pos, lx.here()
		kind := tokPunct
		switch c := lx.peek(0); {
		case c == '`':
			lx.adv()
			for !lx.eof() && lx.peek(0) != '`' && lx.peek(0) != '\n' {
				lx.adv()
			}
			if lx.peek(0) != '`' {
				return nil, &lexError{At: at, Message: "unterminated quoted identifier"}
			}
			lx.adv()
			kind = tokIdent
		case isIdentStart(c):
			lx.advWhile(isIdentByte)
			kind = tokIdent
		case isDigit(c):
			lx.lexNumber()
			kind = tokNumber
		case c == '"' || (c == '#' && lx.rawStringAhead()):
			if err := lx.lexString(); err != nil {
				return nil, err
			}
			kind = tokString
		case c == '-' && lx.peek(1) == '>':
			lx.adv()
			lx.adv()
		default:
			lx.adv()
		}
		lx.toks = append(lx.toks, token{
			kind: kind,
			text: string(src[start:lx.pos]),
			span: typeinject.Span{Pos: start, End: lx.pos},
			at:   at,
			nl:   lx.nl,
		})
		lx.nl = false
	}
}

func (lx *lexer) eof() bool { return lx.pos >= len(lx.src) }

func (lx *lexer) here() typeinject.LineCol { return typeinject.LineCol{Line: lx.line, Column: lx.col} }

// peek returns the byte at offset k from the current position, or 0.
func (lx *lexer) peek(k int) byte {
	if lx.pos+k < len(lx.src) {
		return lx.src[lx.pos+k]
	}
	return 0
}

func (lx *lexer) adv() {
	if lx.src[lx.pos] == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	lx.pos++
}

func (lx *lexer) advWhile(f func(byte) bool) {
	for !lx.eof() && f(lx.src[lx.pos]) {
		lx.adv()
	}
}

func (lx *lexer) skipSpace() error {
	for !lx.eof() {
		switch c := lx.peek(0); {
		case c == '\n':
			lx.nl = true
			lx.adv()
		case c == ' ' || c == '\t' || c == '\r':
			lx.adv()
		case c == '/' && lx.peek(1) == '/':
			lx.advWhile(func(b byte) bool { return b != '\n' })
		case c == '/' && lx.peek(1) == '*':
			if err := lx.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipBlockComment skips a comment /* ... */. Block comments nest.
func (lx *lexer) skipBlockComment() error {
	at := lx.here()
	depth := 0
	for !lx.eof() {
		switch {
		case lx.peek(0) == '/' && lx.peek(1) == '*':
			depth++
			lx.adv()
		case lx.peek(0) == '*' && lx.peek(1) == '/':
			depth--
			lx.adv()
		}
		if lx.peek(0) == '\n' {
			lx.nl = true
		}
		lx.adv()
		if depth == 0 {
			return nil
		}
	}
	return &lexError{At: at, Message: "unterminated comment"}
}

func (lx *lexer) lexNumber() {
	for !lx.eof() {
		c := lx.peek(0)
		if isIdentByte(c) || (c == '.' && isDigit(lx.peek(1))) {
			lx.adv()
			continue
		}
		break
	}
}

// rawStringAhead reports whether the input at the current position begins
// a raw string literal, #"..."#.
func (lx *lexer) rawStringAhead() bool {
	k := 0
	for lx.peek(k) == '#' {
		k++
	}
	return k > 0 && lx.peek(k) == '"'
}

// lexString consumes a string literal. The literal may be raw (#"..."#) and
// may be multi-line ("""..."""). Interpolated segments \(...) may contain
// further string literals.
func (lx *lexer) lexString() error {
	at := lx.here()
	hashes := 0
	for lx.peek(0) == '#' {
		hashes++
		lx.adv()
	}
	multi := lx.peek(0) == '"' && lx.peek(1) == '"' && lx.peek(2) == '"'
	quotes := 1
	if multi {
		quotes = 3
	}
	for range quotes {
		lx.adv()
	}

	closes := func() bool {
		for i := range quotes {
			if lx.peek(i) != '"' {
				return false
			}
		}
		for i := range hashes {
			if lx.peek(quotes+i) != '#' {
				return false
			}
		}
		return true
	}
	for !lx.eof() {
		c := lx.peek(0)
		switch {
		case c == '\n' && !multi:
			return &lexError{At: at, Message: "unterminated string literal"}
		case closes():
			for range quotes + hashes {
				lx.adv()
			}
			return nil
		case c == '\\' && lx.escapeAhead(hashes):
			for range hashes + 1 {
				lx.adv()
			}
			if lx.peek(0) == '(' {
				if err := lx.skipInterpolation(); err != nil {
					return err
				}
			} else if !lx.eof() {
				lx.adv()
			}
		default:
			lx.adv()
		}
	}
	return &lexError{At: at, Message: "unterminated string literal"}
}

// escapeAhead reports whether the input at the current position begins an
// escape for a string delimited with the given number of hashes.
func (lx *lexer) escapeAhead(hashes int) bool {
	for i := range hashes {
		if lx.peek(1+i) != '#' {
			return false
		}
	}
	return true
}

// skipInterpolation consumes a parenthesized interpolation, beginning at
// its open parenthesis.
func (lx *lexer) skipInterpolation() error {
	at := lx.here()
	depth := 0
	for !lx.eof() {
		switch c := lx.peek(0); {
		case c == '"' || (c == '#' && lx.rawStringAhead()):
			if err := lx.lexString(); err != nil {
				return err
			}
			continue
		case c == '/' && lx.peek(1) == '*':
			if err := lx.skipBlockComment(); err != nil {
				return err
			}
			continue
		case c == '(':
			depth++
		case c == ')':
			depth--
		}
		lx.adv()
		if depth == 0 {
			return nil
		}
	}
	return &lexError{At: at, Message: "unterminated interpolation"}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b >= 0x80
}

func isIdentByte(b byte) bool { return isIdentStart(b) || isDigit(b) }
