// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package parser

import (
	"strconv"

	"go4.org/mem"
)

// Lit returns a parser that matches exactly the literal s.
func Lit(s string) Parser[string] {
	want := mem.S(s)
	return func(in Input) (string, Input, bool) {
		if !mem.HasPrefix(in.view(), want) {
			in.fail()
			return "", in, false
		}
		return s, in.advance(len(s)), true
	}
}

// Token returns a parser that skips leading whitespace and then matches the
// literal s.
func Token(s string) Parser[string] { return Right(Spaces(), Lit(s)) }

// Char returns a parser that matches the single byte c.
func Char(c byte) Parser[byte] { return Satisfy(func(b byte) bool { return b == c }) }

// Satisfy returns a parser that matches a single byte for which f is true.
func Satisfy(f func(byte) bool) Parser[byte] {
	return func(in Input) (byte, Input, bool) {
		b, ok := in.peek()
		if !ok || !f(b) {
			in.fail()
			return 0, in, false
		}
		return b, in.advance(1), true
	}
}

// TakeWhile returns a parser that matches the longest run of bytes for which
// f is true. The run may be empty, so TakeWhile never fails.
func TakeWhile(f func(byte) bool) Parser[string] {
	return func(in Input) (string, Input, bool) {
		v := in.view()
		n := 0
		for n < v.Len() && f(v.At(n)) {
			n++
		}
		rest := in.advance(n)
		return rest.since(in), rest, true
	}
}

// TakeWhile1 is as TakeWhile, but requires a run of at least one byte.
func TakeWhile1(f func(byte) bool) Parser[string] {
	tw := TakeWhile(f)
	return func(in Input) (string, Input, bool) {
		s, rest, _ := tw(in)
		if s == "" {
			in.fail()
			return "", in, false
		}
		return s, rest, true
	}
}

// Keyword returns a parser that matches a non-empty identifier-like word:
// letters, digits, underscores, dollar signs, colons, and non-ASCII bytes.
// Colons are included so that argument-label lists like "f(_:into:)" read as
// a single word.
func Keyword() Parser[string] { return TakeWhile1(IsKeyword) }

// Number returns a parser that matches a non-empty run of decimal digits.
func Number() Parser[int] {
	digits := TakeWhile1(IsDigit)
	return func(in Input) (int, Input, bool) {
		s, rest, ok := digits(in)
		if !ok {
			return 0, in, false
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			in.fail()
			return 0, in, false
		}
		return v, rest, true
	}
}

// Spaces returns a parser that skips zero or more whitespace bytes.
func Spaces() Parser[string] { return TakeWhile(IsSpace) }

// End returns a parser that matches only at the end of the input.
func End() Parser[struct{}] {
	return func(in Input) (struct{}, Input, bool) {
		if !in.AtEnd() {
			in.fail()
			return struct{}{}, in, false
		}
		return struct{}{}, in, true
	}
}

// IsSpace reports whether b is a whitespace byte.
func IsSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// IsDigit reports whether b is a decimal digit.
func IsDigit(b byte) bool { return '0' <= b && b <= '9' }

// IsKeyword reports whether b may occur in a word matched by Keyword.
func IsKeyword(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', IsDigit(b):
		return true
	case b == '_', b == '$', b == ':':
		return true
	}
	return b >= 0x80
}

// Not returns a byte predicate that is true for every byte not in set.
func Not(set string) func(byte) bool {
	return func(b byte) bool {
		for i := 0; i < len(set); i++ {
			if set[i] == b {
				return false
			}
		}
		return true
	}
}
