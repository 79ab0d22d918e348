// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of double-quoted literals in
// compiler dumps, which use Swift string escapes.
package escape

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing an escaped string literal. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. Invalid
// escapes and out-of-range scalars are replaced by the Unicode replacement
// rune. Unquote reports an error for an incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return mem.Append(dec, src), nil
	}

	putByte := func(bs ...byte) { dec = append(dec, bs...) }
	putRune := func(r rune) { dec = utf8.AppendRune(dec, r) }
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))

		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}

		src = src.SliceFrom(n)
		switch r {
		case '"', '\'', '\\':
			putByte(byte(r))
		case '0':
			putByte(0)
		case 'n':
			putByte('\n')
		case 'r':
			putByte('\r')
		case 't':
			putByte('\t')
		case 'u':
			// Swift scalar escapes have the form \u{h...}, with 1 to 8 digits.
			if src.Len() == 0 || src.At(0) != '{' {
				return nil, errors.New("incomplete Unicode escape")
			}
			end := mem.IndexByte(src, '}')
			if end < 0 {
				return nil, errors.New("incomplete Unicode escape")
			}
			v, err := parseHex(src.Slice(1, end))
			if err != nil || !utf8.ValidRune(rune(v)) {
				putRune(utf8.RuneError)
			} else {
				putRune(rune(v))
			}
			src = src.SliceFrom(end + 1)
		default:
			putRune(utf8.RuneError)
		}

		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return dec, nil
}

func parseHex(data mem.RO) (int64, error) {
	if data.Len() == 0 || data.Len() > 8 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(data.StringCopy(), 16, 32)
}
