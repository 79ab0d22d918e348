// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	0:    '0',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string to escape characters for inclusion in a
// double-quoted dump literal. The result does not include the enclosing
// quotation marks.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n++
		}
		switch {
		case r < ' ':
			if b := controlEsc[r]; b != 0 {
				putByte('\\', b)
			} else {
				putByte('\\', 'u', '{', hexDigit[int(r>>4)], hexDigit[int(r&15)], '}')
			}
		case r == '\\' || r == '"':
			putByte('\\', byte(r))
		case r < utf8.RuneSelf:
			putByte(byte(r))
		case r == utf8.RuneError && n == 1:
			buf = append(buf, `\u{fffd}`...)
		default:
			buf = utf8.AppendRune(buf, r)
		}
		src = src.SliceFrom(n)
	}
	return buf
}
