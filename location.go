// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package typeinject

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// Len reports the length of s in bytes.
func (s Span) Len() int { return s.End - s.Pos }

// A LineCol describes the line number and column offset of a location in
// source text, as the compiler reports it.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 1-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Point is a location in a named source file, as recorded in a compiler
// dump (file:line:column).
//
// Points are ordered by line and then by column. The file name does not
// participate in the ordering, but it does participate in equality.
type Point struct {
	File   string
	Line   int
	Column int
}

// At constructs a Point in the named file at the given line and column.
func At(file string, lc LineCol) Point {
	return Point{File: file, Line: lc.Line, Column: lc.Column}
}

// LineCol returns the line and column of p without its file name.
func (p Point) LineCol() LineCol { return LineCol{Line: p.Line, Column: p.Column} }

// Compare returns -1, 0, or +1 according to whether p is before, at, or after
// q in line-then-column order. File names are ignored.
func (p Point) Compare(q Point) int {
	switch {
	case p.Line < q.Line:
		return -1
	case p.Line > q.Line:
		return 1
	case p.Column < q.Column:
		return -1
	case p.Column > q.Column:
		return 1
	}
	return 0
}

// After reports whether p is strictly after q.
func (p Point) After(q Point) bool { return p.Compare(q) > 0 }

func (p Point) String() string { return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column) }

// A Range is a span of source text between two points.
//
// The compiler records the end of a range as the start of its last token,
// so both ends are treated as inclusive.
type Range struct {
	Start Point
	End   Point
}

// Contains reports whether p lies within r, inclusive at both ends.
func (r Range) Contains(p Point) bool {
	return r.Start.Compare(p) <= 0 && p.Compare(r.End) <= 0
}

func (r Range) String() string { return fmt.Sprintf("[%s - %s]", r.Start, r.End) }
