// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package syntax

import (
	"fmt"
	"slices"

	"github.com/creachadair/typeinject"
)

// An Edit replaces the text of Span with Text. An edit with an empty span is
// an insertion.
type Edit struct {
	Span typeinject.Span
	Text string
}

func (e Edit) String() string { return fmt.Sprintf("[%d:%d]%q", e.Span.Pos, e.Span.End, e.Text) }

// A Buffer is a queue of edits to apply to a given byte slice.
//
// Edits may be queued in any order. Insertions at the same offset are
// applied in the order queued. Edits whose spans overlap are invalid, and
// cause Bytes to panic.
type Buffer struct {
	old []byte
	q   []Edit
}

// NewBuffer returns a new buffer to accumulate edits for data. The buffer
// does not modify data.
func NewBuffer(data []byte) *Buffer { return &Buffer{old: data} }

// Insert queues an insertion of text at offset pos.
func (b *Buffer) Insert(pos int, text string) { b.Replace(pos, pos, text) }

// Delete queues a deletion of the text from start to end.
func (b *Buffer) Delete(start, end int) { b.Replace(start, end, "") }

// Replace queues a replacement of the text from start to end with text.
// It panics if the span is not within the buffer.
func (b *Buffer) Replace(start, end int, text string) {
	if start < 0 || end < start || end > len(b.old) {
		panic(fmt.Sprintf("invalid edit span [%d:%d] in buffer of length %d", start, end, len(b.old)))
	}
	b.q = append(b.q, Edit{Span: typeinject.Span{Pos: start, End: end}, Text: text})
}

// Apply queues each of the given edits.
func (b *Buffer) Apply(edits ...Edit) {
	for _, e := range edits {
		b.Replace(e.Span.Pos, e.Span.End, e.Text)
	}
}

// Edits returns the queued edits ordered by position. It panics if any of
// the edits overlap.
func (b *Buffer) Edits() []Edit {
	out := slices.Clone(b.q)
	slices.SortStableFunc(out, func(a, b Edit) int {
		if a.Span.Pos != b.Span.Pos {
			return a.Span.Pos - b.Span.Pos
		}
		return a.Span.End - b.Span.End
	})
	offset := 0
	for i, e := range out {
		if e.Span.Pos < offset {
			panic(fmt.Sprintf("overlapping edits: %v and %v", out[i-1], e))
		}
		offset = e.Span.End
	}
	return out
}

// Bytes returns a new byte slice containing the original data with the
// queued edits applied. Text outside the edited spans is unchanged.
func (b *Buffer) Bytes() []byte {
	var out []byte
	offset := 0
	for _, e := range b.Edits() {
		out = append(out, b.old[offset:e.Span.Pos]...)
		out = append(out, e.Text...)
		offset = e.Span.End
	}
	return append(out, b.old[offset:]...)
}

// String returns a string containing the original data with the queued
// edits applied.
func (b *Buffer) String() string { return string(b.Bytes()) }
