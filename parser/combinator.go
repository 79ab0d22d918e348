// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package parser

import "sync"

// Pure returns a parser that succeeds with v without consuming input.
func Pure[T any](v T) Parser[T] {
	return func(in Input) (T, Input, bool) { return v, in, true }
}

// Map returns a parser that applies f to the result of p.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return func(in Input) (U, Input, bool) {
		v, rest, ok := p(in)
		if !ok {
			var zero U
			return zero, in, false
		}
		return f(v), rest, true
	}
}

// Then returns a parser that matches a followed by b, and combines their
// results with f.
func Then[A, B, C any](a Parser[A], b Parser[B], f func(A, B) C) Parser[C] {
	return func(in Input) (C, Input, bool) {
		var zero C
		av, mid, ok := a(in)
		if !ok {
			return zero, in, false
		}
		bv, rest, ok := b(mid)
		if !ok {
			return zero, in, false
		}
		return f(av, bv), rest, true
	}
}

// Left returns a parser that matches a followed by b, keeping the result of a.
func Left[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Then(a, b, func(v A, _ B) A { return v })
}

// Right returns a parser that matches a followed by b, keeping the result of b.
func Right[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Then(a, b, func(_ A, v B) B { return v })
}

// Or returns a parser that tries a, and if a fails, tries b from the same
// position. The alternatives are never both attempted on success: the first
// match wins even if the second would consume more input.
func Or[T any](a, b Parser[T]) Parser[T] {
	return func(in Input) (T, Input, bool) {
		if v, rest, ok := a(in); ok {
			return v, rest, true
		}
		return b(in)
	}
}

// Choice returns a parser that tries each of ps in order and returns the
// result of the first that succeeds. An empty Choice always fails.
func Choice[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) (T, Input, bool) {
		for _, p := range ps {
			if v, rest, ok := p(in); ok {
				return v, rest, true
			}
		}
		var zero T
		return zero, in, false
	}
}

// Many returns a parser that matches p zero or more times, greedily.
// Repetition stops if p succeeds without consuming input.
func Many[T any](p Parser[T]) Parser[[]T] {
	return func(in Input) ([]T, Input, bool) {
		var out []T
		for {
			v, rest, ok := p(in)
			if !ok || rest.off == in.off {
				return out, in, true
			}
			out = append(out, v)
			in = rest
		}
	}
}

// Many1 returns a parser that matches p one or more times, greedily.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Then(p, Many(p), func(first T, more []T) []T {
		return append([]T{first}, more...)
	})
}

// SepBy returns a parser that matches zero or more occurrences of p
// separated by sep, discarding the separators.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Or(SepBy1(p, sep), Pure[[]T](nil))
}

// SepBy1 is as SepBy, but requires at least one occurrence of p.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Then(p, Many(Right(sep, p)), func(first T, more []T) []T {
		return append([]T{first}, more...)
	})
}

// Maybe returns a parser that matches p if possible. The result is nil if p
// did not match; Maybe itself never fails.
func Maybe[T any](p Parser[T]) Parser[*T] {
	return Or(Map(p, func(v T) *T { return &v }), Pure[*T](nil))
}

// Default returns a parser that matches p if possible, or yields v without
// consuming input.
func Default[T any](p Parser[T], v T) Parser[T] { return Or(p, Pure(v)) }

// NotFollowedBy returns a parser that matches p, but fails if q would match
// immediately after it. The input matched by q is not consumed.
func NotFollowedBy[T, U any](p Parser[T], q Parser[U]) Parser[T] {
	return func(in Input) (T, Input, bool) {
		v, rest, ok := p(in)
		if !ok {
			return v, in, false
		}
		if _, _, bad := q(rest); bad {
			var zero T
			return zero, in, false
		}
		return v, rest, true
	}
}

// Filter returns a parser that matches p, but fails if f reports false for
// the value p produced.
func Filter[T any](p Parser[T], f func(T) bool) Parser[T] {
	return func(in Input) (T, Input, bool) {
		v, rest, ok := p(in)
		if !ok || !f(v) {
			var zero T
			in.fail()
			return zero, in, false
		}
		return v, rest, true
	}
}

// Lazy returns a parser that calls f on first use to obtain the parser to
// apply. It permits the construction of recursive grammars.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	get := sync.OnceValue(f)
	return func(in Input) (T, Input, bool) { return get()(in) }
}

// Recognize returns a parser that matches p and yields the text consumed.
func Recognize[T any](p Parser[T]) Parser[string] {
	return func(in Input) (string, Input, bool) {
		_, rest, ok := p(in)
		if !ok {
			return "", in, false
		}
		return rest.since(in), rest, true
	}
}

// Concat returns a parser that matches each of ps in sequence and yields the
// concatenation of their results.
func Concat(ps ...Parser[string]) Parser[string] {
	return func(in Input) (string, Input, bool) {
		var buf []byte
		cur := in
		for _, p := range ps {
			v, rest, ok := p(cur)
			if !ok {
				return "", in, false
			}
			buf = append(buf, v...)
			cur = rest
		}
		return string(buf), cur, true
	}
}

// Join returns a parser that matches p and concatenates its results.
func Join(p Parser[[]string], sep string) Parser[string] {
	return Map(p, func(ss []string) string {
		var n int
		for _, s := range ss {
			n += len(s) + len(sep)
		}
		buf := make([]byte, 0, n)
		for i, s := range ss {
			if i > 0 {
				buf = append(buf, sep...)
			}
			buf = append(buf, s...)
		}
		return string(buf)
	})
}
