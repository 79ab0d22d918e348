// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package swift

import (
	"strings"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/syntax"
)

// reserved words cannot name a binding or a closure parameter.
var reserved = mapset.New(
	"let", "var", "in", "if", "else", "guard", "while", "for", "repeat",
	"switch", "case", "default", "return", "break", "continue", "fallthrough",
	"func", "init", "deinit", "subscript", "struct", "class", "enum", "protocol",
	"extension", "import", "typealias", "associatedtype", "operator", "where",
	"throw", "throws", "rethrows", "try", "catch", "do", "defer", "await",
	"is", "as", "self", "Self", "super", "true", "false", "nil", "inout",
	"static", "private", "public", "internal", "fileprivate", "open",
)

// Words that precede a capitalized name that is declared or matched, not
// called.
var notCallers = mapset.New(
	".", "@", "#", "func", "case", "struct", "class", "enum", "protocol",
	"extension", "typealias", "actor", "import", "macro", "indirect",
)

// Words that introduce a condition list.
var conditions = mapset.New("if", "guard", "while", ",")

var effectWords = mapset.New("async", "throws", "rethrows")

type scanner struct {
	toks  []token
	match []int // index of the matching bracket, or -1
	file  *File
}

func newScanner(toks []token, f *File) *scanner {
	s := &scanner{toks: toks, match: make([]int, len(toks)), file: f}
	var stk []int
	for i, t := range toks {
		s.match[i] = -1
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case "(", "[", "{":
			stk = append(stk, i)
		case ")", "]", "}":
			if n := len(stk); n != 0 && closerOf(toks[stk[n-1]].text) == t.text {
				s.match[i], s.match[stk[n-1]] = stk[n-1], i
				stk = stk[:n-1]
			} else {
				// An unbalanced closer discards the open brackets, so that
				// nothing enclosing it is reported.
				stk = stk[:0]
			}
		}
	}
	return s
}

func closerOf(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	}
	return "}"
}

// text reports the text of token i, or "" if i is out of range.
func (s *scanner) text(i int) string {
	if i < 0 || i >= len(s.toks) {
		return ""
	}
	return s.toks[i].text
}

func (s *scanner) isPunct(i int, text string) bool {
	return i >= 0 && i < len(s.toks) && s.toks[i].kind == tokPunct && s.toks[i].text == text
}

func (s *scanner) isName(i int) bool {
	return i >= 0 && i < len(s.toks) && s.toks[i].kind == tokIdent && !reserved.Has(s.toks[i].text)
}

// span returns the source span from the start of token i to the end of
// token j, inclusive.
func (s *scanner) span(i, j int) typeinject.Span {
	return typeinject.Span{Pos: s.toks[i].span.Pos, End: s.toks[j].span.End}
}

func (s *scanner) scan() {
	for i, t := range s.toks {
		switch {
		case t.kind == tokIdent && (t.text == "let" || t.text == "var"):
			if prev := s.text(i - 1); prev != "case" && prev != "." {
				s.bindings(i+1, conditions.Has(prev))
			}
		case t.kind == tokIdent && isCallee(t.text):
			s.call(i)
		case s.isPunct(i, "{"):
			if c, ok := s.closure(i); ok {
				s.file.closures = append(s.file.closures, c)
			}
		}
	}
}

// bindings scans a list of patterns following let or var at index i.
// If cond is true, the list is part of a condition.
func (s *scanner) bindings(i int, cond bool) {
	for i < len(s.toks) {
		var b syntax.Binding
		t := s.toks[i]
		switch {
		case s.isName(i):
			b = syntax.Binding{Name: unquote(t.text), NameSpan: t.span, At: t.at}
			i++
		case s.isPunct(i, "(") && s.match[i] > i:
			end := s.match[i]
			b = syntax.Binding{Tuple: true, NameSpan: s.span(i, end), At: t.at}
			i = end + 1
		default:
			return
		}
		if s.isPunct(i, ":") {
			b.Typed = true
			i = s.typeEnd(i + 1)
		}
		if s.isPunct(i, "=") && i+1 < len(s.toks) {
			end := s.exprEnd(i+1, cond)
			if end > i+1 {
				b.Init = s.span(i+1, end-1)
			}
			i = end
		} else if !b.Typed {
			// Without an initializer the pattern binds a matched value, as in
			// "case .some(let x)" or "catch let err", and takes no annotation.
			b = syntax.Binding{}
		}
		if b.NameSpan.Len() != 0 {
			s.file.bindings = append(s.file.bindings, b)
		}

		// Continue only with another pattern of the same declaration.
		if !s.isPunct(i, ",") || !(s.isPunct(i+2, "=") || s.isPunct(i+2, ":")) {
			return
		}
		i++
	}
}

// typeEnd returns the index of the first token after a type annotation that
// begins at index i.
func (s *scanner) typeEnd(i int) int {
	depth := 0
	for ; i < len(s.toks); i++ {
		t := s.toks[i]
		if t.kind == tokPunct {
			switch t.text {
			case "(", "[":
				i = max(i, s.match[i]) // skip nested brackets
				continue
			case "<":
				depth++
				continue
			case ">":
				depth--
				continue
			}
		}
		if depth > 0 {
			continue
		}
		if t.nl && i > 0 && !s.isPunct(i-1, ":") {
			return i
		}
		if t.kind == tokPunct && strings.Contains("=,{};)]", t.text) {
			return i
		}
	}
	return i
}

// exprEnd returns the index of the first token after an expression that
// begins at index i. The expression ends at the end of the line, or at a
// separator, unless these are enclosed in brackets. If cond is true, the
// expression is a condition and also ends at an opening brace.
func (s *scanner) exprEnd(i int, cond bool) int {
	start := i
	for ; i < len(s.toks); i++ {
		t := s.toks[i]
		if i > start && t.nl && !strings.HasPrefix(t.text, ".") {
			return i
		}
		if t.kind == tokIdent && t.text == "else" {
			return i
		}
		if t.kind != tokPunct {
			continue
		}
		switch t.text {
		case ",", ";", ")", "]", "}":
			return i
		case "{":
			if cond {
				return i
			}
			fallthrough
		case "(", "[":
			if s.match[i] < 0 {
				return len(s.toks)
			}
			i = s.match[i]
		}
	}
	return i
}

// isCallee reports whether name may be the callee of a constructor call.
func isCallee(name string) bool { return name[0] >= 'A' && name[0] <= 'Z' }

// call records a call whose callee is token i, if there is one.
func (s *scanner) call(i int) {
	t := s.toks[i]
	if notCallers.Has(s.text(i-1)) || !s.isPunct(i+1, "(") || s.toks[i+1].span.Pos != t.span.End {
		return
	}
	end := s.match[i+1]
	if end < 0 {
		return
	}
	s.file.calls = append(s.file.calls, syntax.Call{
		Callee:     t.text,
		CalleeSpan: t.span,
		At:         t.at,
		Span:       s.span(i, end),
	})
}

// closure parses the signature of a closure whose opening brace is token i.
// It reports false if the brace does not begin a closure with a signature.
func (s *scanner) closure(i int) (syntax.Closure, bool) {
	c := syntax.Closure{At: s.toks[i].at}
	j := i + 1
	if s.isPunct(j, "[") {
		if s.match[j] < 0 {
			return c, false
		}
		j = s.match[j] + 1 // capture list
	}
	last := j - 1 // the last token of the parameter clause

	switch {
	case s.isPunct(j, "("):
		end := s.match[j]
		if end < 0 {
			return c, false
		}
		ps, ok := s.params(j+1, end)
		if !ok {
			return c, false
		}
		c.Params, c.Parenthesized = ps, true
		c.ParamSpan = s.span(j, end)
		last, j = end, end+1

	case s.isName(j) || s.text(j) == "_":
		start := j
		for {
			if !s.isName(j) && s.text(j) != "_" {
				return c, false
			}
			c.Params = append(c.Params, syntax.Param{Name: unquote(s.toks[j].text), Span: s.toks[j].span})
			j++
			if !s.isPunct(j, ",") {
				break
			}
			j++
		}
		c.ParamSpan = s.span(start, j-1)
		last = j - 1

	default:
		end := s.toks[last].span.End
		c.ParamSpan = typeinject.Span{Pos: end, End: end}
	}

	// Effects: async, throws, rethrows, throws(E).
	effStart := j
	for j < len(s.toks) && s.toks[j].kind == tokIdent && effectWords.Has(s.toks[j].text) {
		j++
		if s.text(j-1) == "throws" && s.isPunct(j, "(") && s.match[j] > j {
			j = s.match[j] + 1
		}
	}
	if j > effStart {
		c.Effects = string(s.file.src[s.toks[effStart].span.Pos:s.toks[j-1].span.End])
		last = j - 1
	}
	c.ReturnAt = s.toks[last].span.End

	if s.isPunct(j, "->") {
		c.HasReturn = true
		for j++; j < len(s.toks) && s.text(j) != "in"; j++ {
			if s.isPunct(j, "{") || s.isPunct(j, "}") {
				return c, false
			}
			if s.isPunct(j, "(") || s.isPunct(j, "[") {
				if s.match[j] < 0 {
					return c, false
				}
				j = s.match[j]
			}
		}
	}
	if j >= len(s.toks) || s.toks[j].kind != tokIdent || s.toks[j].text != "in" {
		return c, false
	}
	return c, true
}

// params parses the closure parameters between tokens i and end, exclusive.
func (s *scanner) params(i, end int) ([]syntax.Param, bool) {
	if i == end {
		return nil, true
	}
	var out []syntax.Param
	for i < end {
		// Find the end of this parameter.
		j, angle := i, 0
		for j < end && (angle > 0 || !s.isPunct(j, ",")) {
			switch {
			case s.isPunct(j, "<"):
				angle++
			case s.isPunct(j, ">"):
				angle--
			case s.match[j] > j:
				j = s.match[j]
			}
			j++
		}
		if j == i || !(s.isName(i) || s.text(i) == "_") {
			return nil, false
		}
		p := syntax.Param{Name: unquote(s.toks[i].text), Span: s.span(i, j-1)}
		k := i + 1
		if k < j && (s.isName(k) || s.text(k) == "_") {
			p.Name = unquote(s.toks[k].text) // external and internal names
			k++
		}
		if k < j {
			if !s.isPunct(k, ":") || k+1 >= j {
				return nil, false
			}
			p.Type = string(s.file.src[s.toks[k+1].span.Pos:s.toks[j-1].span.End])
			p.Typed = true
		}
		out = append(out, p)
		i = j + 1
	}
	return out, true
}

// unquote removes the backticks from a quoted identifier.
func unquote(name string) string {
	if len(name) >= 2 && name[0] == '`' && name[len(name)-1] == '`' {
		return name[1 : len(name)-1]
	}
	return name
}
