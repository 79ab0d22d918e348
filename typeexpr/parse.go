// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package typeexpr

import (
	"fmt"

	"github.com/creachadair/typeinject/parser"
)

// Parse parses s as a type expression. It reports a *parser.SyntaxError if s
// is not a complete type.
func Parse(s string) (Type, error) {
	t, err := parser.Complete(typeGrammar, s)
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", s, err)
	}
	return t, nil
}

// MustParse parses s as a type expression, and panics if that fails.
func MustParse(s string) Type {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

var typeGrammar parser.Parser[Type]

func init() { typeGrammar = parseType() }

var ws = parser.Spaces()

func tok(s string) parser.Parser[string] { return parser.Token(s) }

// word matches the keyword s followed by at least one space.
func word(s string) parser.Parser[string] {
	return parser.Left(tok(s), parser.Satisfy(parser.IsSpace))
}

func isIdent(b byte) bool { return b != ':' && parser.IsKeyword(b) }

func parseType() parser.Parser[Type] {
	self := parser.Lazy(func() parser.Parser[Type] { return typeGrammar })
	ident := parser.Right(ws, parser.TakeWhile1(isIdent))

	// Nominal types: Name<Args>.Member<Args>...
	// The members "Type" and "Protocol" are reserved for metatypes.
	args := parser.Right(tok("<"), parser.Left(parser.SepBy1(self, tok(",")), tok(">")))
	nominal := parser.Then(
		parser.Then(ident, parser.Default(args, nil), func(name string, args []Type) Named {
			return Named{Name: name, Args: args}
		}),
		parser.Many(parser.Right(tok("."), parser.Then(
			parser.Filter(ident, func(s string) bool { return s != "Type" && s != "Protocol" }),
			parser.Default(args, nil),
			func(name string, args []Type) Named { return Named{Name: name, Args: args} },
		))),
		func(first Named, rest []Named) Type {
			var cur Type = first
			for _, m := range rest {
				m.Base = cur
				cur = m
			}
			return cur
		},
	)

	// Sugared collections: [T] and [K: V].
	collection := parser.Right(tok("["), parser.Left(parser.Then(
		self,
		parser.Maybe(parser.Right(tok(":"), self)),
		func(k Type, v *Type) Type {
			if v == nil {
				return Array{Elem: k}
			}
			return Dict{Key: k, Value: *v}
		},
	), tok("]")))

	// Parenthesized element lists serve as tuples, parameter lists, and
	// grouping parentheses.
	label := parser.Left(ident, tok(":"))
	specifier := parser.Choice(word("inout"), word("__owned"), word("__shared"), word("consuming"), word("borrowing"))
	elem := parser.Then(
		parser.Default(label, ""),
		parser.Then(
			parser.Many(specifier),
			parser.Then(self, parser.Maybe(tok("...")), func(t Type, v *string) Elem {
				return Elem{Type: t, Variadic: v != nil}
			}),
			func(specs []string, e Elem) Elem { e.Specifiers = specs; return e },
		),
		func(lbl string, e Elem) Elem { e.Label = lbl; return e },
	)
	elems := parser.Right(tok("("), parser.Left(parser.SepBy(elem, tok(",")), tok(")")))

	throws := parser.Map(parser.Or(word("throws"), word("rethrows")), func(string) *Type { return nil })
	// N.B. A typed throws clause is not followed by a space, so match the
	// keyword and its operand before the keyword alone.
	typedThrows := parser.Map(parser.Right(tok("throws"), parser.Right(tok("("), parser.Left(self, tok(")")))),
		func(t Type) *Type { return &t })
	effects := parser.Then(
		parser.Maybe(word("async")),
		parser.Maybe(parser.Or(typedThrows, throws)),
		func(a *string, t **Type) Func {
			f := Func{Async: a != nil, Throws: t != nil}
			if t != nil && *t != nil {
				f.ThrowsType = **t
			}
			return f
		},
	)
	funcOrTuple := parser.Then(
		elems,
		parser.Maybe(parser.Then(effects, parser.Right(tok("->"), self), func(f Func, r Type) Func {
			f.Result = r
			return f
		})),
		func(es []Elem, f *Func) Type {
			if f != nil {
				f.Params = es
				return *f
			}
			if len(es) == 1 && es[0].Label == "" && len(es[0].Specifiers) == 0 && !es[0].Variadic {
				return es[0].Type // grouping parentheses
			}
			return Tuple{Elems: es}
		},
	)

	primary := parser.Choice(funcOrTuple, collection, nominal)

	type postfix struct {
		opt, iuo, meta, proto bool
	}
	suffix := parser.Choice(
		parser.Map(tok("?"), func(string) postfix { return postfix{opt: true} }),
		parser.Map(tok("!"), func(string) postfix { return postfix{iuo: true} }),
		parser.Map(parser.Right(tok("."), parser.Lit("Type")), func(string) postfix { return postfix{meta: true} }),
		parser.Map(parser.Right(tok("."), parser.Lit("Protocol")), func(string) postfix { return postfix{proto: true} }),
	)
	postfixed := parser.Then(primary, parser.Many(suffix), func(t Type, ps []postfix) Type {
		for _, p := range ps {
			switch {
			case p.opt:
				t = Optional{Elem: t}
			case p.iuo:
				t = Optional{Elem: t, Implicit: true}
			case p.meta:
				t = Meta{Base: t}
			case p.proto:
				t = Meta{Base: t, Protocol: true}
			}
		}
		return t
	})

	existential := parser.Then(parser.Or(word("some"), word("any")), postfixed, func(kw string, t Type) Type {
		return Existential{Keyword: kw, Base: t}
	})
	composed := parser.Map(parser.SepBy1(parser.Or(existential, postfixed), tok("&")), func(ts []Type) Type {
		if len(ts) == 1 {
			return ts[0]
		}
		return Composition{Types: ts}
	})

	attr := parser.Right(ws, parser.Concat(
		parser.Lit("@"),
		parser.TakeWhile1(isIdent),
		parser.Default(parser.Recognize(parser.Concat(parser.Lit("("), parser.TakeWhile(parser.Not(")")), parser.Lit(")"))), ""),
	))
	return parser.Then(parser.Many(attr), composed, func(attrs []string, t Type) Type {
		if len(attrs) == 0 {
			return t
		}
		if f, ok := t.(Func); ok {
			f.Attrs = append(attrs, f.Attrs...)
			return f
		}
		return Attributed{Attrs: attrs, Base: t}
	})
}
