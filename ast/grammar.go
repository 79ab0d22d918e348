// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"strings"

	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/parser"
)

// A rawNode is the direct result of parsing a node, before its body is
// split into attributes, children, and tokens.
type rawNode struct {
	name    string
	value   *string
	entries []any // each an Attribute, a *rawNode, or a Token
}

func (r *rawNode) build() *Node {
	var children []*Node
	var attrs []Attribute
	var tokens []Token
	if r.value != nil {
		tokens = append(tokens, Token{Kind: DoubleQuoted, Text: *r.value})
	}
	for _, e := range r.entries {
		switch t := e.(type) {
		case Attribute:
			attrs = append(attrs, t)
		case *rawNode:
			children = append(children, t.build())
		case Token:
			tokens = append(tokens, t)
		}
	}
	return NewNode(r.name, children, attrs, tokens)
}

var (
	spaces  = parser.Spaces()
	keyword = parser.Keyword()

	// nodeGrammar is the parser for a complete node. It is assigned during
	// initialization because the grammar refers to itself.
	nodeGrammar parser.Parser[*rawNode]
)

func init() { nodeGrammar = parseNode() }

// parseNode parses ( keyword ["literal"] entry* ).
func parseNode() parser.Parser[*rawNode] {
	self := parser.Lazy(func() parser.Parser[*rawNode] { return nodeGrammar })
	entry := parser.Choice(
		parser.Map(parseAttribute(), func(a Attribute) any { return a }),
		parser.Map(self, func(n *rawNode) any { return n }),
		parser.Map(parseToken(), func(t Token) any { return t }),
	)
	body := parser.Then(
		keyword,
		parser.Then(
			parser.Right(spaces, parser.Maybe(parseStringLiteral())),
			parser.Many(parser.Left(parser.Right(spaces, entry), spaces)),
			func(v *string, es []any) rawNode { return rawNode{value: v, entries: es} },
		),
		func(name string, r rawNode) *rawNode { r.name = name; return &r },
	)
	return parser.Right(parser.Lit("("), parser.Left(parser.Left(body, spaces), parser.Lit(")")))
}

// parseAttribute parses a single attribute. The alternatives are tried in
// order, so a well-known keyword is never read as an unknown attribute.
func parseAttribute() parser.Parser[Attribute] {
	return parser.Choice(
		parser.Map(parser.Right(parser.Lit("range="), parseRange()),
			func(r typeinject.Range) Attribute { return RangeAttr{Range: r} }),
		parser.Map(parser.Right(parser.Lit("type="), parseTypeName()),
			func(s string) Attribute { return TypeAttr{Name: s} }),
		parser.Map(parser.Right(parser.Lit("location="), parsePoint()),
			func(p typeinject.Point) Attribute { return LocationAttr{Point: p} }),
		parser.Map(parser.NotFollowedBy(parser.Lit("nothrow"), parser.Satisfy(parser.IsKeyword)),
			func(string) Attribute { return NoThrow{} }),
		parser.Map(parser.Right(parser.Lit("decl="), parseDecl()),
			func(d Decl) Attribute { return DeclAttr{Decl: d} }),
		parser.Map(parseUnknown(), func(u Unknown) Attribute { return u }),
	)
}

// parseUnknown parses keyword or keyword=value. The value is the first that
// matches of a range, a type name, a point, a bracketed list, a declaration,
// or a run of bytes up to a space or parenthesis, tried in that order.
func parseUnknown() parser.Parser[Unknown] {
	value := parser.Map(parser.Choice(
		parser.Recognize(parseRange()),
		parser.Recognize(parseTypeName()),
		parser.Recognize(parsePoint()),
		parser.Recognize(parseElements()),
		parser.Recognize(parseDecl()),
		parser.TakeWhile(parser.Not(" ()\n")),
	), func(s string) string { return strings.TrimRight(s, " \t\r\n") })

	return parser.Then(keyword, parser.Maybe(parser.Right(parser.Lit("="), value)),
		func(k string, v *string) Unknown {
			if v == nil {
				return Unknown{Keyword: k}
			}
			return Unknown{Keyword: k, Value: *v, HasValue: true}
		})
}

// parseToken parses a bare quoted or unquoted word. An unquoted word never
// begins with a quotation mark, so an unterminated quote is an error.
func parseToken() parser.Parser[Token] {
	raw := parser.Concat(
		parser.Recognize(parser.Satisfy(parser.Not(" \t\r\n()'\""))),
		parser.TakeWhile(parser.Not(" \t\r\n()")),
	)
	return parser.Choice(
		parser.Map(parseTypeName(), func(s string) Token { return Token{Kind: SingleQuoted, Text: s} }),
		parser.Map(parseStringLiteral(), func(s string) Token { return Token{Kind: DoubleQuoted, Text: s} }),
		parser.Map(raw, func(s string) Token { return Token{Kind: Raw, Text: s} }),
	)
}

// parseStringLiteral parses "...", with backslash escapes, and returns the
// text between the quotes without decoding it.
func parseStringLiteral() parser.Parser[string] {
	body := parser.Recognize(parser.Many(parser.Or(
		parser.Concat(parser.Lit(`\`), parser.Recognize(parser.Satisfy(func(byte) bool { return true }))),
		parser.TakeWhile1(parser.Not(`"\`)),
	)))
	return parser.Right(parser.Char('"'), parser.Left(body, parser.Char('"')))
}

// parseTypeName parses '...' and returns the text between the quotes.
func parseTypeName() parser.Parser[string] {
	return parser.Right(parser.Char('\''), parser.Left(parser.TakeWhile(parser.Not("'")), parser.Char('\'')))
}

// parsePoint parses file:line:column.
func parsePoint() parser.Parser[typeinject.Point] {
	num := parser.Right(parser.Lit(":"), parser.Number())
	return parser.Then(
		parser.TakeWhile(parser.Not(":\n ")),
		parser.Then(num, num, func(line, col int) typeinject.LineCol {
			return typeinject.LineCol{Line: line, Column: col}
		}),
		typeinject.At,
	)
}

// parseRange parses [point - point].
func parseRange() parser.Parser[typeinject.Range] {
	pt := parsePoint()
	return parser.Right(parser.Lit("["), parser.Left(
		parser.Then(parser.Left(pt, parser.Lit(" - ")), pt, func(a, b typeinject.Point) typeinject.Range {
			return typeinject.Range{Start: a, End: b}
		}),
		parser.Lit("]"),
	))
}

// parseElements parses [...] as a single opaque element.
func parseElements() parser.Parser[[]string] {
	return parser.Right(parser.Char('['), parser.Left(
		parser.Map(parser.TakeWhile(parser.Not("]")), func(s string) []string { return []string{s} }),
		parser.Char(']'),
	))
}

// isDeclName reports whether b may occur in a component of a declaration
// path after the first. Besides keyword bytes this admits the operator
// characters of operator declarations and the hyphen of "top-level code".
func isDeclName(b byte) bool {
	return parser.IsKeyword(b) || strings.IndexByte("-+*/%<>=!&|^~?", b) >= 0
}

// parseDeclSignature parses a dotted declaration path such as
//
//	Swift.(file).Array.init(repeating:count:)
//	main.(file).f(_:)@main.swift:1:6
//
// The first component is a keyword that is not followed by "=", so that a
// following keyword=value attribute is not taken as part of the path.
func parseDeclSignature() parser.Parser[string] {
	word := parser.TakeWhile1(isDeclName)
	funcSig := parser.Concat(word, parser.Lit("("), parser.TakeWhile(parser.IsKeyword), parser.Lit(")"))
	fileSig := parser.Concat(parser.Lit("("), keyword, parser.Lit(")"))
	comp := parser.Choice(funcSig, fileSig, word)
	return parser.Concat(
		parser.NotFollowedBy(keyword, parser.Lit("=")),
		parser.Join(parser.Many(parser.Concat(parser.Lit("."), comp)), ""),
		parser.Default(parser.Concat(parser.Lit("@"), parser.TakeWhile1(parser.Not(" \t\r\n()[]"))), ""),
	)
}

// parseDecl parses one or more space-separated declaration signatures and an
// optional substitution.
func parseDecl() parser.Parser[Decl] {
	sigs := parser.Join(parser.Many1(parser.Left(parser.Right(spaces, parseDeclSignature()), spaces)), " ")
	return parser.Then(
		parser.Left(sigs, spaces),
		parser.Default(parseDeclSubstitution(), ""),
		func(sig, sub string) Decl { return Decl{Signature: sig, Substitution: sub} },
	)
}

// parseDeclSubstitution parses [with (...) ...] and returns its text. Each
// parenthesized group is rendered with a single leading space in place of
// the space that preceded it. The text inside a group is kept as written.
func parseDeclSubstitution() parser.Parser[string] {
	var groups parser.Parser[string]
	groups = parser.Lazy(func() parser.Parser[string] {
		box := parser.Concat(
			parser.Pure(" "),
			parser.Lit("("),
			parser.TakeWhile(parser.Not("()")),
			parser.Default(groups, ""),
			parser.Lit(")"),
		)
		return parser.Join(parser.Many(parser.Left(parser.Right(spaces, box), spaces)), "")
	})
	return parser.Concat(parser.Lit("[with"), groups, parser.Lit("]"))
}
