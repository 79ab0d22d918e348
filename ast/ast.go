// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree model for the textual program dump printed by
// the Swift compiler (swiftc -dump-ast), and a parser that constructs trees
// from dump text.
//
// A dump is a nested S-expression. Each node has a keyword name, an optional
// double-quoted literal, and an ordered body of attributes, child nodes, and
// bare tokens:
//
//	(pattern_named type='Int' 'value')
//	(call_expr type='Box<Int, Int>' location=main.swift:7:9 range=[main.swift:7:9 - line:7:26] nothrow
//	  (constructor_ref_call_expr ...))
//
// Nodes are immutable once constructed and may be shared among goroutines.
package ast

import (
	"fmt"
	"strings"

	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/internal/escape"
	"go4.org/mem"
)

// A Node is a single node of a compiler dump tree.
type Node struct {
	name     string
	children []*Node
	attrs    []Attribute
	tokens   []Token

	// Derived from attrs and tokens at construction.
	value    string
	hasValue bool
	loc      *typeinject.Point
	rng      *typeinject.Range
	typ      *string
}

// NewNode constructs a node with the given name and body. The derived
// properties (Value, Location, Range, Type) are computed from the first
// matching attribute or token; later ones remain visible in Attributes and
// Tokens.
func NewNode(name string, children []*Node, attrs []Attribute, tokens []Token) *Node {
	n := &Node{name: name, children: children, attrs: attrs, tokens: tokens}
	for _, a := range attrs {
		switch t := a.(type) {
		case LocationAttr:
			if n.loc == nil {
				n.loc = &t.Point
			}
		case RangeAttr:
			if n.rng == nil {
				n.rng = &t.Range
			}
		case TypeAttr:
			if n.typ == nil {
				n.typ = &t.Name
			}
		}
	}
	for _, tok := range tokens {
		if tok.Kind == SingleQuoted || tok.Kind == DoubleQuoted {
			n.value, n.hasValue = tok.Value(), true
			break
		}
	}
	return n
}

// Name returns the keyword that names the kind of n, for example "call_expr".
func (n *Node) Name() string { return n.name }

// Children returns the child nodes of n in dump order. The caller must not
// modify the slice.
func (n *Node) Children() []*Node { return n.children }

// Attributes returns the attributes of n in dump order. The caller must not
// modify the slice.
func (n *Node) Attributes() []Attribute { return n.attrs }

// Tokens returns the bare tokens of n in dump order. If the node has a
// literal value, it is the first token. The caller must not modify the slice.
func (n *Node) Tokens() []Token { return n.tokens }

// Value returns the text of the first quoted token of n, if it has one.
// Escapes in a double-quoted token are decoded.
func (n *Node) Value() (string, bool) { return n.value, n.hasValue }

// Location returns the point of the first location attribute of n.
func (n *Node) Location() (typeinject.Point, bool) {
	if n.loc == nil {
		return typeinject.Point{}, false
	}
	return *n.loc, true
}

// Range returns the first range attribute of n.
func (n *Node) Range() (typeinject.Range, bool) {
	if n.rng == nil {
		return typeinject.Range{}, false
	}
	return *n.rng, true
}

// Type returns the text of the first type attribute of n.
func (n *Node) Type() (string, bool) {
	if n.typ == nil {
		return "", false
	}
	return *n.typ, true
}

// Walk calls f for each node of the tree rooted at n in preorder. If f
// returns false, the children of that node are skipped.
func (n *Node) Walk(f func(*Node) bool) {
	if !f(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(f)
	}
}

// String renders n in dump syntax on a single line.
func (n *Node) String() string {
	var sb strings.Builder
	writeNode(&sb, n, -1)
	return sb.String()
}

// TokenKind enumerates the kinds of bare tokens in a node body.
type TokenKind byte

const (
	Raw          TokenKind = iota // an unquoted word
	SingleQuoted                  // text enclosed in '...'
	DoubleQuoted                  // text enclosed in "...", with escapes
)

var tokenKindStr = [...]string{Raw: "raw", SingleQuoted: "single-quoted", DoubleQuoted: "double-quoted"}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindStr) {
		return tokenKindStr[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// A Token is a bare word in a node body. Text is the content without its
// quotation marks; escapes in double-quoted text are not decoded.
type Token struct {
	Kind TokenKind
	Text string
}

// Quoted returns a DoubleQuoted token whose decoded value is s.
func Quoted(s string) Token {
	return Token{Kind: DoubleQuoted, Text: string(escape.Quote(mem.S(s)))}
}

// Value returns the decoded content of t. If a double-quoted token contains
// an invalid escape, its text is returned as-is.
func (t Token) Value() string {
	if t.Kind != DoubleQuoted {
		return t.Text
	}
	dec, err := escape.Unquote(mem.S(t.Text))
	if err != nil {
		return t.Text
	}
	return string(dec)
}

func (t Token) String() string {
	switch t.Kind {
	case SingleQuoted:
		return "'" + t.Text + "'"
	case DoubleQuoted:
		return `"` + t.Text + `"`
	}
	return t.Text
}

// An Attribute is a keyword-tagged property of a node. The concrete type of
// an Attribute is one of RangeAttr, TypeAttr, LocationAttr, NoThrow,
// DeclAttr, or Unknown.
type Attribute interface {
	isAttribute()

	// String renders the attribute in dump syntax.
	String() string
}

// RangeAttr is a source range, range=[a - b].
type RangeAttr struct{ Range typeinject.Range }

// TypeAttr is the type of an expression or pattern, type='T'.
type TypeAttr struct{ Name string }

// LocationAttr is the source location of a node, location=f:l:c.
type LocationAttr struct{ Point typeinject.Point }

// NoThrow marks an expression that cannot throw.
type NoThrow struct{}

// DeclAttr is a reference to a declaration, decl=sig [with ...].
type DeclAttr struct{ Decl Decl }

// Unknown is any other attribute, keyword or keyword=value. Value holds the
// text of the value as it appeared in the dump.
type Unknown struct {
	Keyword  string
	Value    string
	HasValue bool
}

func (RangeAttr) isAttribute()    {}
func (TypeAttr) isAttribute()     {}
func (LocationAttr) isAttribute() {}
func (NoThrow) isAttribute()      {}
func (DeclAttr) isAttribute()     {}
func (Unknown) isAttribute()      {}

func (a RangeAttr) String() string    { return "range=" + a.Range.String() }
func (a TypeAttr) String() string     { return "type='" + a.Name + "'" }
func (a LocationAttr) String() string { return "location=" + a.Point.String() }
func (NoThrow) String() string        { return "nothrow" }
func (a DeclAttr) String() string     { return "decl=" + a.Decl.String() }

func (a Unknown) String() string {
	if !a.HasValue {
		return a.Keyword
	}
	return a.Keyword + "=" + a.Value
}

// A Decl is a declaration reference. Signature is the dotted declaration
// path, for example "Swift.(file).Array.init(repeating:count:)".
// Substitution is the generic substitution text beginning with "[with", or
// "" if the reference has none.
type Decl struct {
	Signature    string
	Substitution string
}

func (d Decl) String() string {
	if d.Substitution == "" {
		return d.Signature
	}
	return d.Signature + " " + d.Substitution
}
