// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package typeexpr parses and prints Swift type expressions, as the compiler
// records them in the type attributes of a program dump.
//
// Printing is canonical rather than faithful: spacing is normalized, and the
// empty tuple is written as Void wherever it occurs as a type.
package typeexpr

import "strings"

// A Type is a parsed type expression. The concrete type of a Type is one of
// Named, Tuple, Func, Array, Dict, Optional, Meta, Existential, Composition,
// or Attributed.
type Type interface {
	isType()

	// String renders the type in Swift syntax.
	String() string
}

// Named is a nominal type with optional generic arguments, for example
// "Int", "Box<Int, Int>", or "Outer<T>.Inner". Base is the enclosing type of
// a member type, or nil.
type Named struct {
	Base Type
	Name string
	Args []Type
}

// Tuple is a tuple type. A tuple with no elements is the empty type Void.
type Tuple struct {
	Elems []Elem
}

// Func is a function type.
type Func struct {
	Attrs      []string // e.g., "@escaping", "@Sendable"
	Params     []Elem
	Async      bool
	Throws     bool
	ThrowsType Type // for throws(E), or nil
	Result     Type
}

// An Elem is a tuple element or function parameter.
type Elem struct {
	Label      string   // argument label, or ""
	Specifiers []string // e.g., "inout", "__owned"
	Type       Type
	Variadic   bool
}

// Array is the sugared array type [T].
type Array struct{ Elem Type }

// Dict is the sugared dictionary type [K: V].
type Dict struct{ Key, Value Type }

// Optional is T? or, if Implicit is true, T!.
type Optional struct {
	Elem     Type
	Implicit bool
}

// Meta is the metatype T.Type or, if Protocol is true, P.Protocol.
type Meta struct {
	Base     Type
	Protocol bool
}

// Existential is an opaque ("some P") or existential ("any P") type.
type Existential struct {
	Keyword string // "some" or "any"
	Base    Type
}

// Composition is a protocol composition A & B.
type Composition struct{ Types []Type }

// Attributed is a non-function type with type attributes, such as
// "@lvalue Int".
type Attributed struct {
	Attrs []string
	Base  Type
}

func (Named) isType()       {}
func (Tuple) isType()       {}
func (Func) isType()        {}
func (Array) isType()       {}
func (Dict) isType()        {}
func (Optional) isType()    {}
func (Meta) isType()        {}
func (Existential) isType() {}
func (Composition) isType() {}
func (Attributed) isType()  {}

// IsVoid reports whether t is the empty tuple or the name Void.
func IsVoid(t Type) bool {
	switch v := t.(type) {
	case Tuple:
		return len(v.Elems) == 0
	case Named:
		return v.Base == nil && v.Name == "Void" && len(v.Args) == 0
	}
	return false
}

func (n Named) String() string {
	var sb strings.Builder
	if n.Base != nil {
		sb.WriteString(wrap(n.Base))
		sb.WriteByte('.')
	}
	sb.WriteString(n.Name)
	if len(n.Args) != 0 {
		sb.WriteByte('<')
		writeTypes(&sb, n.Args, ", ")
		sb.WriteByte('>')
	}
	return sb.String()
}

func (t Tuple) String() string {
	if len(t.Elems) == 0 {
		return "Void"
	}
	return "(" + elemList(t.Elems) + ")"
}

func (f Func) String() string {
	var sb strings.Builder
	for _, a := range f.Attrs {
		sb.WriteString(a)
		sb.WriteByte(' ')
	}
	sb.WriteByte('(')
	sb.WriteString(elemList(f.Params))
	sb.WriteByte(')')
	sb.WriteString(f.Effects())
	sb.WriteString(" -> ")
	sb.WriteString(f.Result.String())
	return sb.String()
}

// Effects returns the effects clause of f with a leading space, for example
// " async throws", or "" if f has no effects.
func (f Func) Effects() string {
	var s string
	if f.Async {
		s += " async"
	}
	if f.Throws {
		s += " throws"
		if f.ThrowsType != nil {
			s += "(" + f.ThrowsType.String() + ")"
		}
	}
	return s
}

func (e Elem) String() string {
	var sb strings.Builder
	if e.Label != "" {
		sb.WriteString(e.Label)
		sb.WriteString(": ")
	}
	for _, s := range e.Specifiers {
		sb.WriteString(s)
		sb.WriteByte(' ')
	}
	sb.WriteString(e.Type.String())
	if e.Variadic {
		sb.WriteString("...")
	}
	return sb.String()
}

func (a Array) String() string { return "[" + a.Elem.String() + "]" }

func (d Dict) String() string { return "[" + d.Key.String() + ": " + d.Value.String() + "]" }

func (o Optional) String() string {
	if o.Implicit {
		return wrap(o.Elem) + "!"
	}
	return wrap(o.Elem) + "?"
}

func (m Meta) String() string {
	if m.Protocol {
		return wrap(m.Base) + ".Protocol"
	}
	return wrap(m.Base) + ".Type"
}

func (e Existential) String() string { return e.Keyword + " " + wrap(e.Base) }

func (c Composition) String() string {
	var sb strings.Builder
	writeTypes(&sb, c.Types, " & ")
	return sb.String()
}

func (a Attributed) String() string {
	return strings.Join(a.Attrs, " ") + " " + a.Base.String()
}

// wrap renders t, parenthesized if it would not otherwise bind as the
// operand of a postfix or prefix type operator.
func wrap(t Type) string {
	switch t.(type) {
	case Func, Composition, Existential, Attributed:
		return "(" + t.String() + ")"
	}
	return t.String()
}

func elemList(es []Elem) string {
	ss := make([]string, len(es))
	for i, e := range es {
		ss[i] = e.String()
	}
	return strings.Join(ss, ", ")
}

func writeTypes(sb *strings.Builder, ts []Type, sep string) {
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(t.String())
	}
}
