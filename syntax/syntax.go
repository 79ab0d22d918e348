// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package syntax defines the view of a source file that the rewriting engine
// needs: the sites where annotations may be written, their positions, and a
// buffer of edits to apply to the file text.
//
// Positions are reported two ways. A Span gives byte offsets into the source
// text, used for editing. A LineCol gives the 1-based line and byte column,
// used to match a site against the locations recorded in a compiler dump.
package syntax

import "github.com/creachadair/typeinject"

// A File is a parsed source file.
type File interface {
	// Name reports the name of the file, as given to the parser.
	Name() string

	// Source returns the complete text of the file. The caller must not
	// modify the slice.
	Source() []byte

	// Bindings returns the local bindings (let and var) of the file in
	// source order.
	Bindings() []Binding

	// Calls returns the unqualified calls of capitalized callees without
	// explicit generic arguments, in source order.
	Calls() []Call

	// Closures returns the closures of the file that have a signature, in
	// source order.
	Closures() []Closure
}

// A Binding is a single name bound by a let or var declaration.
type Binding struct {
	Name     string             // the bound name, without backticks
	NameSpan typeinject.Span    // the name as written
	At       typeinject.LineCol // the position of the name
	Typed    bool               // the binding has a written type
	Tuple    bool               // the binding is a tuple pattern
	Init     typeinject.Span    // the initializer expression; zero if none
}

// A Call is a call expression whose callee is a single capitalized name,
// such as Box(1, 2).
type Call struct {
	Callee     string
	CalleeSpan typeinject.Span
	At         typeinject.LineCol // the position of the callee
	Span       typeinject.Span    // the whole call, callee through ")"
}

// A Closure is a closure expression with a signature ending in "in".
type Closure struct {
	At typeinject.LineCol // the position of the opening brace

	// Params are the parameters of the signature. ParamSpan covers the
	// parameter clause as written, including parentheses if Parenthesized.
	Params        []Param
	ParamSpan     typeinject.Span
	Parenthesized bool

	Effects   string // the effects clause as written, e.g. "throws", or ""
	HasReturn bool   // the signature has a written result type

	// ReturnAt is the offset immediately after the parameter clause and
	// effects, where a result type is written.
	ReturnAt int
}

// A Param is a single closure parameter.
type Param struct {
	Name  string          // the parameter name, or "_"
	Span  typeinject.Span // the parameter as written, including its type
	Type  string          // the written type, or ""
	Typed bool
}
