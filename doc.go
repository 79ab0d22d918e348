// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package typeinject writes inferred Swift types back into source text.
//
// The Swift compiler can print its fully type-checked program tree with
// "swiftc -dump-ast". That dump records the type of every expression and
// declaration, including the ones the programmer never wrote down. This
// module reads the dump and uses it to add explicit annotations to the
// original source file.
//
// # Pipeline
//
// The work is split across packages, leaves first:
//
//	parser        generic parser combinators over a text buffer
//	ast           the dump grammar and the immutable tree it produces
//	query         predicates for searching a tree
//	typeexpr      parsing and printing Swift type expressions
//	syntax        the boundary to a concrete syntax tree, and an edit buffer
//	syntax/swift  a scanner that finds annotation sites in Swift source
//	rewrite       the engine that matches sites to tree nodes and edits text
//
// Nodes of the dump are matched to source constructs by position. This
// package defines the location types shared by both sides: a Point is a
// file:line:column location as the compiler prints it, and a Range is a pair
// of points.
//
// # Annotations
//
// Three kinds of construct are annotated:
//
//	let value = 1                      => let value: Int = 1
//	Box(value1: 1, value2: "foo")      => Box<Int, String>(value1: 1, value2: "foo")
//	{ sum, i in sum += i }             => { (sum: inout Int, i: Int) -> Void in sum += i }
//
// Constructs that already carry annotations are left unchanged, as are
// constructs for which the dump does not record a usable type.
package typeinject
