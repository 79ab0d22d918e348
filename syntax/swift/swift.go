// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package swift implements a lightweight scanner for Swift source files.
//
// The scanner does not parse Swift. It splits the source into tokens, and
// recognizes the handful of constructs that can carry a type annotation:
// local bindings, constructor calls, and closure signatures. Comments and
// string literals, including multi-line, raw, and interpolated strings, are
// skipped so that their contents are not mistaken for code.
package swift

import (
	"fmt"

	"github.com/creachadair/typeinject/syntax"
)

// File is a scanned Swift source file. It implements syntax.File.
type File struct {
	name     string
	src      []byte
	bindings []syntax.Binding
	calls    []syntax.Call
	closures []syntax.Closure
}

var _ syntax.File = (*File)(nil)

// Parse scans the contents of a Swift source file. The name is used only for
// diagnostics. It reports an error if src contains an unterminated comment or
// literal.
func Parse(name string, src []byte) (*File, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", name, err)
	}
	f := &File{name: name, src: src}
	newScanner(toks, f).scan()
	return f, nil
}

// Name implements part of syntax.File.
func (f *File) Name() string { return f.name }

// Source implements part of syntax.File.
func (f *File) Source() []byte { return f.src }

// Bindings implements part of syntax.File.
func (f *File) Bindings() []syntax.Binding { return f.bindings }

// Calls implements part of syntax.File.
func (f *File) Calls() []syntax.Call { return f.calls }

// Closures implements part of syntax.File.
func (f *File) Closures() []syntax.Closure { return f.closures }
