// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/creachadair/mds/mtest"
	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/ast"
	"github.com/creachadair/typeinject/parser"
	"github.com/google/go-cmp/cmp"
)

// let value = 1
const sampleDump = `(source_file "main.swift"
  (top_level_code_decl range=[main.swift:1:1 - line:1:13]
    (brace_stmt implicit range=[main.swift:1:1 - line:1:13]
      (pattern_binding_decl range=[main.swift:1:1 - line:1:13]
        (pattern_named type='Int' 'value')
        (integer_literal_expr type='Int' location=main.swift:1:13 range=[main.swift:1:13 - line:1:13] value=1 builtin_initializer=Swift.(file).Int.init(_builtinIntegerLiteral:) initializer=**NULL**))))
  (var_decl range=[main.swift:1:5 - line:1:5] "value" type='Int' interface type='Int' access=fileprivate let readImpl=stored immutable))
`

func pt(line, col int) typeinject.Point {
	return typeinject.Point{File: "main.swift", Line: line, Column: col}
}

func TestParseSample(t *testing.T) {
	root, err := ast.ParseString(sampleDump)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got, want := root.Name(), "source_file"; got != want {
		t.Errorf("Name: got %q, want %q", got, want)
	}
	if v, ok := root.Value(); !ok || v != "main.swift" {
		t.Errorf("Value: got %q, %v; want main.swift", v, ok)
	}
	if n := len(root.Children()); n != 2 {
		t.Fatalf("Got %d children, want 2", n)
	}

	vd := root.Children()[1]
	if v, _ := vd.Value(); v != "value" {
		t.Errorf("var_decl value: got %q, want %q", v, "value")
	}
	if typ, ok := vd.Type(); !ok || typ != "Int" {
		t.Errorf("var_decl type: got %q, %v; want Int", typ, ok)
	}
	if _, ok := vd.Location(); ok {
		t.Error("var_decl should not have a location")
	}
	wantAttrs := []ast.Attribute{
		ast.RangeAttr{Range: typeinject.Range{Start: pt(1, 5), End: typeinject.Point{File: "line", Line: 1, Column: 5}}},
		ast.TypeAttr{Name: "Int"},
		ast.Unknown{Keyword: "interface"},
		ast.TypeAttr{Name: "Int"},
		ast.Unknown{Keyword: "access", Value: "fileprivate let", HasValue: true},
		ast.Unknown{Keyword: "readImpl", Value: "stored immutable", HasValue: true},
	}
	if diff := cmp.Diff(vd.Attributes(), wantAttrs); diff != "" {
		t.Errorf("var_decl attributes (-got, +want):\n%s", diff)
	}

	lit := root.FindWhere(func(n *ast.Node) bool { return n.Name() == "integer_literal_expr" })
	if lit == nil {
		t.Fatal("integer_literal_expr not found")
	}
	if loc, ok := lit.Location(); !ok || loc != pt(1, 13) {
		t.Errorf("Location: got %v, %v; want %v", loc, ok, pt(1, 13))
	}
	if _, ok := lit.Value(); ok {
		t.Error("integer_literal_expr should not have a quoted value")
	}
}

func TestDerivedFirstMatch(t *testing.T) {
	n := ast.MustParse(`(x type='A' location=f.swift:2:1 type='B' 'first' location=f.swift:1:1 "second")`)
	if typ, _ := n.Type(); typ != "A" {
		t.Errorf("Type: got %q, want A", typ)
	}
	if loc, _ := n.Location(); loc.Line != 2 {
		t.Errorf("Location: got %v, want line 2", loc)
	}
	if v, _ := n.Value(); v != "first" {
		t.Errorf("Value: got %q, want first", v)
	}
	if len(n.Attributes()) != 4 {
		t.Errorf("Attributes: got %d, want 4", len(n.Attributes()))
	}
	if _, ok := n.Range(); ok {
		t.Error("Range should be absent")
	}
}

func TestValueEscapes(t *testing.T) {
	n := ast.MustParse(`(string_literal_expr "say \"hi\"\n")`)
	if v, _ := n.Value(); v != "say \"hi\"\n" {
		t.Errorf("Value: got %q", v)
	}
	if got, want := n.Tokens()[0].Text, `say \"hi\"\n`; got != want {
		t.Errorf("Token text: got %q, want %q", got, want)
	}

	q := ast.NewNode("string_literal_expr", nil, nil, []ast.Token{ast.Quoted("a\tb")})
	if got, want := q.String(), `(string_literal_expr "a\tb")`; got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestParseErrors(t *testing.T) {
	_, err := ast.ParseString("(source_file\n  (x type='Int' 'y)")
	var serr *parser.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Parse: got %v, want *SyntaxError", err)
	}
	if serr.Location.Line != 2 {
		t.Errorf("Error location: got %v, want line 2", serr.Location)
	}

	if _, err := ast.ParseString("(a) (b)"); !errors.Is(err, ast.ErrExtraInput) {
		t.Errorf("Parse: got %v, want %v", err, ast.ErrExtraInput)
	}
	if _, err := ast.ParseString("(a)  \n"); err != nil {
		t.Errorf("Parse with trailing space: %v", err)
	}

	deep := strings.Repeat("(x ", ast.MaxDepth+1) + strings.Repeat(")", ast.MaxDepth+1)
	if _, err := ast.ParseString(deep); !errors.Is(err, ast.ErrTooDeep) {
		t.Errorf("Parse deep: got %v, want %v", err, ast.ErrTooDeep)
	}
	// Parentheses in quoted text do not count toward the depth.
	quoted := "(x '" + strings.Repeat("(", ast.MaxDepth+1) + "')"
	if _, err := ast.ParseString(quoted); err != nil {
		t.Errorf("Parse quoted: %v", err)
	}

	mtest.MustPanic(t, func() { ast.MustParse("(unbalanced") })
}

func TestParseMultiple(t *testing.T) {
	nodes, err := ast.Parse(strings.NewReader("(a)\n(b (c))\n  "))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	var names []string
	for _, n := range nodes {
		names = append(names, n.Name())
	}
	if diff := cmp.Diff(names, []string{"a", "b"}); diff != "" {
		t.Errorf("Names (-got, +want):\n%s", diff)
	}

	if nodes, err := ast.Parse(strings.NewReader(" \n")); err != nil || len(nodes) != 0 {
		t.Errorf("Parse empty: got %d nodes, %v", len(nodes), err)
	}
	if _, err := ast.Parse(strings.NewReader("(a) b")); err == nil {
		t.Error("Parse with trailing garbage: got nil error")
	}
}

func TestDeterministic(t *testing.T) {
	a := ast.MustParse(sampleDump)
	b := ast.MustParse(sampleDump)
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(ast.Node{})); diff != "" {
		t.Errorf("Parses differ (-a, +b):\n%s", diff)
	}
}

func TestFormat(t *testing.T) {
	root := ast.MustParse(sampleDump)

	var buf strings.Builder
	if err := ast.Format(&buf, root); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	want := `(source_file "main.swift"
  (top_level_code_decl range=[main.swift:1:1 - line:1:13]
    (brace_stmt implicit range=[main.swift:1:1 - line:1:13]
      (pattern_binding_decl range=[main.swift:1:1 - line:1:13]
        (pattern_named 'value' type='Int')
        (integer_literal_expr type='Int' location=main.swift:1:13 range=[main.swift:1:13 - line:1:13] value=1 builtin_initializer=Swift.(file).Int.init(_builtinIntegerLiteral:) initializer=**NULL**))))
  (var_decl "value" range=[main.swift:1:5 - line:1:5] type='Int' interface type='Int' access=fileprivate let readImpl=stored immutable))
`
	if diff := cmp.Diff(buf.String(), want); diff != "" {
		t.Errorf("Format (-got, +want):\n%s", diff)
	}

	// The formatted text parses to an equivalent tree.
	again, err := ast.ParseString(buf.String())
	if err != nil {
		t.Fatalf("Reparse failed: %v", err)
	}
	if diff := cmp.Diff(again, root, cmp.AllowUnexported(ast.Node{})); diff != "" {
		t.Errorf("Reparse (-got, +want):\n%s", diff)
	}
	if got, want := again.String(), root.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestWalk(t *testing.T) {
	root := ast.MustParse(sampleDump)
	var names []string
	root.Walk(func(n *ast.Node) bool {
		names = append(names, n.Name())
		return n.Name() != "pattern_binding_decl"
	})
	want := []string{"source_file", "top_level_code_decl", "brace_stmt", "pattern_binding_decl", "var_decl"}
	if diff := cmp.Diff(names, want); diff != "" {
		t.Errorf("Walk (-got, +want):\n%s", diff)
	}
}
