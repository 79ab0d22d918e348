// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package swift_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/syntax"
	"github.com/creachadair/typeinject/syntax/swift"
	"github.com/google/go-cmp/cmp"
)

func text(src string, s typeinject.Span) string { return src[s.Pos:s.End] }

func bindings(src string, f syntax.File) []string {
	var out []string
	for _, b := range f.Bindings() {
		out = append(out, fmt.Sprintf("%s %v typed=%v tuple=%v name=%q init=%q",
			b.Name, b.At, b.Typed, b.Tuple, text(src, b.NameSpan), text(src, b.Init)))
	}
	return out
}

func calls(src string, f syntax.File) []string {
	var out []string
	for _, c := range f.Calls() {
		out = append(out, fmt.Sprintf("%s %v callee=%q call=%q",
			c.Callee, c.At, text(src, c.CalleeSpan), text(src, c.Span)))
	}
	return out
}

func closures(src string, f syntax.File) []string {
	var out []string
	for _, c := range f.Closures() {
		var ps []string
		for _, p := range c.Params {
			if p.Typed {
				ps = append(ps, p.Name+":"+p.Type)
			} else {
				ps = append(ps, p.Name)
			}
		}
		out = append(out, fmt.Sprintf("%v paren=%v params=%s effects=%q return=%v clause=%q before=%q",
			c.At, c.Parenthesized, strings.Join(ps, ","), c.Effects, c.HasReturn,
			text(src, c.ParamSpan), src[c.ParamSpan.Pos:c.ReturnAt]))
	}
	return out
}

func mustParse(t *testing.T, src string) *swift.File {
	t.Helper()
	f, err := swift.Parse("test.swift", []byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return f
}

func TestBindings(t *testing.T) {
	const src = "let value = 1\n" +
		"var `default` = \"x\"\n" +
		"let typed: Int = 2\n" +
		"let (a, b) = (1, 2)\n" +
		"let a = 1, b = Box(1)\n" +
		"var computed: [String: Int] {\n  return [:]\n}\n" +
		"let chained = xs\n  .map { $0 }\n  .count\n"
	f := mustParse(t, src)
	if got := f.Name(); got != "test.swift" {
		t.Errorf("Name: got %q, want test.swift", got)
	}
	if got := string(f.Source()); got != src {
		t.Errorf("Source: got %q, want %q", got, src)
	}

	want := []string{
		`value 1:5 typed=false tuple=false name="value" init="1"`,
		"default 2:5 typed=false tuple=false name=\"`default`\" init=\"\\\"x\\\"\"",
		`typed 3:5 typed=true tuple=false name="typed" init="2"`,
		` 4:5 typed=false tuple=true name="(a, b)" init="(1, 2)"`,
		`a 5:5 typed=false tuple=false name="a" init="1"`,
		`b 5:12 typed=false tuple=false name="b" init="Box(1)"`,
		`computed 6:5 typed=true tuple=false name="computed" init=""`,
		`chained 9:5 typed=false tuple=false name="chained" init="xs\n  .map { $0 }\n  .count"`,
	}
	if diff := cmp.Diff(bindings(src, f), want); diff != "" {
		t.Errorf("Bindings (-got, +want):\n%s", diff)
	}
	if diff := cmp.Diff(calls(src, f), []string{
		`Box 5:16 callee="Box" call="Box(1)"`,
	}); diff != "" {
		t.Errorf("Calls (-got, +want):\n%s", diff)
	}
}

func TestConditions(t *testing.T) {
	const src = `if let x = opt, let y { }
guard let z = f() else { return }
switch v { case let .some(w): break }
for case let q? in qs {}
`
	f := mustParse(t, src)
	want := []string{
		`x 1:8 typed=false tuple=false name="x" init="opt"`,
		`z 2:11 typed=false tuple=false name="z" init="f()"`,
	}
	if diff := cmp.Diff(bindings(src, f), want); diff != "" {
		t.Errorf("Bindings (-got, +want):\n%s", diff)
	}
	if got := f.Closures(); len(got) != 0 {
		t.Errorf("Closures: got %d, want none", len(got))
	}
}

func TestPatternBindings(t *testing.T) {
	// Patterns that bind a matched value take no annotation. Only bindings
	// with an initializer or a declared type are reported.
	const src = `switch v {
case .some(let x): break
case let (a, b): break
}
do { try f() } catch let err { }
do { try g() } catch let e as MyError { }
var declared: Int
let late: String
`
	f := mustParse(t, src)
	want := []string{
		`declared 7:5 typed=true tuple=false name="declared" init=""`,
		`late 8:5 typed=true tuple=false name="late" init=""`,
	}
	if diff := cmp.Diff(bindings(src, f), want); diff != "" {
		t.Errorf("Bindings (-got, +want):\n%s", diff)
	}
}

func TestCalls(t *testing.T) {
	const src = `struct Box<T> { init(_ v: T) {} }
enum E { case Tagged(Int) }
_ = Box(1)
_ = Box<Int>(1)
_ = Swift.Box(1)
_ = Box (1)
_ = box(1)
@Wrapper(1) var w = 0
_ = Outer(Inner(1), [Pair(x: "(")])
`
	f := mustParse(t, src)
	want := []string{
		`Box 3:5 callee="Box" call="Box(1)"`,
		`Outer 9:5 callee="Outer" call="Outer(Inner(1), [Pair(x: \"(\")])"`,
		`Inner 9:11 callee="Inner" call="Inner(1)"`,
		`Pair 9:22 callee="Pair" call="Pair(x: \"(\")"`,
	}
	if diff := cmp.Diff(calls(src, f), want); diff != "" {
		t.Errorf("Calls (-got, +want):\n%s", diff)
	}
}

func TestClosures(t *testing.T) {
	const src = `let a = xs.map { (i) in (String(i), i) }
xs.reduce(into: []) { result, i in result.append(i) }
f { [weak self] x, y async throws -> Int in 1 }
g { (a: Int, _ b: [String: Int]) -> Void in }
h { () in }
k { [unowned self] in }
xs.map { $0 + 1 }
let s = "{ x in \(y.map { z in z }) }"
/* { p in } */ // { q in }
func f() { for x in xs {} }
`
	f := mustParse(t, src)
	want := []string{
		`1:16 paren=true params=i effects="" return=false clause="(i)" before="(i)"`,
		`2:21 paren=false params=result,i effects="" return=false clause="result, i" before="result, i"`,
		`3:3 paren=false params=x,y effects="async throws" return=true clause="x, y" before="x, y async throws"`,
		`4:3 paren=true params=a:Int,b:[String: Int] effects="" return=true clause="(a: Int, _ b: [String: Int])" before="(a: Int, _ b: [String: Int])"`,
		`5:3 paren=true params= effects="" return=false clause="()" before="()"`,
		`6:3 paren=false params= effects="" return=false clause="" before=""`,
	}
	if diff := cmp.Diff(closures(src, f), want); diff != "" {
		t.Errorf("Closures (-got, +want):\n%s", diff)
	}
	if diff := cmp.Diff(calls(src, f), []string{
		`String 1:26 callee="String" call="String(i)"`,
	}); diff != "" {
		t.Errorf("Calls (-got, +want):\n%s", diff)
	}
	if diff := cmp.Diff(bindings(src, f), []string{
		`a 1:5 typed=false tuple=false name="a" init="xs.map { (i) in (String(i), i) }"`,
		`s 8:5 typed=false tuple=false name="s" init="\"{ x in \\(y.map { z in z }) }\""`,
	}); diff != "" {
		t.Errorf("Bindings (-got, +want):\n%s", diff)
	}
}

func TestStrings(t *testing.T) {
	const src = "let a = \"\"\"\n  { x in }\n  \"\"\"\n" +
		"let b = #\"a \"quoted\" \\(x) { y in }\"#\n" +
		"let c = \"\\(f(\"}\")) { z in }\"\n" +
		"let d = \"\u00e9\", e = 1\n"
	f := mustParse(t, src)
	want := []string{
		`a 1:5 typed=false tuple=false name="a" init="\"\"\"\n  { x in }\n  \"\"\""`,
		`b 4:5 typed=false tuple=false name="b" init="#\"a \"quoted\" \\(x) { y in }\"#"`,
		`c 5:5 typed=false tuple=false name="c" init="\"\\(f(\"}\")) { z in }\""`,
		`d 6:5 typed=false tuple=false name="d" init="\"é\""`,
		`e 6:15 typed=false tuple=false name="e" init="1"`,
	}
	if diff := cmp.Diff(bindings(src, f), want); diff != "" {
		t.Errorf("Bindings (-got, +want):\n%s", diff)
	}
	if got := f.Closures(); len(got) != 0 {
		t.Errorf("Closures: got %d, want none", len(got))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"let s = \"abc\n", "test.swift:1:9: unterminated string literal"},
		{"let s = \"\"\"\nabc\n", "test.swift:1:9: unterminated string literal"},
		{"let x = 1 /* abc", "test.swift:1:11: unterminated comment"},
		{"let `x = 1", "test.swift:1:5: unterminated quoted identifier"},
		{"let s = \"\\(f(\"", "test.swift:1:14: unterminated string literal"},
	}
	for _, tc := range tests {
		f, err := swift.Parse("test.swift", []byte(tc.input))
		if err == nil {
			t.Errorf("Parse %q: got %+v, want error", tc.input, f)
			continue
		}
		if got := err.Error(); got != tc.want {
			t.Errorf("Parse %q: got error %q, want %q", tc.input, got, tc.want)
		}
	}
}
