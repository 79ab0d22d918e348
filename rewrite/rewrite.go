// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package rewrite writes inferred types into Swift source as explicit
// annotations.
//
// A Rewriter pairs the tree of a compiler dump with the annotation sites of a
// source file (see package syntax), and plans an edit for each site whose
// type the dump records:
//
//   - A local binding without a type gets ": T" after its name.
//   - An unqualified call to a generic type's initializer has its callee
//     replaced by the full instantiation, for example Box<Int, String>.
//   - A closure signature gets types for its untyped parameters, and a result
//     type if it has none.
//
// Sites that already carry an annotation are not changed. A site that cannot
// be matched to a typed node of the dump is left as written, and the miss is
// logged at debug level.
package rewrite

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/ast"
	"github.com/creachadair/typeinject/query"
	"github.com/creachadair/typeinject/syntax"
	"github.com/creachadair/typeinject/typeexpr"
)

// Kind is a set of the kinds of annotation sites to rewrite.
type Kind byte

const (
	Bindings     Kind = 1 << iota // local let and var bindings
	Constructors                  // generic constructor calls
	Closures                      // closure signatures

	AllKinds = Bindings | Constructors | Closures
)

var kindNames = []struct {
	kind Kind
	name string
}{
	{Bindings, "bindings"},
	{Constructors, "constructors"},
	{Closures, "closures"},
}

// String renders k as a comma-separated list of kind names.
func (k Kind) String() string {
	var names []string
	for _, kn := range kindNames {
		if k&kn.kind != 0 {
			names = append(names, kn.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

// ParseKinds parses a comma-separated list of kind names, as rendered by the
// String method of Kind. The name "all" denotes all kinds.
func ParseKinds(s string) (Kind, error) {
	var k Kind
	for _, word := range strings.Split(s, ",") {
		word = strings.TrimSpace(word)
		if word == "all" {
			k |= AllKinds
			continue
		}
		found := false
		for _, kn := range kindNames {
			if kn.name == word || strings.TrimSuffix(kn.name, "s") == word {
				k |= kn.kind
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown annotation kind %q", word)
		}
	}
	return k, nil
}

// Options control the behavior of a Rewriter. A nil *Options provides
// default values as described.
type Options struct {
	// FileName is the name of the source file as recorded in the locations
	// of the dump. If empty, the value of the root node is used if it has
	// one, otherwise the name of the syntax.File being rewritten.
	FileName string

	// Kinds selects which annotation sites to rewrite. If zero, all kinds
	// are rewritten.
	Kinds Kind

	// Logger, if non-nil, receives a debug record for each site that is
	// left unchanged because the dump does not supply its type.
	Logger *slog.Logger
}

func (o *Options) fileName() string {
	if o == nil {
		return ""
	}
	return o.FileName
}

func (o *Options) kinds() Kind {
	if o == nil || o.Kinds == 0 {
		return AllKinds
	}
	return o.Kinds
}

func (o *Options) logger() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// A Rewriter plans annotation edits for source files described by the tree
// of a compiler dump. A Rewriter does not modify the tree, and is safe for
// concurrent use by multiple goroutines.
type Rewriter struct {
	root  *ast.Node
	file  string
	kinds Kind
	log   *slog.Logger
}

// New constructs a Rewriter for the dump tree rooted at root.
func New(root *ast.Node, opts *Options) *Rewriter {
	file := opts.fileName()
	if file == "" {
		file, _ = root.Value()
	}
	return &Rewriter{root: root, file: file, kinds: opts.kinds(), log: opts.logger()}
}

// Source rewrites f according to the dump tree rooted at root, and returns
// the resulting source text. It is shorthand for New(root, opts).Rewrite(f).
func Source(root *ast.Node, f syntax.File, opts *Options) []byte {
	return New(root, opts).Rewrite(f)
}

// Edits returns the edits to f, in source order.
func (r *Rewriter) Edits(f syntax.File) []syntax.Edit { return r.plan(f).Edits() }

// Rewrite returns the text of f with the edits applied. The text outside the
// edited spans is unchanged.
func (r *Rewriter) Rewrite(f syntax.File) []byte { return r.plan(f).Bytes() }

// plan queues the edits for f into a new buffer.
func (r *Rewriter) plan(f syntax.File) *syntax.Buffer {
	file := r.file
	if file == "" {
		file = f.Name()
	}
	e := &planner{Rewriter: r, file: file, src: f.Source(), buf: syntax.NewBuffer(f.Source())}

	// Constructor calls come first, so that bindings initialized by a
	// rewritten call can be recognized.
	if r.kinds&Constructors != 0 {
		for _, c := range f.Calls() {
			e.constructor(c)
		}
	}
	if r.kinds&Bindings != 0 {
		for _, b := range f.Bindings() {
			e.binding(b)
		}
	}
	if r.kinds&Closures != 0 {
		for _, c := range f.Closures() {
			e.closure(c)
		}
	}
	return e.buf
}

// A planner holds the state of planning edits for a single file.
type planner struct {
	*Rewriter
	file  string
	src   []byte
	buf   *syntax.Buffer
	ctors []typeinject.Span // spans of the rewritten constructor calls
}

func (e *planner) point(lc typeinject.LineCol) typeinject.Point { return typeinject.At(e.file, lc) }

func (e *planner) text(s typeinject.Span) string { return string(e.src[s.Pos:s.End]) }

func (e *planner) miss(kind, name string, at typeinject.Point, reason string) {
	e.log.Debug("type not found", "kind", kind, "name", name, "at", at.String(), "reason", reason)
}

func (e *planner) binding(b syntax.Binding) {
	at := e.point(b.At)
	switch {
	case b.Typed:
		return
	case b.Tuple:
		e.miss("binding", e.text(b.NameSpan), at, "tuple patterns are not supported")
		return
	}
	for _, s := range e.ctors {
		if s == b.Init {
			return // the initializer names the type explicitly
		}
	}
	n := e.root.Find(at)
	if n == nil {
		e.miss("binding", b.Name, at, "no node at position")
		return
	}
	pat := n.FindWhere(query.All(query.Name("pattern_named"), query.Value(b.Name)))
	if pat == nil {
		e.miss("binding", b.Name, at, "no named pattern")
		return
	}
	typ, ok := pat.Type()
	if !ok {
		e.miss("binding", b.Name, at, "pattern has no type")
		return
	}
	s, ok := printType(typ)
	if !ok {
		e.miss("binding", b.Name, at, "invalid type "+typ)
		return
	}
	e.buf.Insert(b.NameSpan.End, ": "+s)
}

func (e *planner) constructor(c syntax.Call) {
	at := e.point(c.At)
	n := e.root.Find(at)
	if n == nil {
		e.miss("constructor", c.Callee, at, "no node at position")
		return
	}
	if n.FindWhere(query.Name("constructor_ref_call_expr")) == nil {
		e.miss("constructor", c.Callee, at, "not a constructor call")
		return
	}
	typ, ok := n.Type()
	if !ok {
		e.miss("constructor", c.Callee, at, "call has no type")
		return
	}
	t, err := typeexpr.Parse(typ)
	if err != nil {
		e.miss("constructor", c.Callee, at, err.Error())
		return
	}
	s, ok := instantiation(c.Callee, t)
	if !ok {
		e.miss("constructor", c.Callee, at, "type "+typ+" is not generic")
		return
	}
	e.buf.Replace(c.CalleeSpan.Pos, c.CalleeSpan.End, s)
	e.ctors = append(e.ctors, c.Span)
}

// instantiation returns the explicit generic form of a constructed type t
// for a call to callee. Sugared standard library types are spelled out if
// the callee names them.
func instantiation(callee string, t typeexpr.Type) (string, bool) {
	var base string
	var args []typeexpr.Type
	switch t := t.(type) {
	case typeexpr.Named:
		return t.String(), len(t.Args) != 0
	case typeexpr.Array:
		base, args = "Array", []typeexpr.Type{t.Elem}
	case typeexpr.Dict:
		base, args = "Dictionary", []typeexpr.Type{t.Key, t.Value}
	case typeexpr.Optional:
		if t.Implicit {
			return "", false
		}
		base, args = "Optional", []typeexpr.Type{t.Elem}
	default:
		return "", false
	}
	if callee != base {
		return "", false
	}
	return typeexpr.Named{Name: base, Args: args}.String(), true
}

func (e *planner) closure(c syntax.Closure) {
	at := e.point(c.At)
	n := e.root.Find(at)
	if n == nil {
		e.miss("closure", "", at, "no node at position")
		return
	}
	ce := n.FindWhere(query.All(query.Name("closure_expr"), query.At(at)))
	if ce == nil {
		e.miss("closure", "", at, "no closure at position")
		return
	}
	typ, ok := ce.Type()
	if !ok {
		e.miss("closure", "", at, "closure has no type")
		return
	}
	t, err := typeexpr.Parse(typ)
	if err != nil {
		e.miss("closure", "", at, err.Error())
		return
	}
	ft, ok := t.(typeexpr.Func)
	if !ok {
		e.miss("closure", "", at, "type "+typ+" is not a function type")
		return
	}

	// A closure whose single parameter is a tuple may destructure it.
	params := ft.Params
	if len(params) == 1 && len(c.Params) > 1 {
		if tup, ok := params[0].Type.(typeexpr.Tuple); ok && len(tup.Elems) == len(c.Params) {
			params = tup.Elems
		}
	}
	if len(params) != len(c.Params) {
		e.miss("closure", "", at, fmt.Sprintf("closure has %d parameters, type has %d", len(c.Params), len(params)))
		return
	}

	retype := !c.Parenthesized
	for _, p := range c.Params {
		if p.Name != "_" && !p.Typed {
			retype = true
		}
	}
	if retype {
		ps := make([]string, len(c.Params))
		for i, p := range c.Params {
			switch {
			case p.Typed, p.Name == "_":
				ps[i] = e.text(p.Span)
			default:
				ps[i] = e.text(p.Span) + ": " + paramType(params[i])
			}
		}
		clause := "(" + strings.Join(ps, ", ") + ")"
		if c.ParamSpan.Len() == 0 {
			clause = " " + clause
		}
		e.buf.Replace(c.ParamSpan.Pos, c.ParamSpan.End, clause)
	}

	var tail string
	if c.Effects == "" {
		tail += ft.Effects()
	}
	if !c.HasReturn {
		tail += " -> " + ft.Result.String()
	}
	if tail != "" {
		e.buf.Insert(c.ReturnAt, tail)
	}
}

// paramType renders the type of a closure parameter as written in a
// closure signature. Ownership specifiers that cannot be written in source
// are omitted.
func paramType(p typeexpr.Elem) string {
	var sb strings.Builder
	for _, s := range p.Specifiers {
		if strings.HasPrefix(s, "__") {
			continue
		}
		sb.WriteString(s)
		sb.WriteByte(' ')
	}
	sb.WriteString(p.Type.String())
	if p.Variadic {
		sb.WriteString("...")
	}
	return sb.String()
}

// printType renders the type text recorded in the dump in canonical form.
// If the text is not a valid type expression, it is used verbatim, unless it
// marks an unresolved type.
func printType(typ string) (string, bool) {
	if t, err := typeexpr.Parse(typ); err == nil {
		return t.String(), true
	}
	if typ == "" || strings.Contains(typ, "<<") {
		return "", false
	}
	return typ, true
}
