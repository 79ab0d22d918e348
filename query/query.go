// Package query implements structural queries over compiler dump trees.
//
// A query describes a set of nodes reached from a starting node, such as the
// children with a given name, the nth child, or every descendant satisfying
// a predicate. Evaluating a query against a tree returns the selected nodes
// in tree order.
//
// The simplest query is a "path", a sequence of child names and/or child
// indices that leads down from the root. For example, given the dump:
//
//	(source_file "main.swift"
//	  (top_level_code_decl
//	    (brace_stmt (pattern_binding_decl (pattern_named 'x') ...))))
//
// the query
//
//	query.Path("top_level_code_decl", "brace_stmt", 0, "pattern_named")
//
// selects the pattern_named node.
package query

import "github.com/creachadair/typeinject/ast"

// Eval evaluates the given query beginning from root, returning the selected
// nodes. The result is empty if the query selects nothing.
func Eval(root *ast.Node, q Query) []*ast.Node { return q.eval([]*ast.Node{root}) }

// First evaluates the given query beginning from root, and returns the first
// selected node or nil.
func First(root *ast.Node, q Query) *ast.Node {
	if ns := Eval(root, q); len(ns) != 0 {
		return ns[0]
	}
	return nil
}

// A Query describes a traversal of a dump tree. A query maps a set of input
// nodes to a set of output nodes.
type Query interface {
	eval([]*ast.Node) []*ast.Node
}

// Path traverses a sequence of child names or child indices from the root.
// If no keys are specified, the root is selected. Each key must be a string
// (the children with that name), an int (the child at that index), a Pred
// (the input nodes satisfying it), or a Query.
func Path(keys ...any) Query {
	if len(keys) == 1 {
		return pathElem(keys[0])
	}
	pq := make(Seq, 0, len(keys))
	for _, key := range keys {
		q := pathElem(key)
		if sq, ok := q.(Seq); ok {
			pq = append(pq, sq...)
		} else {
			pq = append(pq, q)
		}
	}
	return pq
}

func pathElem(key any) Query {
	switch t := key.(type) {
	case string:
		return childName(t)
	case int:
		return nthQuery(t)
	case Pred:
		return t
	case func(*ast.Node) bool:
		return Pred(t)
	case Query:
		return t
	default:
		panic("invalid path element")
	}
}

type childName string

func (c childName) eval(ns []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range ns {
		for _, kid := range n.Children() {
			if kid.Name() == string(c) {
				out = append(out, kid)
			}
		}
	}
	return out
}

// Nth selects the child at offset i of each input node. Negative offsets
// select from the end of the children.
func Nth(i int) Query { return nthQuery(i) }

type nthQuery int

func (nq nthQuery) eval(ns []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range ns {
		kids := n.Children()
		idx := int(nq)
		if idx < 0 {
			idx += len(kids)
		}
		if idx >= 0 && idx < len(kids) {
			out = append(out, kids[idx])
		}
	}
	return out
}

// Children selects all the children of each input node.
func Children() Query { return kidsQuery{} }

type kidsQuery struct{}

func (kidsQuery) eval(ns []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range ns {
		out = append(out, n.Children()...)
	}
	return out
}

// Seq is a sequential composition of queries. An empty sequence selects its
// input; otherwise, each query is applied to the nodes selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(ns []*ast.Node) []*ast.Node {
	cur := ns
	for _, sq := range q {
		if len(cur) == 0 {
			break
		}
		cur = sq.eval(cur)
	}
	return cur
}

// Alt is a query that selects among a sequence of alternatives. The result
// of the first alternative that selects any nodes is returned. If there are
// no alternatives, the query selects nothing.
type Alt []Query

func (q Alt) eval(ns []*ast.Node) []*ast.Node {
	for _, alt := range q {
		if out := alt.eval(ns); len(out) != 0 {
			return out
		}
	}
	return nil
}

// Recur applies a query to each input node and each of its recursive
// descendants, in preorder, and returns the concatenated results. The
// arguments have the same constraints as Path.
func Recur(keys ...any) Query { return recQuery{Path(keys...)} }

type recQuery struct{ Query }

func (q recQuery) eval(ns []*ast.Node) []*ast.Node {
	var out []*ast.Node

	// N.B. Push in reverse order, so we visit in tree order.
	stk := make([]*ast.Node, 0, len(ns))
	for i := len(ns) - 1; i >= 0; i-- {
		stk = append(stk, ns[i])
	}
	for len(stk) != 0 {
		next := stk[len(stk)-1]
		stk = stk[:len(stk)-1]

		out = append(out, q.Query.eval([]*ast.Node{next})...)

		kids := next.Children()
		for i := len(kids) - 1; i >= 0; i-- {
			stk = append(stk, kids[i])
		}
	}
	return out
}
