package query

import (
	"slices"

	"github.com/creachadair/typeinject"
	"github.com/creachadair/typeinject/ast"
)

// A Pred is a predicate on nodes, suitable for use with Node.FindWhere.
// As a Query, a Pred selects the input nodes that satisfy it.
type Pred func(*ast.Node) bool

func (p Pred) eval(ns []*ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, n := range ns {
		if p(n) {
			out = append(out, n)
		}
	}
	return out
}

// Name returns a predicate that reports true for nodes with any of the given
// names.
func Name(names ...string) Pred {
	return func(n *ast.Node) bool { return slices.Contains(names, n.Name()) }
}

// HasType reports true for nodes that have a type attribute.
func HasType() Pred {
	return func(n *ast.Node) bool { _, ok := n.Type(); return ok }
}

// TypeIs returns a predicate that reports true for nodes whose type is s.
func TypeIs(s string) Pred {
	return func(n *ast.Node) bool { t, ok := n.Type(); return ok && t == s }
}

// Value returns a predicate that reports true for nodes whose quoted value
// is v.
func Value(v string) Pred {
	return func(n *ast.Node) bool { w, ok := n.Value(); return ok && w == v }
}

// At returns a predicate that reports true for nodes whose location is p.
func At(p typeinject.Point) Pred {
	return func(n *ast.Node) bool { loc, ok := n.Location(); return ok && loc == p }
}

// Has reports true for nodes that have at least one attribute of type A.
func Has[A ast.Attribute]() Pred {
	return func(n *ast.Node) bool {
		for _, a := range n.Attributes() {
			if _, ok := a.(A); ok {
				return true
			}
		}
		return false
	}
}

// Exists returns a predicate that reports true if the query described by
// keys selects at least one node from its argument. The arguments have the
// same constraints as Path.
func Exists(keys ...any) Pred {
	q := Path(keys...)
	return func(n *ast.Node) bool { return len(q.eval([]*ast.Node{n})) != 0 }
}

// All reports true if every one of ps is true. All() is always true.
func All(ps ...Pred) Pred {
	return func(n *ast.Node) bool {
		for _, p := range ps {
			if !p(n) {
				return false
			}
		}
		return true
	}
}

// Any reports true if any one of ps is true. Any() is always false.
func Any(ps ...Pred) Pred {
	return func(n *ast.Node) bool {
		for _, p := range ps {
			if p(n) {
				return true
			}
		}
		return false
	}
}

// Not reports the negation of p.
func Not(p Pred) Pred { return func(n *ast.Node) bool { return !p(n) } }
