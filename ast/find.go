// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import "github.com/creachadair/typeinject"

// Find returns the node of the tree rooted at n that is recorded at point p,
// or nil if there is none.
//
// A node with a location is returned if its location equals p. If its
// location is after p, neither it nor any of its descendants is considered.
// Otherwise, the children are searched in order and the first hit is
// returned. A node with a range but no location returns the first hit among
// its children, or itself if its range contains p. Other nodes return the
// first hit among their children.
//
// When several nested nodes share the location p, the outermost is found.
func (n *Node) Find(p typeinject.Point) *Node {
	if loc, ok := n.Location(); ok {
		switch {
		case loc == p:
			return n
		case loc.After(p):
			return nil
		}
		return n.findChildren(p)
	}
	if rng, ok := n.Range(); ok {
		if hit := n.findChildren(p); hit != nil {
			return hit
		} else if rng.Contains(p) {
			return n
		}
		return nil
	}
	return n.findChildren(p)
}

func (n *Node) findChildren(p typeinject.Point) *Node {
	for _, c := range n.children {
		if hit := c.Find(p); hit != nil {
			return hit
		}
	}
	return nil
}

// FindWhere returns the first node of the tree rooted at n that satisfies
// pred, or nil if there is none.
//
// The search order is: n itself, then each direct child of n, then the
// subtrees of the children in order, recursively. A direct child that
// satisfies pred is therefore preferred to a deeper match in an earlier
// sibling.
func (n *Node) FindWhere(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, c := range n.children {
		if pred(c) {
			return c
		}
	}
	for _, c := range n.children {
		if hit := c.FindWhere(pred); hit != nil {
			return hit
		}
	}
	return nil
}
