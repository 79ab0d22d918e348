// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"bufio"
	"io"
	"strings"
)

// Format writes the tree rooted at n to w in dump syntax, one node per line
// with children indented two spaces under their parent.
//
// Within each node the tokens are written first, then the attributes, then
// the children. The result parses to a tree equivalent to n, except that
// the spacing between groups of a declaration substitution may change.
func Format(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	writeNode(bw, n, 0)
	bw.WriteByte('\n')
	return bw.Flush()
}

type byteWriter interface {
	io.StringWriter
	io.ByteWriter
}

// writeNode writes n at the given indentation level. A negative level
// writes the whole tree on a single line.
func writeNode(w byteWriter, n *Node, level int) {
	w.WriteByte('(')
	w.WriteString(n.name)
	for _, t := range n.tokens {
		w.WriteByte(' ')
		w.WriteString(t.String())
	}
	for _, a := range n.attrs {
		w.WriteByte(' ')
		w.WriteString(a.String())
	}
	for _, c := range n.children {
		if level < 0 {
			w.WriteByte(' ')
			writeNode(w, c, level)
			continue
		}
		w.WriteByte('\n')
		w.WriteString(strings.Repeat("  ", level+1))
		writeNode(w, c, level+1)
	}
	w.WriteByte(')')
}
