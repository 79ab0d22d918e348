// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/typeinject/parser"
)

// MaxDepth is the maximum nesting depth of nodes accepted by the parser.
const MaxDepth = 10000

var (
	// ErrExtraInput is reported by ParseSingle when non-space input follows
	// the first node.
	ErrExtraInput = errors.New("extra input after node")

	// ErrTooDeep is reported when the input nests more than MaxDepth nodes.
	ErrTooDeep = errors.New("nodes nested too deeply")
)

// Parse parses and returns all the top-level nodes of the dump text from r.
// Parse reports a *parser.SyntaxError if the input is malformed. An input
// that contains only whitespace yields no nodes and no error.
func Parse(r io.Reader) ([]*Node, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return parseAll(string(text))
}

// ParseSingle parses a single node from r. It reports ErrExtraInput if any
// input other than whitespace follows the node.
func ParseSingle(r io.Reader) (*Node, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(text))
}

// ParseString parses a single node from text, as ParseSingle.
func ParseString(text string) (*Node, error) {
	if err := checkDepth(text); err != nil {
		return nil, err
	}
	raw, rest, err := parser.Run(parser.Right(spaces, nodeGrammar), text)
	if err != nil {
		return nil, fmt.Errorf("parse node: %w", err)
	} else if strings.TrimSpace(rest) != "" {
		return nil, fmt.Errorf("at offset %d: %w", len(text)-len(rest), ErrExtraInput)
	}
	return raw.build(), nil
}

// MustParse parses a single node from text, and panics if that fails.
// It is intended for use in tests and program initialization.
func MustParse(text string) *Node {
	n, err := ParseString(text)
	if err != nil {
		panic(fmt.Sprintf("ast.MustParse: %v", err))
	}
	return n
}

func parseAll(text string) ([]*Node, error) {
	if err := checkDepth(text); err != nil {
		return nil, err
	}
	raws, err := parser.Complete(parser.Many(parser.Right(spaces, nodeGrammar)), text)
	if err != nil {
		return nil, fmt.Errorf("parse dump: %w", err)
	}
	nodes := make([]*Node, len(raws))
	for i, r := range raws {
		nodes[i] = r.build()
	}
	return nodes, nil
}

// checkDepth reports ErrTooDeep if text nests parentheses more than MaxDepth
// levels outside of quoted text. Malformed quoting is left for the parser to
// diagnose.
func checkDepth(text string) error {
	var depth int
	var quote byte // the open quotation mark, or 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == '"' && c == '\\':
			i++ // skip escaped byte
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			depth++
			if depth > MaxDepth {
				return fmt.Errorf("at offset %d: %w", i, ErrTooDeep)
			}
		case c == ')':
			depth--
		}
	}
	return nil
}
