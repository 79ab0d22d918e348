// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package rewrite_test

import (
	"testing"

	"github.com/creachadair/typeinject/ast"
	"github.com/creachadair/typeinject/internal/testutil"
	"github.com/creachadair/typeinject/rewrite"
	"github.com/creachadair/typeinject/syntax/swift"
)

func BenchmarkRewrite(b *testing.B) {
	fx := testutil.LoadFixture(b, "testdata/signatures.txtar")
	dump, src := fx.Text("dump.txt"), fx.Bytes("input.swift")
	b.Logf("Benchmark input: %d bytes of dump, %d bytes of source", len(dump), len(src))

	b.Run("ParseDump", func(b *testing.B) {
		for b.Loop() {
			if _, err := ast.ParseString(dump); err != nil {
				b.Fatalf("Parse dump: %v", err)
			}
		}
	})

	b.Run("ScanSource", func(b *testing.B) {
		for b.Loop() {
			if _, err := swift.Parse("main.swift", src); err != nil {
				b.Fatalf("Parse source: %v", err)
			}
		}
	})

	b.Run("Rewrite", func(b *testing.B) {
		root := ast.MustParse(dump)
		f, err := swift.Parse("main.swift", src)
		if err != nil {
			b.Fatalf("Parse source: %v", err)
		}
		for b.Loop() {
			rewrite.Source(root, f, nil)
		}
	})
}
