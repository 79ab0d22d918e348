// Package testutil defines support code for unit tests.
package testutil

import (
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

// A Fixture is a named collection of test files read from a txtar archive.
type Fixture struct {
	Name    string // the base name of the archive, without extension
	Comment string // the archive comment, with surrounding space removed
	files   map[string][]byte
}

// Has reports whether f contains a file with the given name.
func (f *Fixture) Has(name string) bool { _, ok := f.files[name]; return ok }

// Names returns the names of the files in f, in lexicographic order.
func (f *Fixture) Names() []string { return slices.Sorted(maps.Keys(f.files)) }

// Bytes returns the contents of the named file, or nil if there is none.
func (f *Fixture) Bytes(name string) []byte { return f.files[name] }

// Text returns the contents of the named file as a string.
func (f *Fixture) Text(name string) string { return string(f.files[name]) }

// LoadFixture reads the txtar archive at path. It fails t if the archive
// cannot be read, or if it contains a duplicate file name.
func LoadFixture(t testing.TB, path string) *Fixture {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("Load fixture: %v", err)
	}
	fx := &Fixture{
		Name:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Comment: strings.TrimSpace(string(ar.Comment)),
		files:   make(map[string][]byte),
	}
	for _, f := range ar.Files {
		if fx.Has(f.Name) {
			t.Fatalf("Fixture %q: duplicate file %q", path, f.Name)
		}
		fx.files[f.Name] = f.Data
	}
	return fx
}

// LoadFixtures reads all the txtar archives matching the glob pattern. It
// fails t if none match.
func LoadFixtures(t testing.TB, pattern string) []*Fixture {
	t.Helper()
	paths, err := filepath.Glob(pattern)
	if err != nil {
		t.Fatalf("Glob %q: %v", pattern, err)
	} else if len(paths) == 0 {
		t.Fatalf("No fixtures match %q", pattern)
	}
	out := make([]*Fixture, len(paths))
	for i, path := range paths {
		out[i] = LoadFixture(t, path)
	}
	return out
}
