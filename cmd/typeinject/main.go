// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Program typeinject rewrites a Swift source file so that the types inferred
// by the compiler are written as explicit annotations.
//
// Usage:
//
//	swiftc -dump-ast main.swift > main.dump
//	typeinject -dump main.dump main.swift
//
// The rewritten source is written to stdout, or back to the source file if
// -w is set. With "-dump -" the dump is read from stdin.
//
// Settings may also be read from a JWCC (JSON with comments and trailing
// commas) config file given by -config:
//
//	{
//	  // Rewrite only these kinds of site.
//	  "only": "bindings,closures",
//	  "verbose": true,
//	}
//
// Flags set on the command line override the config file.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/creachadair/typeinject/ast"
	"github.com/creachadair/typeinject/rewrite"
	"github.com/creachadair/typeinject/syntax/swift"
	"github.com/tailscale/hujson"
)

// settings are the options of a single run.
type settings struct {
	Dump     string `json:"dump"`
	Only     string `json:"only"`
	FileName string `json:"fileName"`
	Write    bool   `json:"write"`
	Verbose  bool   `json:"verbose"`
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "typeinject: %v\n", err)
		}
		os.Exit(2)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var s settings
	fs := flag.NewFlagSet("typeinject", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Read settings from this JWCC config file")
	fs.StringVar(&s.Dump, "dump", "", `Compiler dump file ("-" for stdin)`)
	fs.StringVar(&s.Only, "only", "", "Rewrite only these kinds (bindings, constructors, closures)")
	fs.StringVar(&s.FileName, "file-name", "", "Source file name as recorded in the dump")
	fs.BoolVar(&s.Write, "w", false, "Write the result back to the source file")
	fs.BoolVar(&s.Verbose, "v", false, "Log sites that could not be annotated")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: typeinject [options] -dump <file> <source.swift>\n\nOptions:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath != "" {
		if err := loadConfig(*configPath, fs, &s); err != nil {
			return err
		}
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("exactly one source file is required")
	} else if s.Dump == "" {
		return errors.New("no dump file specified (-dump)")
	}

	opts := &rewrite.Options{FileName: s.FileName}
	if s.Only != "" {
		k, err := rewrite.ParseKinds(s.Only)
		if err != nil {
			return err
		}
		opts.Kinds = k
	}
	level := slog.LevelInfo
	if s.Verbose {
		level = slog.LevelDebug
	}
	opts.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	path := fs.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	f, err := swift.Parse(path, src)
	if err != nil {
		return err
	}
	root, err := readDump(s.Dump, stdin, path)
	if err != nil {
		return err
	}
	opts.Logger.Debug("rewriting", "source", path, "dump", s.Dump, "kinds", opts.Kinds.String())

	out := rewrite.Source(root, f, opts)
	if s.Write {
		return os.WriteFile(path, out, 0644)
	}
	_, err = stdout.Write(out)
	return err
}

// loadConfig reads a JWCC config file into s. Settings already given by flags
// in fs are not changed.
func loadConfig(path string, fs *flag.FlagSet, s *settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	std, err := hujson.Standardize(data)
	if err != nil {
		return fmt.Errorf("config %q: %w", path, err)
	}
	saved := *s
	if err := json.Unmarshal(std, s); err != nil {
		return fmt.Errorf("config %q: %w", path, err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dump":
			s.Dump = saved.Dump
		case "only":
			s.Only = saved.Only
		case "file-name":
			s.FileName = saved.FileName
		case "w":
			s.Write = saved.Write
		case "v":
			s.Verbose = saved.Verbose
		}
	})
	return nil
}

// readDump parses the dump from path, or from stdin if path is "-", and
// returns the source_file node for the source at srcPath. If no node names
// that file, the first node is used.
func readDump(path string, stdin io.Reader, srcPath string) (*ast.Node, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	nodes, err := ast.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dump %q: %w", path, err)
	} else if len(nodes) == 0 {
		return nil, fmt.Errorf("dump %q is empty", path)
	}
	base := filepath.Base(srcPath)
	for _, n := range nodes {
		if v, ok := n.Value(); ok && n.Name() == "source_file" && filepath.Base(v) == base {
			return n, nil
		}
	}
	return nodes[0], nil
}
