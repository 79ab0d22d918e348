// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"testing"

	"github.com/creachadair/typeinject/internal/escape"
	"go4.org/mem"
)

func TestUnquote(t *testing.T) {
	tests := []struct {
		input, want string
		fail        bool
	}{
		{"", "", false},
		{"main.swift", "main.swift", false},
		{`a\"b`, `a"b`, false},
		{`tab\there`, "tab\there", false},
		{`\0\n\r\\\'`, "\x00\n\r\\'", false},
		{`\u{48}\u{1F600}!`, "H\U0001F600!", false},
		{`\u{D800}`, "�", false}, // surrogate
		{`\u{}`, "�", false},
		{`\q`, "�", false},
		{`x\`, "", true},
		{`\u`, "", true},
		{`\u{48`, "", true},
	}
	for _, tc := range tests {
		got, err := escape.Unquote(mem.S(tc.input))
		if tc.fail {
			if err == nil {
				t.Errorf("Unquote(%q): got %q, want error", tc.input, got)
			}
			continue
		} else if err != nil {
			t.Errorf("Unquote(%q): unexpected error: %v", tc.input, err)
			continue
		}
		if string(got) != tc.want {
			t.Errorf("Unquote(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"", ""},
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{"a\\b\n", `a\\b\n`},
		{"\x00\x01", `\0\u{01}`},
		{"café", "café"},
	}
	for _, tc := range tests {
		got := escape.Quote(mem.S(tc.input))
		if string(got) != tc.want {
			t.Errorf("Quote(%q): got %q, want %q", tc.input, got, tc.want)
		}
		dec, err := escape.Unquote(mem.B(got))
		if err != nil {
			t.Errorf("Unquote(Quote(%q)): %v", tc.input, err)
		} else if string(dec) != tc.input {
			t.Errorf("Unquote(Quote(%q)): got %q", tc.input, dec)
		}
	}
}

func TestQuoteInvalid(t *testing.T) {
	// Bytes that are not valid UTF-8 are replaced, so they do not round-trip.
	tests := []struct {
		input, want string
	}{
		{"\xff", `\u{fffd}`},
		{"a\xc3b", `a\u{fffd}b`},
		{"\xe2\x82", `\u{fffd}\u{fffd}`},
	}
	for _, tc := range tests {
		if got := escape.Quote(mem.S(tc.input)); string(got) != tc.want {
			t.Errorf("Quote(%q): got %q, want %q", tc.input, got, tc.want)
		}
	}
}
