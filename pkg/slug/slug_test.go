// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/catalog/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple", "Hello World!", "hello-world"},
		{"double_spaces", "Hello  World!!", "hello-world"},
		{"edges", "  --Spring Sale--  ", "spring-sale"},
		{"digits", "Top 10 Cases of 2026", "top-10-cases-of-2026"},
		{"already_slug", "hello-world", "hello-world"},
		{"non_ascii_dropped", "Новости Café", "caf"},
		{"only_symbols", "!!!", ""},
		{"empty", "", ""},
		{"underscores", "snake_case_title", "snake-case-title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.title))
		})
	}
}

/*
TestFrom_FixedPoint verifies that From applied to its own output is stable.
*/
func TestFrom_FixedPoint(t *testing.T) {
	titles := []string{"Hello World!", "ÀÉÎ õü", "a--b__c", "  x  ", "UPPER lower 123", "—dash—"}

	for _, title := range titles {
		once := slug.From(title)
		assert.Equal(t, once, slug.From(once), "title %q", title)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, slug.IsValid("hello-world-1"))
	assert.False(t, slug.IsValid(""))
	assert.False(t, slug.IsValid("-x"))
	assert.False(t, slug.IsValid("a--b"))
	assert.False(t, slug.IsValid("Abc"))
}

/*
FuzzFrom checks the output alphabet and hyphen invariants for arbitrary input.
*/
func FuzzFrom(f *testing.F) {
	for _, seed := range []string{"Hello World!", "", "---", "Ünïcödé 42", "a\x00b"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, title string) {
		out := slug.From(title)
		if out == "" {
			return
		}

		if !slug.IsValid(out) {
			t.Fatalf("From(%q) = %q is not a valid slug", title, out)
		}
		if strings.ToLower(out) != out {
			t.Fatalf("From(%q) = %q contains uppercase", title, out)
		}
		if slug.From(out) != out {
			t.Fatalf("From is not a fixed point on %q", out)
		}
	})
}
