package usecases

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "What Is RAII", "what is raii"},
		{"keeps plus and hash", "C++ and C# differ", "c++ and c# differ"},
		{"strips punctuation", "what's a pointer?!", "what s a pointer"},
		{"collapses whitespace", "  too   many\tspaces \n", "too many spaces"},
		{"empty", "", ""},
		{"only punctuation", "?!...", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalize_OutputCharset(t *testing.T) {
	inputs := []string{
		"Qu'est-ce que c'est? C++!",
		"tabs\tand\nnewlines",
		"unicode: héllo wörld — ok",
		"numbers 123 & symbols $%^",
	}
	for _, in := range inputs {
		out := Normalize(in)
		for _, r := range out {
			ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' || r == '#' || r == ' '
			assert.True(t, ok, "unexpected rune %q in %q", r, out)
		}
		assert.NotContains(t, out, "  ", "double space in %q", out)
		assert.Equal(t, strings.TrimSpace(out), out)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"What is I/O?", "c++ templates!!", "  spaced   out  "}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestEnrich_ExpandsSynonyms(t *testing.T) {
	out := Enrich("what is io")
	for _, tok := range []string{"input", "output", "file"} {
		assert.Contains(t, strings.Fields(out), tok)
	}
}

func TestEnrich_SubstringContainment(t *testing.T) {
	// "dynamic" inside "dynamically" still triggers the expansion; recall
	// over precision.
	out := Enrich("dynamically allocated arrays")
	assert.Contains(t, strings.Fields(out), "heap")
}

func TestEnrich_NoSynonym(t *testing.T) {
	assert.Equal(t, "templates", Enrich("Templates!"))
}

func TestEnrich_Deterministic(t *testing.T) {
	// Multiple synonym hits must expand in a fixed order.
	first := Enrich("io exception reference dynamic")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Enrich("io exception reference dynamic"))
	}
}
