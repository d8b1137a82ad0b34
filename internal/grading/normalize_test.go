package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"Lowercases", "PARIS", "paris"},
		{"TrimsWhitespace", "  Cafe \t", "cafe"},
		{"StripsDiacritics", "café", "cafe"},
		{"UppercaseWithDiacritics", "CAFÉ", "cafe"},
		{"CombinedFolding", "  Crème Brûlée ", "creme brulee"},
		{"NonLatinMarks", "México", "mexico"},
		{"EmptyString", "", ""},
		{"WhitespaceOnly", "   ", ""},
		{"InteriorWhitespacePreserved", "new  york", "new  york"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestNormalize_EquivalenceClasses(t *testing.T) {
	// All spellings of the same word collapse to one canonical form.
	variants := []string{"café", "Cafe", "CAFÉ", " cafe ", "CaFé"}
	for _, v := range variants {
		assert.Equal(t, "cafe", Normalize(v), "variant %q", v)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, input := range []string{"CAFÉ", "  mixed Case  ", "plain"} {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once))
	}
}
