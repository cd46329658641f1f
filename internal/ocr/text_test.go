package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", " \t\n ", ""},
		{"trims", "  Name  ", "Name"},
		{"collapses runs", "First\t\tName", "First Name"},
		{"newlines become spaces", "Line one\nLine two", "Line one Line two"},
		{"already clean", "Date of Birth", "Date of Birth"},
		{"nfc composition", "état", "état"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Normalize(c.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  a   b\tc ", "état civil", "", "x"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}
