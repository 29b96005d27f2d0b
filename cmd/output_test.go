package cmd

import (
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"corto", 10, "corto"},
		{"exactamente8", 12, "exactamente8"},
		{"Plomería integral urgencias", 12, "Plomería ..."},
		{"Albañilería y construcción", 10, "Albañil..."},
		{"añil", 3, "añi"},
	}

	for _, tc := range tests {
		got := truncate(tc.in, tc.max)
		if got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q, %d) produced invalid UTF-8 %q", tc.in, tc.max, got)
		}
	}
}
