package router

import "testing"

func TestIsCommandText(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"/version", true},
		{"/start", true},
		{"/cancel@some_bot", true},
		// Bare words go to the conversation entry, never the registry.
		{"version", false},
		{"start", false},
		{"cute wolf", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := isCommandText(tc.text); got != tc.want {
			t.Errorf("isCommandText(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
