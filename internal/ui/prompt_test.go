package ui

import (
	"testing"
)

func TestOptionSearcher(t *testing.T) {
	options := []SelectOption{
		{Label: "button #submit-btn", Detail: "Login"},
		{Label: "input #email", Detail: "you@example.com"},
		{Label: "a", Detail: "Forgot password?"},
	}
	search := OptionSearcher(options)

	tests := []struct {
		name  string
		input string
		index int
		want  bool
	}{
		{"EmptyMatchesAll", "", 2, true},
		{"WhitespaceMatchesAll", "   ", 1, true},
		{"LabelSubsequence", "sbmt", 0, true},
		{"DetailMatch", "forgot", 2, true},
		{"CaseInsensitive", "EMAIL", 1, true},
		{"NoMatch", "checkout", 0, false},
		{"NegativeIndex", "a", -1, false},
		{"IndexOutOfRange", "a", 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := search(tt.input, tt.index)
			if got != tt.want {
				t.Errorf("search(%q, %d) = %v, want %v", tt.input, tt.index, got, tt.want)
			}
		})
	}
}

func TestSelectPromptDetailed_Empty(t *testing.T) {
	index, _, err := SelectPromptDetailed("Pick", nil)
	if err == nil {
		t.Fatal("expected error for empty options")
	}
	if index != -1 {
		t.Errorf("index = %d, want -1", index)
	}
}
