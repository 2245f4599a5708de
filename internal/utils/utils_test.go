package utils

import (
	"strings"
	"testing"
)

func TestAskConfirmation(t *testing.T) {
	tests := []struct {
		input string
		force bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	}

	for _, tt := range tests {
		u := &InputUtils{In: strings.NewReader(tt.input)}
		if got := u.AskConfirmation("Continue?", tt.force); got != tt.want {
			t.Errorf("AskConfirmation(%q, %v) = %v, want %v", tt.input, tt.force, got, tt.want)
		}
	}
}
