package validate

import (
	"strings"
	"testing"
)

func TestValidLabel(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"single word", "Lunch", true},
		{"words and digits", "Team 42 offsite", true},
		{"only spaces", "   ", true},
		{"empty", "", false},
		{"punctuation", "Pizza!", false},
		{"hyphen", "ice-cream", false},
		{"underscore", "a_b", false},
		{"non ascii letter", "Café", false},
		{"tab", "a\tb", false},
		{"newline", "a\nb", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidLabel(tt.in); got != tt.want {
				t.Errorf("ValidLabel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidUsername(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"minimum length", "abcd", true},
		{"maximum length", strings.Repeat("a", MaxUsernameLength), true},
		{"mixed case and digits", "Alice2024", true},
		{"too short", "abc", false},
		{"too long", strings.Repeat("a", MaxUsernameLength+1), false},
		{"contains space", "al ice", false},
		{"contains symbol", "alice!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidUsername(tt.in); got != tt.want {
				t.Errorf("ValidUsername(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidOptionCount(t *testing.T) {
	for n := 0; n <= MaxOptions+2; n++ {
		want := n >= 2 && n <= 6
		if got := ValidOptionCount(n); got != want {
			t.Errorf("ValidOptionCount(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestValidInts(t *testing.T) {
	tests := []struct {
		in           int64
		wantPositive bool
		wantNonNeg   bool
	}{
		{-5, false, false},
		{-1, false, false},
		{0, false, true},
		{1, true, true},
		{1 << 40, true, true},
	}

	for _, tt := range tests {
		if got := ValidPositiveInt(tt.in); got != tt.wantPositive {
			t.Errorf("ValidPositiveInt(%d) = %v, want %v", tt.in, got, tt.wantPositive)
		}
		if got := ValidNonNegativeInt(tt.in); got != tt.wantNonNeg {
			t.Errorf("ValidNonNegativeInt(%d) = %v, want %v", tt.in, got, tt.wantNonNeg)
		}
	}
}
