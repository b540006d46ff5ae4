package domain

import (
	"testing"
	"time"
)

func TestGenerateHash(t *testing.T) {
	now := time.UnixMicro(1700000000123456)

	// md5("Alice_1700000000123456")
	got := GenerateHash("Alice", now)
	if len(got) != HashLength {
		t.Fatalf("expected %d chars, got %d (%q)", HashLength, len(got), got)
	}
	if !IsValidHash(got) {
		t.Errorf("expected lowercase hex hash, got %q", got)
	}

	if again := GenerateHash("Alice", now); again != got {
		t.Errorf("hash not deterministic: %q != %q", got, again)
	}

	if other := GenerateHash("Alice", now.Add(time.Microsecond)); other == got {
		t.Error("expected a different hash one microsecond later")
	}

	if other := GenerateHash("Bob", now); other == got {
		t.Error("expected different names to hash differently")
	}
}

func TestClockHashGenerator(t *testing.T) {
	fixed := time.UnixMicro(42)
	gen := &ClockHashGenerator{Now: func() time.Time { return fixed }}

	if got, want := gen.Generate("Alice"), GenerateHash("Alice", fixed); got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}

	if got := NewClockHashGenerator().Generate("Alice"); !IsValidHash(got) {
		t.Errorf("wall clock generator produced %q", got)
	}
}

func TestIsValidHash(t *testing.T) {
	tests := []struct {
		input string
		valid bool
	}{
		{"0123456789abcdef", true},
		{"0123456789ABCDEF", false},
		{"0123456789abcde", false},
		{"0123456789abcdefa", false},
		{"designer.json", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidHash(tt.input); got != tt.valid {
			t.Errorf("IsValidHash(%q) = %v, want %v", tt.input, got, tt.valid)
		}
	}
}
