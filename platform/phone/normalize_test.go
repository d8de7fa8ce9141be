package phone

import "testing"

func TestNormalizeE164SwissNumber(t *testing.T) {
	got := NormalizeE164("079 123 45 67")
	if got != "+41791234567" {
		t.Fatalf("expected +41791234567, got %q", got)
	}
}

func TestNormalizeE164KeepsUnparseableInput(t *testing.T) {
	got := NormalizeE164("  not-a-number ")
	if got != "not-a-number" {
		t.Fatalf("expected trimmed input back, got %q", got)
	}
}

func TestDigitsOnly(t *testing.T) {
	got := DigitsOnly("+41 (0)79 123-45-67")
	if got != "410791234567" {
		t.Fatalf("expected 410791234567, got %q", got)
	}
}
