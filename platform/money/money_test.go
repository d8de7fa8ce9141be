package money

import "testing"

func TestFormatCHF(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "CHF 0.00"},
		{50, "CHF 0.50"},
		{34200, "CHF 342.00"},
		{123450, "CHF 1'234.50"},
		{1000000000, "CHF 10'000'000.00"},
		{-9900, "-CHF 99.00"},
	}

	for _, tc := range cases {
		if got := FormatCHF(tc.cents); got != tc.want {
			t.Fatalf("FormatCHF(%d): expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestRoundCents(t *testing.T) {
	if got := RoundCents(114.0 * 3); got != 342 {
		t.Fatalf("expected 342, got %d", got)
	}
	if got := RoundCents(99.5); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}
