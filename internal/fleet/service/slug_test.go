package service

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"BMW 320d", "bmw-320d"},
		{"Mercedes-Benz C 220", "mercedes-benz-c-220"},
		{"  Fiat   500e  ", "fiat-500e"},
		{"Škoda Octavia!", "koda-octavia"},
		{"audi_a4_avant", "audi-a4-avant"},
		{"---VW Golf---", "vw-golf"},
	}

	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
