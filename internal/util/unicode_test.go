package util

import "testing"

func TestDecodeRar3UnicodeSimple(t *testing.T) {
	if got := DecodeRar3Unicode([]byte("abc"), nil); got != "abc" {
		t.Fatalf("want abc got %s", got)
	}
}

func TestDecodeRar3UnicodeOps(t *testing.T) {
	cases := []struct {
		name  string
		ascii string
		enc   []byte
		want  string
	}{
		{"high byte op", "", []byte{0x04, 0x40, 0x16, 0x61}, "Жa"},
		{"two byte op", "", []byte{0x00, 0x80, 0xAC, 0x20}, "€"},
		{"copy run", "hello", []byte{0x00, 0xC0, 0x03}, "hello"},
		{"copy run with correction", "ab", []byte{0x04, 0xC0, 0x80, 0x01}, string([]rune{0x0462, 0x0463})},
		{"only high byte", "plain", []byte{0x00}, "plain"},
		{"truncated two byte op", "x", []byte{0x00, 0x80, 0xAC}, "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DecodeRar3Unicode([]byte(tc.ascii), tc.enc); got != tc.want {
				t.Fatalf("want %q got %q", tc.want, got)
			}
		})
	}
}

func TestDecodeOEM(t *testing.T) {
	// 0x81 is u-umlaut and 0x9c the pound sign in code page 437.
	if got := DecodeOEM([]byte{'M', 0x81, 'n', 0x9c}); got != "Mün£" {
		t.Fatalf("unexpected %q", got)
	}
	if got := DecodeOEM([]byte("ascii.txt")); got != "ascii.txt" {
		t.Fatalf("unexpected %q", got)
	}
}
