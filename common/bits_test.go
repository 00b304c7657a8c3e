package common

import "testing"

func TestBits(t *testing.T) {
	tests := []struct {
		v     uint
		width int
		want  string
	}{
		{0b1011, 4, "1011"},
		{0b1111111, 7, "1111111"},
		{0b101, 3, "101"},
		{0, 4, "0000"},
		{0b11111, 3, "111"}, // high bits outside width are dropped
		{1, 0, ""},
	}

	for _, tt := range tests {
		if got := Bits(tt.v, tt.width); got != tt.want {
			t.Errorf("Bits(%b, %d) = %q, want %q", tt.v, tt.width, got, tt.want)
		}
	}
}

func TestParseBits(t *testing.T) {
	tests := []struct {
		s    string
		want uint64
		ok   bool
	}{
		{"1011", 0b1011, true},
		{"0000000", 0, true},
		{"1111111", 0b1111111, true},
		{"", 0, false},
		{"10x1", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseBits(tt.s)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseBits(%q) = (%b, %v), want (%b, %v)", tt.s, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBitsParseBitsRoundTrip(t *testing.T) {
	for v := uint(0); v < 128; v++ {
		s := Bits(v, 7)
		got, ok := ParseBits(s)
		if !ok || uint(got) != v {
			t.Fatalf("round trip of %b via %q gave (%b, %v)", v, s, got, ok)
		}
	}
}
