package common

import "strings"

// Bits renders the low width bits of v as a binary string, MSB first.
// This is the formatting the bench tools and trace lines use for
// codewords, data nibbles and syndromes.
func Bits(v uint, width int) string {
	if width <= 0 {
		return ""
	}
	var sb strings.Builder
	for i := width - 1; i >= 0; i-- {
		if v&(1<<uint(i)) != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// ParseBits parses a binary string (MSB first) into a value. Returns
// false if the string is empty, longer than 64 bits, or contains
// anything but '0' and '1'.
func ParseBits(s string) (uint64, bool) {
	if len(s) == 0 || len(s) > 64 {
		return 0, false
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		v <<= 1
		switch s[i] {
		case '1':
			v |= 1
		case '0':
		default:
			return 0, false
		}
	}
	return v, true
}
