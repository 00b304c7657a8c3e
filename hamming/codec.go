// Package hamming implements the Hamming(7,4) systematic codec used on
// both sides of the serial link. Four data bits are expanded into a
// 7-bit codeword with three parity bits; any single bit error in the
// codeword is located by the syndrome and corrected.
//
// Codeword layout, bit 0 through bit 6 (LSB first on the wire):
//
//	[c0, c1, d0, c2, d1, d2, d3]
//
// with parity bits at the power-of-two positions so that a nonzero
// syndrome is directly the 1-based index of the bit in error.
package hamming

// DataBits is the number of data bits per codeword.
const DataBits = 4

// CodeBits is the number of bits per codeword.
const CodeBits = 7

// DataMask masks a value down to the data bits accepted by Encode.
const DataMask = 1<<DataBits - 1

// CodeMask masks a value down to the bits of one codeword.
const CodeMask = 1<<CodeBits - 1

// Encode expands the low 4 bits of data into a 7-bit codeword.
// It is a pure function, defined for all 16 inputs.
//
// Parity equations:
//
//	c0 = d0 ^ d1 ^ d3
//	c1 = d0 ^ d2 ^ d3
//	c2 = d1 ^ d2 ^ d3
func Encode(data byte) byte {
	d0 := data & 1
	d1 := data >> 1 & 1
	d2 := data >> 2 & 1
	d3 := data >> 3 & 1

	c0 := d0 ^ d1 ^ d3
	c1 := d0 ^ d2 ^ d3
	c2 := d1 ^ d2 ^ d3

	return c0 | c1<<1 | d0<<2 | c2<<3 | d1<<4 | d2<<5 | d3<<6
}

// Decode recomputes the three parity checks over the received 7-bit
// codeword and returns the corrected 4-bit data together with the 3-bit
// syndrome. A zero syndrome means no error was detected. A nonzero
// syndrome is the 1-based position of the single bit that was flipped;
// that bit is inverted before the data bits are extracted.
//
// Two or more simultaneous bit errors are beyond the reach of this
// code: Decode still returns a data value and a syndrome, but the data
// may be wrong and the syndrome may even be zero if the error pattern
// lands on another valid codeword. Callers that need multi-bit
// protection need a different code.
func Decode(code byte) (data, syndrome byte) {
	code &= CodeMask

	p0 := bit(code, 0) ^ bit(code, 2) ^ bit(code, 4) ^ bit(code, 6)
	p1 := bit(code, 1) ^ bit(code, 2) ^ bit(code, 5) ^ bit(code, 6)
	p2 := bit(code, 3) ^ bit(code, 4) ^ bit(code, 5) ^ bit(code, 6)
	syndrome = p0 | p1<<1 | p2<<2

	if syndrome != 0 {
		code ^= 1 << (syndrome - 1)
	}

	data = bit(code, 2) | bit(code, 4)<<1 | bit(code, 5)<<2 | bit(code, 6)<<3
	return data, syndrome
}

// CodeTable returns the full data-to-codeword table, generated from
// Encode. The parity equations above are the single source of truth for
// the bit ordering; no hand-written table is kept.
func CodeTable() [1 << DataBits]byte {
	var table [1 << DataBits]byte
	for d := 0; d < len(table); d++ {
		table[d] = Encode(byte(d))
	}
	return table
}

func bit(v byte, n uint) byte {
	return v >> n & 1
}
