// Package morse converts between characters and bit-packed Morse codes.
//
// A Code packs a Morse sequence into 16 bits:
//
//	  1         0
//	5432109876543210
//	+----------------
//	01---XXXXXXXX010   A : .-
//	1000-XXXXXXXX100   B : -...
//	11111XXXXXXXX101   0 : -----
//
// Bits [15:11] hold one flag per symbol, first symbol in bit 15, 0 for DIT
// and 1 for DAH. Bits [2:0] hold the symbol count. The 6 and 7 symbol
// punctuation codes spill their trailing symbols into bits 10 and 9.
package morse

import "strings"

// Code bit layout constants
const (
	CountMask   = 0x0007 // Symbol count, bits [2:0]
	SymbolShift = 15     // Bit holding the first symbol
	SymbolBits  = 5      // Dedicated symbol window, bits [15:11]
	MaxSymbols  = 7      // Largest count the count field can carry
)

// Signal is a single Morse element.
type Signal uint8

const (
	Dit Signal = iota // short element, "."
	Dah               // long element, "-"
)

// String returns "." for Dit and "-" for Dah
func (s Signal) String() string {
	if s == Dah {
		return "-"
	}
	return "."
}

// Code is a packed Morse code.
type Code uint16

// Count extracts the number of symbols in the code
func (c Code) Count() int {
	return int(c & CountMask)
}

// IsDah reports whether symbol i (0-based, first sent first) is a dash
func (c Code) IsDah(i int) bool {
	return c&symbolMask(i) != 0
}

// Symbol returns symbol i of the code
func (c Code) Symbol(i int) Signal {
	if c.IsDah(i) {
		return Dah
	}
	return Dit
}

// WithCount returns c with its count field replaced by n
func (c Code) WithCount(n int) Code {
	return c&^CountMask | Code(n)&CountMask
}

// WithSymbol returns c with symbol i set to s
func (c Code) WithSymbol(i int, s Signal) Code {
	if s == Dah {
		return c | symbolMask(i)
	}
	return c &^ symbolMask(i)
}

// Symbols returns the signals of the code in transmit order
func (c Code) Symbols() []Signal {
	n := c.Count()
	signals := make([]Signal, n)
	for i := 0; i < n; i++ {
		signals[i] = c.Symbol(i)
	}
	return signals
}

// String renders the code as dots and dashes
func (c Code) String() string {
	var sb strings.Builder
	n := c.Count()
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteString(c.Symbol(i).String())
	}
	return sb.String()
}

// NewCode packs a sequence of signals. Sequences longer than MaxSymbols are
// truncated.
func NewCode(signals ...Signal) Code {
	if len(signals) > MaxSymbols {
		signals = signals[:MaxSymbols]
	}
	c := Code(0).WithCount(len(signals))
	for i, s := range signals {
		c = c.WithSymbol(i, s)
	}
	return c
}

// symbolMask returns the mask selecting symbol i
func symbolMask(i int) Code {
	return Code(1) << uint(SymbolShift-i)
}
