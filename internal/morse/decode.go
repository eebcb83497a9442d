package morse

import (
	"github.com/pkg/errors"
)

// ErrMalformedCode is returned by CodeToCharStrict for codes outside the decode table
var ErrMalformedCode = errors.New("malformed morse code")

// DecodeSink receives the result of a decode
type DecodeSink func(code Code, ch byte)

// Index computes the magic index of c: the count field contributes its own
// value and symbol i contributes 8<<i when it is a dash. Codes of up to
// SymbolBits symbols always index inside the table. Longer codes only do
// when their trailing symbols are dits.
func (c Code) Index() int {
	idx := 0
	for i := uint(0); i < 3; i++ {
		if c&(1<<i) != 0 {
			idx += 1 << i
		}
	}

	mask := Code(1) << SymbolShift
	for i := 0; i < c.Count(); i++ {
		if c&mask != 0 {
			idx += 8 << uint(i)
		}
		mask >>= 1
	}

	return idx
}

// Decodable reports whether c falls inside the magic table
func (c Code) Decodable() bool {
	return c.Index() < len(magicTable)
}

// CodeToChar returns the character for c. Codes outside the table decode
// to ProsignError.
func CodeToChar(c Code) byte {
	idx := c.Index()
	if idx >= len(magicTable) {
		return ProsignError
	}
	return magicTable[idx]
}

// CodeToCharStrict is CodeToChar with validation: an empty code or one
// whose index falls outside the table yields ErrMalformedCode.
func CodeToCharStrict(c Code) (byte, error) {
	if c.Count() == 0 {
		return 0, errors.Wrapf(ErrMalformedCode, "code 0x%04X has no symbols", uint16(c))
	}
	idx := c.Index()
	if idx >= len(magicTable) {
		return 0, errors.Wrapf(ErrMalformedCode, "code 0x%04X (%s) indexes %d, past the decode table", uint16(c), c, idx)
	}
	return magicTable[idx], nil
}

// Decode hands (c, CodeToChar(c)) to sink before returning. It reports
// false when c is outside the decode table.
func Decode(c Code, sink DecodeSink) bool {
	ch := CodeToChar(c)
	if sink != nil {
		sink(c, ch)
	}
	return c.Decodable()
}

// DecodeCodes decodes codes in order and returns how many were outside the table
func DecodeCodes(codes []Code, sink DecodeSink) int {
	missed := 0
	for _, c := range codes {
		if !Decode(c, sink) {
			missed++
		}
	}
	return missed
}
