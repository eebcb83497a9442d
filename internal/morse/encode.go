package morse

// EncodeSink receives the result of an encode
type EncodeSink func(ch byte, code Code)

// Lookup returns the code for ch and whether a mapping exists.
// Letters and digits are addressed directly, everything else is found by
// scanning the punctuation and prosign table. There is no case folding:
// lowercase 'e', 'i', 'u' and 'w' are prosign aliases, other lowercase
// letters have no mapping.
func Lookup(ch byte) (Code, bool) {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return letterCodes[ch-'A'], true
	case ch >= '0' && ch <= '9':
		return digitCodes[ch-'0'], true
	}

	for i := range otherCodes {
		if otherCodes[i].ch == ch {
			return otherCodes[i].code, true
		}
	}

	return CodeError, false
}

// CharToCode returns the packed code for ch, or CodeError when ch has no mapping
func CharToCode(ch byte) Code {
	code, _ := Lookup(ch)
	return code
}

// Encode looks up ch and hands (ch, code) to sink before returning.
// It reports false when ch has no mapping and CodeError was delivered.
func Encode(ch byte, sink EncodeSink) bool {
	code, ok := Lookup(ch)
	if sink != nil {
		sink(ch, code)
	}
	return ok
}

// EncodeString encodes every byte of s in order and returns how many had no mapping
func EncodeString(s string, sink EncodeSink) int {
	missed := 0
	for i := 0; i < len(s); i++ {
		if !Encode(s[i], sink) {
			missed++
		}
	}
	return missed
}
