package icfl

import "math/big"

// alphabet is the fixed 94-character permutation used by the string
// codec: lower, upper, digits, then punctuation ending in space and
// newline. Wire byte c (in 33..126) maps to text byte alphabet[c-33].
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!\"#$%&'()*+,-./:;<=>?@[\\]^_`|~ \n"

// alphabetIndex is the reverse lookup table for the string codec,
// built once at init time instead of linear-scanning alphabet on every
// character.
var alphabetIndex [256]int8

func init() {
	for i := range alphabetIndex {
		alphabetIndex[i] = -1
	}
	for i := 0; i < len(alphabet); i++ {
		alphabetIndex[alphabet[i]] = int8(i)
	}
}

// decodeBase94Int decodes a wire-alphabet digit string (each byte in
// 33..126) into a non-negative big.Int, most-significant digit first.
// It rejects any byte outside the wire range.
func decodeBase94Int(s string) (*big.Int, error) {
	n := new(big.Int)
	base := big.NewInt(94)
	digit := new(big.Int)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 33 || c > 126 {
			return nil, errWireByte(c)
		}
		digit.SetInt64(int64(c - 33))
		n.Mul(n, base)
		n.Add(n, digit)
	}
	return n, nil
}

// encodeBase94Int encodes a non-negative big.Int into a wire digit
// string, most-significant digit first. Zero encodes to the empty
// string by construction of the positional system; callers that need a
// non-empty zero literal must special-case it.
func encodeBase94Int(n *big.Int) string {
	if n.Sign() == 0 {
		return ""
	}
	base := big.NewInt(94)
	rem := new(big.Int)
	cur := new(big.Int).Set(n)
	var digits []byte
	for cur.Sign() > 0 {
		cur.DivMod(cur, base, rem)
		digits = append(digits, byte(rem.Int64())+33)
	}
	// digits were accumulated least-significant first.
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}

// ValidStringChar reports whether c is one of the 94 characters the
// string codec's alphabet accepts (used by callers, such as the LASM
// parser, that must validate string literals before they ever reach
// the wire codec).
func ValidStringChar(c byte) bool {
	return alphabetIndex[c] >= 0
}

// decodeBase94Str maps a wire-alphabet string to text through the
// string codec's alphabet.
func decodeBase94Str(s string) (string, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 33 || c > 126 {
			return "", errWireByte(c)
		}
		out[i] = alphabet[c-33]
	}
	return string(out), nil
}

// encodeBase94Str maps text through the reverse of the string codec's
// alphabet back to wire bytes.
func encodeBase94Str(s string) (string, error) {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		idx := alphabetIndex[s[i]]
		if idx < 0 {
			return "", errAlphabetChar(s[i])
		}
		out[i] = byte(idx) + 33
	}
	return string(out), nil
}
