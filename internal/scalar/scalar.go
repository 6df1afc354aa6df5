// Package scalar holds a minimal fixed-width representation of 256-bit
// integers, used to decide whether a signature scalar is the canonical
// representative modulo the Ed25519 group order.
//
// It does not depend on the curve library, so canonicality is decided the
// same way no matter how a scalar parser treats out-of-range input.
package scalar

const (
	limbBits = 52
	limbMask = (uint64(1) << limbBits) - 1
	topMask  = (uint64(1) << 48) - 1
)

// Scalar52 is a 256-bit little-endian integer split into five 52-bit limbs.
// The top limb carries the remaining 48 bits.
type Scalar52 [5]uint64

// L is the order of the Ed25519 base point,
// 2^252 + 27742317777372353535851937790883648493.
var L = Scalar52{
	0x0002631a5cf5d3ed,
	0x000dea2f79cd6581,
	0x000000000014def9,
	0x0000000000000000,
	0x0000100000000000,
}

// complementL is 2^260 - L. S < L exactly when S + complementL does not carry
// out of the fifth limb.
var complementL = Scalar52{
	0x000d9ce5a30a2c13,
	0x000215d086329a7e,
	0x000fffffffeb2106,
	0x000fffffffffffff,
	0x000fefffffffffff,
}

// FromBytes unpacks a 32-byte little-endian integer. Every bit pattern is
// representable, so it never fails.
func FromBytes(b [32]byte) Scalar52 {
	var words [4]uint64
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			words[i] |= uint64(b[i*8+j]) << (uint(j) * 8)
		}
	}

	var s Scalar52
	s[0] = words[0] & limbMask
	s[1] = ((words[0] >> 52) | (words[1] << 12)) & limbMask
	s[2] = ((words[1] >> 40) | (words[2] << 24)) & limbMask
	s[3] = ((words[2] >> 28) | (words[3] << 36)) & limbMask
	s[4] = (words[3] >> 16) & topMask
	return s
}

// Bytes packs the limbs back into 32 little-endian bytes. Bits above 2^256
// are dropped.
func (s Scalar52) Bytes() [32]byte {
	var words [4]uint64
	words[0] = s[0] | s[1]<<52
	words[1] = s[1]>>12 | s[2]<<40
	words[2] = s[2]>>24 | s[3]<<28
	words[3] = s[3]>>36 | (s[4]&topMask)<<16

	var out [32]byte
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(words[i] >> (uint(j) * 8))
		}
	}
	return out
}

// Add returns a + b without reduction modulo L. A carry out of the fifth limb
// is discarded.
func Add(a, b Scalar52) Scalar52 {
	var sum Scalar52
	var carry uint64
	for i := 0; i < 5; i++ {
		carry = a[i] + b[i] + (carry >> limbBits)
		sum[i] = carry & limbMask
	}
	return sum
}

// overflows reports whether a + b carries past 2^260.
func overflows(a, b Scalar52) bool {
	var carry uint64
	for i := 0; i < 5; i++ {
		carry = a[i] + b[i] + (carry >> limbBits)
	}
	return carry>>limbBits != 0
}

// IsCanonical reports whether b, read as a little-endian integer, is strictly
// less than L.
func IsCanonical(b [32]byte) bool {
	return !overflows(FromBytes(b), complementL)
}
