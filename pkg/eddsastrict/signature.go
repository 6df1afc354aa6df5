package eddsastrict

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mahdiidarabi/ed25519-strict/internal/scalar"
)

// SignatureLength is the size of R ‖ S.
const SignatureLength = 64

// Signature is an Ed25519 signature. R is kept as raw bytes and is only
// decoded as a point during verification. S is canonical (below the group
// order) unless the value came from SignatureFromBytesUnchecked.
type Signature struct {
	r [32]byte
	s [32]byte
}

// SignatureFromBytes splits a 64-byte signature and rejects a non-canonical S
// with ErrCanonicalRepresentation.
func SignatureFromBytes(b []byte) (Signature, error) {
	sig, err := SignatureFromBytesUnchecked(b)
	if err != nil {
		return Signature{}, err
	}
	if !scalar.IsCanonical(sig.s) {
		return Signature{}, ErrCanonicalRepresentation
	}
	return sig, nil
}

// SignatureFromBytesUnchecked only checks the length. It exists to build
// fixtures and interoperability probes; verification still rejects a
// non-canonical S.
func SignatureFromBytesUnchecked(b []byte) (Signature, error) {
	if err := checkLength("signature", b, SignatureLength); err != nil {
		return Signature{}, err
	}
	var sig Signature
	copy(sig.r[:], b[:32])
	copy(sig.s[:], b[32:])
	return sig, nil
}

// SignatureFromEncodedString parses the "0x" + 128 hex digit form.
func SignatureFromEncodedString(s string) (Signature, error) {
	b, err := decodeEncoded(s, SignatureLength)
	if err != nil {
		return Signature{}, err
	}
	return SignatureFromBytes(b)
}

// Bytes returns R ‖ S.
func (sig Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out, sig.r[:])
	copy(out[32:], sig.s[:])
	return out
}

// R returns the 32-byte point encoding.
func (sig Signature) R() [32]byte { return sig.r }

// S returns the 32-byte little-endian scalar.
func (sig Signature) S() [32]byte { return sig.s }

// EncodedString returns "0x" followed by the lowercase hex of R ‖ S.
func (sig Signature) EncodedString() string {
	return encode(sig.Bytes())
}

func (sig Signature) String() string {
	return sig.EncodedString()
}

// Equal compares the byte encodings.
func (sig Signature) Equal(other Signature) bool {
	return sig.r == other.r && sig.s == other.s
}

func (sig Signature) rPoint() (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(sig.r[:])
	if err != nil {
		return nil, fmt.Errorf("%w: signature R is not a curve point", ErrDeserialization)
	}
	return p, nil
}

func (sig Signature) sScalar() (*edwards25519.Scalar, error) {
	if !scalar.IsCanonical(sig.s) {
		return nil, ErrCanonicalRepresentation
	}
	s, err := edwards25519.NewScalar().SetCanonicalBytes(sig.s[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCanonicalRepresentation, err)
	}
	return s, nil
}
