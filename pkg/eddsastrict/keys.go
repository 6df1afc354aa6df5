package eddsastrict

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"filippo.io/edwards25519"
)

const (
	// PrivateKeyLength is the size of a private key seed.
	PrivateKeyLength = 32

	// PublicKeyLength is the size of a compressed Edwards point.
	PublicKeyLength = 32

	encodedPrefix = "0x"
)

// PrivateKey is a 32-byte Ed25519 seed.
type PrivateKey struct {
	seed [PrivateKeyLength]byte
}

// PublicKey is a 32-byte compressed Edwards point that is known to decode to
// a point on the curve. It may still be of small order, see CheckSubgroup.
//
// PublicKey is comparable and can be used as a map key.
type PublicKey struct {
	b [PublicKeyLength]byte
}

// PrivateKeyFromBytes copies a 32-byte seed.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if err := checkLength("private key", b, PrivateKeyLength); err != nil {
		return PrivateKey{}, err
	}
	var k PrivateKey
	copy(k.seed[:], b)
	return k, nil
}

// PrivateKeyFromEncodedString parses the "0x" + 64 hex digit form.
func PrivateKeyFromEncodedString(s string) (PrivateKey, error) {
	b, err := decodeEncoded(s, PrivateKeyLength)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKeyFromBytes(b)
}

// Bytes returns a copy of the seed.
func (k PrivateKey) Bytes() []byte {
	out := make([]byte, PrivateKeyLength)
	copy(out, k.seed[:])
	return out
}

// EncodedString returns "0x" followed by the lowercase hex seed.
func (k PrivateKey) EncodedString() string {
	return encode(k.seed[:])
}

// String never prints key material.
func (k PrivateKey) String() string {
	return "<elided secret>"
}

// GoString keeps %#v from printing the seed.
func (k PrivateKey) GoString() string {
	return "eddsastrict.PrivateKey{<elided secret>}"
}

// Equal reports whether both keys hold the same seed.
func (k PrivateKey) Equal(other PrivateKey) bool {
	return k.seed == other.seed
}

// PublicKey derives the public key: the base point multiplied by the clamped
// lower half of SHA-512(seed).
func (k PrivateKey) PublicKey() PublicKey {
	h := sha512.Sum512(k.seed[:])
	s, err := edwards25519.NewScalar().SetBytesWithClamping(h[:32])
	if err != nil {
		// SetBytesWithClamping only fails on a wrong input length.
		panic("eddsastrict: clamping failed: " + err.Error())
	}
	var pk PublicKey
	copy(pk.b[:], edwards25519.NewIdentityPoint().ScalarBaseMult(s).Bytes())
	return pk
}

func (k PrivateKey) expanded() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(k.seed[:])
}

// PublicKeyFromBytes accepts any 32-byte string that decompresses to a curve
// point, including points of small order.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if err := checkLength("public key", b, PublicKeyLength); err != nil {
		return PublicKey{}, err
	}
	if _, err := new(edwards25519.Point).SetBytes(b); err != nil {
		return PublicKey{}, fmt.Errorf("%w: public key is not a curve point", ErrDeserialization)
	}
	var pk PublicKey
	copy(pk.b[:], b)
	return pk, nil
}

// PublicKeyFromBytesStrict is PublicKeyFromBytes followed by CheckSubgroup.
func PublicKeyFromBytesStrict(b []byte) (PublicKey, error) {
	pk, err := PublicKeyFromBytes(b)
	if err != nil {
		return PublicKey{}, err
	}
	if err := pk.CheckSubgroup(); err != nil {
		return PublicKey{}, err
	}
	return pk, nil
}

// PublicKeyFromEncodedString parses the "0x" + 64 hex digit form.
func PublicKeyFromEncodedString(s string) (PublicKey, error) {
	b, err := decodeEncoded(s, PublicKeyLength)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKeyFromBytes(b)
}

// Bytes returns a copy of the compressed point.
func (pk PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeyLength)
	copy(out, pk.b[:])
	return out
}

// EncodedString returns "0x" followed by the lowercase hex point encoding.
func (pk PublicKey) EncodedString() string {
	return encode(pk.b[:])
}

func (pk PublicKey) String() string {
	return pk.EncodedString()
}

// Equal reports whether both keys have the same encoding.
func (pk PublicKey) Equal(other PublicKey) bool {
	return pk.b == other.b
}

// Compare orders keys by their raw bytes.
func (pk PublicKey) Compare(other PublicKey) int {
	return bytes.Compare(pk.b[:], other.b[:])
}

// IsSmallOrder reports whether the point has order dividing 8.
func (pk PublicKey) IsSmallOrder() bool {
	p, err := pk.point()
	if err != nil {
		return false
	}
	return isSmallOrder(p)
}

// CheckSubgroup returns ErrSmallSubgroup if the key has order dividing 8.
func (pk PublicKey) CheckSubgroup() error {
	if pk.IsSmallOrder() {
		return fmt.Errorf("%w: public key %s", ErrSmallSubgroup, pk.EncodedString())
	}
	return nil
}

func (pk PublicKey) point() (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(pk.b[:])
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not a curve point", ErrDeserialization)
	}
	return p, nil
}

func isSmallOrder(p *edwards25519.Point) bool {
	return new(edwards25519.Point).MultByCofactor(p).Equal(edwards25519.NewIdentityPoint()) == 1
}

// orderMinusOne is L - 1, i.e. -1 mod L.
var orderMinusOne = func() *edwards25519.Scalar {
	one, err := edwards25519.NewScalar().SetCanonicalBytes(append([]byte{1}, make([]byte, 31)...))
	if err != nil {
		panic("eddsastrict: " + err.Error())
	}
	return edwards25519.NewScalar().Negate(one)
}()

// isTorsionFree reports whether p lies in the prime-order subgroup, that is
// [L-1]·p = -p. A point with any torsion component fails.
func isTorsionFree(p *edwards25519.Point) bool {
	check := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(orderMinusOne, p, edwards25519.NewScalar())
	return check.Equal(new(edwards25519.Point).Negate(p)) == 1
}

func encode(b []byte) string {
	return encodedPrefix + hex.EncodeToString(b)
}

func decodeEncoded(s string, n int) ([]byte, error) {
	if len(s) != len(encodedPrefix)+2*n {
		return nil, fmt.Errorf("%w: encoded string must be %d characters, got %d",
			ErrDeserialization, len(encodedPrefix)+2*n, len(s))
	}
	if !strings.HasPrefix(s, encodedPrefix) {
		return nil, fmt.Errorf("%w: encoded string must start with %q", ErrDeserialization, encodedPrefix)
	}
	digits := s[len(encodedPrefix):]
	if strings.ToLower(digits) != digits {
		return nil, fmt.Errorf("%w: encoded string must use lowercase hex", ErrDeserialization)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	return b, nil
}
