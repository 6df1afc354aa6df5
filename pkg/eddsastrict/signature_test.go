package eddsastrict

import (
	"fmt"
	"testing"

	"filippo.io/edwards25519"
	"github.com/mahdiidarabi/ed25519-strict/internal/scalar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureFromBytes_WrongLength(t *testing.T) {
	for _, n := range []int{0, 32, 63, 65, 128} {
		t.Run(fmt.Sprintf("len_%d", n), func(t *testing.T) {
			_, err := SignatureFromBytes(make([]byte, n))
			assert.ErrorIs(t, err, ErrWrongLength)

			_, err = SignatureFromBytesUnchecked(make([]byte, n))
			assert.ErrorIs(t, err, ErrWrongLength)
		})
	}
}

func TestSignature_RoundTrip(t *testing.T) {
	k := generateKey(t)
	sig := k.SignArbitraryMessage([]byte("round trip"))

	raw := sig.Bytes()
	require.Len(t, raw, SignatureLength)
	r, s := sig.R(), sig.S()
	assert.Equal(t, r[:], raw[:32])
	assert.Equal(t, s[:], raw[32:])

	decoded, err := SignatureFromBytes(raw)
	require.NoError(t, err)
	assert.True(t, sig.Equal(decoded))

	encoded := sig.EncodedString()
	assert.Len(t, encoded, 2+2*SignatureLength)
	fromString, err := SignatureFromEncodedString(encoded)
	require.NoError(t, err)
	assert.True(t, sig.Equal(fromString))
}

func TestSignature_Malleability(t *testing.T) {
	k := generateKey(t)
	pk := k.PublicKey()
	message := []byte("malleable")

	sig := k.SignArbitraryMessage(message)
	require.NoError(t, sig.VerifyStrictArbitraryMsg(message, pk))

	mauled := sig.Bytes()
	mauledS := scalar.Add(scalar.FromBytes(sig.S()), scalar.L).Bytes()
	copy(mauled[32:], mauledS[:])
	require.NotEqual(t, sig.Bytes(), mauled)

	// S + L and S are the same scalar mod L.
	reduced, err := edwards25519.NewScalar().SetUniformBytes(append(mauledS[:], make([]byte, 32)...))
	require.NoError(t, err)
	s := sig.S()
	assert.Equal(t, s[:], reduced.Bytes())

	_, err = SignatureFromBytes(mauled)
	assert.ErrorIs(t, err, ErrCanonicalRepresentation)

	_, err = SignatureFromEncodedString(encode(mauled))
	assert.ErrorIs(t, err, ErrCanonicalRepresentation)

	unchecked, err := SignatureFromBytesUnchecked(mauled)
	require.NoError(t, err)

	err = unchecked.VerifyArbitraryMsg(message, pk)
	assert.ErrorIs(t, err, ErrCanonicalRepresentation)
	err = unchecked.VerifyStrictArbitraryMsg(message, pk)
	assert.ErrorIs(t, err, ErrCanonicalRepresentation)
	err = BatchVerifyArbitraryMsg(message, []KeySignature{{PublicKey: pk, Signature: unchecked}})
	assert.ErrorIs(t, err, ErrCanonicalRepresentation)
}

func TestSignatureFromBytes_ScalarEqualToOrder(t *testing.T) {
	sig := generateKey(t).SignArbitraryMessage([]byte("order"))
	raw := sig.Bytes()
	order := scalar.L.Bytes()
	copy(raw[32:], order[:])

	_, err := SignatureFromBytes(raw)
	assert.ErrorIs(t, err, ErrCanonicalRepresentation)
}

func TestSignatureFromBytes_ArbitraryR(t *testing.T) {
	// R is not decoded at parse time, even when it is off the curve.
	raw := make([]byte, SignatureLength)
	raw[0] = 2

	sig, err := SignatureFromBytes(raw)
	require.NoError(t, err)

	err = sig.VerifyArbitraryMsg([]byte("x"), generateKey(t).PublicKey())
	assert.ErrorIs(t, err, ErrDeserialization)
}

func TestSignature_KnownSeedHelloWorld(t *testing.T) {
	info := loadTestKeyInfo(t)
	account, err := NewAccountKeyFromHex(info.PrivateKey)
	require.NoError(t, err)

	sig := account.PrivateKey().SignArbitraryMessage([]byte(info.Message))
	assert.Equal(t, info.Signature, sig.EncodedString())

	r := sig.R()
	_, err = new(edwards25519.Point).SetBytes(r[:])
	assert.NoError(t, err, "R must decompress")
	assert.True(t, scalar.IsCanonical(sig.S()), "S must be below L")

	assert.NoError(t, sig.VerifyArbitraryMsg([]byte(info.Message), account.PublicKey()))
	assert.NoError(t, sig.VerifyStrictArbitraryMsg([]byte(info.Message), account.PublicKey()))
}
