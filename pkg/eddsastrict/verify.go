package eddsastrict

import (
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"
)

// challenge computes k = SHA-512(R ‖ A ‖ M) as a 512-bit little-endian
// integer reduced mod L.
func challenge(r, a, message []byte) *edwards25519.Scalar {
	h := sha512.New()
	h.Write(r)
	h.Write(a)
	h.Write(message)
	k, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		// SHA-512 output is always 64 bytes.
		panic("eddsastrict: " + err.Error())
	}
	return k
}

// operands decodes everything both policies need. Errors are already
// classified.
func (sig Signature) operands(message []byte, pk PublicKey) (A, R *edwards25519.Point, S, k *edwards25519.Scalar, err error) {
	if S, err = sig.sScalar(); err != nil {
		return nil, nil, nil, nil, err
	}
	if A, err = pk.point(); err != nil {
		return nil, nil, nil, nil, err
	}
	if R, err = sig.rPoint(); err != nil {
		return nil, nil, nil, nil, err
	}
	k = challenge(sig.r[:], pk.b[:], message)
	return A, R, S, k, nil
}

// Verify checks sig over the signing message of v with the permissive,
// cofactored equation. See VerifyArbitraryMsg.
func (sig Signature) Verify(v Signable, pk PublicKey) error {
	msg, err := SigningMessage(v)
	if err != nil {
		return err
	}
	return sig.VerifyArbitraryMsg(msg, pk)
}

// VerifyArbitraryMsg checks [8]·(S·B) = [8]·(R + k·A).
//
// Torsion components of R and A vanish under the cofactor, so a key or R of
// small order is accepted. Use VerifyStrictArbitraryMsg wherever a signature
// must bind one message to one identity.
func (sig Signature) VerifyArbitraryMsg(message []byte, pk PublicKey) error {
	A, R, S, k, err := sig.operands(message, pk)
	if err != nil {
		return rejected("VerifyArbitraryMsg", pk, err)
	}

	// S·B - k·A - R
	minusA := new(edwards25519.Point).Negate(A)
	check := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)
	check.Subtract(check, R)
	check.MultByCofactor(check)

	if check.Equal(edwards25519.NewIdentityPoint()) != 1 {
		return rejected("VerifyArbitraryMsg", pk, ErrValidation)
	}
	return nil
}

// VerifyStrict checks sig over the signing message of v with the strict
// policy. See VerifyStrictArbitraryMsg.
func (sig Signature) VerifyStrict(v Signable, pk PublicKey) error {
	msg, err := SigningMessage(v)
	if err != nil {
		return err
	}
	return sig.VerifyStrictArbitraryMsg(msg, pk)
}

// VerifyStrictArbitraryMsg rejects A or R of small order and then checks the
// uncofactored equation S·B - k·A = R by comparing encodings, which also
// rejects a non-canonical encoding of R.
func (sig Signature) VerifyStrictArbitraryMsg(message []byte, pk PublicKey) error {
	A, R, S, k, err := sig.operands(message, pk)
	if err != nil {
		return rejected("VerifyStrictArbitraryMsg", pk, err)
	}
	if isSmallOrder(A) {
		return rejected("VerifyStrictArbitraryMsg", pk,
			fmt.Errorf("%w: %w: public key", ErrValidation, ErrSmallSubgroup))
	}
	if isSmallOrder(R) {
		return rejected("VerifyStrictArbitraryMsg", pk,
			fmt.Errorf("%w: %w: signature R", ErrValidation, ErrSmallSubgroup))
	}

	minusA := new(edwards25519.Point).Negate(A)
	expected := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)
	if [32]byte(expected.Bytes()) != sig.r {
		return rejected("VerifyStrictArbitraryMsg", pk, ErrValidation)
	}
	return nil
}
