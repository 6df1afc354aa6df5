package eddsastrict

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"filippo.io/edwards25519"
	"github.com/mahdiidarabi/ed25519-strict/internal/workpool"
)

// KeySignature pairs a public key with its signature over a shared message.
type KeySignature struct {
	PublicKey PublicKey
	Signature Signature
}

// BatchVerify verifies every pair over the signing message of v. See
// BatchVerifyArbitraryMsg.
func BatchVerify(v Signable, pairs []KeySignature) error {
	msg, err := SigningMessage(v)
	if err != nil {
		return err
	}
	return BatchVerifyArbitraryMsg(msg, pairs)
}

// BatchVerifyArbitraryMsg checks all pairs with a single multi-scalar
// multiplication:
//
//	[Σ z_i·S_i]·B = Σ z_i·R_i + Σ (z_i·k_i)·A_i
//
// The coefficients z_i are fresh nonzero scalars from crypto/rand on every
// call. Keys and R values of small order are rejected as in strict
// verification, and so are points with any torsion component: a pair whose
// torsion happens to cancel in strict verification still fails here. The result does not say which pair failed; use FindInvalid
// for that. An empty batch verifies.
func BatchVerifyArbitraryMsg(message []byte, pairs []KeySignature) error {
	return batchVerify(rand.Reader, message, pairs)
}

type batchTerm struct {
	A, R *edwards25519.Point
	S, k *edwards25519.Scalar
}

func batchVerify(random io.Reader, message []byte, pairs []KeySignature) error {
	n := len(pairs)
	if n == 0 {
		return nil
	}

	terms := make([]batchTerm, n)
	decoded := workpool.Run(context.Background(), n, 0, func(_ context.Context, i int) error {
		A, R, S, k, err := pairs[i].Signature.operands(message, pairs[i].PublicKey)
		if err != nil {
			return err
		}
		if isSmallOrder(A) {
			return fmt.Errorf("%w: %w: public key", ErrValidation, ErrSmallSubgroup)
		}
		if isSmallOrder(R) {
			return fmt.Errorf("%w: %w: signature R", ErrValidation, ErrSmallSubgroup)
		}
		// The combined equation is uncofactored. A torsion component left in
		// A or R would cancel whenever z_i is a multiple of its order.
		if !isTorsionFree(A) {
			return fmt.Errorf("%w: %w: public key has a torsion component", ErrValidation, ErrSmallSubgroup)
		}
		if !isTorsionFree(R) {
			return fmt.Errorf("%w: %w: signature R has a torsion component", ErrValidation, ErrSmallSubgroup)
		}
		terms[i] = batchTerm{A: A, R: R, S: S, k: k}
		return nil
	})
	if failed := decoded.Failed(); len(failed) > 0 {
		i := failed[0]
		return rejected("BatchVerify", pairs[i].PublicKey, fmt.Errorf("pair %d: %w", i, decoded.Errors[i]))
	}

	scalars := make([]*edwards25519.Scalar, 0, 2*n+1)
	points := make([]*edwards25519.Point, 0, 2*n+1)
	sumS := edwards25519.NewScalar()
	for _, t := range terms {
		z, err := batchCoefficient(random)
		if err != nil {
			return err
		}
		sumS.MultiplyAdd(z, t.S, sumS)

		scalars = append(scalars, edwards25519.NewScalar().Negate(z))
		points = append(points, t.R)

		zk := edwards25519.NewScalar().Multiply(z, t.k)
		scalars = append(scalars, edwards25519.NewScalar().Negate(zk))
		points = append(points, t.A)
	}
	scalars = append(scalars, sumS)
	points = append(points, edwards25519.NewGeneratorPoint())

	check := new(edwards25519.Point).VarTimeMultiScalarMult(scalars, points)
	if check.Equal(edwards25519.NewIdentityPoint()) != 1 {
		logFor("BatchVerify").WithField("pairs", n).WithError(ErrValidation).Debug("batch rejected")
		return ErrValidation
	}
	return nil
}

// batchCoefficient draws a uniform nonzero scalar.
func batchCoefficient(random io.Reader) (*edwards25519.Scalar, error) {
	var buf [64]byte
	zero := edwards25519.NewScalar()
	for {
		if _, err := io.ReadFull(random, buf[:]); err != nil {
			return nil, fmt.Errorf("failed to draw batch coefficient: %w", err)
		}
		z, err := edwards25519.NewScalar().SetUniformBytes(buf[:])
		if err != nil {
			return nil, err
		}
		if z.Equal(zero) != 1 {
			return z, nil
		}
	}
}
