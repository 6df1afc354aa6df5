// Package eddsastrict decides whether raw bytes are acceptable Ed25519 keys
// and signatures, and whether a signature is valid for a message.
//
// Parsing enforces structure: keys are 32 bytes and must decode to a curve
// point, signatures are 64 bytes and S must be below the group order L
// (checked independently of the curve library, which rules out S+L style
// malleability).
//
// Verification comes in two named policies:
//
//   - Verify / VerifyArbitraryMsg: permissive. Checks the cofactored equation
//     [8]·(S·B) = [8]·(R + k·A), so torsion components of R and A cancel.
//     Only for compatibility with legacy verifiers.
//   - VerifyStrict / VerifyStrictArbitraryMsg: strict. Rejects R or A of
//     small order and checks S·B = R + k·A exactly. Use this wherever a
//     signature must bind one message to one key.
//
// Basic Usage:
//
//	account, err := eddsastrict.NewAccountKeyFromHex("0x0ca6...2342")
//	sig := account.PrivateKey().SignArbitraryMessage([]byte("hello_world"))
//	err = sig.VerifyStrictArbitraryMsg([]byte("hello_world"), account.PublicKey())
//
// Batch verification checks many signatures over one message with a single
// multi-scalar multiplication and fresh random coefficients per call:
//
//	pairs := []eddsastrict.KeySignature{{PublicKey: pk1, Signature: sig1}, ...}
//	if err := eddsastrict.BatchVerifyArbitraryMsg(msg, pairs); err != nil {
//		bad, _ := eddsastrict.FindInvalid(ctx, msg, pairs, eddsastrict.Signature.VerifyStrictArbitraryMsg, 0)
//		// bad holds the failing indices
//	}
//
// Every error means "reject". The kinds (ErrWrongLength, ErrDeserialization,
// ErrSmallSubgroup, ErrCanonicalRepresentation, ErrValidation) are for
// diagnostics only.
package eddsastrict
