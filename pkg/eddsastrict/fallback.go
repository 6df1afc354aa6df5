package eddsastrict

import (
	"context"

	"github.com/mahdiidarabi/ed25519-strict/internal/workpool"
)

// VerifyFunc is one of the single-signature policies, named at the call site
// as a method expression, e.g. Signature.VerifyStrictArbitraryMsg.
type VerifyFunc func(sig Signature, message []byte, pk PublicKey) error

// FindInvalid runs verify over every pair on numWorkers goroutines
// (0 = one per CPU) and returns the indices that fail, in ascending order.
// It is the follow-up to a failed batch verification.
//
// If ctx is cancelled, the pairs that were not checked are reported as
// invalid and ctx.Err() is returned.
func FindInvalid(ctx context.Context, message []byte, pairs []KeySignature, verify VerifyFunc, numWorkers int) ([]int, error) {
	res := workpool.Run(ctx, len(pairs), numWorkers, func(ctx context.Context, i int) error {
		return verify(pairs[i].Signature, message, pairs[i].PublicKey)
	})

	log := logFor("FindInvalid").WithField("pairs", len(pairs))
	if err := ctx.Err(); err != nil {
		log.WithField("checked", res.Processed).Debug("search cancelled")
		return res.Failed(), err
	}
	failed := res.Failed()
	log.WithField("invalid", len(failed)).Debug("search completed")
	return failed, nil
}
