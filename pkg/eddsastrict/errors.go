package eddsastrict

import (
	"errors"
	"fmt"
)

// Error kinds returned by this package. Every kind means "reject"; they exist
// for diagnostics only.
var (
	// ErrWrongLength is returned when an input is not exactly the expected size.
	ErrWrongLength = errors.New("eddsastrict: wrong length")

	// ErrDeserialization is returned when bytes of the right length do not
	// decode to a curve point, or an encoded string is malformed.
	ErrDeserialization = errors.New("eddsastrict: deserialization error")

	// ErrSmallSubgroup is returned when a point has order dividing the cofactor.
	ErrSmallSubgroup = errors.New("eddsastrict: point in small subgroup")

	// ErrCanonicalRepresentation is returned when a signature scalar is not
	// strictly less than the group order.
	ErrCanonicalRepresentation = errors.New("eddsastrict: non-canonical signature scalar")

	// ErrValidation is returned when a verification equation does not hold.
	ErrValidation = errors.New("eddsastrict: signature validation failed")
)

// LengthError reports the expected and actual size of a rejected input.
type LengthError struct {
	What string
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("eddsastrict: %s must be %d bytes, got %d", e.What, e.Want, e.Got)
}

// Is makes errors.Is(err, ErrWrongLength) hold for every LengthError.
func (e *LengthError) Is(target error) bool {
	return target == ErrWrongLength
}

func checkLength(what string, b []byte, want int) error {
	if len(b) != want {
		return &LengthError{What: what, Want: want, Got: len(b)}
	}
	return nil
}
