package eddsastrict

import (
	"crypto/ed25519"
	"encoding"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const domainSeparatorSalt = "APTOS::"

// Signable is a structured value that can be signed. Its signing message is
// SHA3-256("APTOS::" + TypeName()) followed by its binary encoding, so two
// types with identical encodings never share a signature.
type Signable interface {
	TypeName() string
	encoding.BinaryMarshaler
}

// DomainSeparator returns SHA3-256("APTOS::" + typeName).
func DomainSeparator(typeName string) [32]byte {
	return sha3.Sum256([]byte(domainSeparatorSalt + typeName))
}

// SigningMessage returns the bytes that Sign and Verify hash for v.
func SigningMessage(v Signable) ([]byte, error) {
	body, err := v.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", v.TypeName(), err)
	}
	prefix := DomainSeparator(v.TypeName())
	msg := make([]byte, 0, len(prefix)+len(body))
	msg = append(msg, prefix[:]...)
	msg = append(msg, body...)
	return msg, nil
}

// Sign signs the signing message of v.
func (k PrivateKey) Sign(v Signable) (Signature, error) {
	msg, err := SigningMessage(v)
	if err != nil {
		return Signature{}, err
	}
	return k.SignArbitraryMessage(msg), nil
}

// SignArbitraryMessage signs raw bytes. The produced S is always canonical.
func (k PrivateKey) SignArbitraryMessage(message []byte) Signature {
	raw := ed25519.Sign(k.expanded(), message)
	var sig Signature
	copy(sig.r[:], raw[:32])
	copy(sig.s[:], raw[32:])
	return sig
}
