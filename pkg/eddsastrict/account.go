package eddsastrict

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AccountKey bundles a private key with the public and authentication keys
// derived from it.
type AccountKey struct {
	privateKey        PrivateKey
	publicKey         PublicKey
	authenticationKey AuthenticationKey
}

// NewAccountKey derives the public and authentication keys of k.
func NewAccountKey(k PrivateKey) AccountKey {
	pk := k.PublicKey()
	return AccountKey{
		privateKey:        k,
		publicKey:         pk,
		authenticationKey: AuthenticationKeyFromEd25519(pk),
	}
}

// NewAccountKeyFromHex builds an account key from a hex seed, with or
// without the "0x" prefix.
func NewAccountKeyFromHex(seedHex string) (AccountKey, error) {
	seed, err := hex.DecodeString(strings.TrimPrefix(seedHex, encodedPrefix))
	if err != nil {
		return AccountKey{}, fmt.Errorf("failed to parse private key: %w: %v", ErrDeserialization, err)
	}
	k, err := PrivateKeyFromBytes(seed)
	if err != nil {
		return AccountKey{}, fmt.Errorf("failed to parse private key: %w", err)
	}
	return NewAccountKey(k), nil
}

// PrivateKey returns the signing key.
func (a AccountKey) PrivateKey() PrivateKey { return a.privateKey }

// PublicKey returns the derived public key.
func (a AccountKey) PublicKey() PublicKey { return a.publicKey }

// AuthenticationKey returns the derived authentication key.
func (a AccountKey) AuthenticationKey() AuthenticationKey { return a.authenticationKey }

// Sign signs v with the account's private key.
func (a AccountKey) Sign(v Signable) (Signature, error) {
	return a.privateKey.Sign(v)
}

// String identifies the account without printing the private key.
func (a AccountKey) String() string {
	return "AccountKey{" + a.authenticationKey.AccountAddress() + "}"
}
