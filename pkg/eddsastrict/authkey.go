package eddsastrict

import (
	"golang.org/x/crypto/sha3"
)

// AuthenticationKeyLength is the size of an authentication key.
const AuthenticationKeyLength = 32

// ed25519Scheme is the single-signer Ed25519 scheme byte appended to the key
// before hashing.
const ed25519Scheme byte = 0x00

// AuthenticationKey is SHA3-256(public key ‖ scheme). For an account that
// never rotated its key it is also the account address.
type AuthenticationKey [AuthenticationKeyLength]byte

// AuthenticationKeyFromEd25519 derives the authentication key of a
// single-signer Ed25519 account.
func AuthenticationKeyFromEd25519(pk PublicKey) AuthenticationKey {
	h := sha3.New256()
	h.Write(pk.b[:])
	h.Write([]byte{ed25519Scheme})
	var ak AuthenticationKey
	copy(ak[:], h.Sum(nil))
	return ak
}

// AccountAddress returns the "0x"-prefixed hex form of the key.
func (ak AuthenticationKey) AccountAddress() string {
	return encode(ak[:])
}

func (ak AuthenticationKey) String() string {
	return ak.AccountAddress()
}
