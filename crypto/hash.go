// Package crypto provides the hashing primitives used across typezero:
// SHA-256 for content identity (prompt hashes, journal hashes, image IDs)
// and Keccak-256 for deriving ledger addresses from player public keys.
package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/sha3"

	"github.com/jamesbachini/typezero/core/types"
)

// SHA256 calculates the SHA-256 hash of the concatenation of the given data.
func SHA256(data ...[]byte) []byte {
	h := sha256.New()
	for _, b := range data {
		h.Write(b)
	}
	return h.Sum(nil)
}

// SHA256Hash calculates SHA-256 and returns it as a types.Hash.
func SHA256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(SHA256(data...))
}

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}

// PubkeyToAddress derives the 20-byte ledger address of a player from the
// 32-byte public key committed into journals: the last 20 bytes of the
// Keccak-256 hash of the key. The ledger only ever sees addresses; the
// full key travels inside the journal.
func PubkeyToAddress(pk types.PublicKey) types.Address {
	h := Keccak256(pk[:])
	return types.BytesToAddress(h[12:])
}
