// Package types defines the core typezero data structures shared between the
// proving side and the ledger side: fixed-width hashes, player keys, and the
// ledger addresses derived from them.
package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

const (
	HashLength      = 32
	AddressLength   = 20
	PublicKeyLength = 32
)

// Hash represents a 32-byte SHA-256 digest: prompt hashes, journal hashes
// and program image IDs all share this shape.
type Hash [HashLength]byte

// Address represents the 20-byte ledger address of a player or collaborator.
type Address [AddressLength]byte

// PublicKey is the 32-byte player public key committed into a journal.
type PublicKey [PublicKeyLength]byte

// BytesToHash converts bytes to Hash, left-padding if shorter than 32 bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash converts a hex string to Hash.
func HexToHash(s string) Hash {
	return BytesToHash(fromHex(s))
}

// Bytes returns the byte representation of the hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex returns the hex string representation of the hash.
func (h Hash) Hex() string { return fmt.Sprintf("0x%x", h[:]) }

// SetBytes sets the hash from a byte slice, left-padding if necessary.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}

// IsZero returns whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String implements fmt.Stringer.
func (h Hash) String() string { return h.Hex() }

// BytesToAddress converts bytes to Address, left-padding if shorter than 20 bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	a.SetBytes(b)
	return a
}

// HexToAddress converts a hex string to Address.
func HexToAddress(s string) Address {
	return BytesToAddress(fromHex(s))
}

// Bytes returns the byte representation of the address.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the hex string representation of the address.
func (a Address) Hex() string { return fmt.Sprintf("0x%x", a[:]) }

// SetBytes sets the address from a byte slice.
func (a *Address) SetBytes(b []byte) {
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
}

// IsZero returns whether the address is all zeros.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Cmp compares two addresses lexicographically. This is the total order used
// to break score ties in the leaderboard, so it must be deterministic and
// independent of submission order.
func (a Address) Cmp(other Address) int {
	return bytes.Compare(a[:], other[:])
}

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// BytesToPublicKey converts bytes to PublicKey, left-padding if shorter
// than 32 bytes.
func BytesToPublicKey(b []byte) PublicKey {
	var pk PublicKey
	if len(b) > PublicKeyLength {
		b = b[len(b)-PublicKeyLength:]
	}
	copy(pk[PublicKeyLength-len(b):], b)
	return pk
}

// HexToPublicKey converts a hex string to PublicKey.
func HexToPublicKey(s string) PublicKey {
	return BytesToPublicKey(fromHex(s))
}

// Bytes returns the byte representation of the public key.
func (pk PublicKey) Bytes() []byte { return pk[:] }

// Hex returns the hex string representation of the public key.
func (pk PublicKey) Hex() string { return fmt.Sprintf("0x%x", pk[:]) }

// String implements fmt.Stringer.
func (pk PublicKey) String() string { return pk.Hex() }

// fromHex decodes a hex string, stripping optional "0x" prefix.
func fromHex(s string) []byte {
	if has0xPrefix(s) {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return b
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
