// Package journal implements the canonical fixed-width encoding of the
// publicly committed proof output. The 88-byte layout is a wire contract
// between the proving side and the verifying side: both encode the same
// journal byte-for-byte and compare SHA-256 hashes of the encoding, so any
// layout change is a breaking change. There is no version field.
package journal

import (
	"encoding/binary"
	"errors"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/crypto"
)

// EncodedLen is the exact byte length of an encoded journal:
// challenge_id(4) + player_pubkey(32) + prompt_hash(32) + score(8) +
// wpm_x100(4) + accuracy_bps(4) + duration_ms(4).
const EncodedLen = 88

// ErrLengthMismatch is returned by Decode when the input is not exactly
// EncodedLen bytes.
var ErrLengthMismatch = errors.New("journal: length mismatch")

// Journal is the single canonical record binding a proof to its claim. All
// multi-byte fields are little-endian on the wire.
type Journal struct {
	ChallengeID  uint32
	PlayerPubkey types.PublicKey
	PromptHash   types.Hash
	Score        uint64
	WpmX100      uint32
	AccuracyBps  uint32
	DurationMs   uint32
}

// Encode serializes the journal into its fixed 88-byte wire form.
func (j *Journal) Encode() [EncodedLen]byte {
	var out [EncodedLen]byte
	offset := 0

	binary.LittleEndian.PutUint32(out[offset:], j.ChallengeID)
	offset += 4

	copy(out[offset:], j.PlayerPubkey[:])
	offset += types.PublicKeyLength

	copy(out[offset:], j.PromptHash[:])
	offset += types.HashLength

	binary.LittleEndian.PutUint64(out[offset:], j.Score)
	offset += 8

	binary.LittleEndian.PutUint32(out[offset:], j.WpmX100)
	offset += 4

	binary.LittleEndian.PutUint32(out[offset:], j.AccuracyBps)
	offset += 4

	binary.LittleEndian.PutUint32(out[offset:], j.DurationMs)

	return out
}

// Decode parses an 88-byte wire journal. It is the exact inverse of Encode
// for well-formed journals and fails with ErrLengthMismatch for any other
// input length.
func Decode(b []byte) (Journal, error) {
	if len(b) != EncodedLen {
		return Journal{}, ErrLengthMismatch
	}
	var j Journal
	offset := 0

	j.ChallengeID = binary.LittleEndian.Uint32(b[offset:])
	offset += 4

	copy(j.PlayerPubkey[:], b[offset:offset+types.PublicKeyLength])
	offset += types.PublicKeyLength

	copy(j.PromptHash[:], b[offset:offset+types.HashLength])
	offset += types.HashLength

	j.Score = binary.LittleEndian.Uint64(b[offset:])
	offset += 8

	j.WpmX100 = binary.LittleEndian.Uint32(b[offset:])
	offset += 4

	j.AccuracyBps = binary.LittleEndian.Uint32(b[offset:])
	offset += 4

	j.DurationMs = binary.LittleEndian.Uint32(b[offset:])

	return j, nil
}

// Hash returns the SHA-256 of the encoded journal. This is the journal's
// content identity, used for tamper-evidence comparisons between
// independently computed results.
func (j *Journal) Hash() types.Hash {
	enc := j.Encode()
	return crypto.SHA256Hash(enc[:])
}
