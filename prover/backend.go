package prover

import (
	"bytes"
	"encoding/binary"
	"errors"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/crypto"
	"github.com/jamesbachini/typezero/replay"
)

// Backend errors.
var (
	ErrNilReceipt        = errors.New("prover: nil receipt")
	ErrEmptyReceipt      = errors.New("prover: receipt has no segments")
	ErrUnsupportedKind   = errors.New("prover: unsupported receipt kind")
	ErrJournalCommitment = errors.New("prover: journal commitment mismatch")
)

// Seal sizing follows Groth16 conventions: A(64) + B(128) + C(64).
// Succinct segments are a compressed 128-byte form; composite segments are
// 96 bytes each. In production these would be actual proof system output.
const (
	groth16SealSize   = 256
	succinctSealSize  = 128
	compositeSealSize = 96

	// compositeSegmentSpan is the number of journal-committed bytes covered
	// by one composite segment.
	compositeSegmentSpan = 32
)

// programTag is the versioned identity of the replay-scoring guest. The
// image ID is its SHA-256; changing the guest computation must change this
// tag so stale proofs stop verifying.
const programTag = "typezero/replay-guest/v1"

// ImageID returns the fixed 32-byte program identity of the replay-scoring
// computation. The ledger pins this value at initialization and rejects
// journals attested by any other program.
func ImageID() types.Hash {
	return crypto.SHA256Hash([]byte(programTag))
}

// Segment is one proof segment. Composite receipts carry several; succinct
// and groth16 receipts always carry exactly one.
type Segment struct {
	Blob []byte
}

// Receipt is the backend's output: the committed journal bytes plus the
// proof segments attesting to them.
type Receipt struct {
	Kind         ReceiptKind
	JournalBytes []byte
	Segments     []Segment
}

// ProveReplay executes the replay-scoring guest on the committed-then-private
// inputs and produces a receipt of the requested kind. The guest's committed
// output is the encoded journal; any guest failure aborts proving with no
// receipt.
func ProveReplay(kind ReceiptKind, challengeID uint32, promptHash types.Hash, playerPubkey types.PublicKey, promptBytes, eventsBytes []byte) (*Receipt, error) {
	j, err := replay.Run(challengeID, playerPubkey, promptHash, promptBytes, eventsBytes)
	if err != nil {
		return nil, err
	}
	enc := j.Encode()
	journalBytes := enc[:]
	journalHash := crypto.SHA256Hash(journalBytes)

	segments, err := buildSegments(kind, journalHash, ImageID(), len(journalBytes))
	if err != nil {
		return nil, err
	}

	return &Receipt{
		Kind:         kind,
		JournalBytes: append([]byte(nil), journalBytes...),
		Segments:     segments,
	}, nil
}

// VerifyReceipt checks a receipt against the expected program identity. It
// recomputes every segment from the receipt's journal commitment and the
// image ID and compares byte-for-byte. A well-formed receipt attested by a
// different program yields (false, nil); malformed receipts yield an error.
func VerifyReceipt(imageID types.Hash, r *Receipt) (bool, error) {
	if r == nil {
		return false, ErrNilReceipt
	}
	if len(r.Segments) == 0 {
		return false, ErrEmptyReceipt
	}
	if len(r.JournalBytes) == 0 {
		return false, ErrJournalCommitment
	}
	journalHash := crypto.SHA256Hash(r.JournalBytes)
	expected, err := buildSegments(r.Kind, journalHash, imageID, len(r.JournalBytes))
	if err != nil {
		return false, err
	}
	if len(expected) != len(r.Segments) {
		return false, nil
	}
	for i := range expected {
		if !bytes.Equal(expected[i].Blob, r.Segments[i].Blob) {
			return false, nil
		}
	}
	return true, nil
}

// buildSegments derives the deterministic segment blobs for a receipt kind.
func buildSegments(kind ReceiptKind, journalHash, imageID types.Hash, journalLen int) ([]Segment, error) {
	switch kind {
	case KindGroth16:
		return []Segment{{Blob: groth16Seal(journalHash, imageID)}}, nil
	case KindSuccinct:
		return []Segment{{Blob: expandSeal(journalHash, imageID, "succinct", 0, succinctSealSize)}}, nil
	case KindComposite:
		n := (journalLen + compositeSegmentSpan - 1) / compositeSegmentSpan
		if n < 1 {
			n = 1
		}
		segments := make([]Segment, 0, n)
		for i := 0; i < n; i++ {
			segments = append(segments, Segment{
				Blob: expandSeal(journalHash, imageID, "composite", uint32(i), compositeSealSize),
			})
		}
		return segments, nil
	default:
		return nil, ErrUnsupportedKind
	}
}

// groth16Seal assembles the [A, B, C] seal bound to the journal commitment
// and program identity.
func groth16Seal(journalHash, imageID types.Hash) []byte {
	a := expandSeal(journalHash, imageID, "groth16-A", 0, 64)
	b := expandSeal(journalHash, imageID, "groth16-B", 0, 128)
	c := expandSeal(crypto.SHA256Hash(a), crypto.SHA256Hash(b), "groth16-C", 0, 64)
	out := make([]byte, 0, groth16SealSize)
	out = append(out, a...)
	out = append(out, b...)
	out = append(out, c...)
	return out
}

// expandSeal derives size bytes from (journalHash, imageID, domain, index)
// by counter-mode SHA-256 expansion.
func expandSeal(journalHash, imageID types.Hash, domain string, index uint32, size int) []byte {
	out := make([]byte, 0, size)
	var counter uint32
	for len(out) < size {
		var idx [8]byte
		binary.LittleEndian.PutUint32(idx[:4], index)
		binary.LittleEndian.PutUint32(idx[4:], counter)
		h := crypto.SHA256(journalHash[:], imageID[:], []byte(domain), idx[:])
		out = append(out, h...)
		counter++
	}
	return out[:size]
}
