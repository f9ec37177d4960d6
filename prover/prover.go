package prover

import (
	"errors"
	"fmt"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/crypto"
	"github.com/jamesbachini/typezero/journal"
	"github.com/jamesbachini/typezero/log"
	"github.com/jamesbachini/typezero/replay"
)

// Pipeline errors.
var (
	// ErrGroth16Required is returned when the strongest receipt kind is
	// required but the backend produced a weaker one.
	ErrGroth16Required = errors.New("prover: groth16 receipt required but not produced")

	// ErrVerificationFailed is returned when the freshly produced receipt
	// does not verify against the program image ID. This is fatal and never
	// silently ignored.
	ErrVerificationFailed = errors.New("prover: receipt verification failed")
)

// Result is the outcome of a successful proving run: the decoded journal,
// its canonical bytes and content hash, the transport-ready seal, and the
// program identity the receipt verifies under.
type Result struct {
	Journal      journal.Journal
	JournalBytes [journal.EncodedLen]byte
	JournalHash  types.Hash
	Seal         []byte
	ImageID      types.Hash
}

// Prove runs the full issuance pipeline for one typing run. It normalizes
// and hashes the prompt, encodes the event list, drives the backend with the
// receipt kind selected from the environment, self-verifies the receipt, and
// extracts the seal. Proving blocks until complete; there is no cancellation
// and the single outcome is the result or an error.
func Prove(challengeID uint32, playerPubkey types.PublicKey, prompt string, events []replay.Event) (*Result, error) {
	kind, requireGroth16 := KindFromEnv()
	return prove(kind, requireGroth16, challengeID, playerPubkey, prompt, events)
}

// ProveWithKind is Prove with an explicit receipt kind, bypassing the
// environment selector. Weaker kinds never satisfy a production submission.
func ProveWithKind(kind ReceiptKind, challengeID uint32, playerPubkey types.PublicKey, prompt string, events []replay.Event) (*Result, error) {
	return prove(kind, kind == KindGroth16, challengeID, playerPubkey, prompt, events)
}

func prove(kind ReceiptKind, requireGroth16 bool, challengeID uint32, playerPubkey types.PublicKey, prompt string, events []replay.Event) (*Result, error) {
	logger := log.Default().Module("prover")

	promptBytes, err := replay.NormalizePrompt(prompt)
	if err != nil {
		return nil, err
	}
	promptHash := replay.PromptHash(promptBytes)

	eventsBytes, err := replay.EncodeEvents(events)
	if err != nil {
		return nil, err
	}

	logger.Debug("proving replay", "challenge", challengeID, "kind", string(kind), "events", len(events))

	receipt, err := ProveReplay(kind, challengeID, promptHash, playerPubkey, promptBytes, eventsBytes)
	if err != nil {
		return nil, err
	}

	imageID := ImageID()
	ok, err := VerifyReceipt(imageID, receipt)
	if err != nil {
		return nil, fmt.Errorf("prover: self-verification errored: %w", err)
	}
	if !ok {
		return nil, ErrVerificationFailed
	}
	if requireGroth16 && receipt.Kind != KindGroth16 {
		return nil, ErrGroth16Required
	}

	j, err := journal.Decode(receipt.JournalBytes)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Journal: j,
		ImageID: imageID,
		Seal:    SealBytes(receipt),
	}
	copy(result.JournalBytes[:], receipt.JournalBytes)
	result.JournalHash = crypto.SHA256Hash(receipt.JournalBytes)

	logger.Info("replay proven",
		"challenge", challengeID,
		"score", j.Score,
		"wpm_x100", j.WpmX100,
		"accuracy_bps", j.AccuracyBps,
		"journal", result.JournalHash,
	)
	return result, nil
}

// SealBytes extracts the transport-encoded seal from a receipt. A
// single-segment receipt's blob is returned unmodified; multi-segment
// receipts concatenate their blobs in segment order.
func SealBytes(r *Receipt) []byte {
	if len(r.Segments) == 1 {
		return append([]byte(nil), r.Segments[0].Blob...)
	}
	var out []byte
	for _, seg := range r.Segments {
		out = append(out, seg.Blob...)
	}
	return out
}
