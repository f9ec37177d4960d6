// Package prover implements the proof issuance pipeline: it assembles the
// guest inputs, drives the proof backend over the replay-scoring guest,
// extracts a transport-ready seal, and self-verifies the receipt against the
// fixed program identity before returning a result.
package prover

import (
	"os"
	"strings"
)

// ReceiptKind selects the proof strength level produced by the backend.
type ReceiptKind string

const (
	// KindComposite is the fast, insecure development mode. Its receipt may
	// span multiple segments.
	KindComposite ReceiptKind = "composite"

	// KindSuccinct is the intermediate mode: one compressed segment, still
	// not transport-compatible.
	KindSuccinct ReceiptKind = "succinct"

	// KindGroth16 is the strongest, transport-compatible mode and the only
	// kind acceptable for production submission.
	KindGroth16 ReceiptKind = "groth16"
)

// ReceiptKindEnv is the environment variable selecting the receipt kind.
const ReceiptKindEnv = "TYPING_PROOF_RECEIPT_KIND"

// KindFromEnv reads the receipt kind from the environment. Unset or
// unrecognized values fall back to groth16. The second return value reports
// whether a groth16 receipt is required for the run: only the explicit
// weaker modes relax the requirement.
func KindFromEnv() (ReceiptKind, bool) {
	kind := strings.ToLower(os.Getenv(ReceiptKindEnv))
	switch ReceiptKind(kind) {
	case KindComposite:
		return KindComposite, false
	case KindSuccinct:
		return KindSuccinct, false
	default:
		return KindGroth16, true
	}
}
