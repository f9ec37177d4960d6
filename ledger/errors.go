package ledger

import "errors"

// Validator errors. Every failing check aborts the triggering call before
// any state mutation, so the first error reported is the only effect.
var (
	ErrAlreadyInitialized = errors.New("ledger: already initialized")
	ErrNotInitialized     = errors.New("ledger: not initialized")
	ErrAuthRequired       = errors.New("ledger: authorization required")
	ErrInvalidName        = errors.New("ledger: invalid display name")
	ErrInvalidPromptHash  = errors.New("ledger: prompt hash mismatch")
	ErrInvalidChallenge   = errors.New("ledger: invalid challenge")
	ErrChallengeExists    = errors.New("ledger: challenge prompt hash already set")
	ErrInvalidImageID     = errors.New("ledger: image id mismatch")
	ErrInvalidProof       = errors.New("ledger: proof verification failed")
)
