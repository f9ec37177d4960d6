package replay

import (
	"errors"
	"math"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/crypto"
	"github.com/jamesbachini/typezero/journal"
)

// Anti-automation and scoring floors. MinDtMs rejects inter-key delays no
// human produces; MinMsPerChar bounds the total duration from below so a
// replay cannot claim implausible speed for the prompt it typed.
const (
	MinDtMs      = 10
	MinMsPerChar = 40
)

// Replay errors. Any of these aborts the whole computation; no partial
// journal is ever produced.
var (
	ErrPromptHashMismatch = errors.New("replay: prompt hash mismatch")
	ErrEmptyPrompt        = errors.New("replay: prompt length is zero")
	ErrDelayTooShort      = errors.New("replay: inter-key delay below minimum")
	ErrDurationOverflow   = errors.New("replay: duration overflow")
	ErrDurationTooShort   = errors.New("replay: duration too short")
)

// Run executes the deterministic replay-scoring computation. It binds the
// prompt bytes to the claimed hash, decodes and replays the event stream,
// enforces the timing floors and derives the scoring fields, returning the
// journal the proof commits to.
//
// Run is pure: identical inputs always yield an identical journal, whether
// invoked to generate a proof or to independently double-check one.
func Run(challengeID uint32, playerPubkey types.PublicKey, promptHash types.Hash, promptBytes, eventsBytes []byte) (journal.Journal, error) {
	if crypto.SHA256Hash(promptBytes) != promptHash {
		return journal.Journal{}, ErrPromptHashMismatch
	}
	promptLen := uint64(len(promptBytes))
	if promptLen == 0 {
		return journal.Journal{}, ErrEmptyPrompt
	}

	events, err := DecodeEvents(eventsBytes)
	if err != nil {
		return journal.Journal{}, err
	}

	var durationMs uint64
	output := make([]byte, 0, len(events))
	for _, ev := range events {
		if ev.DtMs < MinDtMs {
			return journal.Journal{}, ErrDelayTooShort
		}
		if durationMs > math.MaxUint64-uint64(ev.DtMs) {
			return journal.Journal{}, ErrDurationOverflow
		}
		durationMs += uint64(ev.DtMs)

		switch {
		case ev.Key <= KeyLetterMax:
			output = append(output, 'a'+ev.Key)
		case ev.Key == KeySpace:
			output = append(output, ' ')
		case ev.Key == KeyBackspace:
			if len(output) > 0 {
				output = output[:len(output)-1]
			}
		case ev.Key == KeyEnter:
			// End marker only; no output effect.
		}
	}

	if durationMs < promptLen*MinMsPerChar || durationMs == 0 {
		return journal.Journal{}, ErrDurationTooShort
	}

	// Accuracy rewards only matching positions inside the overlap of output
	// and prompt; extra or missing characters earn nothing. Speed counts the
	// characters actually typed, not the prompt length.
	var correctChars uint64
	cmpLen := len(output)
	if len(promptBytes) < cmpLen {
		cmpLen = len(promptBytes)
	}
	for i := 0; i < cmpLen; i++ {
		if output[i] == promptBytes[i] {
			correctChars++
		}
	}

	accuracyBps := uint32(correctChars * 10000 / promptLen)
	wpmX100 := uint32(uint64(len(output)) * 1_200_000 / durationMs)
	score := uint64(wpmX100) * uint64(accuracyBps) / 10000

	return journal.Journal{
		ChallengeID:  challengeID,
		PlayerPubkey: playerPubkey,
		PromptHash:   promptHash,
		Score:        score,
		WpmX100:      wpmX100,
		AccuracyBps:  accuracyBps,
		DurationMs:   uint32(durationMs),
	}, nil
}
