package replay

import (
	"testing"

	"github.com/jamesbachini/typezero/core/types"
)

// runFixture normalizes the prompt, builds a per-character event stream at
// the given delay, and returns everything Run needs.
func runFixture(t *testing.T, prompt string, dtMs uint16) (types.Hash, []byte, []byte) {
	t.Helper()
	promptBytes, err := NormalizePrompt(prompt)
	if err != nil {
		t.Fatalf("NormalizePrompt: %v", err)
	}
	events := make([]Event, 0, len(promptBytes))
	for _, b := range promptBytes {
		if b == ' ' {
			events = append(events, Event{DtMs: dtMs, Key: KeySpace})
			continue
		}
		events = append(events, Event{DtMs: dtMs, Key: b - 'a'})
	}
	eventsBytes, err := EncodeEvents(events)
	if err != nil {
		t.Fatalf("EncodeEvents: %v", err)
	}
	return PromptHash(promptBytes), promptBytes, eventsBytes
}

func testPubkey() types.PublicKey {
	var pk types.PublicKey
	for i := range pk {
		pk[i] = 9
	}
	return pk
}

func TestRun_PerfectReplay(t *testing.T) {
	hash, promptBytes, eventsBytes := runFixture(t, "hello world", 120)

	j, err := Run(1, testPubkey(), hash, promptBytes, eventsBytes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if j.AccuracyBps != 10000 {
		t.Errorf("accuracy_bps = %d, want 10000", j.AccuracyBps)
	}
	// 11 chars in 11x120 ms: wpm_x100 = 11 * 1_200_000 / 1320 = 10000.
	if j.WpmX100 != 10000 {
		t.Errorf("wpm_x100 = %d, want 10000", j.WpmX100)
	}
	if j.Score != uint64(j.WpmX100) {
		t.Errorf("score = %d, want %d (full accuracy passes wpm through)", j.Score, j.WpmX100)
	}
	if j.DurationMs != 1320 {
		t.Errorf("duration_ms = %d, want 1320", j.DurationMs)
	}
	if j.ChallengeID != 1 || j.PromptHash != hash || j.PlayerPubkey != testPubkey() {
		t.Error("journal binding fields not carried through")
	}
}

func TestRun_Deterministic(t *testing.T) {
	hash, promptBytes, eventsBytes := runFixture(t, "the quick brown fox", 95)

	first, err := Run(7, testPubkey(), hash, promptBytes, eventsBytes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	second, err := Run(7, testPubkey(), hash, promptBytes, eventsBytes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if first != second {
		t.Error("identical inputs produced different journals")
	}
	if first.Hash() != second.Hash() {
		t.Error("identical inputs produced different journal hashes")
	}
}

func TestRun_MistakesReduceAccuracy(t *testing.T) {
	hash, promptBytes, _ := runFixture(t, "abc", 100)

	events := []Event{
		{DtMs: 100, Key: 0},  // a
		{DtMs: 100, Key: 23}, // x instead of b
		{DtMs: 100, Key: 2},  // c
	}
	eventsBytes, err := EncodeEvents(events)
	if err != nil {
		t.Fatal(err)
	}

	j, err := Run(1, testPubkey(), hash, promptBytes, eventsBytes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 2 of 3 positions match: floor(2 * 10000 / 3) = 6666.
	if j.AccuracyBps != 6666 {
		t.Errorf("accuracy_bps = %d, want 6666", j.AccuracyBps)
	}
}

func TestRun_BackspaceCorrection(t *testing.T) {
	hash, promptBytes, _ := runFixture(t, "ab", 100)

	// Type "ax", erase the x, type "b": output is "ab", 4 keystrokes typed.
	events := []Event{
		{DtMs: 100, Key: 0},
		{DtMs: 100, Key: 23},
		{DtMs: 100, Key: KeyBackspace},
		{DtMs: 100, Key: 1},
	}
	eventsBytes, err := EncodeEvents(events)
	if err != nil {
		t.Fatal(err)
	}

	j, err := Run(1, testPubkey(), hash, promptBytes, eventsBytes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if j.AccuracyBps != 10000 {
		t.Errorf("accuracy_bps = %d, want 10000 after correction", j.AccuracyBps)
	}
	// Speed counts the final output (2 chars), not keystrokes pressed.
	if want := uint32(2 * 1_200_000 / 400); j.WpmX100 != want {
		t.Errorf("wpm_x100 = %d, want %d", j.WpmX100, want)
	}
}

func TestRun_ExtraCharactersNotRewarded(t *testing.T) {
	hash, promptBytes, _ := runFixture(t, "ab", 100)

	// Output "abc": one character beyond the prompt.
	events := []Event{
		{DtMs: 100, Key: 0},
		{DtMs: 100, Key: 1},
		{DtMs: 100, Key: 2},
	}
	eventsBytes, err := EncodeEvents(events)
	if err != nil {
		t.Fatal(err)
	}

	j, err := Run(1, testPubkey(), hash, promptBytes, eventsBytes)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if j.AccuracyBps != 10000 {
		t.Errorf("accuracy_bps = %d, want 10000 (only overlap positions count)", j.AccuracyBps)
	}
}

func TestRun_Failures(t *testing.T) {
	hash, promptBytes, eventsBytes := runFixture(t, "hello world", 120)

	t.Run("prompt hash mismatch", func(t *testing.T) {
		var wrong types.Hash
		wrong[0] = 1
		if _, err := Run(1, testPubkey(), wrong, promptBytes, eventsBytes); err != ErrPromptHashMismatch {
			t.Errorf("err = %v, want ErrPromptHashMismatch", err)
		}
	})

	t.Run("empty prompt", func(t *testing.T) {
		empty := []byte{}
		if _, err := Run(1, testPubkey(), PromptHash(empty), empty, eventsBytes); err != ErrEmptyPrompt {
			t.Errorf("err = %v, want ErrEmptyPrompt", err)
		}
	})

	t.Run("delay below minimum", func(t *testing.T) {
		short, err := EncodeEvents([]Event{{DtMs: 5, Key: 0}})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Run(1, testPubkey(), hash, promptBytes, short); err != ErrDelayTooShort {
			t.Errorf("err = %v, want ErrDelayTooShort", err)
		}
	})

	t.Run("duration below floor", func(t *testing.T) {
		// 11-char prompt needs >= 440 ms; a single 10 ms key is far under.
		fast, err := EncodeEvents([]Event{{DtMs: 10, Key: 7}})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Run(1, testPubkey(), hash, promptBytes, fast); err != ErrDurationTooShort {
			t.Errorf("err = %v, want ErrDurationTooShort", err)
		}
	})

	t.Run("no events", func(t *testing.T) {
		none, err := EncodeEvents(nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := Run(1, testPubkey(), hash, promptBytes, none); err != ErrDurationTooShort {
			t.Errorf("err = %v, want ErrDurationTooShort", err)
		}
	})

	t.Run("truncated events", func(t *testing.T) {
		if _, err := Run(1, testPubkey(), hash, promptBytes, eventsBytes[:len(eventsBytes)-1]); err != ErrEventsTruncated {
			t.Errorf("err = %v, want ErrEventsTruncated", err)
		}
	})
}
