package prover

import (
	"bytes"
	"testing"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/replay"
)

func fixtureEvents(t *testing.T, prompt string, dtMs uint16) []replay.Event {
	t.Helper()
	normalized, err := replay.NormalizePrompt(prompt)
	if err != nil {
		t.Fatalf("NormalizePrompt: %v", err)
	}
	events := make([]replay.Event, 0, len(normalized))
	for _, b := range normalized {
		if b == ' ' {
			events = append(events, replay.Event{DtMs: dtMs, Key: replay.KeySpace})
			continue
		}
		events = append(events, replay.Event{DtMs: dtMs, Key: b - 'a'})
	}
	return events
}

func fixturePubkey() types.PublicKey {
	var pk types.PublicKey
	for i := range pk {
		pk[i] = 9
	}
	return pk
}

func TestProve_DefaultsToGroth16(t *testing.T) {
	t.Setenv(ReceiptKindEnv, "")

	result, err := Prove(1, fixturePubkey(), "hello world", fixtureEvents(t, "hello world", 120))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if len(result.Seal) != groth16SealSize {
		t.Errorf("seal length = %d, want %d", len(result.Seal), groth16SealSize)
	}
	if result.ImageID != ImageID() {
		t.Errorf("image id = %v, want %v", result.ImageID, ImageID())
	}
	if result.Journal.AccuracyBps != 10000 {
		t.Errorf("accuracy_bps = %d, want 10000", result.Journal.AccuracyBps)
	}
	if result.JournalHash != result.Journal.Hash() {
		t.Error("journal hash disagrees with recomputed content hash")
	}
}

func TestProve_KindFromEnv(t *testing.T) {
	t.Setenv(ReceiptKindEnv, "succinct")

	result, err := Prove(1, fixturePubkey(), "abc", fixtureEvents(t, "abc", 100))
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	if len(result.Seal) != succinctSealSize {
		t.Errorf("seal length = %d, want %d", len(result.Seal), succinctSealSize)
	}
}

func TestProve_Deterministic(t *testing.T) {
	t.Setenv(ReceiptKindEnv, "groth16")
	events := fixtureEvents(t, "hello world", 120)

	first, err := Prove(3, fixturePubkey(), "hello world", events)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	second, err := Prove(3, fixturePubkey(), "hello world", events)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}

	if first.JournalHash != second.JournalHash {
		t.Error("journal hashes differ between identical runs")
	}
	if !bytes.Equal(first.Seal, second.Seal) {
		t.Error("seals differ between identical runs")
	}
}

func TestProve_Groth16Required(t *testing.T) {
	// A weaker receipt under a groth16 requirement is a distinct error.
	if _, err := prove(KindSuccinct, true, 1, fixturePubkey(), "abc", fixtureEvents(t, "abc", 100)); err != ErrGroth16Required {
		t.Errorf("err = %v, want ErrGroth16Required", err)
	}
}

func TestProve_GuestFailureSurfaces(t *testing.T) {
	t.Setenv(ReceiptKindEnv, "groth16")

	events := []replay.Event{{DtMs: 5, Key: 0}}
	if _, err := Prove(1, fixturePubkey(), "a", events); err != replay.ErrDelayTooShort {
		t.Errorf("err = %v, want replay.ErrDelayTooShort", err)
	}
}

func TestCompositeReceipt_SealConcatenation(t *testing.T) {
	result, err := ProveWithKind(KindComposite, 1, fixturePubkey(), "hello world", fixtureEvents(t, "hello world", 120))
	if err != nil {
		t.Fatalf("ProveWithKind: %v", err)
	}

	// An 88-byte journal spans three composite segments.
	if want := 3 * compositeSealSize; len(result.Seal) != want {
		t.Errorf("seal length = %d, want %d", len(result.Seal), want)
	}
}

func TestVerifyReceipt(t *testing.T) {
	events := fixtureEvents(t, "hello world", 120)
	normalized, err := replay.NormalizePrompt("hello world")
	if err != nil {
		t.Fatal(err)
	}
	eventsBytes, err := replay.EncodeEvents(events)
	if err != nil {
		t.Fatal(err)
	}

	receipt, err := ProveReplay(KindGroth16, 1, replay.PromptHash(normalized), fixturePubkey(), normalized, eventsBytes)
	if err != nil {
		t.Fatalf("ProveReplay: %v", err)
	}

	ok, err := VerifyReceipt(ImageID(), receipt)
	if err != nil {
		t.Fatalf("VerifyReceipt: %v", err)
	}
	if !ok {
		t.Error("fresh receipt failed verification")
	}

	t.Run("wrong image id", func(t *testing.T) {
		var wrong types.Hash
		wrong[0] = 1
		ok, err := VerifyReceipt(wrong, receipt)
		if err != nil {
			t.Fatalf("VerifyReceipt: %v", err)
		}
		if ok {
			t.Error("receipt verified under the wrong program identity")
		}
	})

	t.Run("tampered journal", func(t *testing.T) {
		tampered := &Receipt{
			Kind:         receipt.Kind,
			JournalBytes: append([]byte(nil), receipt.JournalBytes...),
			Segments:     receipt.Segments,
		}
		tampered.JournalBytes[70] ^= 0x01 // inside the score field
		ok, err := VerifyReceipt(ImageID(), tampered)
		if err != nil {
			t.Fatalf("VerifyReceipt: %v", err)
		}
		if ok {
			t.Error("tampered journal verified")
		}
	})

	t.Run("nil receipt", func(t *testing.T) {
		if _, err := VerifyReceipt(ImageID(), nil); err != ErrNilReceipt {
			t.Errorf("err = %v, want ErrNilReceipt", err)
		}
	})
}

func TestKindFromEnv(t *testing.T) {
	cases := []struct {
		value       string
		wantKind    ReceiptKind
		wantGroth16 bool
	}{
		{"", KindGroth16, true},
		{"groth16", KindGroth16, true},
		{"GROTH16", KindGroth16, true},
		{"succinct", KindSuccinct, false},
		{"composite", KindComposite, false},
		{"nonsense", KindGroth16, true},
	}
	for _, tc := range cases {
		t.Run("value="+tc.value, func(t *testing.T) {
			t.Setenv(ReceiptKindEnv, tc.value)
			kind, requireGroth16 := KindFromEnv()
			if kind != tc.wantKind || requireGroth16 != tc.wantGroth16 {
				t.Errorf("KindFromEnv() = (%v, %v), want (%v, %v)", kind, requireGroth16, tc.wantKind, tc.wantGroth16)
			}
		})
	}
}
