// Command typezero proves a typing run and prints the resulting journal
// fields and proof artifact.
//
// Usage:
//
//	typezero                                                  prove the built-in fixture
//	typezero <challenge_id> <pubkey_hex> <prompt> <events_hex> prove the given run
//
// The pubkey is 32 bytes of 0x-hex; the event stream is the 0x-hex wire
// encoding (u16 LE count + 3 bytes per event). TYPING_PROOF_RECEIPT_KIND
// selects the proof strength (composite, succinct, groth16; default
// groth16), read from the environment or a local .env file.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/log"
	"github.com/jamesbachini/typezero/prover"
	"github.com/jamesbachini/typezero/replay"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	// Optional .env; the environment itself always wins.
	_ = godotenv.Load()

	log.SetDefault(log.NewConsole(os.Stderr, slog.LevelInfo))

	var (
		challengeID uint32
		pubkey      types.PublicKey
		prompt      string
		events      []replay.Event
		err         error
	)

	switch len(args) {
	case 0:
		challengeID, pubkey, prompt, events, err = fixture()
	case 4:
		challengeID, pubkey, prompt, events, err = parseArgs(args)
	default:
		fmt.Fprintln(os.Stderr, "usage: typezero [<challenge_id> <pubkey_hex> <prompt> <events_hex>]")
		return 2
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	result, err := prover.Prove(challengeID, pubkey, prompt, events)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	printResult(result)
	return 0
}

// parseArgs decodes the four positional arguments.
func parseArgs(args []string) (uint32, types.PublicKey, string, []replay.Event, error) {
	var pubkey types.PublicKey

	id, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return 0, pubkey, "", nil, fmt.Errorf("challenge id: %w", err)
	}

	keyBytes, err := decodeHex(args[1])
	if err != nil {
		return 0, pubkey, "", nil, fmt.Errorf("pubkey: %w", err)
	}
	if len(keyBytes) != types.PublicKeyLength {
		return 0, pubkey, "", nil, fmt.Errorf("pubkey: expected 32-byte hex value, got %d bytes", len(keyBytes))
	}
	copy(pubkey[:], keyBytes)

	eventsBytes, err := decodeHex(args[3])
	if err != nil {
		return 0, pubkey, "", nil, fmt.Errorf("events: %w", err)
	}
	events, err := replay.DecodeEvents(eventsBytes)
	if err != nil {
		return 0, pubkey, "", nil, err
	}

	return uint32(id), pubkey, args[2], events, nil
}

// decodeHex accepts hex with or without a 0x prefix.
func decodeHex(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return hexutil.Decode(s)
	}
	return hexutil.Decode("0x" + s)
}

// fixture is the built-in demo run: the prompt "hello world" typed perfectly
// at 120 ms per key.
func fixture() (uint32, types.PublicKey, string, []replay.Event, error) {
	prompt := "hello world"
	normalized, err := replay.NormalizePrompt(prompt)
	if err != nil {
		return 0, types.PublicKey{}, "", nil, err
	}

	events := make([]replay.Event, 0, len(normalized))
	for _, b := range normalized {
		switch {
		case b >= 'a' && b <= 'z':
			events = append(events, replay.Event{DtMs: 120, Key: b - 'a'})
		case b == ' ':
			events = append(events, replay.Event{DtMs: 120, Key: replay.KeySpace})
		default:
			events = append(events, replay.Event{DtMs: 120, Key: replay.KeyEnter})
		}
	}

	var pubkey types.PublicKey
	for i := range pubkey {
		pubkey[i] = 7
	}
	return 1, pubkey, prompt, events, nil
}

// printResult writes the journal fields and proof artifact in the original
// host's key:value layout, with colored labels on a terminal.
func printResult(result *prover.Result) {
	label := color.New(color.FgCyan).SprintFunc()

	fmt.Printf("%s %x\n", label("image_id:"), result.ImageID)
	fmt.Printf("%s %x\n", label("seal:"), result.Seal)
	fmt.Printf("%s %x\n", label("journal_sha256:"), result.JournalHash)
	fmt.Printf("%s %d\n", label("journal.challenge_id:"), result.Journal.ChallengeID)
	fmt.Printf("%s %x\n", label("journal.player_pubkey:"), result.Journal.PlayerPubkey)
	fmt.Printf("%s %x\n", label("journal.prompt_hash:"), result.Journal.PromptHash)
	fmt.Printf("%s %d\n", label("journal.score:"), result.Journal.Score)
	fmt.Printf("%s %d\n", label("journal.wpm_x100:"), result.Journal.WpmX100)
	fmt.Printf("%s %d\n", label("journal.accuracy_bps:"), result.Journal.AccuracyBps)
	fmt.Printf("%s %d\n", label("journal.duration_ms:"), result.Journal.DurationMs)
}
