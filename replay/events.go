// Package replay implements the deterministic replay-scoring computation:
// the event-stream wire codec, prompt normalization, and the scoring engine
// that reconstructs typed text from keystroke events and derives the
// committed journal. The same code runs inside the proof sandbox and in
// off-path double-checks, so every step must be bit-for-bit deterministic.
package replay

import (
	"encoding/binary"
	"errors"
)

// Key code space. Letters map to 0..25, then space, backspace and an
// optional enter end marker.
const (
	KeyLetterMax = 25
	KeySpace     = 26
	KeyBackspace = 27
	KeyEnter     = 28
	KeyMax       = KeyEnter
)

// Wire sizing: u16 little-endian event count followed by 3 bytes per event
// (u16 LE inter-key delay in milliseconds + 1-byte key code).
const (
	eventSize      = 3
	maxEventCount  = 65535
	countPrefixLen = 2
)

// Event codec errors.
var (
	ErrTooManyEvents   = errors.New("replay: event count exceeds u16")
	ErrEventsTruncated = errors.New("replay: events length mismatch")
	ErrInvalidKey      = errors.New("replay: invalid key code")
)

// Event is one keystroke: the delay since the previous key and the key code.
type Event struct {
	DtMs uint16
	Key  uint8
}

// EncodeEvents serializes events into the wire form consumed by the scoring
// engine. Key codes above KeyMax are rejected here so malformed streams
// never reach the proof sandbox.
func EncodeEvents(events []Event) ([]byte, error) {
	if len(events) > maxEventCount {
		return nil, ErrTooManyEvents
	}
	out := make([]byte, countPrefixLen, countPrefixLen+len(events)*eventSize)
	binary.LittleEndian.PutUint16(out, uint16(len(events)))
	for _, ev := range events {
		if ev.Key > KeyMax {
			return nil, ErrInvalidKey
		}
		var buf [eventSize]byte
		binary.LittleEndian.PutUint16(buf[:2], ev.DtMs)
		buf[2] = ev.Key
		out = append(out, buf[:]...)
	}
	return out, nil
}

// DecodeEvents parses a wire event stream. The declared count must agree
// exactly with the actual byte length, otherwise ErrEventsTruncated is
// returned; any key code above KeyMax fails with ErrInvalidKey.
func DecodeEvents(b []byte) ([]Event, error) {
	if len(b) < countPrefixLen {
		return nil, ErrEventsTruncated
	}
	count := int(binary.LittleEndian.Uint16(b))
	if len(b) != countPrefixLen+count*eventSize {
		return nil, ErrEventsTruncated
	}
	events := make([]Event, 0, count)
	offset := countPrefixLen
	for i := 0; i < count; i++ {
		dt := binary.LittleEndian.Uint16(b[offset : offset+2])
		key := b[offset+2]
		if key > KeyMax {
			return nil, ErrInvalidKey
		}
		events = append(events, Event{DtMs: dt, Key: key})
		offset += eventSize
	}
	return events, nil
}
