// Package ledger implements the score submission validator and the bounded
// leaderboard ranking engine. The validator is a state machine executed
// strictly serialized by the host ledger's transaction ordering; its
// persistent store, authorization primitive, and proof verifier are injected
// collaborators so the state machine stays runtime-agnostic.
package ledger

import (
	"sync"

	"github.com/jamesbachini/typezero/core/types"
)

// keyKind discriminates the ledger key space. Keys are a tagged union rather
// than string concatenation so challenge-scoped and global entries can never
// collide.
type keyKind uint8

const (
	kindAdmin keyKind = iota + 1
	kindVerifierID
	kindImageID
	kindCurrentChallenge
	kindChallengePromptHash
	kindBest
	kindTop
)

// Key identifies one ledger storage slot. Key is comparable and safe to use
// as a map key.
type Key struct {
	kind        keyKind
	challengeID uint32
	player      types.Address
}

// AdminKey is the slot holding the administrator address.
func AdminKey() Key { return Key{kind: kindAdmin} }

// VerifierIDKey is the slot holding the proof verifier identity.
func VerifierIDKey() Key { return Key{kind: kindVerifierID} }

// ImageIDKey is the slot holding the replay guest program identity.
func ImageIDKey() Key { return Key{kind: kindImageID} }

// CurrentChallengeKey is the slot holding the currently-active challenge id.
func CurrentChallengeKey() Key { return Key{kind: kindCurrentChallenge} }

// ChallengePromptHashKey is the slot holding the prompt hash for a challenge.
func ChallengePromptHashKey(challengeID uint32) Key {
	return Key{kind: kindChallengePromptHash, challengeID: challengeID}
}

// BestKey is the slot holding a player's best score entry for a challenge.
func BestKey(challengeID uint32, player types.Address) Key {
	return Key{kind: kindBest, challengeID: challengeID, player: player}
}

// TopKey is the slot holding the ranked top table for a challenge.
func TopKey(challengeID uint32) Key {
	return Key{kind: kindTop, challengeID: challengeID}
}

// Store is the persistent key-value contract consumed by the validator. All
// operations are atomic within one submission's execution; the host ledger
// serializes submissions, so implementations need not provide isolation
// beyond that.
type Store interface {
	Has(key Key) bool
	Get(key Key) (any, bool)
	Set(key Key, value any)
}

// MemStore is an in-memory Store. It is safe for concurrent use and is
// intended for tests and local tooling.
type MemStore struct {
	mu   sync.RWMutex
	data map[Key]any
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[Key]any)}
}

func (s *MemStore) Has(key Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok
}

func (s *MemStore) Get(key Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemStore) Set(key Key, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}
