package ledger

import (
	"github.com/jamesbachini/typezero/core/types"
	"github.com/jamesbachini/typezero/log"
)

// Display name bounds: length in [MinNameLen, MaxNameLen], every byte in the
// printable ASCII range.
const (
	MinNameLen        = 1
	MaxNameLen        = 24
	asciiPrintableMin = 0x20
	asciiPrintableMax = 0x7E
)

// ScoreEntry is a player's best result for one challenge. It is overwritten
// only by a strictly greater score, so Score is monotonically non-decreasing
// over the challenge's lifetime.
type ScoreEntry struct {
	Score           uint64
	WpmX100         uint32
	AccuracyBps     uint32
	DurationMs      uint32
	Name            string
	SubmittedLedger uint32
}

// Row is one ranked leaderboard entry: the queryable view carries no
// duration and no timestamp.
type Row struct {
	Player      types.Address
	Name        string
	Score       uint64
	WpmX100     uint32
	AccuracyBps uint32
}

// Leaderboard is the score submission validator and ranking engine. All
// methods run strictly serialized by the host ledger; there is no internal
// locking and every failing check returns before any storage write.
type Leaderboard struct {
	store    Store
	auth     Authorizer
	verifier ProofVerifier
	seq      Sequencer
	logger   *log.Logger
}

// New wires a Leaderboard to its injected collaborators.
func New(store Store, auth Authorizer, verifier ProofVerifier, seq Sequencer) *Leaderboard {
	return &Leaderboard{
		store:    store,
		auth:     auth,
		verifier: verifier,
		seq:      seq,
		logger:   log.Default().Module("ledger"),
	}
}

// Init records the administrator, verifier identity and program identity.
// It can run once; any later call fails ErrAlreadyInitialized.
func (l *Leaderboard) Init(admin, verifierID types.Address, imageID types.Hash) error {
	if l.store.Has(AdminKey()) {
		return ErrAlreadyInitialized
	}
	l.store.Set(AdminKey(), admin)
	l.store.Set(VerifierIDKey(), verifierID)
	l.store.Set(ImageIDKey(), imageID)
	l.logger.Info("initialized", "admin", admin, "verifier", verifierID, "image", imageID)
	return nil
}

// SetChallenge records the prompt hash for a challenge id. Admin only. A
// challenge's prompt hash is immutable once set: reconfiguring an existing
// id fails ErrChallengeExists.
func (l *Leaderboard) SetChallenge(challengeID uint32, promptHash types.Hash) error {
	if err := l.requireAdmin(); err != nil {
		return err
	}
	key := ChallengePromptHashKey(challengeID)
	if l.store.Has(key) {
		return ErrChallengeExists
	}
	l.store.Set(key, promptHash)
	l.logger.Info("challenge configured", "challenge", challengeID, "prompt", promptHash)
	return nil
}

// SetCurrentChallenge marks a configured challenge as the one accepting
// submissions. Admin only; an unconfigured id fails ErrInvalidChallenge.
func (l *Leaderboard) SetCurrentChallenge(challengeID uint32) error {
	if err := l.requireAdmin(); err != nil {
		return err
	}
	if !l.store.Has(ChallengePromptHashKey(challengeID)) {
		return ErrInvalidChallenge
	}
	l.store.Set(CurrentChallengeKey(), challengeID)
	l.logger.Info("current challenge set", "challenge", challengeID)
	return nil
}

// CurrentChallenge returns the active challenge id and its prompt hash.
func (l *Leaderboard) CurrentChallenge() (uint32, types.Hash, error) {
	id, ok := getAs[uint32](l.store, CurrentChallengeKey())
	if !ok {
		return 0, types.Hash{}, ErrNotInitialized
	}
	hash, ok := getAs[types.Hash](l.store, ChallengePromptHashKey(id))
	if !ok {
		return 0, types.Hash{}, ErrInvalidChallenge
	}
	return id, hash, nil
}

// Best returns a player's best score entry for a challenge, if any.
func (l *Leaderboard) Best(challengeID uint32, player types.Address) (ScoreEntry, bool) {
	return getAs[ScoreEntry](l.store, BestKey(challengeID, player))
}

// Top returns the ranked top table for a challenge. The result is a copy;
// callers may not mutate ledger state through it.
func (l *Leaderboard) Top(challengeID uint32) []Row {
	rows, ok := getAs[[]Row](l.store, TopKey(challengeID))
	if !ok {
		return nil
	}
	return append([]Row(nil), rows...)
}

// SubmitScore validates and records one proof-backed score submission. The
// checks run in a fixed total order and the first failure determines the
// reported error; storage is only written after every check passes. A score
// not strictly greater than the player's stored best is an idempotent no-op.
func (l *Leaderboard) SubmitScore(
	challengeID uint32,
	player types.Address,
	name string,
	promptHash types.Hash,
	score uint64,
	wpmX100, accuracyBps, durationMs uint32,
	journalHash types.Hash,
	imageID types.Hash,
	seal []byte,
) error {
	if err := l.auth.RequireAuth(player); err != nil {
		return ErrAuthRequired
	}
	if !validName(name) {
		return ErrInvalidName
	}

	storedPromptHash, ok := getAs[types.Hash](l.store, ChallengePromptHashKey(challengeID))
	if !ok {
		return ErrInvalidChallenge
	}
	if storedPromptHash != promptHash {
		return ErrInvalidPromptHash
	}

	current, ok := getAs[uint32](l.store, CurrentChallengeKey())
	if !ok {
		return ErrNotInitialized
	}
	if challengeID != current {
		return ErrInvalidChallenge
	}

	storedImageID, ok := getAs[types.Hash](l.store, ImageIDKey())
	if !ok {
		return ErrNotInitialized
	}
	if storedImageID != imageID {
		return ErrInvalidImageID
	}

	verifierID, ok := getAs[types.Address](l.store, VerifierIDKey())
	if !ok {
		return ErrNotInitialized
	}
	if !l.verifier.Verify(verifierID, journalHash, imageID, seal) {
		return ErrInvalidProof
	}

	bestKey := BestKey(challengeID, player)
	if best, exists := getAs[ScoreEntry](l.store, bestKey); exists && score <= best.Score {
		return nil
	}

	entry := ScoreEntry{
		Score:           score,
		WpmX100:         wpmX100,
		AccuracyBps:     accuracyBps,
		DurationMs:      durationMs,
		Name:            name,
		SubmittedLedger: l.seq.Sequence(),
	}
	l.store.Set(bestKey, entry)

	l.upsertTop(challengeID, Row{
		Player:      player,
		Name:        name,
		Score:       score,
		WpmX100:     wpmX100,
		AccuracyBps: accuracyBps,
	})

	l.logger.Info("score accepted",
		"challenge", challengeID,
		"player", player,
		"score", score,
		"ledger", entry.SubmittedLedger,
	)
	return nil
}

// requireAdmin loads the recorded administrator and proves the caller
// controls it.
func (l *Leaderboard) requireAdmin() error {
	admin, ok := getAs[types.Address](l.store, AdminKey())
	if !ok {
		return ErrNotInitialized
	}
	if err := l.auth.RequireAuth(admin); err != nil {
		return ErrAuthRequired
	}
	return nil
}

// validName reports whether a display name is within length bounds and made
// of printable ASCII only.
func validName(name string) bool {
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return false
	}
	for i := 0; i < len(name); i++ {
		if name[i] < asciiPrintableMin || name[i] > asciiPrintableMax {
			return false
		}
	}
	return true
}

// getAs reads a typed value from the store. A missing key or a value of the
// wrong dynamic type both report absence.
func getAs[T any](s Store, key Key) (T, bool) {
	var zero T
	v, ok := s.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
