package ledger

import "github.com/jamesbachini/typezero/core/types"

// Authorizer proves that the caller controls a claimed identity. A non-nil
// error aborts the whole call with ErrAuthRequired. In the host runtime this
// is the address-based authentication primitive; tests inject fakes.
type Authorizer interface {
	RequireAuth(addr types.Address) error
}

// ProofVerifier is the opaque proof verification boundary. The validator
// never inspects the seal itself; it forwards the verifier identity, journal
// content hash, program identity and seal, and trusts the boolean verdict.
type ProofVerifier interface {
	Verify(verifierID types.Address, journalHash types.Hash, imageID types.Hash, seal []byte) bool
}

// Sequencer exposes the host ledger's monotonically increasing transaction
// sequence number, captured as a submission timestamp.
type Sequencer interface {
	Sequence() uint32
}

// StubVerifier accepts every proof. It is a placeholder for genuine
// cryptographic verification; the ProofVerifier boundary exists so it can be
// swapped out without touching the validator's state machine.
//
// TODO: replace with a verifier that checks the seal against the groth16
// verification key once the on-ledger verifier contract is deployed.
type StubVerifier struct{}

func (StubVerifier) Verify(verifierID types.Address, journalHash types.Hash, imageID types.Hash, seal []byte) bool {
	return true
}

// AllowAll is an Authorizer that authorizes every address. Test and local
// tooling use only.
type AllowAll struct{}

func (AllowAll) RequireAuth(addr types.Address) error { return nil }
