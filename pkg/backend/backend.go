// Package backend abstracts the proving system behind the four operations
// the pipeline depends on: setup, prove, verify, decode. Two
// implementations exist: Groth16Backend over gnark, and StubBackend, an
// in-memory stand-in that mimics the lifecycle without real cryptography.
package backend

import (
	"context"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/yourorg/chesszk/pkg/chess"
)

// ProvingKey is backend-issued key material bound to one compiled guest
// computation. Immutable once returned from Setup; safe to share across
// concurrent Prove calls.
type ProvingKey interface {
	// GuestID identifies the compiled guest the key was derived from.
	GuestID() common.Hash
	io.WriterTo
}

// VerifyingKey is the public half of a Setup key pair. Immutable; a third
// party needs only this and a ProofArtifact to reach a verdict.
type VerifyingKey interface {
	GuestID() common.Hash
	io.WriterTo
}

// Backend is the opaque proving service. Setup is deterministic per guest
// binary and cacheable by guest identity. Prove is the expensive call;
// implementations return ctx.Err() unwrapped when the context is cancelled
// so callers can distinguish cancellation from a ProvingError.
type Backend interface {
	Setup() (ProvingKey, VerifyingKey, error)
	Prove(ctx context.Context, pk ProvingKey, in chess.MoveInput) (*ProofArtifact, error)
	Verify(artifact *ProofArtifact, vk VerifyingKey) error
	Decode(artifact *ProofArtifact) (chess.MoveOutput, error)
}

// ProofArtifact is an opaque proof plus the committed public-values bytes.
// Never mutated after Prove returns; only verified and then accepted or
// discarded.
type ProofArtifact struct {
	Guest        common.Hash
	Proof        []byte
	PublicValues []byte
}

// Size is the proof byte length reported to callers.
func (a *ProofArtifact) Size() int { return len(a.Proof) }

// Fingerprint is a keccak256 digest over the artifact, used to identify a
// proof in reports and logs.
func (a *ProofArtifact) Fingerprint() common.Hash {
	return crypto.Keccak256Hash(a.Guest[:], a.Proof, a.PublicValues)
}

// CheckInput enforces the witness schema before any key material is
// touched. Out-of-range squares and zero move numbers are legal guest
// inputs (the predicate classifies them); what CheckInput rejects is a
// board-aware/coordinate-only mismatch with the guest the backend proves.
func CheckInput(in chess.MoveInput, boardAware bool) error {
	if boardAware && in.Board == nil {
		return &InvalidInputError{Reason: "board-aware guest needs a board snapshot"}
	}
	if !boardAware && in.Board != nil {
		return &InvalidInputError{Reason: "coordinate guest cannot commit a board"}
	}
	return nil
}
