package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/yourorg/chesszk/pkg/chess"
)

// StubBackend mimics the setup/prove/verify lifecycle without real
// cryptography: the "proof" is a keccak tag over key material and the
// committed bytes, so tampering with either still fails Verify, and the
// whole round trip runs in microseconds. Used to test the orchestrator's
// state machine without paying for Groth16.
type StubBackend struct {
	boardAware bool
	rules      chess.Rules

	mu         sync.Mutex
	proveDelay time.Duration
}

// NewStubBackend returns an in-memory backend under the default rules.
func NewStubBackend(boardAware bool) *StubBackend {
	return &StubBackend{boardAware: boardAware, rules: chess.CoordinateRules}
}

// NewStubBackendWithRules swaps the legality predicate, keeping the rest of
// the lifecycle intact.
func NewStubBackendWithRules(boardAware bool, rules chess.Rules) *StubBackend {
	return &StubBackend{boardAware: boardAware, rules: rules}
}

// BoardAware reports which guest the stub imitates.
func (b *StubBackend) BoardAware() bool { return b.boardAware }

// SetProveDelay makes Prove block for d, observing ctx, to exercise
// cancellation paths. Safe to call between attempts while a cancelled
// Prove goroutine is still unwinding.
func (b *StubBackend) SetProveDelay(d time.Duration) {
	b.mu.Lock()
	b.proveDelay = d
	b.mu.Unlock()
}

type stubKey struct {
	guest common.Hash
	seed  []byte
}

func (k *stubKey) GuestID() common.Hash { return k.guest }
func (k *stubKey) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(k.seed)
	return int64(n), err
}

// Setup derives deterministic key material from the guest identity, so
// repeated setup for the same mode yields the same keys.
func (b *StubBackend) Setup() (ProvingKey, VerifyingKey, error) {
	guest := crypto.Keccak256Hash([]byte(fmt.Sprintf("stub-guest/coordinate-rules/board=%t", b.boardAware)))
	seed := crypto.Keccak256(guest[:])
	return &stubKey{guest: guest, seed: seed}, &stubKey{guest: guest, seed: seed}, nil
}

func (b *StubBackend) Prove(ctx context.Context, key ProvingKey, in chess.MoveInput) (*ProofArtifact, error) {
	pk, ok := key.(*stubKey)
	if !ok {
		return nil, &ProvingError{Err: fmt.Errorf("proving key from a different backend")}
	}
	if err := CheckInput(in, b.boardAware); err != nil {
		return nil, err
	}
	b.mu.Lock()
	delay := b.proveDelay
	b.mu.Unlock()
	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := chess.ValidateWith(b.rules, in)
	publics := out.EncodePublicValues()
	return &ProofArtifact{
		Guest:        pk.guest,
		Proof:        crypto.Keccak256(pk.seed, publics),
		PublicValues: publics,
	}, nil
}

func (b *StubBackend) Verify(artifact *ProofArtifact, key VerifyingKey) error {
	vk, ok := key.(*stubKey)
	if !ok {
		return &VerificationError{Err: fmt.Errorf("verifying key from a different backend")}
	}
	want := crypto.Keccak256(vk.seed, artifact.PublicValues)
	if !bytes.Equal(artifact.Proof, want) {
		return &VerificationError{Err: fmt.Errorf("proof tag mismatch")}
	}
	return nil
}

func (b *StubBackend) Decode(artifact *ProofArtifact) (chess.MoveOutput, error) {
	out, err := chess.DecodePublicValues(artifact.PublicValues)
	if err != nil {
		return chess.MoveOutput{}, &DecodeError{Err: err}
	}
	if out.BoardAware() != b.boardAware {
		return chess.MoveOutput{}, &DecodeError{Err: fmt.Errorf("record schema does not match guest mode")}
	}
	return out, nil
}
