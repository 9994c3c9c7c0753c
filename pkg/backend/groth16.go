package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/yourorg/chesszk/circuits"
	"github.com/yourorg/chesszk/pkg/chess"
)

// Groth16Backend proves the move validation circuits with gnark's Groth16
// over BN254. The zero value is not usable; construct with NewGroth16Backend.
type Groth16Backend struct {
	boardAware bool
}

// NewGroth16Backend returns a backend for the coordinate circuit, or the
// board-aware circuit when boardAware is set.
func NewGroth16Backend(boardAware bool) *Groth16Backend {
	return &Groth16Backend{boardAware: boardAware}
}

// BoardAware reports which guest circuit the backend proves.
func (b *Groth16Backend) BoardAware() bool { return b.boardAware }

func (b *Groth16Backend) blueprint() frontend.Circuit {
	if b.boardAware {
		return &circuits.BoardMoveCircuit{}
	}
	return &circuits.MoveValidationCircuit{}
}

type groth16ProvingKey struct {
	guest common.Hash
	cs    constraint.ConstraintSystem
	pk    groth16.ProvingKey
}

func (k *groth16ProvingKey) GuestID() common.Hash { return k.guest }
func (k *groth16ProvingKey) WriteTo(w io.Writer) (int64, error) { return k.pk.WriteTo(w) }

type groth16VerifyingKey struct {
	guest common.Hash
	vk    groth16.VerifyingKey
}

func (k *groth16VerifyingKey) GuestID() common.Hash { return k.guest }
func (k *groth16VerifyingKey) WriteTo(w io.Writer) (int64, error) { return k.vk.WriteTo(w) }

func (b *Groth16Backend) compile() (constraint.ConstraintSystem, common.Hash, error) {
	cs, err := frontend.Compile(circuits.Curve().ScalarField(), r1cs.NewBuilder, b.blueprint())
	if err != nil {
		return nil, common.Hash{}, fmt.Errorf("compile: %w", err)
	}
	var csBuf bytes.Buffer
	if _, err := cs.WriteTo(&csBuf); err != nil {
		return nil, common.Hash{}, fmt.Errorf("hash constraint system: %w", err)
	}
	return cs, crypto.Keccak256Hash(csBuf.Bytes()), nil
}

// Setup compiles the circuit and derives a Groth16 key pair. Deterministic
// per circuit shape: the guest identity is a keccak digest of the compiled
// constraint system, so a cache can key on it.
func (b *Groth16Backend) Setup() (ProvingKey, VerifyingKey, error) {
	cs, guest, err := b.compile()
	if err != nil {
		return nil, nil, &SetupError{Err: err}
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, nil, &SetupError{Err: err}
	}
	return &groth16ProvingKey{guest: guest, cs: cs, pk: pk},
		&groth16VerifyingKey{guest: guest, vk: vk}, nil
}

// Prove runs the guest computation natively to obtain the committed record,
// then proves the circuit over the full witness. The underlying prover is
// not interruptible, so cancellation is only observed at the boundaries;
// callers wanting bounded cancellation run Prove in its own goroutine.
func (b *Groth16Backend) Prove(ctx context.Context, key ProvingKey, in chess.MoveInput) (*ProofArtifact, error) {
	pk, ok := key.(*groth16ProvingKey)
	if !ok {
		return nil, &ProvingError{Err: fmt.Errorf("proving key from a different backend")}
	}
	if err := CheckInput(in, b.boardAware); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := chess.Validate(in)
	assignment, err := b.assignment(in, out)
	if err != nil {
		return nil, &ProvingError{Err: err}
	}
	wit, err := frontend.NewWitness(assignment, circuits.Curve().ScalarField())
	if err != nil {
		return nil, &ProvingError{Err: fmt.Errorf("witness: %w", err)}
	}

	proof, err := groth16.Prove(pk.cs, pk.pk, wit)
	if err != nil {
		return nil, &ProvingError{Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, &ProvingError{Err: fmt.Errorf("serialize proof: %w", err)}
	}
	return &ProofArtifact{
		Guest:        pk.guest,
		Proof:        buf.Bytes(),
		PublicValues: out.EncodePublicValues(),
	}, nil
}

func (b *Groth16Backend) assignment(in chess.MoveInput, out chess.MoveOutput) (frontend.Circuit, error) {
	if b.boardAware {
		return circuits.BoardAssignment(in, out)
	}
	return circuits.Assignment(out), nil
}

// Verify checks the artifact against the verifying key alone: the public
// witness is rebuilt from the artifact's committed bytes, never from the
// prover's in-memory state. Any byte flip in proof or public values fails
// here.
func (b *Groth16Backend) Verify(artifact *ProofArtifact, key VerifyingKey) error {
	vk, ok := key.(*groth16VerifyingKey)
	if !ok {
		return &VerificationError{Err: fmt.Errorf("verifying key from a different backend")}
	}

	out, err := chess.DecodePublicValues(artifact.PublicValues)
	if err != nil {
		return &VerificationError{Err: fmt.Errorf("public values unusable: %w", err)}
	}
	pub, err := b.publicAssignment(out)
	if err != nil {
		return &VerificationError{Err: err}
	}
	pubWit, err := frontend.NewWitness(pub, circuits.Curve().ScalarField(), frontend.PublicOnly())
	if err != nil {
		return &VerificationError{Err: fmt.Errorf("public witness: %w", err)}
	}

	proof := groth16.NewProof(circuits.Curve())
	if _, err := proof.ReadFrom(bytes.NewReader(artifact.Proof)); err != nil {
		return &VerificationError{Err: fmt.Errorf("proof bytes: %w", err)}
	}
	if err := groth16.Verify(proof, vk.vk, pubWit); err != nil {
		return &VerificationError{Err: err}
	}
	return nil
}

func (b *Groth16Backend) publicAssignment(out chess.MoveOutput) (frontend.Circuit, error) {
	if b.boardAware {
		return circuits.BoardPublicAssignment(out)
	}
	return circuits.Assignment(out), nil
}

// Decode extracts the committed record in wire order.
func (b *Groth16Backend) Decode(artifact *ProofArtifact) (chess.MoveOutput, error) {
	out, err := chess.DecodePublicValues(artifact.PublicValues)
	if err != nil {
		return chess.MoveOutput{}, &DecodeError{Err: err}
	}
	if out.BoardAware() != b.boardAware {
		return chess.MoveOutput{}, &DecodeError{Err: fmt.Errorf("record schema does not match guest mode")}
	}
	return out, nil
}

// ReadProvingKey loads a proving key previously persisted with WriteTo,
// skipping the trusted setup on repeat runs. The constraint system is
// recompiled, so the returned key is only usable with the same circuit
// build that produced it.
func (b *Groth16Backend) ReadProvingKey(r io.Reader) (ProvingKey, error) {
	cs, guest, err := b.compile()
	if err != nil {
		return nil, &SetupError{Err: err}
	}
	pk := groth16.NewProvingKey(circuits.Curve())
	if _, err := pk.ReadFrom(r); err != nil {
		return nil, &SetupError{Err: fmt.Errorf("read proving key: %w", err)}
	}
	return &groth16ProvingKey{guest: guest, cs: cs, pk: pk}, nil
}

// ReadVerifyingKey loads a verifying key previously persisted with WriteTo,
// for third-party verification without a setup run.
func (b *Groth16Backend) ReadVerifyingKey(r io.Reader) (VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(circuits.Curve())
	if _, err := vk.ReadFrom(r); err != nil {
		return nil, &SetupError{Err: fmt.Errorf("read verifying key: %w", err)}
	}
	return &groth16VerifyingKey{vk: vk}, nil
}
