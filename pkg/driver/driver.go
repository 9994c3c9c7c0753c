// Package driver sequences the proof lifecycle for one move:
//
//	Idle -> Prepared -> KeysReady -> Proved -> Verified -> Reported
//
// Failures land in Failed and propagate to the caller; nothing is retried
// internally and a proof that does not verify can never be reported.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yourorg/chesszk/pkg/backend"
	"github.com/yourorg/chesszk/pkg/chess"
	"github.com/yourorg/chesszk/pkg/keycache"
)

type State int

const (
	StateIdle State = iota
	StatePrepared
	StateKeysReady
	StateProved
	StateVerified
	StateReported
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePrepared:
		return "prepared"
	case StateKeysReady:
		return "keys-ready"
	case StateProved:
		return "proved"
	case StateVerified:
		return "verified"
	case StateReported:
		return "reported"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Driver owns a single proof request end to end. Not safe for concurrent
// use: run one driver per in-flight proof and share only the key cache.
type Driver struct {
	be    backend.Backend
	log   zerolog.Logger
	keys  *keycache.Cache
	guest string

	state    State
	input    chess.MoveInput
	pk       backend.ProvingKey
	vk       backend.VerifyingKey
	artifact *backend.ProofArtifact

	proveTime  time.Duration
	verifyTime time.Duration
}

type Option func(*Driver)

// WithLogger attaches a structured logger; the default discards.
func WithLogger(log zerolog.Logger) Option {
	return func(d *Driver) { d.log = log }
}

// WithKeyCache shares setup results across drivers proving the same guest
// circuit. The name must be stable per compiled circuit.
func WithKeyCache(c *keycache.Cache, name string) Option {
	return func(d *Driver) { d.keys, d.guest = c, name }
}

// WithKeys preloads a key pair, typically reloaded from disk; Setup then
// only advances the state machine instead of re-deriving keys.
func WithKeys(pk backend.ProvingKey, vk backend.VerifyingKey) Option {
	return func(d *Driver) { d.pk, d.vk = pk, vk }
}

func New(be backend.Backend, opts ...Option) *Driver {
	d := &Driver{be: be, log: zerolog.Nop(), guest: "default"}
	for _, o := range opts {
		o(d)
	}
	return d
}

// State reports the current lifecycle state.
func (d *Driver) State() State { return d.state }

func (d *Driver) expect(s State, op string) error {
	if d.state != s {
		return fmt.Errorf("%s: driver is %s, want %s", op, d.state, s)
	}
	return nil
}

// Supply fixes the move input for this request. Schema violations surface
// here, before any key material is touched.
func (d *Driver) Supply(in chess.MoveInput) error {
	if err := d.expect(StateIdle, "supply"); err != nil {
		return err
	}
	boardAware := in.Board != nil
	if ba, ok := d.be.(interface{ BoardAware() bool }); ok {
		boardAware = ba.BoardAware()
	}
	if err := backend.CheckInput(in, boardAware); err != nil {
		return err
	}
	d.input = in
	d.state = StatePrepared
	d.log.Debug().Uint8("from", uint8(in.From)).Uint8("to", uint8(in.To)).
		Uint32("move", in.MoveNumber).Bool("board", boardAware).Msg("input prepared")
	return nil
}

// Setup derives (or fetches from the shared cache) the key pair for the
// guest circuit.
func (d *Driver) Setup() error {
	if err := d.expect(StatePrepared, "setup"); err != nil {
		return err
	}
	if d.pk != nil && d.vk != nil {
		d.state = StateKeysReady
		d.log.Debug().Stringer("guest", d.pk.GuestID()).Msg("keys preloaded")
		return nil
	}
	var err error
	if d.keys != nil {
		d.pk, d.vk, err = d.keys.GetOrCreate(d.guest, d.be)
	} else {
		d.pk, d.vk, err = d.be.Setup()
	}
	if err != nil {
		d.state = StateFailed
		return err
	}
	d.state = StateKeysReady
	d.log.Debug().Stringer("guest", d.pk.GuestID()).Msg("keys ready")
	return nil
}

// Prove generates the proof artifact. The backend call runs in its own
// goroutine so cancellation is bound-waited: on ctx cancellation the driver
// returns to KeysReady immediately and any artifact the backend eventually
// produces is discarded. A backend failure is terminal for this request.
func (d *Driver) Prove(ctx context.Context) error {
	if err := d.expect(StateKeysReady, "prove"); err != nil {
		return err
	}

	type proveResult struct {
		artifact *backend.ProofArtifact
		err      error
	}
	res := make(chan proveResult, 1)
	start := time.Now()
	go func() {
		a, err := d.be.Prove(ctx, d.pk, d.input)
		res <- proveResult{artifact: a, err: err}
	}()

	select {
	case <-ctx.Done():
		// Stay in KeysReady; the goroutine's result is dropped on the
		// buffered channel.
		d.log.Warn().Err(ctx.Err()).Msg("prove cancelled")
		return ctx.Err()
	case r := <-res:
		d.proveTime = time.Since(start)
		if r.err != nil {
			if errors.Is(r.err, context.Canceled) || errors.Is(r.err, context.DeadlineExceeded) {
				d.log.Warn().Err(r.err).Msg("prove cancelled")
				return r.err
			}
			d.state = StateFailed
			return r.err
		}
		d.artifact = r.artifact
		d.state = StateProved
		d.log.Info().Dur("elapsed", d.proveTime).Int("proof_bytes", r.artifact.Size()).
			Stringer("artifact", r.artifact.Fingerprint()).Msg("proof generated")
		return nil
	}
}

// Verify checks the artifact cryptographically. Always runs before any
// output is trusted; a failure discards the artifact and is fatal to this
// proof.
func (d *Driver) Verify() error {
	if err := d.expect(StateProved, "verify"); err != nil {
		return err
	}
	start := time.Now()
	err := d.be.Verify(d.artifact, d.vk)
	d.verifyTime = time.Since(start)
	if err != nil {
		d.state = StateFailed
		d.artifact = nil
		d.log.Error().Err(err).Msg("verification failed")
		return err
	}
	d.state = StateVerified
	d.log.Info().Dur("elapsed", d.verifyTime).Msg("proof verified")
	return nil
}

// Report decodes the committed record and assembles the result. Only
// reachable after Verify succeeded.
func (d *Driver) Report() (*Report, error) {
	if err := d.expect(StateVerified, "report"); err != nil {
		return nil, err
	}
	out, err := d.be.Decode(d.artifact)
	if err != nil {
		d.state = StateFailed
		return nil, err
	}
	d.state = StateReported
	return &Report{
		ProofSizeBytes: d.artifact.Size(),
		ProofTimeMS:    d.proveTime.Milliseconds(),
		Verified:       true,
		VerifyTimeMS:   d.verifyTime.Milliseconds(),
		Output:         out,
		ArtifactID:     d.artifact.Fingerprint(),
	}, nil
}

// Artifact exposes the proof for persistence after Verify. Callers must
// treat it as immutable.
func (d *Driver) Artifact() *backend.ProofArtifact { return d.artifact }

// ProvingKey exposes the proving half for persistence.
func (d *Driver) ProvingKey() backend.ProvingKey { return d.pk }

// VerifyingKey exposes the verification half for persistence.
func (d *Driver) VerifyingKey() backend.VerifyingKey { return d.vk }

// Run drives the whole lifecycle for one input.
func Run(ctx context.Context, be backend.Backend, in chess.MoveInput, opts ...Option) (*Report, error) {
	d := New(be, opts...)
	if err := d.Supply(in); err != nil {
		return nil, err
	}
	if err := d.Setup(); err != nil {
		return nil, err
	}
	if err := d.Prove(ctx); err != nil {
		return nil, err
	}
	if err := d.Verify(); err != nil {
		return nil, err
	}
	return d.Report()
}
