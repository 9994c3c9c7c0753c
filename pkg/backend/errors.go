package backend

import "fmt"

// One error kind per lifecycle step so callers can tell a retryable proving
// failure from a fatal verification or decode failure with errors.As. None
// of these are ever downgraded to a default success.

// InvalidInputError reports a schema violation caught host-side before
// setup. The guest predicate itself never raises; it classifies.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return "invalid move input: " + e.Reason }

// SetupError means the backend could not derive keys for the guest
// computation. Fatal to the run.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string { return fmt.Sprintf("setup: %v", e.Err) }
func (e *SetupError) Unwrap() error { return e.Err }

// ProvingError means no artifact was produced. The caller may retry with a
// fresh attempt; the pipeline never retries silently.
type ProvingError struct {
	Err error
}

func (e *ProvingError) Error() string { return fmt.Sprintf("prove: %v", e.Err) }
func (e *ProvingError) Unwrap() error { return e.Err }

// VerificationError means the artifact failed cryptographic verification.
// Always fatal to that proof's trust.
type VerificationError struct {
	Err error
}

func (e *VerificationError) Error() string { return fmt.Sprintf("verify: %v", e.Err) }
func (e *VerificationError) Unwrap() error { return e.Err }

// DecodeError means the committed public-values section is malformed or
// does not match the schema. Distinct from VerificationError: a proof can
// verify structurally and still carry an undecodable payload across
// schema versions.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode public values: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }
