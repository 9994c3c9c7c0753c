package chess

// Rules is a pluggable legality predicate. The default CoordinateRules only
// checks coordinates and piece presence; a full engine (piece movement
// patterns, check detection) can be swapped in behind the same
// MoveInput -> MoveOutput contract.
type Rules func(MoveInput) bool

// CoordinateRules is the minimum required policy: distinct in-range squares,
// a positive move number, and, when a board is supplied, a piece on the
// origin square.
func CoordinateRules(in MoveInput) bool {
	if !in.From.InRange() || !in.To.InRange() || in.From == in.To {
		return false
	}
	if in.MoveNumber < 1 {
		return false
	}
	if in.Board != nil && in.Board[in.From] == 0 {
		return false
	}
	return true
}

// Validate runs the guest computation under the default rules.
func Validate(in MoveInput) MoveOutput {
	return ValidateWith(CoordinateRules, in)
}

// ValidateWith evaluates the predicate and assembles the committed output.
// Pure and total: no I/O, no randomness, every input maps to an output.
// The checksum is committed for rejected moves too, so the record always
// binds the coordinates it reports.
func ValidateWith(rules Rules, in MoveInput) MoveOutput {
	out := MoveOutput{
		IsValid:    rules(in),
		From:       in.From,
		To:         in.To,
		MoveNumber: in.MoveNumber,
		Checksum:   uint32(in.From) + uint32(in.To) + in.MoveNumber,
		Status:     StatusOngoing,
	}
	if in.Board != nil {
		next := *in.Board
		if out.IsValid && in.From.InRange() && in.To.InRange() {
			next[in.To] = next[in.From]
			next[in.From] = 0
		}
		out.NewBoard = &next
	}
	return out
}
