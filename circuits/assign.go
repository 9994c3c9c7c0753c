package circuits

import (
	"fmt"

	"github.com/yourorg/chesszk/pkg/chess"
)

// Assignment maps a guest run onto the core circuit's witness. The same
// assignment serves proving (all fields) and verification (public subset).
func Assignment(out chess.MoveOutput) *MoveValidationCircuit {
	return &MoveValidationCircuit{
		IsValid:    boolBit(out.IsValid),
		From:       int(out.From),
		To:         int(out.To),
		MoveNumber: out.MoveNumber,
		Checksum:   out.Checksum,
	}
}

// BoardAssignment maps a board-aware guest run onto the board circuit. The
// private pre-move board comes from the input; everything else from the
// committed output.
func BoardAssignment(in chess.MoveInput, out chess.MoveOutput) (*BoardMoveCircuit, error) {
	if in.Board == nil || out.NewBoard == nil {
		return nil, fmt.Errorf("board circuit needs a board on both input and output")
	}
	a := &BoardMoveCircuit{
		IsValid:    boolBit(out.IsValid),
		From:       int(out.From),
		To:         int(out.To),
		MoveNumber: out.MoveNumber,
		Checksum:   out.Checksum,
		Status:     int(out.Status),
	}
	for i := 0; i < chess.BoardSize; i++ {
		a.Board[i] = int(in.Board[i])
		a.NewBoard[i] = int(out.NewBoard[i])
	}
	return a, nil
}

// BoardPublicAssignment builds the public subset for verification, where
// the pre-move board is unknown. The private field stays zero-valued; a
// public-only witness never reads it.
func BoardPublicAssignment(out chess.MoveOutput) (*BoardMoveCircuit, error) {
	if out.NewBoard == nil {
		return nil, fmt.Errorf("committed record carries no board")
	}
	a := &BoardMoveCircuit{
		IsValid:    boolBit(out.IsValid),
		From:       int(out.From),
		To:         int(out.To),
		MoveNumber: out.MoveNumber,
		Checksum:   out.Checksum,
		Status:     int(out.Status),
	}
	for i := 0; i < chess.BoardSize; i++ {
		a.NewBoard[i] = int(out.NewBoard[i])
	}
	return a, nil
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}
