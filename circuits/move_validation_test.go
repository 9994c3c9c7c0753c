package circuits

import (
	"testing"

	"github.com/consensys/gnark/test"

	"github.com/yourorg/chesszk/pkg/chess"
)

func TestMoveValidationCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	cases := []chess.MoveInput{
		{From: 52, To: 36, MoveNumber: 1},  // legal pawn push
		{From: 10, To: 10, MoveNumber: 5},  // same square
		{From: 64, To: 0, MoveNumber: 1},   // origin off board
		{From: 0, To: 8, MoveNumber: 0},    // move number zero
		{From: 63, To: 62, MoveNumber: 40}, // legal late-game move
		{From: 52, To: 36, MoveNumber: 1<<32 - 1}, // checksum wraps to 87
	}
	for _, in := range cases {
		out := chess.Validate(in)
		assert.ProverSucceeded(new(MoveValidationCircuit), Assignment(out), test.WithCurves(Curve()))
	}
}

func TestMoveValidationCircuitRejectsForgery(t *testing.T) {
	assert := test.NewAssert(t)

	// same-square move claimed valid
	forged := Assignment(chess.Validate(chess.MoveInput{From: 10, To: 10, MoveNumber: 5}))
	forged.IsValid = 1
	assert.ProverFailed(new(MoveValidationCircuit), forged, test.WithCurves(Curve()))

	// checksum detached from the committed coordinates
	badSum := Assignment(chess.Validate(chess.MoveInput{From: 52, To: 36, MoveNumber: 1}))
	badSum.Checksum = 90
	assert.ProverFailed(new(MoveValidationCircuit), badSum, test.WithCurves(Curve()))

	// unwrapped sum committed where the guest wraps to u32
	unwrapped := Assignment(chess.Validate(chess.MoveInput{From: 52, To: 36, MoveNumber: 1<<32 - 1}))
	unwrapped.Checksum = uint64(1)<<32 + 87
	assert.ProverFailed(new(MoveValidationCircuit), unwrapped, test.WithCurves(Curve()))
}

func TestBoardMoveCircuit(t *testing.T) {
	assert := test.NewAssert(t)

	board := chess.BoardSnapshot{}
	board[0] = 5
	board[8] = 0
	in := chess.MoveInput{From: 0, To: 8, MoveNumber: 1, Board: &board}
	a, err := BoardAssignment(in, chess.Validate(in))
	assert.NoError(err)
	assert.ProverSucceeded(new(BoardMoveCircuit), a, test.WithCurves(Curve()))

	// rejected move: empty origin square, board echoed unchanged
	empty := chess.BoardSnapshot{}
	in = chess.MoveInput{From: 0, To: 8, MoveNumber: 1, Board: &empty}
	a, err = BoardAssignment(in, chess.Validate(in))
	assert.NoError(err)
	assert.ProverSucceeded(new(BoardMoveCircuit), a, test.WithCurves(Curve()))
}

func TestBoardMoveCircuitRejectsWrongBoard(t *testing.T) {
	assert := test.NewAssert(t)

	board := chess.BoardSnapshot{}
	board[0] = 5
	in := chess.MoveInput{From: 0, To: 8, MoveNumber: 1, Board: &board}
	a, err := BoardAssignment(in, chess.Validate(in))
	assert.NoError(err)

	// claim the piece never left its origin
	a.NewBoard[0] = 5
	assert.ProverFailed(new(BoardMoveCircuit), a, test.WithCurves(Curve()))
}
