package circuits

import (
	"github.com/consensys/gnark/frontend"

	"github.com/yourorg/chesszk/pkg/chess"
)

// BoardMoveCircuit is the board-aware guest computation. The pre-move board
// is the private witness; the committed record additionally carries the
// post-move board and game status. Validity gains a piece-presence check at
// the origin square, and the relocation constraints force NewBoard to be
// the input board with the origin piece moved, or the input board unchanged
// when the move is rejected.
type BoardMoveCircuit struct {
	IsValid    frontend.Variable                  `gnark:",public"`
	From       frontend.Variable                  `gnark:",public"`
	To         frontend.Variable                  `gnark:",public"`
	MoveNumber frontend.Variable                  `gnark:",public"`
	Checksum   frontend.Variable                  `gnark:",public"`
	NewBoard   [chess.BoardSize]frontend.Variable `gnark:",public"`
	Status     frontend.Variable                  `gnark:",public"`

	Board [chess.BoardSize]frontend.Variable
}

func (c *BoardMoveCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.IsValid)
	coordOK := coordinatePredicate(api, c.From, c.To, c.MoveNumber)

	// One-hot indicators for the origin and destination squares. For an
	// out-of-range coordinate every indicator is zero, which also zeroes
	// the presence check below.
	var eFrom, eTo [chess.BoardSize]frontend.Variable
	for i := 0; i < chess.BoardSize; i++ {
		eFrom[i] = api.IsZero(api.Sub(c.From, i))
		eTo[i] = api.IsZero(api.Sub(c.To, i))
	}

	pieceAtFrom := frontend.Variable(0)
	for i := 0; i < chess.BoardSize; i++ {
		pieceAtFrom = api.Add(pieceAtFrom, api.Mul(eFrom[i], c.Board[i]))
	}
	occupied := api.Sub(1, api.IsZero(pieceAtFrom))

	valid := api.Mul(coordOK, occupied)
	api.AssertIsEqual(c.IsValid, valid)
	assertWrappedChecksum(api, c.Checksum, c.From, c.To, c.MoveNumber)

	// Cell i after the move: the origin empties, the destination takes the
	// origin piece (captures included), everything else is untouched. A
	// rejected move echoes the board.
	for i := 0; i < chess.BoardSize; i++ {
		moved := api.Add(
			c.Board[i],
			api.Mul(eTo[i], api.Sub(pieceAtFrom, c.Board[i])),
		)
		moved = api.Sub(moved, api.Mul(eFrom[i], c.Board[i]))
		api.AssertIsEqual(c.NewBoard[i], api.Select(valid, moved, c.Board[i]))
	}

	// No checkmate/draw detection under the coordinate policy.
	api.AssertIsEqual(c.Status, int(chess.StatusOngoing))
	return nil
}
