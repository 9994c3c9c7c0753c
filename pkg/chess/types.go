package chess

// BoardSize is the number of cells on the board; squares index [0, BoardSize).
const BoardSize = 64

// Square indexes a board cell, a1=0 .. h8=63.
type Square uint8

// InRange reports whether the square indexes a real cell.
func (s Square) InRange() bool { return s < BoardSize }

// BoardSnapshot is a full board as signed piece codes, 0 = empty.
// Positive codes are one side's pieces, negative the other's.
type BoardSnapshot [BoardSize]int8

// GameStatus is the committed game outcome after a move.
type GameStatus uint8

const (
	StatusOngoing GameStatus = iota
	StatusCheckmate
	StatusDraw
)

// MoveInput is the witness consumed by the guest computation. Board is
// optional; when set, validation additionally requires a piece at From and
// the output carries the updated board.
type MoveInput struct {
	From       Square         `json:"from"`
	To         Square         `json:"to"`
	MoveNumber uint32         `json:"moveNumber"`
	Board      *BoardSnapshot `json:"board,omitempty"`
}

// MoveOutput is the committed public record. It is produced for every input,
// including rejected ones: validity is a value, not an error path.
//
// Checksum = From + To + MoveNumber binds the committed coordinates to the
// move number; it is a cheap tamper check, not a cryptographic hash.
type MoveOutput struct {
	IsValid    bool           `json:"isValid"`
	From       Square         `json:"from"`
	To         Square         `json:"to"`
	MoveNumber uint32         `json:"moveNumber"`
	Checksum   uint32         `json:"checksum"`
	NewBoard   *BoardSnapshot `json:"newBoard,omitempty"`
	Status     GameStatus     `json:"status"`
}

// BoardAware reports whether the record carries the board extension.
func (o MoveOutput) BoardAware() bool { return o.NewBoard != nil }
