package chess

import (
	"encoding/binary"
	"fmt"
)

// Committed public-values layout. Field order is part of the wire contract:
// the host must read back exactly what the guest committed, in order.
//
//	is_valid    1 byte  (0 or 1)
//	from        1 byte
//	to          1 byte
//	move_number 4 bytes LE
//	checksum    4 bytes LE
//
// Board-aware records append:
//
//	new_board   64 bytes (signed piece codes)
//	status      1 byte
const (
	coreRecordLen  = 11
	boardRecordLen = coreRecordLen + BoardSize + 1
)

// EncodePublicValues serializes the record in committed field order.
func (o MoveOutput) EncodePublicValues() []byte {
	n := coreRecordLen
	if o.BoardAware() {
		n = boardRecordLen
	}
	buf := make([]byte, n)
	if o.IsValid {
		buf[0] = 1
	}
	buf[1] = byte(o.From)
	buf[2] = byte(o.To)
	binary.LittleEndian.PutUint32(buf[3:], o.MoveNumber)
	binary.LittleEndian.PutUint32(buf[7:], o.Checksum)
	if o.BoardAware() {
		for i, p := range o.NewBoard {
			buf[coreRecordLen+i] = byte(p)
		}
		buf[n-1] = byte(o.Status)
	}
	return buf
}

// DecodePublicValues parses a committed record. A truncated, oversized or
// inconsistent byte sequence fails; fields are never silently defaulted.
// The checksum binding is re-checked here so a reordered or spliced record
// cannot decode cleanly.
func DecodePublicValues(b []byte) (MoveOutput, error) {
	if len(b) != coreRecordLen && len(b) != boardRecordLen {
		return MoveOutput{}, fmt.Errorf("public values: %d bytes, want %d or %d", len(b), coreRecordLen, boardRecordLen)
	}
	if b[0] > 1 {
		return MoveOutput{}, fmt.Errorf("public values: is_valid byte %#x", b[0])
	}
	out := MoveOutput{
		IsValid:    b[0] == 1,
		From:       Square(b[1]),
		To:         Square(b[2]),
		MoveNumber: binary.LittleEndian.Uint32(b[3:]),
		Checksum:   binary.LittleEndian.Uint32(b[7:]),
	}
	if want := uint32(out.From) + uint32(out.To) + out.MoveNumber; out.Checksum != want {
		return MoveOutput{}, fmt.Errorf("public values: checksum %d, want %d", out.Checksum, want)
	}
	if len(b) == boardRecordLen {
		var board BoardSnapshot
		for i := range board {
			board[i] = int8(b[coreRecordLen+i])
		}
		out.NewBoard = &board
		status := GameStatus(b[boardRecordLen-1])
		if status > StatusDraw {
			return MoveOutput{}, fmt.Errorf("public values: game status %d", status)
		}
		out.Status = status
	}
	return out, nil
}
