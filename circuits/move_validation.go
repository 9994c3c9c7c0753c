package circuits

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
)

func Curve() ecc.ID { return ecc.BN254 }

// MoveValidationCircuit is the guest computation in constraint form. All
// five committed values are public; the constraints re-derive the legality
// predicate and the checksum binding from the committed coordinates, so a
// proof attests that IsValid and Checksum are the honest results for
// (From, To, MoveNumber).
//
// Proving succeeds for illegal moves too: validity is a committed value,
// not a constraint failure.
type MoveValidationCircuit struct {
	IsValid    frontend.Variable `gnark:",public"`
	From       frontend.Variable `gnark:",public"`
	To         frontend.Variable `gnark:",public"`
	MoveNumber frontend.Variable `gnark:",public"`
	Checksum   frontend.Variable `gnark:",public"`
}

func (c *MoveValidationCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.IsValid)
	valid := coordinatePredicate(api, c.From, c.To, c.MoveNumber)
	api.AssertIsEqual(c.IsValid, valid)
	assertWrappedChecksum(api, c.Checksum, c.From, c.To, c.MoveNumber)
	return nil
}

// assertWrappedChecksum binds Checksum to the wrapping u32 sum the guest
// commits. Squares are 8-bit and the move number is u32, so the field sum
// overflows 32 bits by at most one carry:
//
//	checksum + carry*2^32 == from + to + move_number, carry in {0,1}
func assertWrappedChecksum(api frontend.API, checksum, from, to, moveNumber frontend.Variable) {
	api.ToBinary(checksum, 32) // constrain to u32
	sum := api.Add(from, to, moveNumber)
	carry := api.Div(api.Sub(sum, checksum), uint64(1)<<32)
	api.AssertIsBoolean(carry)
}

// squareInRange returns 1 iff v < 64. Decomposing to 8 bits also constrains
// v to the u8 the wire format carries; bits 6 and 7 being clear is exactly
// v < 64.
func squareInRange(api frontend.API, v frontend.Variable) frontend.Variable {
	bits := api.ToBinary(v, 8)
	return api.Sub(1, api.Or(bits[6], bits[7]))
}

// coordinatePredicate is the minimum policy: from != to, both squares on
// the board, move number positive. A richer rules engine replaces this
// function without touching the committed layout.
func coordinatePredicate(api frontend.API, from, to, moveNumber frontend.Variable) frontend.Variable {
	fromOK := squareInRange(api, from)
	toOK := squareInRange(api, to)
	distinct := api.Sub(1, api.IsZero(api.Sub(from, to)))

	api.ToBinary(moveNumber, 32) // constrain to u32
	positive := api.Sub(1, api.IsZero(moveNumber))

	return api.Mul(api.Mul(fromOK, toOK), api.Mul(distinct, positive))
}
