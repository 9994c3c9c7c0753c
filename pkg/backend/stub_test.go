package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/chesszk/pkg/chess"
)

func TestStubLifecycle(t *testing.T) {
	be := NewStubBackend(false)
	pk, vk, err := be.Setup()
	require.NoError(t, err)
	require.Equal(t, pk.GuestID(), vk.GuestID())

	in := chess.MoveInput{From: 52, To: 36, MoveNumber: 1}
	artifact, err := be.Prove(context.Background(), pk, in)
	require.NoError(t, err)
	require.NoError(t, be.Verify(artifact, vk))

	out, err := be.Decode(artifact)
	require.NoError(t, err)
	assert.Equal(t, chess.Validate(in), out)
}

func TestStubSetupDeterministic(t *testing.T) {
	be := NewStubBackend(false)
	pk1, vk1, err := be.Setup()
	require.NoError(t, err)
	pk2, vk2, err := be.Setup()
	require.NoError(t, err)
	assert.Equal(t, pk1.GuestID(), pk2.GuestID())
	assert.Equal(t, vk1.GuestID(), vk2.GuestID())
}

func TestStubProveDeterministic(t *testing.T) {
	be := NewStubBackend(false)
	pk, _, err := be.Setup()
	require.NoError(t, err)

	in := chess.MoveInput{From: 12, To: 28, MoveNumber: 3}
	a1, err := be.Prove(context.Background(), pk, in)
	require.NoError(t, err)
	a2, err := be.Prove(context.Background(), pk, in)
	require.NoError(t, err)
	assert.Equal(t, a1.PublicValues, a2.PublicValues)
	assert.Equal(t, a1.Fingerprint(), a2.Fingerprint())
}

// Flipping any byte of the artifact must fail verification, never pass
// silently.
func TestStubVerifyTamper(t *testing.T) {
	be := NewStubBackend(false)
	pk, vk, err := be.Setup()
	require.NoError(t, err)
	artifact, err := be.Prove(context.Background(), pk, chess.MoveInput{From: 52, To: 36, MoveNumber: 1})
	require.NoError(t, err)

	for i := range artifact.Proof {
		artifact.Proof[i] ^= 0x01
		var verr *VerificationError
		require.ErrorAs(t, be.Verify(artifact, vk), &verr, "proof byte %d", i)
		artifact.Proof[i] ^= 0x01
	}
	for i := range artifact.PublicValues {
		artifact.PublicValues[i] ^= 0x01
		var verr *VerificationError
		require.ErrorAs(t, be.Verify(artifact, vk), &verr, "public byte %d", i)
		artifact.PublicValues[i] ^= 0x01
	}
	require.NoError(t, be.Verify(artifact, vk), "restored artifact verifies again")
}

func TestStubDecodeTruncated(t *testing.T) {
	be := NewStubBackend(false)
	pk, _, err := be.Setup()
	require.NoError(t, err)
	artifact, err := be.Prove(context.Background(), pk, chess.MoveInput{From: 52, To: 36, MoveNumber: 1})
	require.NoError(t, err)

	artifact.PublicValues = artifact.PublicValues[:5]
	var derr *DecodeError
	_, err = be.Decode(artifact)
	assert.ErrorAs(t, err, &derr)
}

func TestStubInputSchemaMismatch(t *testing.T) {
	be := NewStubBackend(true)
	pk, _, err := be.Setup()
	require.NoError(t, err)

	var ierr *InvalidInputError
	_, err = be.Prove(context.Background(), pk, chess.MoveInput{From: 52, To: 36, MoveNumber: 1})
	assert.ErrorAs(t, err, &ierr, "board-aware guest without a board")
}

func TestStubProveCancellation(t *testing.T) {
	be := NewStubBackend(false)
	be.SetProveDelay(time.Second)
	pk, _, err := be.Setup()
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = be.Prove(ctx, pk, chess.MoveInput{From: 52, To: 36, MoveNumber: 1})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStubBoardAwareRoundTrip(t *testing.T) {
	be := NewStubBackend(true)
	pk, vk, err := be.Setup()
	require.NoError(t, err)

	board := chess.BoardSnapshot{}
	board[0] = 5
	in := chess.MoveInput{From: 0, To: 8, MoveNumber: 1, Board: &board}
	artifact, err := be.Prove(context.Background(), pk, in)
	require.NoError(t, err)
	require.NoError(t, be.Verify(artifact, vk))

	out, err := be.Decode(artifact)
	require.NoError(t, err)
	require.True(t, out.IsValid)
	require.NotNil(t, out.NewBoard)
	assert.EqualValues(t, 0, out.NewBoard[0])
	assert.EqualValues(t, 5, out.NewBoard[8])
}
