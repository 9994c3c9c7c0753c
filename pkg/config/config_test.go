package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourorg/chesszk/pkg/chess"
)

func TestDefaults(t *testing.T) {
	t.Setenv("FROM_SQUARE", "")
	t.Setenv("TO_SQUARE", "")
	t.Setenv("MOVE_NUMBER", "")

	cfg := FromEnv()
	assert.EqualValues(t, 52, cfg.From)
	assert.EqualValues(t, 36, cfg.To)
	assert.EqualValues(t, 1, cfg.MoveNumber)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FROM_SQUARE", "12")
	t.Setenv("TO_SQUARE", "28")
	t.Setenv("MOVE_NUMBER", "9")
	t.Setenv("OUT_DIR", "/tmp/proofs")

	cfg := FromEnv()
	assert.EqualValues(t, 12, cfg.From)
	assert.EqualValues(t, 28, cfg.To)
	assert.EqualValues(t, 9, cfg.MoveNumber)
	assert.Equal(t, "/tmp/proofs", cfg.OutDir)
}

func TestUnparseableEnvFallsBack(t *testing.T) {
	t.Setenv("FROM_SQUARE", "knight")
	t.Setenv("TO_SQUARE", "-3")
	t.Setenv("MOVE_NUMBER", "1e9")

	cfg := FromEnv()
	assert.EqualValues(t, 52, cfg.From)
	assert.EqualValues(t, 36, cfg.To)
	assert.EqualValues(t, 1, cfg.MoveNumber)
}

func TestMoveInput(t *testing.T) {
	cfg := Config{From: 0, To: 8, MoveNumber: 2}
	in := cfg.MoveInput()
	assert.Equal(t, chess.Square(0), in.From)
	assert.Equal(t, chess.Square(8), in.To)
	assert.EqualValues(t, 2, in.MoveNumber)
	assert.Nil(t, in.Board)
}

func TestLoadBoard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.json")
	board := chess.BoardSnapshot{}
	board[0] = 5
	raw, err := json.Marshal(board)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	cfg := Default()
	require.NoError(t, cfg.LoadBoard(path))
	require.NotNil(t, cfg.Board)
	assert.EqualValues(t, 5, cfg.Board[0])

	require.Error(t, cfg.LoadBoard(filepath.Join(t.TempDir(), "missing.json")))
}
