// Package config resolves the host-side inputs for a proving run. Values
// come from flags or environment; anything unset falls back to documented
// defaults so the pipeline always starts from a well-formed MoveInput.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/yourorg/chesszk/pkg/chess"
)

// Defaults: e2-e4 as white's first move.
const (
	DefaultFrom       = 52
	DefaultTo         = 36
	DefaultMoveNumber = 1
	DefaultOutDir     = "./"
)

type Config struct {
	From       uint8
	To         uint8
	MoveNumber uint32
	OutDir     string

	// Board enables board-aware proving when non-nil.
	Board *chess.BoardSnapshot
}

func Default() Config {
	return Config{
		From:       DefaultFrom,
		To:         DefaultTo,
		MoveNumber: DefaultMoveNumber,
		OutDir:     DefaultOutDir,
	}
}

// FromEnv loads a .env file if present, then reads FROM_SQUARE, TO_SQUARE,
// MOVE_NUMBER and OUT_DIR. Unset or unparseable values keep their defaults;
// range checking is the guest predicate's job, not the host's.
func FromEnv() Config {
	_ = godotenv.Load()
	cfg := Default()
	if v, err := strconv.ParseUint(os.Getenv("FROM_SQUARE"), 10, 8); err == nil {
		cfg.From = uint8(v)
	}
	if v, err := strconv.ParseUint(os.Getenv("TO_SQUARE"), 10, 8); err == nil {
		cfg.To = uint8(v)
	}
	if v, err := strconv.ParseUint(os.Getenv("MOVE_NUMBER"), 10, 32); err == nil {
		cfg.MoveNumber = uint32(v)
	}
	if v := os.Getenv("OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	return cfg
}

// LoadBoard reads a board snapshot from a JSON file holding an array of 64
// signed piece codes.
func (c *Config) LoadBoard(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read board file: %w", err)
	}
	var board chess.BoardSnapshot
	if err := json.Unmarshal(raw, &board); err != nil {
		return fmt.Errorf("parse board file: %w", err)
	}
	c.Board = &board
	return nil
}

// MoveInput assembles the guest witness.
func (c Config) MoveInput() chess.MoveInput {
	return chess.MoveInput{
		From:       chess.Square(c.From),
		To:         chess.Square(c.To),
		MoveNumber: c.MoveNumber,
		Board:      c.Board,
	}
}
