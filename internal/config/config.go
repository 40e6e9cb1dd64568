// Package config provides program configuration for chessbot.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/strategem"
)

// Mode selects what the program does.
type Mode int

const (
	PlayMode  Mode = iota // play against a human on stdin/stdout
	ServeMode             // serve games over websockets
	ArenaMode             // play bot-vs-bot games
	PerftMode             // count move-generator leaf nodes
)

var modeNames = map[Mode]string{
	PlayMode:  "play",
	ServeMode: "serve",
	ArenaMode: "arena",
	PerftMode: "perft",
}

// String returns the mode name as accepted by ParseMode.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == s {
			return m, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrInvalidConfig, "unknown mode %q", s)
}

// ParseSide parses "white", "black" or their initials.
func ParseSide(s string) (chess.Colour, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	}
	return 0, errors.Wrapf(errors.ErrInvalidConfig, "unknown side %q", s)
}

// Config holds all program configuration.
type Config struct {
	Mode      Mode
	Verbosity int // 0=warnings, 1=info, 2=debug

	// Bots
	Strategem         string
	OpponentStrategem string // Black in arena mode
	Seed              uint64 // 0 derives a seed from the clock
	BotSide           chess.Colour
	StartFEN          string // empty for the initial position

	// Serve
	ListenAddr string

	// Arena
	Games    int
	Workers  int
	MaxPlies int
	PGNFile  string

	// Perft
	PerftDepth  int
	PerftDivide bool // print per-move counts at PerftDepth

	// Streams
	Input     io.Reader
	Output    io.Writer
	LogFile   io.Writer
	AccessLog io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:              PlayMode,
		Verbosity:         1,
		Strategem:         "coleminer",
		OpponentStrategem: "randomaggro",
		BotSide:           chess.Black,
		ListenAddr:        ":8080",
		Games:             1,
		Workers:           1,
		MaxPlies:          400,
		PerftDepth:        4,
		Input:             os.Stdin,
		Output:            os.Stdout,
		LogFile:           os.Stderr,
		AccessLog:         io.Discard,
	}
}

// Validate checks that the configuration is usable for its mode.
// Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if _, ok := modeNames[c.Mode]; !ok {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown mode %d", int(c.Mode))
	}
	if c.Verbosity < 0 {
		return errors.Wrapf(errors.ErrInvalidConfig, "verbosity %d", c.Verbosity)
	}
	if c.StartFEN != "" {
		if _, err := engine.NewGameFromFEN(c.StartFEN); err != nil {
			return fmt.Errorf("%w: start position: %w", errors.ErrInvalidConfig, err)
		}
	}

	switch c.Mode {
	case PlayMode, ServeMode:
		if err := checkStrategem(c.Strategem); err != nil {
			return err
		}
		if c.Mode == ServeMode && c.ListenAddr == "" {
			return errors.Wrap(errors.ErrInvalidConfig, "listen address is empty")
		}
	case ArenaMode:
		if err := checkStrategem(c.Strategem); err != nil {
			return err
		}
		if err := checkStrategem(c.OpponentStrategem); err != nil {
			return err
		}
		if c.Games < 1 {
			return errors.Wrapf(errors.ErrInvalidConfig, "games %d, need at least 1", c.Games)
		}
		if c.Workers < 1 {
			return errors.Wrapf(errors.ErrInvalidConfig, "workers %d, need at least 1", c.Workers)
		}
		if c.MaxPlies < 1 {
			return errors.Wrapf(errors.ErrInvalidConfig, "max plies %d, need at least 1", c.MaxPlies)
		}
	case PerftMode:
		if c.PerftDepth < 1 {
			return errors.Wrapf(errors.ErrInvalidConfig, "perft depth %d, need at least 1", c.PerftDepth)
		}
	}
	return nil
}

func checkStrategem(name string) error {
	if _, err := strategem.New(name); err != nil {
		return err
	}
	return nil
}
