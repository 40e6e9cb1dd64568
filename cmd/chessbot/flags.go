// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"os"

	"github.com/lgbarn/chessbot-go/internal/config"
)

var (
	// Mode
	modeName = flag.String("mode", "play", "What to do: play, serve, arena, perft")

	// Bots
	strategemName = flag.String("strategem", "coleminer", "Strategem for the bot (White in arena mode)")
	opponentName  = flag.String("opponent", "randomaggro", "Strategem for Black in arena mode")
	seed          = flag.Uint64("seed", 0, "Random seed (0 = derive from the clock)")
	sideName      = flag.String("side", "black", "Side the bot plays: white or black")
	startFEN      = flag.String("fen", "", "Start from this FEN instead of the initial position")

	// Serve
	listenAddr = flag.String("listen", ":8080", "Address to serve websocket games on")
	accessLog  = flag.Bool("accesslog", false, "Write an HTTP access log to stderr")

	// Arena
	games    = flag.Int("games", 1, "Number of arena games")
	workers  = flag.Int("workers", 1, "Number of games played concurrently")
	maxPlies = flag.Int("maxplies", 400, "Stop an arena game after this many plies")
	pgnFile  = flag.String("pgn", "", "Write finished games to this PGN file")

	// Perft
	perftDepth = flag.Int("depth", 4, "Perft depth")
	divide     = flag.Bool("divide", false, "Also print the perft count below each root move")

	// Logging
	verbose     = flag.Bool("v", false, "Log bot decisions")
	veryVerbose = flag.Bool("vv", false, "Log everything")
	quiet       = flag.Bool("q", false, "Only log warnings and errors")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// configFromFlags builds a validated configuration from the command-line flags.
func configFromFlags() (*config.Config, error) {
	b := config.NewConfigBuilder()
	if err := applyModeFlags(b); err != nil {
		return nil, err
	}
	if err := applyBotFlags(b); err != nil {
		return nil, err
	}
	applyServeFlags(b)
	applyArenaFlags(b)
	applyLoggingFlags(b)
	return b.Build()
}

func applyModeFlags(b *config.ConfigBuilder) error {
	mode, err := config.ParseMode(*modeName)
	if err != nil {
		return err
	}
	b.WithMode(mode).WithPerftDepth(*perftDepth).WithDivide(*divide)
	return nil
}

func applyBotFlags(b *config.ConfigBuilder) error {
	side, err := config.ParseSide(*sideName)
	if err != nil {
		return err
	}
	b.WithBotSide(side).
		WithStrategem(*strategemName).
		WithOpponentStrategem(*opponentName).
		WithSeed(*seed).
		WithStartFEN(*startFEN)
	return nil
}

func applyServeFlags(b *config.ConfigBuilder) {
	b.WithListenAddr(*listenAddr)
	if *accessLog {
		b.WithAccessLog(os.Stderr)
	}
}

func applyArenaFlags(b *config.ConfigBuilder) {
	b.WithArena(*games, *workers, *maxPlies).WithPGNFile(*pgnFile)
}

func applyLoggingFlags(b *config.ConfigBuilder) {
	switch {
	case *quiet:
		b.WithVerbosity(0)
	case *veryVerbose:
		b.WithVerbosity(3)
	case *verbose:
		b.WithVerbosity(2)
	}
}
