// chessbot plays chess against people, over websockets, or against itself.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/config"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessbot version %s\n", programVersion)
		os.Exit(0)
	}

	cfg, err := configFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger := newLogger(cfg.LogFile, cfg.Verbosity)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("chessbot failed", "mode", cfg.Mode, "err", err)
		os.Exit(1)
	}
}

// newLogger creates the root logger. Verbosity 0 logs warnings and errors,
// 1 adds progress, 2 adds bot decisions and state transitions and 3 adds
// the calling source line.
func newLogger(w io.Writer, verbosity int) *log.Logger {
	level := log.InfoLevel
	switch {
	case verbosity <= 0:
		level = log.WarnLevel
	case verbosity >= 2:
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "chessbot",
		ReportCaller:    verbosity >= 3,
	})
}

// run checks cfg and runs the selected mode until it finishes or ctx is
// cancelled.
func run(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
		logger.Info("derived seed", "seed", cfg.Seed)
	}

	switch cfg.Mode {
	case config.ServeMode:
		return runServe(ctx, cfg, logger)
	case config.ArenaMode:
		return runArena(ctx, cfg, logger)
	case config.PerftMode:
		return runPerft(ctx, cfg)
	default:
		return runPlay(ctx, cfg, logger)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessbot [options]\n\n")
	fmt.Fprintf(os.Stderr, "A chess bot with pluggable move strategems.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nModes (-mode):\n")
	fmt.Fprintf(os.Stderr, "  play   Play against the bot on stdin/stdout (default)\n")
	fmt.Fprintf(os.Stderr, "  serve  Serve games over websockets at /ws\n")
	fmt.Fprintf(os.Stderr, "  arena  Play bot-vs-bot games\n")
	fmt.Fprintf(os.Stderr, "  perft  Count legal move tree leaves\n")
	fmt.Fprintf(os.Stderr, "\nStrategems (-strategem, -opponent):\n")
	fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(strategemNames(), ", "))
}
