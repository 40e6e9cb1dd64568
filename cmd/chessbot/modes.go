package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/arena"
	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/config"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/record"
	"github.com/lgbarn/chessbot-go/internal/runner"
	"github.com/lgbarn/chessbot-go/internal/strategem"
)

func strategemNames() []string {
	return strategem.Names()
}

func runPlay(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	strat, err := strategem.New(cfg.Strategem,
		strategem.WithSeed(cfg.Seed),
		strategem.WithLogger(logger.WithPrefix("strategem")),
	)
	if err != nil {
		return err
	}

	local := runner.NewLocal(cfg.BotSide, strat, cfg.Input, cfg.Output,
		runner.WithLogger(logger),
		runner.WithStartFEN(cfg.StartFEN),
	)
	if err := local.Run(ctx); err != nil {
		return err
	}

	if cfg.PGNFile == "" {
		return nil
	}
	white, black := "Human", strat.Name()
	if cfg.BotSide == chess.White {
		white, black = black, white
	}
	pgn, err := record.FromGame(local.Bridge().Game(), record.DefaultTags(white, black))
	if err != nil {
		return err
	}
	return writePGN(cfg.PGNFile, []string{pgn})
}

func runServe(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	srv := runner.NewServer(cfg.Strategem, cfg.Seed,
		runner.WithLogger(logger.WithPrefix("server")),
		runner.WithStartFEN(cfg.StartFEN),
		runner.WithAccessLog(cfg.AccessLog),
	)
	return srv.ListenAndServe(ctx, cfg.ListenAddr)
}

func runArena(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	results, err := arena.Run(ctx, arena.Config{
		White:    cfg.Strategem,
		Black:    cfg.OpponentStrategem,
		Games:    cfg.Games,
		Workers:  cfg.Workers,
		MaxPlies: cfg.MaxPlies,
		Seed:     cfg.Seed,
		StartFEN: cfg.StartFEN,
		Logger:   logger.WithPrefix("arena"),
	})
	if err != nil {
		return err
	}

	var pgns []string
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(cfg.Output, "game %d: error: %v\n", res.Index+1, res.Err)
			continue
		}
		fmt.Fprintf(cfg.Output, "game %d: %s %s (%s, %d plies)\n",
			res.Index+1, res.Result, res.State, res.Termination, len(res.Moves))

		if cfg.PGNFile == "" {
			continue
		}
		tags := record.DefaultTags(res.White, res.Black)
		tags["Round"] = strconv.Itoa(res.Index + 1)
		tags["Termination"] = res.Termination
		pgn, err := record.PGN(res.StartFEN, res.Moves, res.State, tags)
		if err != nil {
			logger.Warn("cannot record game", "game", res.Index+1, "err", err)
			continue
		}
		pgns = append(pgns, pgn)
	}
	fmt.Fprintf(cfg.Output, "%s\n", arena.Summarize(results))

	if cfg.PGNFile != "" {
		return writePGN(cfg.PGNFile, pgns)
	}
	return nil
}

func runPerft(ctx context.Context, cfg *config.Config) error {
	board := engine.NewInitialBoard()
	if cfg.StartFEN != "" {
		var err error
		if board, err = engine.NewBoardFromFEN(cfg.StartFEN); err != nil {
			return err
		}
	}
	for depth := 1; depth <= cfg.PerftDepth; depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(cfg.Output, "perft(%d) = %d\n", depth, engine.Perft(board, depth))
	}
	if !cfg.PerftDivide {
		return nil
	}
	counts := engine.Divide(board, cfg.PerftDepth)
	moves := make([]string, 0, len(counts))
	for m := range counts {
		moves = append(moves, m)
	}
	sort.Strings(moves)
	for _, m := range moves {
		fmt.Fprintf(cfg.Output, "%s: %d\n", m, counts[m])
	}
	return nil
}

// writePGN writes games to path, separated by blank lines.
func writePGN(path string, pgns []string) error {
	var sb strings.Builder
	for _, pgn := range pgns {
		sb.WriteString(strings.TrimRight(pgn, "\n"))
		sb.WriteString("\n\n")
	}
	//nolint:gosec // G306: 0644 is appropriate for user-created game files
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}
