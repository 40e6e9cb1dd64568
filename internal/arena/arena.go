// Package arena plays strategems against each other.
//
// Each game is independent: it owns its board, two bridges and two
// strategems, and runs on one worker of a worker.Pool. Moves flow between
// the bridges exactly as they would between a bridge and a remote runner.
package arena

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lgbarn/chessbot-go/internal/bridge"
	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/hashing"
	"github.com/lgbarn/chessbot-go/internal/strategem"
	"github.com/lgbarn/chessbot-go/internal/worker"
)

// Terminations other than a game state.
const (
	TerminationMaxPlies = "max plies"
	TerminationError    = "error"
)

// Config describes an arena run.
type Config struct {
	White    string // strategem name for White
	Black    string // strategem name for Black
	Games    int
	Workers  int
	MaxPlies int
	Seed     uint64
	StartFEN string // empty for the initial position
	Logger   *log.Logger
}

// Result is the record of one arena game.
type Result struct {
	Index       int
	White       string
	Black       string
	StartFEN    string
	Moves       []chess.Move
	State       engine.GameState
	Result      string // PGN result, "*" when unfinished
	Termination string
	Duplicate   bool // same moves and final position as an earlier game
	Err         error
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Games < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "games must be at least 1, got %d", c.Games)
	}
	if c.MaxPlies < 1 {
		return errors.Wrapf(errors.ErrInvalidConfig, "max plies must be at least 1, got %d", c.MaxPlies)
	}
	for _, name := range []string{c.White, c.Black} {
		if _, err := strategem.New(name); err != nil {
			return err
		}
	}
	if c.StartFEN != "" {
		if _, err := engine.NewGameFromFEN(c.StartFEN); err != nil {
			return err
		}
	}
	return nil
}

// Run plays cfg.Games games and returns their results ordered by index.
// Cancelling ctx stops scheduling new games; games in progress finish.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	dups := hashing.NewThreadSafeDuplicateDetector()
	pool := worker.NewPool(func(item worker.WorkItem) worker.ProcessResult {
		return playGame(cfg, item, logger)
	}, worker.WithWorkers(cfg.Workers), worker.WithBufferSize(cfg.Workers*2))
	pool.Start()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer pool.Close()
		for i := 0; i < cfg.Games; i++ {
			select {
			case <-ctx.Done():
				pool.Stop()
				return ctx.Err()
			default:
			}
			pool.Submit(worker.WorkItem{Index: i, Seed: cfg.Seed + uint64(i)*2})
		}
		return nil
	})

	results := make([]Result, 0, cfg.Games)
	g.Go(func() error {
		for pr := range pool.Results() {
			r := toResult(cfg, pr)
			if pr.Game != nil {
				r.Duplicate = dups.CheckAndAdd(pr.Game.Board(), r.Moves)
			}
			logger.Info("game finished",
				"game", r.Index+1, "result", r.Result, "termination", r.Termination,
				"plies", len(r.Moves), "duplicate", r.Duplicate)
			results = append(results, r)
		}
		return nil
	})

	err := g.Wait()
	logger.Info("arena finished",
		"played", pool.Processed(), "workers", pool.NumWorkers(),
		"unique", dups.UniqueCount(), "duplicates", dups.DuplicateCount())
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results, err
}

func toResult(cfg Config, pr worker.ProcessResult) Result {
	r := Result{
		Index:       pr.Index,
		White:       cfg.White,
		Black:       cfg.Black,
		StartFEN:    cfg.StartFEN,
		Result:      "*",
		Termination: pr.Termination,
		Err:         pr.Err,
	}
	if pr.Game != nil {
		r.StartFEN = pr.Game.StartFEN()
		r.Moves = pr.Game.Moves()
		r.State = pr.Game.State()
		if r.State.IsOver() {
			r.Result = r.State.Result()
		}
	}
	return r
}

// playGame runs one game between two bridges.
func playGame(cfg Config, item worker.WorkItem, logger *log.Logger) worker.ProcessResult {
	res := worker.ProcessResult{Index: item.Index}
	gameLog := logger.With("game", item.Index+1)

	white, err := strategem.New(cfg.White, strategem.WithSeed(item.Seed),
		strategem.WithLogger(gameLog.WithPrefix("white")))
	if err != nil {
		res.Err, res.Termination = err, TerminationError
		return res
	}
	black, err := strategem.New(cfg.Black, strategem.WithSeed(item.Seed+1),
		strategem.WithLogger(gameLog.WithPrefix("black")))
	if err != nil {
		res.Err, res.Termination = err, TerminationError
		return res
	}

	var final *engine.GameState
	reporter := bridge.ReporterFunc(func(st engine.GameState) {
		if final == nil {
			final = &st
		}
	})
	bridges := map[chess.Colour]*bridge.Bridge{
		chess.White: bridge.New(chess.White, white, reporter, bridge.WithLogger(gameLog)),
		chess.Black: bridge.New(chess.Black, black, reporter, bridge.WithLogger(gameLog)),
	}

	// side is the colour that played move.
	side := chess.White
	if board, err := engine.NewBoardFromFEN(cfg.StartFEN); cfg.StartFEN != "" && err == nil {
		side = board.ToMove
	}
	move, ok, err := start(bridges, cfg.StartFEN)
	for err == nil && ok {
		res.Game = bridges[side].Game()
		if final != nil {
			break
		}
		if res.Game.Ply() >= cfg.MaxPlies {
			res.Termination = TerminationMaxPlies
			return res
		}
		if err = bridges[side].ConfirmSubmission(); err != nil {
			break
		}
		side = side.Opposite()
		move, ok, err = bridges[side].SubmitOpponentMove(move.Notation)
	}

	if err != nil {
		res.Err = &errors.GameError{Err: err, GameNum: item.Index + 1}
		res.Termination = TerminationError
		return res
	}
	res.Game = bridges[side].Game()
	if final != nil {
		res.Termination = terminationOf(*final)
	}
	return res
}

// start puts both bridges in the starting position and returns the first
// move of whichever side is to move.
func start(bridges map[chess.Colour]*bridge.Bridge, fen string) (bridge.BotMove, bool, error) {
	if fen == "" {
		first := bridges[chess.White]
		return first.Start()
	}
	var (
		move  bridge.BotMove
		moved bool
	)
	for _, side := range []chess.Colour{chess.White, chess.Black} {
		m, ok, err := bridges[side].Resync(fen)
		if err != nil {
			return bridge.BotMove{}, false, err
		}
		if ok {
			move, moved = m, true
		}
	}
	return move, moved, nil
}

func terminationOf(st engine.GameState) string {
	if st.Reason != engine.NoDraw {
		return st.Reason.String()
	}
	return st.Status.String()
}

// Summary tallies arena results.
type Summary struct {
	WhiteWins  int
	BlackWins  int
	Draws      int
	Unfinished int
	Errors     int
	Duplicates int
}

// Summarize counts the outcomes of results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.Duplicate {
			s.Duplicates++
		}
		switch {
		case r.Err != nil:
			s.Errors++
		case r.Result == "1-0":
			s.WhiteWins++
		case r.Result == "0-1":
			s.BlackWins++
		case r.Result == "1/2-1/2":
			s.Draws++
		default:
			s.Unfinished++
		}
	}
	return s
}

// String renders the summary on one line.
func (s Summary) String() string {
	return fmt.Sprintf("white %d, black %d, draws %d, unfinished %d, errors %d, duplicates %d",
		s.WhiteWins, s.BlackWins, s.Draws, s.Unfinished, s.Errors, s.Duplicates)
}
