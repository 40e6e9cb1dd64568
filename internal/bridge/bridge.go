// Package bridge connects a runner's move stream to the rules engine and a
// strategem.
//
// A Bridge owns one game. The runner feeds it opponent moves in coordinate
// notation; the bridge applies them, asks the strategem for a reply, applies
// that too and hands it back for submission. Calls are expected in the order
// the state machine allows and are rejected with ErrOutOfTurn otherwise.
package bridge

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/strategem"
)

// State is the position of the bridge in its request/response cycle.
type State int

const (
	AwaitingOpponentMove State = iota
	ComputingOwnMove
	AwaitingSubmissionAck
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case AwaitingOpponentMove:
		return "awaiting-opponent-move"
	case ComputingOwnMove:
		return "computing-own-move"
	case AwaitingSubmissionAck:
		return "awaiting-submission-ack"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Reporter receives the final state of a game.
type Reporter interface {
	ReportGameState(state engine.GameState)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(state engine.GameState)

// ReportGameState calls f(state).
func (f ReporterFunc) ReportGameState(state engine.GameState) {
	f(state)
}

// BotMove is a move chosen by the bot, ready for submission.
type BotMove struct {
	Move     chess.Move
	Notation string           // canonical coordinate form, e.g. "e7e8q"
	FEN      string           // position after the move
	State    engine.GameState // state after the move
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for state transitions and moves.
func WithLogger(logger *log.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// Bridge drives one game for one side.
type Bridge struct {
	side     chess.Colour
	strat    strategem.Strategem
	reporter Reporter
	logger   *log.Logger

	game  *engine.Game
	state State
	over  bool
}

// New creates a bridge for side, starting from the initial position.
// A nil reporter discards reports.
func New(side chess.Colour, strat strategem.Strategem, reporter Reporter, opts ...Option) *Bridge {
	if reporter == nil {
		reporter = ReporterFunc(func(engine.GameState) {})
	}
	b := &Bridge{
		side:     side,
		strat:    strat,
		reporter: reporter,
		logger:   log.New(io.Discard),
		game:     engine.NewGame(),
		state:    AwaitingOpponentMove,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Side returns the colour the bot plays.
func (b *Bridge) Side() chess.Colour {
	return b.side
}

// State returns the current state.
func (b *Bridge) State() State {
	return b.state
}

// IsOver reports whether the game has ended.
func (b *Bridge) IsOver() bool {
	return b.over
}

// Game returns the underlying game. Callers must not modify it.
func (b *Bridge) Game() *engine.Game {
	return b.game
}

// History returns the moves of both sides in the order they were applied.
func (b *Bridge) History() []chess.Move {
	return b.game.Moves()
}

// Start computes the bot's first move when the bot is to move.
// It returns ok == false when the opponent moves first.
func (b *Bridge) Start() (BotMove, bool, error) {
	if err := b.expect(AwaitingOpponentMove); err != nil {
		return BotMove{}, false, err
	}
	if b.game.ToMove() != b.side {
		return BotMove{}, false, nil
	}
	return b.computeOwnMove()
}

// SubmitOpponentMove applies the opponent's move and returns the bot's reply.
// It returns ok == false when the opponent's move ended the game.
// Unparseable or illegal notation leaves the game untouched and returns an
// error wrapping ErrUnrecognizedMove.
func (b *Bridge) SubmitOpponentMove(notation string) (BotMove, bool, error) {
	if err := b.expect(AwaitingOpponentMove); err != nil {
		return BotMove{}, false, err
	}
	if b.game.ToMove() == b.side {
		return BotMove{}, false, errors.Wrapf(errors.ErrOutOfTurn, "%s is to move", b.side)
	}

	move, err := engine.ParseMove(b.game.Board(), notation)
	if err != nil {
		return BotMove{}, false, err
	}
	played, err := b.game.Apply(move)
	if err != nil {
		return BotMove{}, false, err
	}
	b.logger.Debug("opponent move", "move", played, "ply", b.game.Ply())
	b.observe(played)
	b.transition(ComputingOwnMove)

	if st := b.game.State(); st.IsOver() {
		b.finish(st)
		b.transition(AwaitingOpponentMove)
		return BotMove{}, false, nil
	}
	return b.computeOwnMove()
}

// ConfirmSubmission records that the runner delivered the last bot move.
func (b *Bridge) ConfirmSubmission() error {
	if b.state != AwaitingSubmissionAck {
		return errors.Wrapf(errors.ErrOutOfTurn, "confirm in state %s", b.state)
	}
	b.transition(AwaitingOpponentMove)
	return nil
}

// SubmissionFailed records that the runner could not deliver the last bot
// move. The bridge stays in AwaitingSubmissionAck so the runner may retry
// and confirm later.
func (b *Bridge) SubmissionFailed(cause error) error {
	if b.state != AwaitingSubmissionAck {
		return errors.Wrapf(errors.ErrOutOfTurn, "submission failure in state %s", b.state)
	}
	b.logger.Warn("submission failed", "err", cause)
	return fmt.Errorf("%w: %w", errors.ErrSubmissionFailed, cause)
}

// Resync discards the current game and continues from fen. When the bot is
// to move in the new position its move is returned as with Start.
func (b *Bridge) Resync(fen string) (BotMove, bool, error) {
	game, err := engine.NewGameFromFEN(fen)
	if err != nil {
		return BotMove{}, false, err
	}
	b.game = game
	b.over = false
	b.transition(AwaitingOpponentMove)
	if r, ok := b.strat.(strategem.Resetter); ok {
		r.Reset(game.Board())
	}
	b.logger.Info("resync", "fen", game.FEN())

	if st := game.State(); st.IsOver() {
		b.finish(st)
		return BotMove{}, false, nil
	}
	return b.Start()
}

func (b *Bridge) computeOwnMove() (BotMove, bool, error) {
	b.transition(ComputingOwnMove)

	legal := b.game.LegalMoves()
	choice := b.strat.Decide(b.game.Board(), legal)
	if !chess.ContainsMove(legal, choice) {
		b.over = true
		err := &errors.GameError{
			Err:      errors.Wrapf(errors.ErrStrategemContract, "%s chose a move outside the legal set", b.strat.Name()),
			Ply:      b.game.Ply() + 1,
			MoveText: choice.String(),
			Side:     b.side.String(),
		}
		b.logger.Error("strategem contract violation", "err", err)
		return BotMove{}, false, err
	}

	played, err := b.game.Apply(choice)
	if err != nil {
		b.over = true
		return BotMove{}, false, err
	}
	b.logger.Debug("bot move", "move", played, "strategem", b.strat.Name(), "ply", b.game.Ply())
	b.observe(played)
	b.transition(AwaitingSubmissionAck)

	st := b.game.State()
	if st.IsOver() {
		b.finish(st)
	}
	return BotMove{
		Move:     played,
		Notation: engine.FormatMove(played),
		FEN:      b.game.FEN(),
		State:    st,
	}, true, nil
}

func (b *Bridge) observe(move chess.Move) {
	if o, ok := b.strat.(strategem.Observer); ok {
		o.Observe(b.game.Board(), move)
	}
}

func (b *Bridge) finish(st engine.GameState) {
	b.over = true
	b.logger.Info("game over", "state", st)
	b.reporter.ReportGameState(st)
}

func (b *Bridge) expect(want State) error {
	if b.over {
		return errors.ErrGameOver
	}
	if b.state != want {
		return errors.Wrapf(errors.ErrOutOfTurn, "in state %s, want %s", b.state, want)
	}
	return nil
}

func (b *Bridge) transition(to State) {
	if b.state != to {
		b.logger.Debug("transition", "from", b.state, "to", to)
	}
	b.state = to
}
