package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/bridge"
	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/strategem"
)

// Local plays against a human over a pair of streams: opponent moves are
// read one per line and the board and bot moves are written back as plain
// text. Bot moves count as delivered as soon as they are printed.
type Local struct {
	bridge   *bridge.Bridge
	in       *bufio.Scanner
	out      io.Writer
	logger   *log.Logger
	startFEN string
	final    *engine.GameState
}

// NewLocal creates a local runner for a bot playing side with strat.
func NewLocal(side chess.Colour, strat strategem.Strategem, in io.Reader, out io.Writer, opts ...Option) *Local {
	o := buildOptions(opts)
	l := &Local{
		in:       bufio.NewScanner(in),
		out:      out,
		logger:   o.logger,
		startFEN: o.startFEN,
	}
	l.bridge = bridge.New(side, strat, l, bridge.WithLogger(o.logger.WithPrefix("bridge")))
	return l
}

// ReportGameState records the final state of the game. Run prints it once
// the loop ends.
func (l *Local) ReportGameState(st engine.GameState) {
	l.final = &st
}

// Bridge returns the runner's bridge.
func (l *Local) Bridge() *bridge.Bridge {
	return l.bridge
}

// Run plays until the game ends, the input is exhausted, "quit" is read or
// ctx is cancelled. Besides moves the input may contain the commands
// "board", "fen", "moves" and "quit".
func (l *Local) Run(ctx context.Context) error {
	var (
		bm  bridge.BotMove
		ok  bool
		err error
	)
	if l.startFEN != "" {
		bm, ok, err = l.bridge.Resync(l.startFEN)
	} else {
		bm, ok, err = l.bridge.Start()
	}
	if err != nil {
		return err
	}
	l.printBoard()
	if ok {
		if err := l.deliver(bm); err != nil {
			return err
		}
	}

	for !l.bridge.IsOver() {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.printf("%s to move> ", strings.ToLower(l.bridge.Game().ToMove().String()))
		if !l.in.Scan() {
			if err := l.in.Err(); err != nil {
				return errors.Wrap(err, "reading moves")
			}
			l.printf("\n")
			return nil
		}

		line := strings.TrimSpace(l.in.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return nil
		case "board":
			l.printBoard()
			continue
		case "fen":
			l.printf("%s\n", l.bridge.Game().FEN())
			continue
		case "moves":
			l.printf("%s\n", strings.Join(sortedMoves(l.bridge.Game().LegalMoves()), " "))
			continue
		}

		bm, ok, err := l.bridge.SubmitOpponentMove(line)
		switch {
		case errors.Is(err, errors.ErrUnrecognizedMove), errors.Is(err, errors.ErrOutOfTurn):
			l.printf("%v\n", err)
			continue
		case err != nil:
			return err
		}
		if ok {
			if err := l.deliver(bm); err != nil {
				return err
			}
		} else {
			l.printBoard()
		}
	}

	if l.final != nil {
		l.printf("game over: %s (%s)\n", l.final, l.final.Result())
	}
	return nil
}

func (l *Local) deliver(bm bridge.BotMove) error {
	l.printf("bot plays %s\n", bm.Notation)
	l.printBoard()
	return l.bridge.ConfirmSubmission()
}

func (l *Local) printBoard() {
	l.printf("%s", l.bridge.Game().Board())
}

func (l *Local) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(l.out, format, args...); err != nil {
		l.logger.Warn("write failed", "err", err)
	}
}

func sortedMoves(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}
