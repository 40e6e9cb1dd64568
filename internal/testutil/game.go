package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
)

// MustBoard parses a FEN and fails the test if it is malformed.
func MustBoard(t *testing.T, fen string) *chess.Board {
	t.Helper()
	board, err := engine.NewBoardFromFEN(fen)
	if err != nil {
		t.Fatalf("NewBoardFromFEN(%q) failed: %v", fen, err)
	}
	return board
}

// MustMove parses move text against board and fails the test if it is not
// a legal move there.
func MustMove(t *testing.T, board *chess.Board, text string) chess.Move {
	t.Helper()
	m, err := engine.ParseMove(board, text)
	if err != nil {
		t.Fatalf("ParseMove(%q) failed: %v", text, err)
	}
	return m
}

// MustGame starts a game from fen (the initial position when empty) and
// plays the given moves.
func MustGame(t *testing.T, fen string, moves ...string) *engine.Game {
	t.Helper()
	if fen == "" {
		fen = engine.InitialFEN
	}
	g, err := engine.NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q) failed: %v", fen, err)
	}
	for _, text := range moves {
		if _, err := g.Apply(MustMove(t, g.Board(), text)); err != nil {
			t.Fatalf("Apply(%q) failed: %v", text, err)
		}
	}
	return g
}

// MoveStrings renders moves in coordinate notation, sorted.
func MoveStrings(moves []chess.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	sort.Strings(out)
	return out
}
