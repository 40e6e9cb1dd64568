package engine

import (
	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/errors"
	"github.com/lgbarn/chessbot-go/internal/hashing"
)

// Game owns one board for the lifetime of a game, plus the move history
// and position counts needed for undo and repetition draws.
type Game struct {
	board    *chess.Board
	startFEN string
	history  []Undo
	keys     []uint64
	reps     *hashing.RepetitionTable
}

// NewGame creates a game from the standard starting position.
func NewGame() *Game {
	g, _ := NewGameFromFEN(InitialFEN)
	return g
}

// NewGameFromFEN creates a game from a FEN position. The position must
// satisfy ValidateBoard.
func NewGameFromFEN(fen string) (*Game, error) {
	board, err := NewBoardFromFEN(fen)
	if err != nil {
		return nil, err
	}
	if err := ValidateBoard(board); err != nil {
		return nil, err
	}
	g := &Game{
		board:    board,
		startFEN: BoardToFEN(board),
		reps:     hashing.NewRepetitionTable(),
	}
	g.recordPosition()
	return g, nil
}

func (g *Game) recordPosition() {
	key := hashing.GenerateZobristHash(g.board)
	g.keys = append(g.keys, key)
	g.reps.Add(key)
}

// Board returns a copy of the current position.
func (g *Game) Board() *chess.Board {
	return g.board.Copy()
}

// StartFEN returns the FEN of the position the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// FEN returns the FEN of the current position.
func (g *Game) FEN() string {
	return BoardToFEN(g.board)
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	return g.board.ToMove
}

// LegalMoves returns the legal moves in the current position.
func (g *Game) LegalMoves() []chess.Move {
	return GenerateLegalMoves(g.board)
}

// Apply validates and plays a move. The move is resolved against the
// legal set, so castling and en passant flags need not be set.
// It returns the move as played.
func (g *Game) Apply(move chess.Move) (chess.Move, error) {
	undo, err := ApplyMove(g.board, move)
	if err != nil {
		return chess.Move{}, &errors.GameError{
			Err:      err,
			Ply:      len(g.history) + 1,
			MoveText: move.String(),
			Side:     g.board.ToMove.String(),
		}
	}
	g.history = append(g.history, undo)
	g.recordPosition()
	return undo.Move, nil
}

// Undo takes back the last move. It returns false when there is none.
func (g *Game) Undo() bool {
	if len(g.history) == 0 {
		return false
	}
	last := len(g.keys) - 1
	g.reps.Remove(g.keys[last])
	g.keys = g.keys[:last]

	undo := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	UnmakeMove(g.board, undo)
	return true
}

// State evaluates the current position including repetition history.
func (g *Game) State() GameState {
	return Evaluate(g.board, g.reps.Count(g.keys[len(g.keys)-1]))
}

// Moves returns the moves played so far, in order.
func (g *Game) Moves() []chess.Move {
	moves := make([]chess.Move, len(g.history))
	for i, u := range g.history {
		moves[i] = u.Move
	}
	return moves
}

// Ply returns the number of half-moves played.
func (g *Game) Ply() int {
	return len(g.history)
}
