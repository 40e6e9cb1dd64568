package engine

import (
	"strings"

	"github.com/lgbarn/chessbot-go/internal/chess"
)

// Status is the outcome class of a position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
	Draw
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Draw:
		return "draw"
	default:
		return "unknown"
	}
}

// DrawReason explains why a position is a Draw.
type DrawReason int

const (
	NoDraw DrawReason = iota
	FiftyMoveRule
	ThreefoldRepetition
	InsufficientMaterial
)

// String returns a kebab-case name of the draw reason, or "" for NoDraw.
func (r DrawReason) String() string {
	switch r {
	case FiftyMoveRule:
		return "fifty-move-rule"
	case ThreefoldRepetition:
		return "threefold-repetition"
	case InsufficientMaterial:
		return "insufficient-material"
	default:
		return ""
	}
}

// GameState is derived from a position; it is never stored on the board.
type GameState struct {
	Status Status
	Reason DrawReason
	// ToMove is the side to move in the evaluated position; for Checkmate
	// it is the side that has been mated.
	ToMove chess.Colour
}

// IsOver returns true for checkmate, stalemate and draws.
func (s GameState) IsOver() bool {
	return s.Status == Checkmate || s.Status == Stalemate || s.Status == Draw
}

// Winner returns the winning colour and true after a checkmate.
func (s GameState) Winner() (chess.Colour, bool) {
	if s.Status != Checkmate {
		return 0, false
	}
	return s.ToMove.Opposite(), true
}

// Result returns the PGN result string: "1-0", "0-1", "1/2-1/2" or "*".
func (s GameState) Result() string {
	switch s.Status {
	case Checkmate:
		if s.ToMove == chess.Black {
			return "1-0"
		}
		return "0-1"
	case Stalemate, Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// String describes the state, e.g. "checkmate, white to move" or
// "draw (threefold-repetition)".
func (s GameState) String() string {
	var sb strings.Builder
	sb.WriteString(s.Status.String())
	if s.Reason != NoDraw {
		sb.WriteString(" (" + s.Reason.String() + ")")
	}
	sb.WriteString(", " + strings.ToLower(s.ToMove.String()) + " to move")
	return sb.String()
}

// Evaluate derives the state of the board for the side to move.
// repetitions is the number of times the current position has occurred,
// including now; pass 0 or 1 when history is unknown.
// Checkmate and stalemate take precedence over draw rules.
func Evaluate(board *chess.Board, repetitions int) GameState {
	state := GameState{Status: Ongoing, ToMove: board.ToMove}
	inCheck := IsInCheck(board, board.ToMove)

	if !HasLegalMoves(board) {
		if inCheck {
			state.Status = Checkmate
		} else {
			state.Status = Stalemate
		}
		return state
	}

	switch {
	case board.HalfmoveClock >= FiftyMoveLimit:
		state.Status, state.Reason = Draw, FiftyMoveRule
	case repetitions >= RepetitionLimit:
		state.Status, state.Reason = Draw, ThreefoldRepetition
	case HasInsufficientMaterial(board):
		state.Status, state.Reason = Draw, InsufficientMaterial
	case inCheck:
		state.Status = Check
	}
	return state
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func IsCheckmate(board *chess.Board) bool {
	return IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}

// IsStalemate returns true if the position is stalemate for the side to move.
func IsStalemate(board *chess.Board) bool {
	return !IsInCheck(board, board.ToMove) && !HasLegalMoves(board)
}
