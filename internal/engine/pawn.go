package engine

import "github.com/lgbarn/chessbot-go/internal/chess"

// generatePawnMoves appends the pseudo-legal moves of the pawn on from.
// A move reaching the last rank expands into one move per promotion kind.
func generatePawnMoves(board *chess.Board, from chess.Square, colour chess.Colour, moves []chess.Move) []chess.Move {
	dir := chess.ColourOffset(colour)

	// Forward one, and two from the starting rank when both squares are empty.
	if to, ok := from.Offset(0, dir); ok && board.Get(to).IsEmpty() {
		moves = appendPawnMove(moves, from, to, colour, false)
		if from.Rank() == chess.PawnStartRank(colour) {
			if to2, ok := from.Offset(0, 2*dir); ok && board.Get(to2).IsEmpty() {
				moves = append(moves, chess.Move{From: from, To: to2})
			}
		}
	}

	// Diagonal captures, including en passant onto the target square.
	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		target := board.Get(to)
		if !target.IsEmpty() && target.Colour != colour {
			moves = appendPawnMove(moves, from, to, colour, false)
		} else if board.EnPassant && to == board.EPSquare && target.IsEmpty() {
			moves = appendPawnMove(moves, from, to, colour, true)
		}
	}
	return moves
}

// appendPawnMove adds a single-step pawn move, expanding promotions.
func appendPawnMove(moves []chess.Move, from, to chess.Square, colour chess.Colour, enPassant bool) []chess.Move {
	if to.Rank() == chess.PromotionRank(colour) {
		for _, kind := range chess.PromotionKinds {
			moves = append(moves, chess.Move{From: from, To: to, Promotion: kind})
		}
		return moves
	}
	return append(moves, chess.Move{From: from, To: to, IsEnPassant: enPassant})
}

// enPassantVictim returns the square of the pawn removed by an en passant
// capture landing on to: directly behind the target from the mover's view.
func enPassantVictim(to chess.Square, colour chess.Colour) chess.Square {
	victim, _ := to.Offset(0, -chess.ColourOffset(colour))
	return victim
}
