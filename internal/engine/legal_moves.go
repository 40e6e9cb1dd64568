package engine

import "github.com/lgbarn/chessbot-go/internal/chess"

// GenerateLegalMoves returns every legal move for the side to move, in
// square order a1..h8 with castling last. Each pseudo-legal candidate is
// played on a copy of the board and kept only if the mover's king is safe.
func GenerateLegalMoves(board *chess.Board) []chess.Move {
	pseudo := GeneratePseudoLegalMoves(board)
	legal := pseudo[:0]
	for _, move := range pseudo {
		if tryMove(board, move) {
			legal = append(legal, move)
		}
	}
	return legal
}

// GeneratePseudoLegalMoves returns moves that follow piece movement rules
// but may leave the mover's king attacked. Castling is already fully checked.
func GeneratePseudoLegalMoves(board *chess.Board) []chess.Move {
	colour := board.ToMove
	moves := make([]chess.Move, 0, 48)

	for i, piece := range board.Squares {
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		from := chess.Square(i)
		if piece.Kind == chess.Pawn {
			moves = generatePawnMoves(board, from, colour, moves)
		} else {
			moves = generatePieceMoves(board, from, piece, moves)
		}
	}
	return generateCastles(board, colour, moves)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func HasLegalMoves(board *chess.Board) bool {
	for _, move := range GeneratePseudoLegalMoves(board) {
		if tryMove(board, move) {
			return true
		}
	}
	return false
}

// tryMove makes a move on a copied board and checks if it leaves the king in check.
func tryMove(board *chess.Board, move chess.Move) bool {
	colour := board.ToMove
	testBoard := board.Copy()
	MakeMove(testBoard, move)
	return !IsInCheck(testBoard, colour)
}
