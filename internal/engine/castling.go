package engine

import "github.com/lgbarn/chessbot-go/internal/chess"

// castleSquares describes the squares involved in one castling move.
type castleSquares struct {
	kingFrom, kingTo chess.Square
	rookFrom, rookTo chess.Square
	// Squares between king and rook that must be empty.
	between []chess.Square
	// Squares the king stands on or crosses; none may be attacked.
	kingPath []chess.Square
}

// castlingGeometry returns the castle squares for a colour and wing.
func castlingGeometry(colour chess.Colour, kingside bool) castleSquares {
	rank := chess.HomeRank(colour)
	sq := func(file int) chess.Square { return chess.Sq(file, rank) }

	if kingside {
		return castleSquares{
			kingFrom: sq(4), kingTo: sq(6),
			rookFrom: sq(7), rookTo: sq(5),
			between:  []chess.Square{sq(5), sq(6)},
			kingPath: []chess.Square{sq(4), sq(5), sq(6)},
		}
	}
	return castleSquares{
		kingFrom: sq(4), kingTo: sq(2),
		rookFrom: sq(0), rookTo: sq(3),
		between:  []chess.Square{sq(1), sq(2), sq(3)},
		kingPath: []chess.Square{sq(4), sq(3), sq(2)},
	}
}

// generateCastles appends the castling moves available to the side to move.
// Castling needs the right, the king and rook at home, an empty path between
// them, and no attacked square from the king's origin to its destination.
// The final legality filter is still applied by the caller.
func generateCastles(board *chess.Board, colour chess.Colour, moves []chess.Move) []chess.Move {
	for _, kingside := range []bool{true, false} {
		if kingside && !board.Castling.Kingside(colour) {
			continue
		}
		if !kingside && !board.Castling.Queenside(colour) {
			continue
		}
		geo := castlingGeometry(colour, kingside)
		if canCastle(board, colour, geo) {
			moves = append(moves, chess.Move{From: geo.kingFrom, To: geo.kingTo, IsCastle: true})
		}
	}
	return moves
}

func canCastle(board *chess.Board, colour chess.Colour, geo castleSquares) bool {
	if !board.Get(geo.kingFrom).Is(colour, chess.King) || !board.Get(geo.rookFrom).Is(colour, chess.Rook) {
		return false
	}
	for _, sq := range geo.between {
		if !board.Get(sq).IsEmpty() {
			return false
		}
	}
	enemy := colour.Opposite()
	for _, sq := range geo.kingPath {
		if IsSquareAttacked(board, sq, enemy) {
			return false
		}
	}
	return true
}
