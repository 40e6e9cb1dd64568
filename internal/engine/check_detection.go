package engine

import "github.com/lgbarn/chessbot-go/internal/chess"

var (
	knightOffsets  = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets    = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	diagonalDirs   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	straightDirs   = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	allSlidingDirs = append(append([][2]int{}, diagonalDirs...), straightDirs...)
)

// IsInCheck returns true if the given colour's king is in check.
// A board without a king of that colour is never in check.
func IsInCheck(board *chess.Board, colour chess.Colour) bool {
	kingSq, ok := findKing(board, colour)
	if !ok {
		return false
	}
	return IsSquareAttacked(board, kingSq, colour.Opposite())
}

// findKing returns the king square of the given colour, trusting the
// tracked square when it still holds the king and searching otherwise.
func findKing(board *chess.Board, colour chess.Colour) (chess.Square, bool) {
	tracked := board.KingSquare(colour)
	if board.Get(tracked).Is(colour, chess.King) {
		return tracked, true
	}
	for i, p := range board.Squares {
		if p.Is(colour, chess.King) {
			return chess.Square(i), true
		}
	}
	return 0, false
}

// IsSquareAttacked returns true if the square is attacked by the given colour.
// Castling never attacks anything, so this never recurses into move generation.
func IsSquareAttacked(board *chess.Board, sq chess.Square, byColour chess.Colour) bool {
	return len(attackers(board, sq, byColour, true)) > 0
}

// Attackers returns every square holding a piece of byColour that attacks sq,
// in scan order: pawns, knights, king, diagonal sliders, straight sliders.
func Attackers(board *chess.Board, sq chess.Square, byColour chess.Colour) []chess.Square {
	return attackers(board, sq, byColour, false)
}

// attackers collects attacking squares, stopping at the first when firstOnly is set.
func attackers(board *chess.Board, sq chess.Square, byColour chess.Colour, firstOnly bool) []chess.Square {
	var found []chess.Square
	add := func(from chess.Square) bool {
		found = append(found, from)
		return firstOnly
	}

	// Pawns attack diagonally forward, so look one rank back from sq.
	pawnDir := -chess.ColourOffset(byColour)
	for _, df := range []int{-1, 1} {
		if from, ok := sq.Offset(df, pawnDir); ok && board.Get(from).Is(byColour, chess.Pawn) {
			if add(from) {
				return found
			}
		}
	}

	for _, off := range knightOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && board.Get(from).Is(byColour, chess.Knight) {
			if add(from) {
				return found
			}
		}
	}

	for _, off := range kingOffsets {
		if from, ok := sq.Offset(off[0], off[1]); ok && board.Get(from).Is(byColour, chess.King) {
			if add(from) {
				return found
			}
		}
	}

	// Sliding pieces along diagonals
	for _, dir := range diagonalDirs {
		if from, ok := firstPieceAlong(board, sq, dir); ok {
			p := board.Get(from)
			if p.Is(byColour, chess.Bishop) || p.Is(byColour, chess.Queen) {
				if add(from) {
					return found
				}
			}
		}
	}

	// Sliding pieces along straight lines
	for _, dir := range straightDirs {
		if from, ok := firstPieceAlong(board, sq, dir); ok {
			p := board.Get(from)
			if p.Is(byColour, chess.Rook) || p.Is(byColour, chess.Queen) {
				if add(from) {
					return found
				}
			}
		}
	}

	return found
}

// firstPieceAlong walks from sq in direction dir and returns the first occupied square.
func firstPieceAlong(board *chess.Board, sq chess.Square, dir [2]int) (chess.Square, bool) {
	cur := sq
	for {
		next, ok := cur.Offset(dir[0], dir[1])
		if !ok {
			return 0, false
		}
		if !board.Get(next).IsEmpty() {
			return next, true
		}
		cur = next
	}
}

// IsCapture returns true if the move captures: either en passant or a
// destination occupied by an enemy piece.
func IsCapture(board *chess.Board, move chess.Move) bool {
	return CapturedKind(board, move) != chess.NoKind
}

// CapturedKind returns the kind of piece the move would capture, or NoKind.
func CapturedKind(board *chess.Board, move chess.Move) chess.PieceKind {
	if move.IsEnPassant {
		return chess.Pawn
	}
	mover := board.Get(move.From)
	target := board.Get(move.To)
	if target.IsEmpty() || target.Colour == mover.Colour {
		return chess.NoKind
	}
	return target.Kind
}
