package chess

import "strings"

// CastlingRights holds the four independent castling permissions.
// A right is only ever revoked during a game, never restored.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

// Kingside returns the kingside right for the colour.
func (c CastlingRights) Kingside(colour Colour) bool {
	if colour == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside returns the queenside right for the colour.
func (c CastlingRights) Queenside(colour Colour) bool {
	if colour == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

// Any returns true if the colour still has at least one castling right.
func (c CastlingRights) Any(colour Colour) bool {
	return c.Kingside(colour) || c.Queenside(colour)
}

// RevokeAll removes both castling rights of the colour.
func (c *CastlingRights) RevokeAll(colour Colour) {
	if colour == White {
		c.WhiteKingside = false
		c.WhiteQueenside = false
	} else {
		c.BlackKingside = false
		c.BlackQueenside = false
	}
}

// RevokeCorner removes the right tied to a rook's home corner, if sq is one.
func (c *CastlingRights) RevokeCorner(sq Square) {
	switch sq {
	case H1:
		c.WhiteKingside = false
	case A1:
		c.WhiteQueenside = false
	case H8:
		c.BlackKingside = false
	case A8:
		c.BlackQueenside = false
	}
}

// Board represents a chess board with all state needed for the game.
type Board struct {
	// The 64 squares indexed by Square; the zero Piece is empty.
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// The current move number.
	MoveNumber uint

	// Castling permissions still available.
	Castling CastlingRights

	// Keep track of where the two kings are for check detection.
	WKing Square
	BKing Square

	// Is EnPassant capture possible? If so then EPSquare is the square
	// on which the capturing pawn lands.
	EnPassant bool
	EPSquare  Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{
		ToMove:     White,
		MoveNumber: 1,
	}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [NumSquares]Piece{}

	backRank := []PieceKind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 0; file < BoardSize; file++ {
		b.Squares[Sq(file, 0)] = W(backRank[file])
		b.Squares[Sq(file, 1)] = W(Pawn)
		b.Squares[Sq(file, 6)] = B(Pawn)
		b.Squares[Sq(file, 7)] = B(backRank[file])
	}

	b.WKing = E1
	b.BKing = E8
	b.Castling = CastlingRights{true, true, true, true}
	b.ToMove = White
	b.MoveNumber = 1
	b.EnPassant = false
	b.HalfmoveClock = 0
}

// Get returns the piece at the given square.
func (b *Board) Get(sq Square) Piece {
	return b.Squares[sq]
}

// Set places a piece at the given square, keeping king tracking current.
func (b *Board) Set(sq Square, piece Piece) {
	b.Squares[sq] = piece
	if piece.Kind == King {
		if piece.Colour == White {
			b.WKing = sq
		} else {
			b.BKing = sq
		}
	}
}

// Clear empties the given square.
func (b *Board) Clear(sq Square) {
	b.Squares[sq] = Empty
}

// KingSquare returns the tracked square of the colour's king.
func (b *Board) KingSquare(colour Colour) Square {
	if colour == White {
		return b.WKing
	}
	return b.BKing
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Pieces returns the squares occupied by pieces of the given colour, a1 first.
func (b *Board) Pieces(colour Colour) []Square {
	var squares []Square
	for i, p := range b.Squares {
		if !p.IsEmpty() && p.Colour == colour {
			squares = append(squares, Square(i))
		}
	}
	return squares
}

// Material returns the total material value of the colour's pieces.
func (b *Board) Material(colour Colour) int {
	total := 0
	for _, p := range b.Squares {
		if !p.IsEmpty() && p.Colour == colour {
			total += p.Kind.Value()
		}
	}
	return total
}

// String renders the board as eight lines of FEN letters, rank 8 first,
// with '.' for empty squares and file/rank labels.
func (b *Board) String() string {
	var sb strings.Builder
	for rank := BoardSize - 1; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < BoardSize; file++ {
			sb.WriteByte(b.Squares[Sq(file, rank)].Letter())
			if file < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
