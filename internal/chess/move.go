package chess

// Move is a proposed transition from one square to another.
// It is only meaningful relative to the Board it was generated from.
// Moves are comparable values; two moves are the same move iff they are ==.
type Move struct {
	From Square
	To   Square

	// The piece promoted to (NoKind if not a promotion).
	Promotion PieceKind

	IsCastle    bool
	IsEnPassant bool
}

// IsPromotion returns true if this move is a pawn promotion.
func (m Move) IsPromotion() bool {
	return m.Promotion != NoKind
}

// IsKingside returns true for a kingside castle.
func (m Move) IsKingside() bool {
	return m.IsCastle && m.To.File() > m.From.File()
}

// String returns the move in coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += string(rune(m.Promotion.Letter() + 'a' - 'A'))
	}
	return s
}

// ContainsMove returns true if moves contains m by value equality.
func ContainsMove(moves []Move, m Move) bool {
	for _, candidate := range moves {
		if candidate == m {
			return true
		}
	}
	return false
}
