package chess

import (
	"fmt"

	"github.com/lgbarn/chessbot-go/internal/errors"
)

// Square is a board coordinate stored as an index 0-63 (a1 = 0, h1 = 7, h8 = 63).
// Values are only produced by the constructors below, so a Square is always on the board.
type Square uint8

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// NewSquare creates a square from file and rank indices (both 0-7).
func NewSquare(file, rank int) (Square, error) {
	if !OnBoard(file, rank) {
		return 0, fmt.Errorf("file %d rank %d: %w", file, rank, errors.ErrInvalidSquare)
	}
	return Square(rank*BoardSize + file), nil
}

// Sq creates a square from indices the caller has already bounds-checked.
// It panics on off-board input since that is a programming error.
func Sq(file, rank int) Square {
	s, err := NewSquare(file, rank)
	if err != nil {
		panic(err)
	}
	return s
}

// OnBoard reports whether the file and rank indices lie on the board.
func OnBoard(file, rank int) bool {
	return file >= 0 && file < BoardSize && rank >= 0 && rank < BoardSize
}

// ParseSquare parses a square name such as "e4".
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return 0, fmt.Errorf("square name %q: %w", name, errors.ErrInvalidSquare)
	}
	col := name[0] | 0x20 // fold to lowercase
	if col < 'a' || col > 'h' || name[1] < '1' || name[1] > '8' {
		return 0, fmt.Errorf("square name %q: %w", name, errors.ErrInvalidSquare)
	}
	return NewSquare(int(col-'a'), int(name[1]-'1'))
}

// File returns the file index (0 = a-file).
func (s Square) File() int {
	return int(s) % BoardSize
}

// Rank returns the rank index (0 = first rank).
func (s Square) Rank() int {
	return int(s) / BoardSize
}

// Offset returns the square displaced by the given file and rank deltas,
// and false if that square is off the board.
func (s Square) Offset(df, dr int) (Square, bool) {
	f, r := s.File()+df, s.Rank()+dr
	if !OnBoard(f, r) {
		return 0, false
	}
	return Square(r*BoardSize + f), true
}

// IsLight returns true if the square is a light square.
func (s Square) IsLight() bool {
	return (s.File()+s.Rank())%2 == 1
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}
