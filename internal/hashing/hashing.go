// Package hashing provides position keys, repetition tracking and
// duplicate game detection.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/chessbot-go/internal/chess"
)

// Zobrist tables, filled once from a fixed seed so keys are stable
// across runs and processes.
var (
	pieceKeys      [2][chess.NumPieceKinds][chess.NumSquares]uint64
	castlingKeys   [4]uint64
	epFileKeys     [chess.BoardSize]uint64
	blackToMoveKey uint64
)

func init() {
	rng := rand.New(rand.NewPCG(0x5eed_c0de, 0x0b5e_55ed))
	for colour := range pieceKeys {
		for kind := range pieceKeys[colour] {
			for sq := range pieceKeys[colour][kind] {
				pieceKeys[colour][kind][sq] = rng.Uint64()
			}
		}
	}
	for i := range castlingKeys {
		castlingKeys[i] = rng.Uint64()
	}
	for i := range epFileKeys {
		epFileKeys[i] = rng.Uint64()
	}
	blackToMoveKey = rng.Uint64()
}

// GenerateZobristHash returns the position key of the board. Two boards
// share a key when they have the same placement, side to move, castling
// rights and effective en passant file. Clocks are not part of the key.
func GenerateZobristHash(board *chess.Board) uint64 {
	var hash uint64

	for i, p := range board.Squares {
		if p.IsEmpty() {
			continue
		}
		hash ^= pieceKeys[p.Colour][p.Kind][i]
	}

	c := board.Castling
	for i, right := range []bool{c.WhiteKingside, c.WhiteQueenside, c.BlackKingside, c.BlackQueenside} {
		if right {
			hash ^= castlingKeys[i]
		}
	}

	if epCapturable(board) {
		hash ^= epFileKeys[board.EPSquare.File()]
	}

	if board.ToMove == chess.Black {
		hash ^= blackToMoveKey
	}
	return hash
}

// epCapturable reports whether a pawn of the side to move stands next to
// the pawn that just double-advanced. A target nobody can use does not
// distinguish positions for repetition.
func epCapturable(board *chess.Board) bool {
	if !board.EnPassant {
		return false
	}
	// The capturing pawn stands beside the victim, one rank behind the target.
	dir := -chess.ColourOffset(board.ToMove)
	for _, df := range []int{-1, 1} {
		if sq, ok := board.EPSquare.Offset(df, dir); ok && board.Get(sq).Is(board.ToMove, chess.Pawn) {
			return true
		}
	}
	return false
}

// WeakHash is a cheap placement-only hash used as a secondary check.
func WeakHash(board *chess.Board) uint64 {
	var hash uint64
	for i, p := range board.Squares {
		if p.IsEmpty() {
			continue
		}
		hash += uint64(i+1) * uint64(p.Letter())
	}
	return hash
}
