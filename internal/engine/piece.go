package engine

import "github.com/lgbarn/chessbot-go/internal/chess"

// generatePieceMoves appends the pseudo-legal non-castling moves of the
// knight, bishop, rook, queen or king on from.
func generatePieceMoves(board *chess.Board, from chess.Square, piece chess.Piece, moves []chess.Move) []chess.Move {
	switch piece.Kind {
	case chess.Knight:
		return generateStepMoves(board, from, piece.Colour, knightOffsets, moves)
	case chess.King:
		return generateStepMoves(board, from, piece.Colour, kingOffsets, moves)
	case chess.Bishop:
		return generateSlidingMoves(board, from, piece.Colour, diagonalDirs, moves)
	case chess.Rook:
		return generateSlidingMoves(board, from, piece.Colour, straightDirs, moves)
	case chess.Queen:
		return generateSlidingMoves(board, from, piece.Colour, allSlidingDirs, moves)
	}
	return moves
}

// generateStepMoves handles pieces that move a fixed offset (knight, king).
func generateStepMoves(board *chess.Board, from chess.Square, colour chess.Colour, offsets [][2]int, moves []chess.Move) []chess.Move {
	for _, off := range offsets {
		to, ok := from.Offset(off[0], off[1])
		if !ok {
			continue
		}
		target := board.Get(to)
		if target.IsEmpty() || target.Colour != colour {
			moves = append(moves, chess.Move{From: from, To: to})
		}
	}
	return moves
}

// generateSlidingMoves walks each ray until blocked, including an enemy capture.
func generateSlidingMoves(board *chess.Board, from chess.Square, colour chess.Colour, dirs [][2]int, moves []chess.Move) []chess.Move {
	for _, dir := range dirs {
		cur := from
		for {
			to, ok := cur.Offset(dir[0], dir[1])
			if !ok {
				break
			}
			target := board.Get(to)
			if !target.IsEmpty() {
				if target.Colour != colour {
					moves = append(moves, chess.Move{From: from, To: to})
				}
				break // Blocked
			}
			moves = append(moves, chess.Move{From: from, To: to})
			cur = to
		}
	}
	return moves
}
