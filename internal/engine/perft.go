package engine

import "github.com/lgbarn/chessbot-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree to the given depth.
// It is the standard check of a move generator against known counts.
func Perft(board *chess.Board, depth int) int {
	if depth <= 0 {
		return 1
	}
	moves := GenerateLegalMoves(board)
	if depth == 1 {
		return len(moves)
	}

	nodes := 0
	for _, move := range moves {
		undo := MakeMove(board, move)
		nodes += Perft(board, depth-1)
		UnmakeMove(board, undo)
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by its
// coordinate notation.
func Divide(board *chess.Board, depth int) map[string]int {
	counts := make(map[string]int)
	if depth <= 0 {
		return counts
	}
	for _, move := range GenerateLegalMoves(board) {
		undo := MakeMove(board, move)
		counts[move.String()] = Perft(board, depth-1)
		UnmakeMove(board, undo)
	}
	return counts
}
