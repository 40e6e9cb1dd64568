package engine

import (
	"github.com/lgbarn/chessbot-go/internal/chess"
)

// FiftyMoveLimit is the halfmove clock value at which a draw applies.
const FiftyMoveLimit = 100

// RepetitionLimit is the number of occurrences of a position that draws.
const RepetitionLimit = 3

// HasInsufficientMaterial returns true if neither side can possibly mate.
// Insufficient material includes:
// - K vs K
// - K+B vs K
// - K+N vs K
// - K+N+N vs K
// - K+minor vs K+minor
// - K+B vs K+B (same colour bishops, any number)
func HasInsufficientMaterial(board *chess.Board) bool {
	var whitePieces, blackPieces []chess.PieceKind
	var bishopOnLight, bishopOnDark bool

	for i, p := range board.Squares {
		if p.IsEmpty() || p.Kind == chess.King {
			continue
		}
		// Any pawn, rook, or queen means sufficient material
		if p.Kind == chess.Pawn || p.Kind == chess.Rook || p.Kind == chess.Queen {
			return false
		}
		if p.Kind == chess.Bishop {
			if chess.Square(i).IsLight() {
				bishopOnLight = true
			} else {
				bishopOnDark = true
			}
		}
		if p.Colour == chess.White {
			whitePieces = append(whitePieces, p.Kind)
		} else {
			blackPieces = append(blackPieces, p.Kind)
		}
	}

	nWhite, nBlack := len(whitePieces), len(blackPieces)
	switch {
	case nWhite == 0 && nBlack == 0:
		return true
	case nWhite+nBlack == 1:
		// K+minor vs K
		return true
	case nWhite == 1 && nBlack == 1:
		// K+minor vs K+minor cannot force mate
		return true
	case nBlack == 0 && nWhite == 2 && allKnights(whitePieces):
		return true
	case nWhite == 0 && nBlack == 2 && allKnights(blackPieces):
		return true
	}

	// Only bishops left, all on one square colour
	onlyBishops := !containsKind(whitePieces, chess.Knight) && !containsKind(blackPieces, chess.Knight)
	return onlyBishops && bishopOnLight != bishopOnDark
}

func allKnights(kinds []chess.PieceKind) bool {
	for _, k := range kinds {
		if k != chess.Knight {
			return false
		}
	}
	return true
}

func containsKind(kinds []chess.PieceKind, kind chess.PieceKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}
