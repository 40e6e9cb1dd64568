package engine

import (
	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/errors"
)

// savedSquare remembers the content of a square before a move touched it.
type savedSquare struct {
	sq    chess.Square
	piece chess.Piece
}

// Undo holds everything needed to restore the board to the position
// before a move. It is only valid for the board it was produced on.
type Undo struct {
	Move     chess.Move
	Captured chess.Piece

	castling      chess.CastlingRights
	enPassant     bool
	epSquare      chess.Square
	halfmoveClock uint
	moveNumber    uint
	wKing, bKing  chess.Square

	squares [4]savedSquare
	nSaved  int
}

func (u *Undo) save(board *chess.Board, sq chess.Square) {
	u.squares[u.nSaved] = savedSquare{sq: sq, piece: board.Get(sq)}
	u.nSaved++
}

// ApplyMove validates move against the legal-move set and applies it.
// A pawn move to the last rank without a promotion kind promotes to a queen.
// The castling and en passant flags need not be set by the caller; they are
// taken from the matching legal move.
func ApplyMove(board *chess.Board, move chess.Move) (Undo, error) {
	legal, ok := ResolveMove(board, move)
	if !ok {
		return Undo{}, errors.Wrapf(errors.ErrIllegalMove, "%s", move)
	}
	return MakeMove(board, legal), nil
}

// ResolveMove finds the legal move with the same squares and promotion as
// move, defaulting a missing promotion to a queen.
func ResolveMove(board *chess.Board, move chess.Move) (chess.Move, bool) {
	promo := move.Promotion
	if promo == chess.NoKind {
		piece := board.Get(move.From)
		if piece.Is(board.ToMove, chess.Pawn) && move.To.Rank() == chess.PromotionRank(board.ToMove) {
			promo = chess.Queen
		}
	}
	for _, legal := range GenerateLegalMoves(board) {
		if legal.From == move.From && legal.To == move.To && legal.Promotion == promo {
			return legal, true
		}
	}
	return chess.Move{}, false
}

// MakeMove applies a move without checking legality and returns the
// information needed to take it back with UnmakeMove.
func MakeMove(board *chess.Board, move chess.Move) Undo {
	colour := board.ToMove
	undo := Undo{
		Move:          move,
		castling:      board.Castling,
		enPassant:     board.EnPassant,
		epSquare:      board.EPSquare,
		halfmoveClock: board.HalfmoveClock,
		moveNumber:    board.MoveNumber,
		wKing:         board.WKing,
		bKing:         board.BKing,
	}

	piece := board.Get(move.From)
	undo.save(board, move.From)
	undo.save(board, move.To)
	undo.Captured = board.Get(move.To)

	switch {
	case move.IsCastle:
		geo := castlingGeometry(colour, move.IsKingside())
		undo.save(board, geo.rookFrom)
		undo.save(board, geo.rookTo)
		rook := board.Get(geo.rookFrom)
		board.Clear(geo.rookFrom)
		board.Set(geo.rookTo, rook)

	case move.IsEnPassant:
		// The captured pawn sits behind the target square.
		victim := enPassantVictim(move.To, colour)
		undo.save(board, victim)
		undo.Captured = board.Get(victim)
		board.Clear(victim)
	}

	board.Clear(move.From)
	if move.IsPromotion() {
		board.Set(move.To, chess.NewPiece(colour, move.Promotion))
	} else {
		board.Set(move.To, piece)
	}

	// Castling rights are only ever revoked.
	if piece.Kind == chess.King {
		board.Castling.RevokeAll(colour)
	}
	board.Castling.RevokeCorner(move.From)
	board.Castling.RevokeCorner(move.To)

	// The en passant target exists only right after a double advance.
	board.EnPassant = false
	if piece.Kind == chess.Pawn && move.To.Rank()-move.From.Rank() == 2*chess.ColourOffset(colour) {
		board.EnPassant = true
		board.EPSquare, _ = move.From.Offset(0, chess.ColourOffset(colour))
	}

	if piece.Kind == chess.Pawn || !undo.Captured.IsEmpty() {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}

	if colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = colour.Opposite()

	return undo
}

// UnmakeMove restores the board to its state before the move recorded in undo.
func UnmakeMove(board *chess.Board, undo Undo) {
	for i := undo.nSaved - 1; i >= 0; i-- {
		saved := undo.squares[i]
		board.Squares[saved.sq] = saved.piece
	}
	board.Castling = undo.castling
	board.EnPassant = undo.enPassant
	board.EPSquare = undo.epSquare
	board.HalfmoveClock = undo.halfmoveClock
	board.MoveNumber = undo.moveNumber
	board.WKing = undo.wKing
	board.BKing = undo.bKing
	board.ToMove = board.ToMove.Opposite()
}
