// Package engine provides chess move generation, validation and board manipulation.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewBoardFromFEN creates a board from a FEN string.
// The placement, side and castling fields are required; the en passant
// field and both clocks may be omitted and then default to "-", 0 and 1.
// Castling rights whose king or rook is not on its home square are dropped.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 3 || len(parts) > 6 {
		return nil, fenError(fen, "fields", "3 to 6 fields", strconv.Itoa(len(parts)))
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, fen, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, fen, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, fen, parts[2]); err != nil {
		return nil, err
	}
	if len(parts) > 3 {
		if err := parseEnPassant(board, fen, parts[3]); err != nil {
			return nil, err
		}
	}
	if err := parseClocks(board, fen, parts[4:]); err != nil {
		return nil, err
	}

	return board, nil
}

func fenError(fen, field, expected, got string) error {
	return &errors.ParseError{
		Err:      errors.ErrInvalidFEN,
		Input:    fen,
		Field:    field,
		Expected: expected,
		Got:      got,
	}
}

// parsePiecePositions parses the piece placement field of a FEN string.
// Every rank must describe exactly eight files.
func parsePiecePositions(board *chess.Board, fen, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fenError(fen, "placement", "8 ranks", strconv.Itoa(len(ranks)))
	}

	for i, row := range ranks {
		rank := chess.BoardSize - 1 - i
		file := 0
		for _, c := range []byte(row) {
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			kind := chess.KindFromLetter(c)
			if kind == chess.NoKind {
				return fenError(fen, "placement", "piece letter or digit", string(c))
			}
			if file >= chess.BoardSize {
				return fenError(fen, "placement", "8 files on rank "+strconv.Itoa(rank+1), "more")
			}
			colour := chess.White
			if c >= 'a' && c <= 'z' {
				colour = chess.Black
			}
			board.Set(chess.Sq(file, rank), chess.NewPiece(colour, kind))
			file++
		}
		if file != chess.BoardSize {
			return fenError(fen, "placement", "8 files on rank "+strconv.Itoa(rank+1), strconv.Itoa(file))
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, fen, side string) error {
	switch side {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fenError(fen, "side to move", "w or b", side)
	}
	return nil
}

// parseCastlingRights parses the castling availability field.
func parseCastlingRights(board *chess.Board, fen, field string) error {
	board.Castling = chess.CastlingRights{}
	if field == "-" {
		return nil
	}

	for _, c := range field {
		switch c {
		case 'K':
			board.Castling.WhiteKingside = true
		case 'Q':
			board.Castling.WhiteQueenside = true
		case 'k':
			board.Castling.BlackKingside = true
		case 'q':
			board.Castling.BlackQueenside = true
		default:
			return fenError(fen, "castling", "KQkq or -", string(c))
		}
	}

	// A right is meaningless without the king and rook at home.
	if !board.Get(chess.E1).Is(chess.White, chess.King) {
		board.Castling.RevokeAll(chess.White)
	}
	if !board.Get(chess.E8).Is(chess.Black, chess.King) {
		board.Castling.RevokeAll(chess.Black)
	}
	for _, corner := range []chess.Square{chess.A1, chess.H1, chess.A8, chess.H8} {
		colour := chess.White
		if corner.Rank() == chess.HomeRank(chess.Black) {
			colour = chess.Black
		}
		if !board.Get(corner).Is(colour, chess.Rook) {
			board.Castling.RevokeCorner(corner)
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
// The target must sit behind a pawn that could just have double-advanced.
func parseEnPassant(board *chess.Board, fen, field string) error {
	board.EnPassant = false
	if field == "-" {
		return nil
	}

	sq, err := chess.ParseSquare(field)
	if err != nil {
		return fenError(fen, "en passant", "square or -", field)
	}

	// The side that just moved is the opposite of the side to move.
	mover := board.ToMove.Opposite()
	wantRank := chess.PawnStartRank(mover) + chess.ColourOffset(mover)
	if sq.Rank() != wantRank {
		return fenError(fen, "en passant", "target on rank "+strconv.Itoa(wantRank+1), field)
	}

	board.EnPassant = true
	board.EPSquare = sq
	return nil
}

// parseClocks parses the halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, fen string, clocks []string) error {
	board.HalfmoveClock = 0
	board.MoveNumber = 1

	if len(clocks) > 0 {
		n, err := strconv.ParseUint(clocks[0], 10, 32)
		if err != nil {
			return fenError(fen, "halfmove clock", "non-negative integer", clocks[0])
		}
		board.HalfmoveClock = uint(n)
	}
	if len(clocks) > 1 {
		n, err := strconv.ParseUint(clocks[1], 10, 32)
		if err != nil {
			return fenError(fen, "fullmove number", "non-negative integer", clocks[1])
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	writeEnPassant(&sb, board)
	sb.WriteByte(' ')
	fmt.Fprintf(&sb, "%d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := board.Get(chess.Sq(file, rank))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	c := board.Castling
	if !c.Any(chess.White) && !c.Any(chess.Black) {
		sb.WriteByte('-')
		return
	}
	if c.WhiteKingside {
		sb.WriteByte('K')
	}
	if c.WhiteQueenside {
		sb.WriteByte('Q')
	}
	if c.BlackKingside {
		sb.WriteByte('k')
	}
	if c.BlackQueenside {
		sb.WriteByte('q')
	}
}

// writeEnPassant writes the en passant target square to the builder.
func writeEnPassant(sb *strings.Builder, board *chess.Board) {
	if board.EnPassant {
		sb.WriteString(board.EPSquare.String())
	} else {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}

// ValidateBoard checks the invariants a playable position must satisfy:
// exactly one king per colour, no pawns on the back ranks, and the side
// not to move must not be in check.
func ValidateBoard(board *chess.Board) error {
	kings := map[chess.Colour]int{}
	for i, p := range board.Squares {
		sq := chess.Square(i)
		switch p.Kind {
		case chess.King:
			kings[p.Colour]++
		case chess.Pawn:
			if sq.Rank() == 0 || sq.Rank() == chess.BoardSize-1 {
				return errors.Wrapf(errors.ErrInvalidFEN, "pawn on back rank %s", sq)
			}
		}
	}
	for _, colour := range []chess.Colour{chess.White, chess.Black} {
		if kings[colour] != 1 {
			return errors.Wrapf(errors.ErrInvalidFEN, "%s has %d kings", colour, kings[colour])
		}
	}
	if IsInCheck(board, board.ToMove.Opposite()) {
		return errors.Wrapf(errors.ErrInvalidFEN, "%s is in check but not to move", board.ToMove.Opposite())
	}
	return nil
}
