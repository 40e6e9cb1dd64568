package engine

import (
	"strings"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/errors"
)

// ParseMove matches coordinate move text against the legal moves of board.
//
// Accepted forms, case-insensitive and ignoring surrounding spaces:
//
//	e2e4  e2-e4  e2xe4  e2->e4  e7e8q  e7e8=q  e7-e8=Q  O-O  0-0-0
//
// A pawn reaching the last rank without a promotion letter promotes to a
// queen. Text that is malformed or names no legal move fails with an error
// wrapping ErrUnrecognizedMove.
func ParseMove(board *chess.Board, text string) (chess.Move, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	unrecognized := func(expected, got string) error {
		return &errors.ParseError{
			Err:      errors.ErrUnrecognizedMove,
			Input:    text,
			Expected: expected,
			Got:      got,
		}
	}

	if kingside, ok := castleText(s); ok {
		geo := castlingGeometry(board.ToMove, kingside)
		move, found := ResolveMove(board, chess.Move{From: geo.kingFrom, To: geo.kingTo})
		if !found || !move.IsCastle {
			return chess.Move{}, unrecognized("a legal move", "castling not available")
		}
		return move, nil
	}

	if len(s) < 4 {
		return chess.Move{}, unrecognized("<from><to>[promotion]", quoteOrEmpty(s))
	}
	from, err := chess.ParseSquare(s[:2])
	if err != nil {
		return chess.Move{}, unrecognized("origin square", s[:2])
	}

	rest := s[2:]
	for _, sep := range []string{"->", "-", "x"} {
		if strings.HasPrefix(rest, sep) {
			rest = rest[len(sep):]
			break
		}
	}
	if len(rest) < 2 {
		return chess.Move{}, unrecognized("destination square", quoteOrEmpty(rest))
	}
	to, err := chess.ParseSquare(rest[:2])
	if err != nil {
		return chess.Move{}, unrecognized("destination square", rest[:2])
	}

	rest = strings.TrimPrefix(rest[2:], "=")
	promo := chess.NoKind
	if rest != "" {
		if len(rest) != 1 || !strings.Contains("qrbn", rest) {
			return chess.Move{}, unrecognized("promotion q, r, b or n", rest)
		}
		promo = chess.KindFromLetter(rest[0])
	}

	move, found := ResolveMove(board, chess.Move{From: from, To: to, Promotion: promo})
	if !found {
		return chess.Move{}, unrecognized("a legal move", s)
	}
	return move, nil
}

// castleText recognises O-O and O-O-O written with letters or zeros.
func castleText(s string) (kingside bool, ok bool) {
	switch s {
	case "o-o", "0-0":
		return true, true
	case "o-o-o", "0-0-0":
		return false, true
	}
	return false, false
}

func quoteOrEmpty(s string) string {
	if s == "" {
		return "end of input"
	}
	return s
}

// FormatMove renders a move in canonical coordinate notation, e.g. "e7e8q".
func FormatMove(move chess.Move) string {
	return move.String()
}
