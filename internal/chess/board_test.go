package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/chessbot-go/internal/errors"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber)
		}
		if b.EnPassant {
			t.Error("EnPassant = true; want false")
		}
		if b.HalfmoveClock != 0 {
			t.Errorf("HalfmoveClock = %d; want 0", b.HalfmoveClock)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for sq := Square(0); sq < NumSquares; sq++ {
			if got := b.Get(sq); got != Empty {
				t.Errorf("Get(%v) = %v; want Empty", sq, got)
			}
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	tests := []struct {
		name   string
		square string
		piece  Piece
	}{
		// White back rank
		{"white rook a1", "a1", W(Rook)},
		{"white knight b1", "b1", W(Knight)},
		{"white bishop c1", "c1", W(Bishop)},
		{"white queen d1", "d1", W(Queen)},
		{"white king e1", "e1", W(King)},
		{"white bishop f1", "f1", W(Bishop)},
		{"white knight g1", "g1", W(Knight)},
		{"white rook h1", "h1", W(Rook)},
		// Pawns
		{"white pawn a2", "a2", W(Pawn)},
		{"white pawn e2", "e2", W(Pawn)},
		{"black pawn e7", "e7", B(Pawn)},
		{"black pawn h7", "h7", B(Pawn)},
		// Black back rank
		{"black rook a8", "a8", B(Rook)},
		{"black queen d8", "d8", B(Queen)},
		{"black king e8", "e8", B(King)},
		{"black knight g8", "g8", B(Knight)},
		// Empty squares
		{"empty e3", "e3", Empty},
		{"empty d4", "d4", Empty},
		{"empty c6", "c6", Empty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, err := ParseSquare(tt.square)
			if err != nil {
				t.Fatalf("ParseSquare(%q) error: %v", tt.square, err)
			}
			if got := b.Get(sq); got != tt.piece {
				t.Errorf("Get(%s) = %v; want %v", tt.square, got, tt.piece)
			}
		})
	}

	t.Run("king positions", func(t *testing.T) {
		if b.WKing != E1 {
			t.Errorf("WKing = %v; want e1", b.WKing)
		}
		if b.BKing != E8 {
			t.Errorf("BKing = %v; want e8", b.BKing)
		}
	})

	t.Run("castling rights", func(t *testing.T) {
		want := CastlingRights{true, true, true, true}
		if b.Castling != want {
			t.Errorf("Castling = %+v; want %+v", b.Castling, want)
		}
	})

	t.Run("material", func(t *testing.T) {
		// 8 pawns + 2N + 2B + 2R + Q
		if got := b.Material(White); got != 39 {
			t.Errorf("Material(White) = %d; want 39", got)
		}
		if got := len(b.Pieces(Black)); got != 16 {
			t.Errorf("len(Pieces(Black)) = %d; want 16", got)
		}
	})
}

func TestBoardCopy(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	cp := b.Copy()
	if *cp != *b {
		t.Fatal("Copy() differs from original")
	}

	cp.Clear(Sq(4, 1))
	cp.Castling.RevokeAll(White)
	if b.Get(Sq(4, 1)) != W(Pawn) {
		t.Error("modifying copy changed original squares")
	}
	if !b.Castling.WhiteKingside {
		t.Error("modifying copy changed original castling rights")
	}
}

func TestSetTracksKing(t *testing.T) {
	b := NewBoard()
	b.Set(Sq(6, 0), W(King))
	b.Set(Sq(0, 7), B(King))
	if b.KingSquare(White) != G1 {
		t.Errorf("KingSquare(White) = %v; want g1", b.KingSquare(White))
	}
	if b.KingSquare(Black) != A8 {
		t.Errorf("KingSquare(Black) = %v; want a8", b.KingSquare(Black))
	}
}

func TestCastlingRights(t *testing.T) {
	tests := []struct {
		name   string
		corner Square
		want   CastlingRights
	}{
		{"h1 rook", H1, CastlingRights{false, true, true, true}},
		{"a1 rook", A1, CastlingRights{true, false, true, true}},
		{"h8 rook", H8, CastlingRights{true, true, false, true}},
		{"a8 rook", A8, CastlingRights{true, true, true, false}},
		{"not a corner", Sq(4, 4), CastlingRights{true, true, true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CastlingRights{true, true, true, true}
			c.RevokeCorner(tt.corner)
			if c != tt.want {
				t.Errorf("RevokeCorner(%v) = %+v; want %+v", tt.corner, c, tt.want)
			}
		})
	}

	t.Run("revoke all", func(t *testing.T) {
		c := CastlingRights{true, true, true, true}
		c.RevokeAll(Black)
		if c.Any(Black) {
			t.Error("Any(Black) = true after RevokeAll(Black)")
		}
		if !c.Kingside(White) || !c.Queenside(White) {
			t.Error("RevokeAll(Black) touched White's rights")
		}
	})
}

func TestSquare(t *testing.T) {
	tests := []struct {
		name string
		file int
		rank int
		want string
	}{
		{"a1", 0, 0, "a1"},
		{"h1", 7, 0, "h1"},
		{"e4", 4, 3, "e4"},
		{"h8", 7, 7, "h8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, err := NewSquare(tt.file, tt.rank)
			if err != nil {
				t.Fatalf("NewSquare(%d, %d) error: %v", tt.file, tt.rank, err)
			}
			if sq.String() != tt.want {
				t.Errorf("String() = %q; want %q", sq.String(), tt.want)
			}
			if sq.File() != tt.file || sq.Rank() != tt.rank {
				t.Errorf("File/Rank = %d/%d; want %d/%d", sq.File(), sq.Rank(), tt.file, tt.rank)
			}
			parsed, err := ParseSquare(tt.want)
			if err != nil || parsed != sq {
				t.Errorf("ParseSquare(%q) = %v, %v; want %v", tt.want, parsed, err, sq)
			}
		})
	}

	t.Run("off board rejected", func(t *testing.T) {
		for _, fr := range [][2]int{{-1, 0}, {8, 0}, {0, 8}, {3, -2}} {
			if _, err := NewSquare(fr[0], fr[1]); !errors.Is(err, chesserrors.ErrInvalidSquare) {
				t.Errorf("NewSquare(%d, %d) error = %v; want ErrInvalidSquare", fr[0], fr[1], err)
			}
		}
		for _, name := range []string{"", "i1", "a9", "a0", "e44"} {
			if _, err := ParseSquare(name); !errors.Is(err, chesserrors.ErrInvalidSquare) {
				t.Errorf("ParseSquare(%q) error = %v; want ErrInvalidSquare", name, err)
			}
		}
	})

	t.Run("offset", func(t *testing.T) {
		if _, ok := H1.Offset(1, 0); ok {
			t.Error("h1 + (1,0) should be off board")
		}
		if got, ok := E1.Offset(-1, 2); !ok || got.String() != "d3" {
			t.Errorf("e1 + (-1,2) = %v, %v; want d3, true", got, ok)
		}
	})

	t.Run("light squares", func(t *testing.T) {
		if A1.IsLight() {
			t.Error("a1 should be dark")
		}
		if !H1.IsLight() {
			t.Error("h1 should be light")
		}
	})
}

func TestMoveString(t *testing.T) {
	tests := []struct {
		name string
		move Move
		want string
	}{
		{"quiet", Move{From: Sq(4, 1), To: Sq(4, 3)}, "e2e4"},
		{"promotion", Move{From: Sq(4, 6), To: Sq(4, 7), Promotion: Queen}, "e7e8q"},
		{"underpromotion", Move{From: Sq(0, 1), To: Sq(1, 0), Promotion: Knight}, "a2b1n"},
		{"castle", Move{From: E1, To: G1, IsCastle: true}, "e1g1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move.String(); got != tt.want {
				t.Errorf("String() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestPieceHelpers(t *testing.T) {
	if W(Knight).Letter() != 'N' || B(Knight).Letter() != 'n' {
		t.Error("piece letters should be uppercase for White, lowercase for Black")
	}
	if Empty.Letter() != '.' {
		t.Errorf("Empty.Letter() = %c; want .", Empty.Letter())
	}
	if !B(Queen).Is(Black, Queen) || B(Queen).Is(White, Queen) {
		t.Error("Is() mismatch")
	}
	values := map[PieceKind]int{Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 0}
	for kind, want := range values {
		if got := kind.Value(); got != want {
			t.Errorf("%v.Value() = %d; want %d", kind, got, want)
		}
	}
	for _, c := range []byte("pnbrqkPNBRQK") {
		if KindFromLetter(c) == NoKind {
			t.Errorf("KindFromLetter(%c) = NoKind", c)
		}
	}
	if KindFromLetter('x') != NoKind {
		t.Error("KindFromLetter('x') should be NoKind")
	}
}

func TestBoardString(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	want := "8 r n b q k b n r\n" +
		"7 p p p p p p p p\n" +
		"6 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"2 P P P P P P P P\n" +
		"1 R N B Q K B N R\n" +
		"  a b c d e f g h\n"
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}
