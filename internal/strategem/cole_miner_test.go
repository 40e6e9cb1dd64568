package strategem

import (
	"math"
	"testing"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/testutil"
)

func TestColeMiner_PlaysMateInOne(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		// Rxa1 wins a queen, but Rd8 is mate.
		{"back rank over queen capture", "6k1/5ppp/8/8/8/8/7K/q2R4 w - - 0 1", "d1d8"},
		{"scholar's mate", "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4", "h5f7"},
		{"black mates too", "4r1k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "e8e1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			legal := engine.GenerateLegalMoves(board)
			for seed := uint64(0); seed < 10; seed++ {
				got := NewColeMiner(WithSeed(seed)).Decide(board, legal)
				if got.String() != tt.want {
					t.Errorf("seed %d: Decide() = %v; want %s", seed, got, tt.want)
				}
			}
		})
	}
}

func TestColeMiner_Captures(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		want    string
		wantNot string
	}{
		{name: "undefended knight", fen: "4k3/8/8/3n4/8/8/8/3RK3 w - - 0 1", want: "d1d5"},
		{name: "queen defended by pawn is still worth a rook", fen: "4k3/8/2p5/3q4/8/8/8/3RK3 w - - 0 1", want: "d1d5"},
		{name: "pawn defended by pawn is left alone", fen: "4k3/8/2p5/3p4/8/8/8/3RK3 w - - 0 1", wantNot: "d1d5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			legal := engine.GenerateLegalMoves(board)
			for seed := uint64(0); seed < 10; seed++ {
				c := NewColeMiner(WithSeed(seed))
				c.Reset(board)
				got := c.Decide(board, legal).String()
				if tt.want != "" && got != tt.want {
					t.Errorf("seed %d: Decide() = %s; want %s", seed, got, tt.want)
				}
				if tt.wantNot != "" && got == tt.wantNot {
					t.Errorf("seed %d: Decide() = %s; should avoid it", seed, got)
				}
			}
		})
	}
}

func TestColeMiner_KingSafety(t *testing.T) {
	// Black is in check from c4. Kg7 walks into more pressure, Kf8 into less.
	board := testutil.MustBoard(t, "6k1/8/8/8/2B5/8/8/4K2R b - - 0 1")
	legal := engine.GenerateLegalMoves(board)
	before := kingZonePressure(board, chess.Black)

	c := NewColeMiner(WithSeed(1))
	c.Reset(board)
	for i := 0; i < 20; i++ {
		m := c.Decide(board, legal)
		next := board.Copy()
		engine.MakeMove(next, m)
		if after := kingZonePressure(next, chess.Black); after >= before {
			t.Errorf("Decide() = %v; king-zone pressure %d -> %d, want a reduction", m, before, after)
		}
	}
}

func TestColeMiner_OpeningBook(t *testing.T) {
	tests := []struct {
		name   string
		played []string
		want   string
	}{
		{"white first move", nil, "e2e4"},
		{"white follows main line", []string{"e2e4", "e7e5"}, "c2c3"},
		{"white wildcard line", []string{"e2e4", "a7a6"}, "d1e2"},
		{"black answers e4", []string{"e2e4"}, "e7e6"},
		{"black answers c4", []string{"c2c4"}, "e7e5"},
		{"black answers anything", []string{"g1f3"}, "d7d5"},
		{"black after wildcard", []string{"d2d4", "d7d5", "c2c4"}, "e7e6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewColeMiner(WithSeed(5))
			g := engine.NewGame()
			for _, text := range tt.played {
				m, err := g.Apply(testutil.MustMove(t, g.Board(), text))
				testutil.AssertNoError(t, err)
				c.Observe(g.Board(), m)
			}
			got := c.Decide(g.Board(), g.LegalMoves())
			testutil.AssertEqual(t, got.String(), tt.want)
			testutil.AssertEqual(t, c.phase, openingPhase)
		})
	}
}

func TestColeMiner_LeavesBookForGood(t *testing.T) {
	c := NewColeMiner(WithSeed(5))
	g := engine.NewGame()
	for _, text := range []string{"e2e4", "e7e5", "c2c3", "b8c6", "d2d4", "g8f6"} {
		m, err := g.Apply(testutil.MustMove(t, g.Board(), text))
		testutil.AssertNoError(t, err)
		c.Observe(g.Board(), m)
	}
	c.Decide(g.Board(), g.LegalMoves())
	testutil.AssertEqual(t, c.phase, mainPhase)
}

func TestColeMiner_NoBookAfterResetToCustomPosition(t *testing.T) {
	c := NewColeMiner()
	c.Reset(testutil.MustBoard(t, "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1"))
	testutil.AssertEqual(t, c.phase, mainPhase)

	c.Reset(engine.NewInitialBoard())
	testutil.AssertEqual(t, c.phase, openingPhase)
}

func TestColeMiner_AvoidsThirdRepetition(t *testing.T) {
	c := NewColeMiner()
	g := engine.NewGame()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	var line []string
	line = append(line, shuffle...)
	line = append(line, shuffle...)
	line = append(line, "g1f3", "g8f6")
	for _, text := range line {
		m, err := g.Apply(testutil.MustMove(t, g.Board(), text))
		testutil.AssertNoError(t, err)
		c.Observe(g.Board(), m)
	}

	legal := g.LegalMoves()
	kept := c.withoutRepetitions(g.Board(), legal)
	for _, m := range kept {
		if m.String() == "f3g1" {
			t.Error("f3g1 returns to a position seen twice and should be dropped")
		}
	}
	testutil.AssertEqual(t, len(kept), len(legal)-1)
}

func TestParseBookLine(t *testing.T) {
	line, err := parseBookLine("e2->e4,any,g1->f3")
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(line.steps), 3)
	testutil.AssertTrue(t, line.steps[1].wildcard)
	testutil.AssertEqual(t, line.steps[2].from.String(), "g1")

	for _, bad := range []string{"e2e4", "e2->z9", "x->e4"} {
		if _, err := parseBookLine(bad); err == nil {
			t.Errorf("parseBookLine(%q) succeeded; want error", bad)
		}
	}
}

func TestHangs(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		sq   string
		want bool
	}{
		{"knight guarded by king", "4k3/8/8/3r4/8/8/3N4/4K3 w - - 0 1", "d2", false},
		{"attacked by cheaper piece", "4k3/8/2p5/3R4/8/8/8/4K3 w - - 0 1", "d5", true},
		{"attacked and undefended", "4k3/8/8/3r4/8/8/3R4/7K w - - 0 1", "d2", true},
		{"defended against equal attacker", "4k3/8/8/3r4/8/8/3R4/3K4 w - - 0 1", "d2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			s, err := chess.ParseSquare(tt.sq)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, hangs(board, s, chess.White), tt.want)
		})
	}
}

func TestColeMiner_Draws(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		wantStalemate bool
	}{
		// Rxa1 wins the knight but leaves Black without a move.
		{"ahead avoids stalemating capture", "7k/5K1p/7P/8/8/P7/R7/n7 w - - 0 1", false},
		// Kf7 and Kf8 both shut the white king in.
		{"behind plays into stalemate", "7K/4k2P/8/8/8/8/8/8 b - - 0 1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			legal := engine.GenerateLegalMoves(board)
			for seed := uint64(0); seed < 10; seed++ {
				c := NewColeMiner(WithSeed(seed))
				c.Reset(board)
				m := c.Decide(board, legal)
				next := board.Copy()
				engine.MakeMove(next, m)
				if got := engine.IsStalemate(next); got != tt.wantStalemate {
					t.Errorf("seed %d: Decide() = %v, stalemate = %v; want %v", seed, m, got, tt.wantStalemate)
				}
			}
		})
	}
}

func TestColeMiner_BehindRepeatsForDraw(t *testing.T) {
	c := NewColeMiner()
	g := testutil.MustGame(t, "1k4n1/8/8/8/8/8/8/Q6K w - - 0 1")
	c.Reset(g.Board())
	for _, text := range []string{"a1a2", "g8f6", "a2a1", "f6g8", "a1a2", "g8f6", "a2a1"} {
		m, err := g.Apply(testutil.MustMove(t, g.Board(), text))
		testutil.AssertNoError(t, err)
		c.Observe(g.Board(), m)
	}
	got := c.Decide(g.Board(), g.LegalMoves())
	testutil.AssertEqual(t, got.String(), "f6g8")
}

func TestColeMiner_Preferences(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		want     string
		wantFrom string
	}{
		// Rd7+ and Rd8+ hang the rook; Re1+ is the safe check.
		{name: "check", fen: "4k3/8/8/8/8/8/8/K2R4 w - - 0 1", want: "d1e1"},
		{name: "hanging knight moves", fen: "4k3/8/8/4p3/3N4/8/8/K7 w - - 0 1", wantFrom: "d4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			legal := engine.GenerateLegalMoves(board)
			for seed := uint64(0); seed < 10; seed++ {
				c := NewColeMiner(WithSeed(seed))
				c.Reset(board)
				got := c.Decide(board, legal)
				if tt.want != "" && got.String() != tt.want {
					t.Errorf("seed %d: Decide() = %v; want %s", seed, got, tt.want)
				}
				if tt.wantFrom != "" && got.From.String() != tt.wantFrom {
					t.Errorf("seed %d: Decide() = %v; want a move from %s", seed, got, tt.wantFrom)
				}
			}
		})
	}
}

func TestColeMiner_PreferenceOrdering(t *testing.T) {
	tests := []struct {
		name          string
		fen           string
		better, worse string
	}{
		{"castle over king step", "4k3/8/8/8/8/8/6PP/4K2R w K - 0 1", "e1g1", "e1f1"},
		{"free rook over castling rook", "4k3/8/8/8/8/8/8/R3K2R w Q - 0 1", "h1h2", "a1a2"},
		{"promotion over pawn push", "4k3/P7/8/8/8/4P3/8/4K3 w - - 0 1", "a7a8q", "e3e4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			c := NewColeMiner()
			c.Reset(board)
			better := c.preference(board, testutil.MustMove(t, board, tt.better))
			worse := c.preference(board, testutil.MustMove(t, board, tt.worse))
			if better <= worse {
				t.Errorf("preference(%s) = %v, preference(%s) = %v; want the first higher",
					tt.better, better, tt.worse, worse)
			}
		})
	}
}

func TestColeMiner_PreferencePenalizesMovingLastPiece(t *testing.T) {
	c := NewColeMiner()
	g := testutil.MustGame(t, "4k3/8/8/8/8/8/8/1N2K1N1 w - - 0 1")
	c.Reset(g.Board())
	for _, text := range []string{"b1c3", "e8d8"} {
		m, err := g.Apply(testutil.MustMove(t, g.Board(), text))
		testutil.AssertNoError(t, err)
		c.Observe(g.Board(), m)
	}
	board := g.Board()
	again := c.preference(board, testutil.MustMove(t, board, "c3e4"))
	fresh := c.preference(board, testutil.MustMove(t, board, "g1e2"))
	// Both knights get one step nearer the king; only the repeat differs.
	if diff := fresh - again; math.Abs(diff-20) > 1e-9 {
		t.Errorf("preference(g1e2) - preference(c3e4) = %v; want 20", diff)
	}
}

func TestKingZonePressure(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want int
	}{
		{"rook sweeps the seventh rank", "4k3/R7/8/8/8/8/8/4K3 b - - 0 1", 3},
		{"squares held by the attacker are not counted", "3r4/8/8/8/8/8/3r4/4K2k w - - 0 1", 3},
		{"pawn push is not an attack", "k7/8/8/8/8/4p3/8/4K3 w - - 0 1", 0},
		{"pawn capture of our piece counts", "k7/8/8/8/8/3p4/4N3/4K3 w - - 0 1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			got := kingZonePressure(board, board.ToMove)
			if got != tt.want {
				t.Errorf("kingZonePressure() = %d; want %d", got, tt.want)
			}
		})
	}
}
