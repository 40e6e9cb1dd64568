package strategem

import (
	"testing"

	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/testutil"
)

func TestRandomAggro_PrefersValuableCapture(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string
	}{
		{"queen over pawn", "4k3/8/8/3q4/8/8/3R3p/4K3 w - - 0 1", "d2d5"},
		{"rook over knight", "4k3/8/8/2n1r3/3P4/8/8/7K w - - 0 1", "d4e5"},
		{"en passant is a capture", "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1", "e5d6"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := testutil.MustBoard(t, tt.fen)
			legal := engine.GenerateLegalMoves(board)
			for seed := uint64(0); seed < 20; seed++ {
				got := NewRandomAggro(WithSeed(seed)).Decide(board, legal)
				if got.String() != tt.want {
					t.Errorf("seed %d: Decide() = %v; want %s", seed, got, tt.want)
				}
			}
		})
	}
}

func TestRandomAggro_TiesAreBrokenAmongEqualCaptures(t *testing.T) {
	// Both rooks can take a knight.
	board := testutil.MustBoard(t, "4k3/8/8/n6n/8/8/8/R3K2R w - - 0 1")
	legal := engine.GenerateLegalMoves(board)
	seen := map[string]bool{}
	r := NewRandomAggro(WithSeed(3))
	for i := 0; i < 200; i++ {
		seen[r.Decide(board, legal).String()] = true
	}
	testutil.AssertEqual(t, seen, map[string]bool{"a1a5": true, "h1h5": true})
}

func TestRandomAggro_QuietDistribution(t *testing.T) {
	board := engine.NewInitialBoard()
	legal := engine.GenerateLegalMoves(board)

	decide := func(seed uint64, n int) []string {
		r := NewRandomAggro(WithSeed(seed))
		out := make([]string, n)
		for i := range out {
			out[i] = r.Decide(board, legal).String()
		}
		return out
	}

	first := decide(99, 500)
	testutil.AssertEqual(t, decide(99, 500), first, "same seed must give the same sequence")

	counts := map[string]int{}
	for _, m := range first {
		counts[m]++
	}
	for _, m := range legal {
		if counts[m.String()] == 0 {
			t.Errorf("move %v never chosen in %d decisions", m, len(first))
		}
	}
}
