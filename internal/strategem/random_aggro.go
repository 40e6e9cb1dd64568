package strategem

import (
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
)

// RandomAggro always takes the most valuable piece it can capture and
// otherwise plays a random move.
type RandomAggro struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomAggro creates a RandomAggro strategem.
func NewRandomAggro(opts ...Option) *RandomAggro {
	o := buildOptions(opts)
	return &RandomAggro{
		rng:    newRand(o.seed),
		logger: o.logger,
	}
}

// Name returns "RandomAggro".
func (r *RandomAggro) Name() string {
	return "RandomAggro"
}

// Decide picks the capture of highest material value, breaking ties at
// random. Without captures any legal move may be chosen.
func (r *RandomAggro) Decide(board *chess.Board, legal []chess.Move) chess.Move {
	best := 0
	var captures []chess.Move
	for _, m := range legal {
		kind := engine.CapturedKind(board, m)
		if kind == chess.NoKind {
			continue
		}
		switch v := kind.Value(); {
		case v > best:
			best = v
			captures = append(captures[:0], m)
		case v == best:
			captures = append(captures, m)
		}
	}

	if len(captures) > 0 {
		m := pickRandom(r.rng, captures)
		r.logger.Debug("capture", "move", m, "value", best, "choices", len(captures))
		return m
	}

	m := pickRandom(r.rng, legal)
	r.logger.Debug("random move", "move", m, "choices", len(legal))
	return m
}
