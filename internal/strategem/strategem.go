// Package strategem provides the pluggable move-decision policies of the bot.
//
// A Strategem is handed a read-only copy of the current position together
// with the legal moves for the side to move, and must return exactly one of
// those moves. Policies that keep their own memory of the game implement
// Observer and are told about every move played by either side.
package strategem

import (
	"io"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/errors"
)

// DefaultSeed is used when no seed option is given.
const DefaultSeed uint64 = 1

// Strategem chooses one move from a non-empty list of legal moves.
// The returned move must be a member of legal.
type Strategem interface {
	Name() string
	Decide(board *chess.Board, legal []chess.Move) chess.Move
}

// Observer is implemented by strategems that track the game.
// Observe is called after each move with the resulting position.
type Observer interface {
	Observe(board *chess.Board, move chess.Move)
}

// Resetter is implemented by strategems whose memory must be cleared when a
// game is restarted from an arbitrary position.
type Resetter interface {
	Reset(board *chess.Board)
}

type options struct {
	seed   uint64
	logger *log.Logger
}

// Option configures a Strategem.
type Option func(*options)

// WithSeed sets the seed of the strategem's random source.
// Equal seeds give identical decisions for identical games.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger sets the logger used for decision tracing.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		seed:   DefaultSeed,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type constructor func(opts ...Option) Strategem

var registry = map[string]constructor{
	"randomaggro": func(opts ...Option) Strategem { return NewRandomAggro(opts...) },
	"coleminer":   func(opts ...Option) Strategem { return NewColeMiner(opts...) },
}

// normalizeName lowercases a strategem name and drops '-', '_' and spaces.
func normalizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(name)))
}

// New creates a strategem by name. Names are case-insensitive and ignore
// '-' and '_', so "ColeMiner", "cole-miner" and "cole_miner" are equivalent.
func New(name string, opts ...Option) (Strategem, error) {
	ctor, ok := registry[normalizeName(name)]
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "unknown strategem %q (known: %s)",
			name, strings.Join(Names(), ", "))
	}
	return ctor(opts...), nil
}

// Names returns the registered strategem names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// pickRandom returns a uniformly random element of moves, which must be
// non-empty.
func pickRandom(rng *rand.Rand, moves []chess.Move) chess.Move {
	return moves[rng.IntN(len(moves))]
}
