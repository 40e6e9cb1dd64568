package strategem

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/hashing"
)

type phase int

const (
	openingPhase phase = iota
	mainPhase
)

// ColeMiner plays a short opening book, then looks for mates, draws when
// behind, safe captures and king safety, in that order. What is left is
// ranked by preference with a little seeded noise.
type ColeMiner struct {
	rng    *rand.Rand
	logger *log.Logger

	phase   phase
	played  []chess.Move
	visited *hashing.RepetitionTable
}

// NewColeMiner creates a ColeMiner strategem for a game starting from the
// initial position.
func NewColeMiner(opts ...Option) *ColeMiner {
	o := buildOptions(opts)
	c := &ColeMiner{
		rng:     newRand(o.seed),
		logger:  o.logger,
		visited: hashing.NewRepetitionTable(),
	}
	c.Reset(engine.NewInitialBoard())
	return c
}

// Name returns "ColeMiner".
func (c *ColeMiner) Name() string {
	return "ColeMiner"
}

// Observe records a move and the position it produced.
func (c *ColeMiner) Observe(board *chess.Board, move chess.Move) {
	c.played = append(c.played, move)
	c.visited.Add(hashing.GenerateZobristHash(board))
}

// Reset forgets the game so far and starts tracking from board.
// The opening book is only used from the standard initial position.
func (c *ColeMiner) Reset(board *chess.Board) {
	c.played = c.played[:0]
	c.visited.Reset()
	c.visited.Add(hashing.GenerateZobristHash(board))
	c.phase = mainPhase
	if engine.BoardToFEN(board) == engine.InitialFEN {
		c.phase = openingPhase
	}
}

// Decide chooses a move.
func (c *ColeMiner) Decide(board *chess.Board, legal []chess.Move) chess.Move {
	for _, m := range legal {
		next := board.Copy()
		engine.MakeMove(next, m)
		if engine.IsCheckmate(next) {
			c.logger.Debug("mate in one", "move", m)
			return m
		}
	}

	if c.phase == openingPhase {
		if m, ok := c.bookMove(board, legal); ok {
			return m
		}
		c.phase = mainPhase
		c.logger.Debug("leaving opening book", "ply", len(c.played))
	}

	rest, draws := c.splitDraws(board, legal)
	balance := board.Material(board.ToMove) - board.Material(board.ToMove.Opposite())
	if balance < 0 && len(draws) > 0 {
		m := c.pickPreferred(board, draws)
		c.logger.Debug("taking the draw", "move", m, "material", balance)
		return m
	}
	candidates := legal
	if balance > 0 && len(rest) > 0 {
		candidates = rest
	}

	candidates = c.withoutRepetitions(board, candidates)

	if m, ok := c.bestCapture(board, candidates); ok {
		return m
	}

	candidates = c.safestForKing(board, candidates)
	candidates = withoutHangingPieces(board, candidates)
	m := c.pickPreferred(board, candidates)
	c.logger.Debug("quiet move", "move", m, "choices", len(candidates))
	return m
}

// splitDraws separates the moves that end the game in a draw, by stalemate
// or by any draw rule, from the rest.
func (c *ColeMiner) splitDraws(board *chess.Board, moves []chess.Move) (rest, draws []chess.Move) {
	for _, m := range moves {
		next := board.Copy()
		engine.MakeMove(next, m)
		seen := c.visited.Count(hashing.GenerateZobristHash(next)) + 1
		switch engine.Evaluate(next, seen).Status {
		case engine.Stalemate, engine.Draw:
			draws = append(draws, m)
		default:
			rest = append(rest, m)
		}
	}
	return rest, draws
}

// pickPreferred returns the move with the highest preference plus noise.
func (c *ColeMiner) pickPreferred(board *chess.Board, moves []chess.Move) chess.Move {
	best, bestScore := moves[0], math.Inf(-1)
	for _, m := range moves {
		if score := c.preference(board, m) + c.rng.Float64(); score > bestScore {
			best, bestScore = m, score
		}
	}
	return best
}

// preference scores a move by its shape. Checks, rescuing a threatened
// piece, castling and promotion score well. Moving the king or a castling
// rook while castling is still possible scores badly, as does moving the
// piece we moved last turn. Pawns are pushed on and pieces drift towards
// the enemy king.
func (c *ColeMiner) preference(board *chess.Board, m chess.Move) float64 {
	mover := board.ToMove
	piece := board.Get(m.From)
	next := board.Copy()
	engine.MakeMove(next, m)

	score := 0.0
	if engine.IsInCheck(next, mover.Opposite()) {
		score += 35
	}
	if hangs(board, m.From, mover) {
		score += 150
	}
	switch {
	case m.IsCastle:
		score += 20
	case m.IsPromotion():
		score += 7.5
	case piece.Kind == chess.Pawn && m.To.Rank()-m.From.Rank() == 2*chess.ColourOffset(mover):
		score += 0.25
	}
	score += pieceBias(board, m.From)

	if n := len(c.played); n >= 2 && c.played[n-2].To == m.From {
		score -= 20
	}
	if piece.Kind == chess.Pawn {
		score += 4.25 * float64((m.To.Rank()-m.From.Rank())*chess.ColourOffset(mover))
	}
	enemyKing := board.KingSquare(mover.Opposite())
	score += 5 * float64(distance(m.From, enemyKing)-distance(m.To, enemyKing))
	return score
}

// pieceBias is the standing preference for moving the piece on from.
func pieceBias(board *chess.Board, from chess.Square) float64 {
	piece := board.Get(from)
	switch piece.Kind {
	case chess.Pawn:
		return 0.025
	case chess.Knight:
		return 0.4
	case chess.Bishop:
		return 0.25
	case chess.Queen:
		return 0.3
	case chess.Rook:
		rights := board.Castling
		rights.RevokeCorner(from)
		if rights != board.Castling {
			return -5
		}
		return 0.2
	case chess.King:
		if board.Castling.Any(piece.Colour) {
			return -10
		}
		return -0.75
	}
	return 0
}

// distance is the straight-line distance between two squares, rounded down.
func distance(a, b chess.Square) int {
	df, dr := a.File()-b.File(), a.Rank()-b.Rank()
	return int(math.Sqrt(float64(df*df + dr*dr)))
}

// bookMove plays from the opening book while the observed history is in
// step with the board.
func (c *ColeMiner) bookMove(board *chess.Board, legal []chess.Move) (chess.Move, bool) {
	ply := int(board.MoveNumber-1) * 2
	if board.ToMove == chess.Black {
		ply++
	}
	if ply != len(c.played) {
		return chess.Move{}, false
	}
	m, line, ok := lookup(bookFor(board.ToMove), c.played, legal)
	if ok {
		c.logger.Debug("book move", "move", m, "line", line)
	}
	return m, ok
}

// withoutRepetitions drops moves into positions already visited twice,
// unless that would leave nothing.
func (c *ColeMiner) withoutRepetitions(board *chess.Board, moves []chess.Move) []chess.Move {
	var kept []chess.Move
	for _, m := range moves {
		next := board.Copy()
		engine.MakeMove(next, m)
		if c.visited.Count(hashing.GenerateZobristHash(next)) >= 2 {
			continue
		}
		kept = append(kept, m)
	}
	if len(kept) == 0 {
		return moves
	}
	return kept
}

// bestCapture returns the highest value capture that either wins material
// outright or lands on a square no cheaper enemy piece defends.
func (c *ColeMiner) bestCapture(board *chess.Board, moves []chess.Move) (chess.Move, bool) {
	opponent := board.ToMove.Opposite()
	best := 0
	var choices []chess.Move
	for _, m := range moves {
		captured := engine.CapturedKind(board, m)
		if captured == chess.NoKind {
			continue
		}
		next := board.Copy()
		engine.MakeMove(next, m)
		moverValue := next.Get(m.To).Kind.Value()
		if captured.Value() <= moverValue && defendedByCheaper(next, m.To, opponent, moverValue) {
			continue
		}
		switch v := captured.Value(); {
		case v > best:
			best = v
			choices = append(choices[:0], m)
		case v == best:
			choices = append(choices, m)
		}
	}
	if len(choices) == 0 {
		return chess.Move{}, false
	}
	m := pickRandom(c.rng, choices)
	c.logger.Debug("good capture", "move", m, "value", best, "choices", len(choices))
	return m, true
}

// defendedByCheaper reports whether a piece of colour by, worth no more than
// value, attacks sq.
func defendedByCheaper(board *chess.Board, sq chess.Square, by chess.Colour, value int) bool {
	for _, from := range engine.Attackers(board, sq, by) {
		if board.Get(from).Kind.Value() <= value {
			return true
		}
	}
	return false
}

// kingZonePressure counts the enemy's pseudo-legal moves that land next to
// colour's king. Squares held by enemy pieces are never counted, pawn pushes
// do not attack, and the four promotions of one pawn move count once.
func kingZonePressure(board *chess.Board, colour chess.Colour) int {
	king := board.KingSquare(colour)
	enemy := board.Copy()
	enemy.ToMove = colour.Opposite()
	enemy.EnPassant = false

	pressure := 0
	for _, m := range engine.GeneratePseudoLegalMoves(enemy) {
		if m.IsPromotion() && m.Promotion != chess.Queen {
			continue
		}
		if enemy.Get(m.From).Kind == chess.Pawn && m.From.File() == m.To.File() {
			continue
		}
		df, dr := m.To.File()-king.File(), m.To.Rank()-king.Rank()
		if m.To != king && df >= -1 && df <= 1 && dr >= -1 && dr <= 1 {
			pressure++
		}
	}
	return pressure
}

// safestForKing keeps the moves that reduce king-zone pressure the most.
// When no move reduces it, moves that keep it level are preferred over
// moves that raise it.
func (c *ColeMiner) safestForKing(board *chess.Board, moves []chess.Move) []chess.Move {
	mover := board.ToMove
	before := kingZonePressure(board, mover)

	deltas := make([]int, len(moves))
	bestDelta := 0
	for i, m := range moves {
		next := board.Copy()
		engine.MakeMove(next, m)
		deltas[i] = kingZonePressure(next, mover) - before
		if deltas[i] < bestDelta {
			bestDelta = deltas[i]
		}
	}

	var kept []chess.Move
	for i, m := range moves {
		if deltas[i] <= bestDelta {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return moves
	}
	if bestDelta < 0 {
		c.logger.Debug("king safety", "reduction", -bestDelta, "choices", len(kept))
	}
	return kept
}

// withoutHangingPieces drops moves that leave the moved piece en prise,
// unless every move does.
func withoutHangingPieces(board *chess.Board, moves []chess.Move) []chess.Move {
	mover := board.ToMove
	var kept []chess.Move
	for _, m := range moves {
		next := board.Copy()
		engine.MakeMove(next, m)
		if !hangs(next, m.To, mover) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return moves
	}
	return kept
}

// hangs reports whether the piece of owner on sq is attacked and either
// undefended or attacked by something cheaper.
func hangs(board *chess.Board, sq chess.Square, owner chess.Colour) bool {
	piece := board.Get(sq)
	if piece.Kind == chess.King {
		return false
	}
	threats := engine.Attackers(board, sq, owner.Opposite())
	if len(threats) == 0 {
		return false
	}
	if len(engine.Attackers(board, sq, owner)) == 0 {
		return true
	}
	for _, from := range threats {
		if board.Get(from).Kind.Value() < piece.Kind.Value() {
			return true
		}
	}
	return false
}
