// Package record renders finished games as PGN.
//
// Moves are replayed through github.com/corentings/chess/v2, which supplies
// the SAN encoding and the PGN writer. A move the library rejects means the
// two rule implementations disagree, and is reported as an error rather
// than silently dropped.
package record

import (
	"fmt"
	"strings"

	cchess "github.com/corentings/chess/v2"

	"github.com/lgbarn/chessbot-go/internal/chess"
	"github.com/lgbarn/chessbot-go/internal/engine"
	"github.com/lgbarn/chessbot-go/internal/errors"
)

// Tags holds PGN tag pairs. The Seven Tag Roster is written first by the
// PGN writer; Result is always taken from the game state.
type Tags map[string]string

// DefaultTags returns the roster tags with placeholder values.
func DefaultTags(white, black string) Tags {
	return Tags{
		"Event": "chessbot game",
		"Site":  "?",
		"Date":  "????.??.??",
		"Round": "-",
		"White": white,
		"Black": black,
	}
}

// PGN renders the game that started at startFEN and consisted of moves.
// An empty startFEN means the standard initial position.
func PGN(startFEN string, moves []chess.Move, state engine.GameState, tags Tags) (string, error) {
	if startFEN == "" {
		startFEN = engine.InitialFEN
	}
	opt, err := cchess.FEN(startFEN)
	if err != nil {
		return "", errors.Wrapf(errors.ErrInvalidFEN, "%q: %v", startFEN, err)
	}
	game := cchess.NewGame(opt)

	for k, v := range tags {
		game.AddTagPair(k, v)
	}
	if startFEN != engine.InitialFEN {
		game.AddTagPair("SetUp", "1")
		game.AddTagPair("FEN", startFEN)
	}
	result := state.Result()
	game.AddTagPair("Result", result)

	for i, m := range moves {
		if err := push(game, m); err != nil {
			return "", &errors.GameError{Err: err, Ply: i + 1, MoveText: m.String()}
		}
	}

	if err := settleDraw(game, state); err != nil {
		return "", err
	}
	return withResult(game.String(), game.Outcome(), result), nil
}

// FromGame renders an engine game with its current state.
func FromGame(g *engine.Game, tags Tags) (string, error) {
	return PGN(g.StartFEN(), g.Moves(), g.State(), tags)
}

func push(game *cchess.Game, m chess.Move) error {
	pos := game.Position()
	decoded, err := cchess.UCINotation{}.Decode(pos, m.String())
	if err != nil {
		return errors.Wrap(errors.ErrIllegalMove, err.Error())
	}
	san := cchess.AlgebraicNotation{}.Encode(pos, decoded)
	if err := game.PushMove(san, &cchess.PushMoveOptions{ForceMainline: true}); err != nil {
		return errors.Wrapf(errors.ErrIllegalMove, "%s: %v", san, err)
	}
	return nil
}

// settleDraw claims the draws the library does not declare on its own.
// It fails when the library does not agree the claim is valid.
func settleDraw(game *cchess.Game, state engine.GameState) error {
	if game.Outcome() != cchess.NoOutcome || state.Status != engine.Draw {
		return nil
	}
	var method cchess.Method
	switch state.Reason {
	case engine.ThreefoldRepetition:
		method = cchess.ThreefoldRepetition
	case engine.FiftyMoveRule:
		method = cchess.FiftyMoveRule
	default:
		return nil
	}
	if err := game.Draw(method); err != nil {
		return errors.Wrapf(err, "claiming %s", state.Reason)
	}
	return nil
}

// withResult makes the movetext terminator agree with the Result tag when
// the library reached a different (usually no) outcome.
func withResult(pgn string, outcome cchess.Outcome, result string) string {
	if outcome.String() == result {
		return pgn
	}
	trimmed := strings.TrimSuffix(pgn, outcome.String())
	return fmt.Sprintf("%s%s", trimmed, result)
}
