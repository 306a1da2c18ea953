package env

import (
	"errors"
	"math/rand"

	"github.com/utttsim/uttt/game"
)

// ErrNoLegalMoves is returned by policies and agents when the board has
// no playable position left.
var ErrNoLegalMoves = errors.New("no legal moves available")

// Policy picks a move for the side to play on the given board.
type Policy func(b *game.Board, rng *rand.Rand) (game.Position, error)

// RandomPolicy picks uniformly among the legal moves.
func RandomPolicy(b *game.Board, rng *rand.Rand) (game.Position, error) {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return game.Position{}, ErrNoLegalMoves
	}
	return moves[rng.Intn(len(moves))], nil
}
