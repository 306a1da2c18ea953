package env

import (
	"fmt"

	"github.com/utttsim/uttt/game"
)

// OpponentEnv pits the caller against a built-in opponent. The caller
// always plays X and always moves first; after every caller step the
// opponent answers as O while the game continues. Rewards are from X's
// perspective regardless of who made the final move.
type OpponentEnv struct {
	env    *Env
	policy Policy
}

var _ MaskProducer = (*OpponentEnv)(nil)

// NewOpponentEnv wraps env with an opponent policy. A nil policy plays
// uniformly at random.
func NewOpponentEnv(env *Env, policy Policy) *OpponentEnv {
	if policy == nil {
		policy = RandomPolicy
	}
	return &OpponentEnv{env: env, policy: policy}
}

// Reset starts a new game with the caller, X, to move.
func (w *OpponentEnv) Reset() Observation {
	w.env.board.Reset(game.MarkX)
	return w.env.Observation()
}

// Step plays the caller's move and, while the game continues, one
// opponent reply. The reward is +1 when X has won, -1 when O has won,
// and 0 otherwise.
func (w *OpponentEnv) Step(action int) (StepResult, error) {
	res, err := w.env.Step(action)
	if err != nil {
		return StepResult{}, err
	}
	if res.Done {
		res.Reward = rewardFor(w.env.board, game.MarkX)
		return res, nil
	}

	pos, err := w.policy(w.env.board, w.env.rng)
	if err != nil {
		return StepResult{}, fmt.Errorf("opponent policy: %w", err)
	}
	res, err = w.env.Step(pos.Index())
	if err != nil {
		return StepResult{}, fmt.Errorf("opponent move %v: %w", pos, err)
	}
	res.Reward = rewardFor(w.env.board, game.MarkX)
	return res, nil
}

// Mask implements [MaskProducer].
func (w *OpponentEnv) Mask() ActionMask {
	return w.env.Mask()
}

// Board exposes the underlying board.
func (w *OpponentEnv) Board() *game.Board {
	return w.env.Board()
}
