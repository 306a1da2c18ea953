package env

import (
	"fmt"

	"github.com/utttsim/uttt/game"
)

// SelfPlayEnv drives both sides of a game from a single agent's
// perspective. The agent plays one mark and an opponent policy answers
// for the other, so each step sees exactly one agent move. Rewards are
// zero-sum from the agent's side, and observations can optionally be
// flipped so an agent playing O always sees its own marks as X.
type SelfPlayEnv struct {
	env     *Env
	agent   game.Mark
	policy  Policy
	flipObs bool
}

var _ MaskProducer = (*SelfPlayEnv)(nil)

// NewSelfPlayEnv wraps env for an agent playing the given mark. A nil
// policy plays uniformly at random.
func NewSelfPlayEnv(env *Env, agent game.Mark, policy Policy, flipObs bool) (*SelfPlayEnv, error) {
	if agent != game.MarkX && agent != game.MarkO {
		return nil, fmt.Errorf("agent mark must be X or O, got %v", agent)
	}
	if policy == nil {
		policy = RandomPolicy
	}
	return &SelfPlayEnv{
		env:     env,
		agent:   agent,
		policy:  policy,
		flipObs: flipObs,
	}, nil
}

// Reset starts a new game. When the opponent is drawn as the starting
// player it moves once before control returns, so it is always the
// agent's turn afterwards.
func (w *SelfPlayEnv) Reset() (Observation, error) {
	obs := w.env.Reset()
	if w.env.board.CurrentPlayer() != w.agent {
		pos, err := w.policy(w.env.board, w.env.rng)
		if err != nil {
			return Observation{}, fmt.Errorf("opponent policy: %w", err)
		}
		res, err := w.env.Step(pos.Index())
		if err != nil {
			return Observation{}, fmt.Errorf("opponent move %v: %w", pos, err)
		}
		obs = res.Obs
	}
	return w.flip(obs), nil
}

// Step plays the agent's move, then exactly one opponent reply while the
// game continues. The reward is the agent's own reward minus the
// opponent's, so a game the opponent's reply wins scores -1.
func (w *SelfPlayEnv) Step(action int) (StepResult, error) {
	if cur := w.env.board.CurrentPlayer(); cur != w.agent {
		return StepResult{}, fmt.Errorf("not the agent's turn: %v to play", cur)
	}

	res, err := w.env.Step(action)
	if err != nil {
		return StepResult{}, err
	}
	reward := res.Reward

	if !res.Done {
		pos, err := w.policy(w.env.board, w.env.rng)
		if err != nil {
			return StepResult{}, fmt.Errorf("opponent policy: %w", err)
		}
		opp, err := w.env.Step(pos.Index())
		if err != nil {
			return StepResult{}, fmt.Errorf("opponent move %v: %w", pos, err)
		}
		reward -= opp.Reward
		res = opp
	}

	res.Reward = reward
	res.Obs = w.flip(res.Obs)
	return res, nil
}

// flip swaps X and O in the observation grid for an O agent, so the
// agent always sees itself as X. The action mask is side-agnostic and is
// never flipped.
func (w *SelfPlayEnv) flip(obs Observation) Observation {
	if !w.flipObs || w.agent != game.MarkO {
		return obs
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			obs.Grid[y][x] = obs.Grid[y][x].Opponent()
		}
	}
	return obs
}

// Mask implements [MaskProducer].
func (w *SelfPlayEnv) Mask() ActionMask {
	return w.env.Mask()
}

// Board exposes the underlying board.
func (w *SelfPlayEnv) Board() *game.Board {
	return w.env.Board()
}
