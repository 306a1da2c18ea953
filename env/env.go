// Package env adapts the Ultimate Tic-Tac-Toe rules to a step/reset
// simulation loop: integer actions in [0, 80], grid observations paired
// with a legal-action mask, and win/loss rewards.
package env

import (
	"math/rand"
	"time"

	"github.com/utttsim/uttt/game"
)

// ActionMask flags which of the 81 actions are legal in some state. It is
// the sole handshake between the rules engine and action-picking code.
type ActionMask [81]bool

// Legal reports whether the action may be played. Out-of-range actions
// are never legal.
func (m ActionMask) Legal(action int) bool {
	return action >= 0 && action < len(m) && m[action]
}

// Count returns the number of legal actions.
func (m ActionMask) Count() int {
	var n int
	for _, legal := range m {
		if legal {
			n++
		}
	}
	return n
}

// Actions returns the legal action indices in increasing order.
func (m ActionMask) Actions() []int {
	actions := make([]int, 0, len(m))
	for i, legal := range m {
		if legal {
			actions = append(actions, i)
		}
	}
	return actions
}

// MaskProducer is implemented by environments that can report which
// actions are currently legal. The rules engine itself does not
// implement it; agents probe for this capability instead of reaching
// into the board.
type MaskProducer interface {
	Mask() ActionMask
}

// Observation is a snapshot of the environment handed to agents. It
// shares no storage with the live board.
type Observation struct {
	Grid game.Grid
	Mask ActionMask
}

// StepResult carries the outcome of a single environment step.
type StepResult struct {
	Obs    Observation
	Reward float64
	Done   bool
}

// Env drives a single game as a step/reset environment. Rewards are from
// the perspective of whichever player made the move.
type Env struct {
	board *game.Board
	rng   *rand.Rand
}

var _ MaskProducer = (*Env)(nil)

// NewEnv creates an environment seeded from the current time. Use
// [Env.Seed] for reproducible runs.
func NewEnv() *Env {
	return &Env{
		board: game.NewBoard(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed reseeds the environment's random source.
func (e *Env) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// Reset starts a new game with a randomly drawn starting player and
// returns the initial observation.
func (e *Env) Reset() Observation {
	starting := game.MarkX
	if e.rng.Intn(2) == 1 {
		starting = game.MarkO
	}
	e.board.Reset(starting)
	return e.Observation()
}

// Step decodes the action into a board position and plays it for the
// current player. The reward is scored for the mover: +1 for winning the
// game, -1 for losing it, and 0 for a draw or an unfinished game. Board
// errors pass through unchanged and leave the environment unmodified; the
// action is rejected, never reinterpreted.
func (e *Env) Step(action int) (StepResult, error) {
	pos, err := game.PositionFromIndex(action)
	if err != nil {
		return StepResult{}, err
	}

	mover := e.board.CurrentPlayer()
	if err := e.board.MakeMove(pos); err != nil {
		return StepResult{}, err
	}

	return StepResult{
		Obs:    e.Observation(),
		Reward: rewardFor(e.board, mover),
		Done:   e.board.GameOver(),
	}, nil
}

// rewardFor scores the game for one player: +1 won, -1 lost, 0 for a
// draw or a game still in progress.
func rewardFor(b *game.Board, player game.Mark) float64 {
	if !b.GameOver() {
		return 0
	}
	switch b.Winner() {
	case player:
		return 1
	case player.Opponent():
		return -1
	default:
		return 0
	}
}

// Observation returns a snapshot of the current state.
func (e *Env) Observation() Observation {
	return Observation{
		Grid: e.board.Grid(),
		Mask: e.Mask(),
	}
}

// Mask implements [MaskProducer].
func (e *Env) Mask() ActionMask {
	var mask ActionMask
	for _, pos := range e.board.LegalMoves() {
		mask[pos.Index()] = true
	}
	return mask
}

// Board exposes the underlying board for wrappers and diagnostics.
func (e *Env) Board() *game.Board {
	return e.board
}

// Render returns the textual board dump.
func (e *Env) Render() string {
	return e.board.Render()
}
