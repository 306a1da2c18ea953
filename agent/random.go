// Package agent provides baseline agents for driving environments.
package agent

import (
	"math/rand"

	"github.com/utttsim/uttt/env"
)

// Random selects uniformly among the legal actions of an environment. It
// keeps no state between moves and serves as the baseline opponent for
// evaluating anything smarter.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random agent with its own source seeded from seed.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

// SelectAction picks a uniformly random legal action. It fails with
// [env.ErrNoLegalMoves] when the mask is empty.
func (r *Random) SelectAction(m env.MaskProducer) (int, error) {
	actions := m.Mask().Actions()
	if len(actions) == 0 {
		return 0, env.ErrNoLegalMoves
	}
	return actions[r.rng.Intn(len(actions))], nil
}

// ActionProbs returns the probability of each action under the uniform
// policy: 1/n for each of the n legal actions, 0 everywhere else.
func (r *Random) ActionProbs(m env.MaskProducer) [81]float64 {
	var probs [81]float64
	actions := m.Mask().Actions()
	if len(actions) == 0 {
		return probs
	}
	p := 1 / float64(len(actions))
	for _, a := range actions {
		probs[a] = p
	}
	return probs
}
