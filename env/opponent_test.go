package env

import (
	"math/rand"
	"testing"

	"github.com/utttsim/uttt/game"
)

func TestOpponentEnvCallerIsAlwaysX(t *testing.T) {
	e := NewEnv()
	e.Seed(3)
	w := NewOpponentEnv(e, nil)
	for i := 0; i < 10; i++ {
		w.Reset()
		if got := w.Board().CurrentPlayer(); got != game.MarkX {
			t.Fatalf("reset %d: %v to move, want MarkX", i, got)
		}
	}
}

func TestOpponentEnvAutoReply(t *testing.T) {
	e := NewEnv()
	e.Seed(3)
	w := NewOpponentEnv(e, nil)
	obs := w.Reset()

	res, err := w.Step(obs.Mask.Actions()[0])
	if err != nil {
		t.Fatal(err)
	}
	if res.Done {
		t.Fatal("game over after the opening exchange")
	}
	if got := w.Board().CurrentPlayer(); got != game.MarkX {
		t.Errorf("after a step it is %v's turn, want MarkX", got)
	}

	var xs, os int
	grid := w.Board().Grid()
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			switch grid[y][x] {
			case game.MarkX:
				xs++
			case game.MarkO:
				os++
			}
		}
	}
	if xs != 1 || os != 1 {
		t.Errorf("marks on the board = %d X, %d O, want one of each", xs, os)
	}
}

func TestOpponentEnvCustomPolicy(t *testing.T) {
	first := func(b *game.Board, rng *rand.Rand) (game.Position, error) {
		moves := b.LegalMoves()
		if len(moves) == 0 {
			return game.Position{}, ErrNoLegalMoves
		}
		return moves[0], nil
	}

	e := NewEnv()
	e.Seed(5)
	w := NewOpponentEnv(e, first)
	w.Reset()

	if _, err := w.Step(40); err != nil {
		t.Fatal(err)
	}
	// X at 40 sends O to sub-board (1, 1), whose first empty cell is 30.
	if got := w.Board().Grid()[3][3]; got != game.MarkO {
		t.Errorf("grid[3][3] = %v, want the opponent's MarkO", got)
	}
}

func TestOpponentEnvRewardPerspective(t *testing.T) {
	e := NewEnv()
	e.Seed(11)
	w := NewOpponentEnv(e, nil)
	rng := rand.New(rand.NewSource(11))

	for run := 0; run < 10; run++ {
		obs := w.Reset()
		for {
			actions := obs.Mask.Actions()
			if len(actions) == 0 {
				t.Fatalf("run %d: no legal actions while the game is running", run)
			}

			res, err := w.Step(actions[rng.Intn(len(actions))])
			if err != nil {
				t.Fatal(err)
			}
			if !res.Done {
				if res.Reward != 0 {
					t.Fatalf("run %d: nonzero reward %v mid-game", run, res.Reward)
				}
				obs = res.Obs
				continue
			}

			var want float64
			switch w.Board().Winner() {
			case game.MarkX:
				want = 1
			case game.MarkO:
				want = -1
			}
			if res.Reward != want {
				t.Errorf("run %d: final reward = %v, want %v for winner %v",
					run, res.Reward, want, w.Board().Winner())
			}
			break
		}
	}
}
