package arena

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/utttsim/uttt/game"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestArenaRun(t *testing.T) {
	cfg := Config{Games: 8, Workers: 2, Seed: 42}
	stats, err := NewArena(cfg, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Episodes != cfg.Games {
		t.Errorf("played %d episodes, want %d", stats.Episodes, cfg.Games)
	}
	if sum := stats.XWins + stats.OWins + stats.Draws; sum != stats.Episodes {
		t.Errorf("outcomes sum to %d, want %d", sum, stats.Episodes)
	}
}

func TestArenaRunDeterministic(t *testing.T) {
	cfg := Config{Games: 6, Workers: 3, Seed: 7}

	s1, err := NewArena(cfg, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	s2, err := NewArena(cfg, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s1 != s2 {
		t.Errorf("same configuration produced %+v and %+v", s1, s2)
	}
}

func TestArenaSubscribe(t *testing.T) {
	cfg := Config{Games: 5, Workers: 2, Seed: 13}
	a := NewArena(cfg, testLogger())

	ch := make(chan Result)
	a.SubscribeResults(ch, nil)

	// Unsubscribing closes ch and drops whatever is still queued, so the
	// collector stops at the expected count and the unsubscribe waits
	// for it.
	collected := make(chan []Result)
	go func() {
		results := make([]Result, 0, cfg.Games)
		for res := range ch {
			results = append(results, res)
			if len(results) == cfg.Games {
				break
			}
		}
		collected <- results
	}()

	if _, err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	results := <-collected
	a.UnsubscribeResults(ch)

	if len(results) != cfg.Games {
		t.Fatalf("received %d results, want %d", len(results), cfg.Games)
	}

	seenIDs := make(map[string]bool)
	seenGames := make(map[int]bool)
	for _, res := range results {
		if res.ID == "" {
			t.Error("result with an empty episode id")
		}
		if seenIDs[res.ID] {
			t.Errorf("duplicate episode id %s", res.ID)
		}
		seenIDs[res.ID] = true
		seenGames[res.Game] = true

		if res.Moves < 17 || res.Moves > 81 {
			t.Errorf("game %d finished in %d moves", res.Game, res.Moves)
		}
	}
	for g := 0; g < cfg.Games; g++ {
		if !seenGames[g] {
			t.Errorf("no result for game %d", g)
		}
	}
}

func TestArenaUnsubscribeEndsSubscription(t *testing.T) {
	a := NewArena(Config{Games: 1, Workers: 1, Seed: 5}, testLogger())

	ch := make(chan Result)
	a.SubscribeResults(ch, nil)

	if _, err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Unsubscribe owns the close of a subscriber channel; the drain must
	// terminate without any close here.
	drained := make(chan int)
	go func() {
		var n int
		for range ch {
			n++
		}
		drained <- n
	}()

	a.UnsubscribeResults(ch)
	if n := <-drained; n > 1 {
		t.Errorf("received %d results from a single-game run", n)
	}
}

func TestArenaFilteredSubscription(t *testing.T) {
	cfg := Config{Games: 6, Workers: 1, Seed: 29}
	a := NewArena(cfg, testLogger())

	const wantResults = 3 // games 0, 2, 4

	ch := make(chan Result)
	a.SubscribeResults(ch, func(r Result) bool { return r.Game%2 == 0 })

	collected := make(chan []Result)
	go func() {
		results := make([]Result, 0, wantResults)
		for res := range ch {
			results = append(results, res)
			if len(results) == wantResults {
				break
			}
		}
		collected <- results
	}()

	if _, err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	results := <-collected
	a.UnsubscribeResults(ch)

	seen := make(map[int]bool)
	for _, res := range results {
		if res.Game%2 != 0 {
			t.Errorf("filter let game %d through", res.Game)
		}
		seen[res.Game] = true
	}
	for _, g := range []int{0, 2, 4} {
		if !seen[g] {
			t.Errorf("no result for even game %d", g)
		}
	}
}

func TestArenaPinnedStartingMark(t *testing.T) {
	cfg := Config{Games: 12, Workers: 3, Seed: 17, StartingMark: game.MarkO}
	a := NewArena(cfg, testLogger())

	ch := make(chan Result)
	a.SubscribeResults(ch, nil)

	collected := make(chan []Result)
	go func() {
		results := make([]Result, 0, cfg.Games)
		for res := range ch {
			results = append(results, res)
			if len(results) == cfg.Games {
				break
			}
		}
		collected <- results
	}()

	if _, err := a.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	results := <-collected
	a.UnsubscribeResults(ch)

	// A win always lands on the winner's own move, so the starter falls
	// out of the winner and the move-count parity.
	var decisive int
	for _, res := range results {
		if res.Winner == game.NoMark {
			continue
		}
		decisive++
		starter := res.Winner
		if res.Moves%2 == 0 {
			starter = starter.Opponent()
		}
		if starter != game.MarkO {
			t.Errorf("game %d: derived starter %v from winner %v in %d moves, want MarkO",
				res.Game, starter, res.Winner, res.Moves)
		}
	}
	if decisive == 0 {
		t.Fatal("no decisive game in the whole run")
	}
}

func TestArenaCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewArena(Config{Games: 50, Workers: 2, Seed: 1}, testLogger()).Run(ctx)
	if err == nil {
		t.Error("run with a cancelled context reported no error")
	}
}

func TestNewArenaClampsConfig(t *testing.T) {
	stats, err := NewArena(Config{Seed: 3}, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if stats.Episodes != 1 {
		t.Errorf("played %d episodes, want 1", stats.Episodes)
	}
}
