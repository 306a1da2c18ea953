// Package arena plays batches of random-vs-random episodes across a pool
// of workers, broadcasting each finished episode and tallying the
// outcomes.
package arena

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/twipi/pubsub"
	"github.com/utttsim/uttt/agent"
	"github.com/utttsim/uttt/env"
	"github.com/utttsim/uttt/game"
	"golang.org/x/sync/errgroup"
)

// Config controls an arena run.
type Config struct {
	// Games is the total number of episodes to play.
	Games int
	// Workers is the number of episodes played concurrently.
	Workers int
	// Seed derives every worker's random source, making runs with the
	// same configuration reproducible.
	Seed int64
	// StartingMark pins the starting player of every episode when set to
	// MarkX or MarkO. Any other value keeps the per-episode random draw.
	StartingMark game.Mark
}

// DefaultConfig returns a single-worker, single-game configuration
// seeded from the current time.
func DefaultConfig() Config {
	return Config{
		Games:   1,
		Workers: 1,
		Seed:    time.Now().UnixNano(),
	}
}

// Result describes one finished episode.
type Result struct {
	// ID uniquely identifies the episode.
	ID string
	// Game is the episode's index within the run, in [0, Config.Games).
	Game int
	// Winner is MarkX, MarkO, or NoMark for a draw.
	Winner game.Mark
	// Moves is the number of moves the episode took.
	Moves int
	// Elapsed is the wall-clock duration of the episode.
	Elapsed time.Duration
}

// Arena runs the configured number of episodes and streams each finished
// one to subscribers.
type Arena struct {
	cfg       Config
	logger    *slog.Logger
	resultCh  chan Result
	resultSub pubsub.Subscriber[Result]

	mu    sync.Mutex
	stats Stats
}

// NewArena creates an arena. Non-positive Games or Workers values are
// raised to 1.
func NewArena(cfg Config, logger *slog.Logger) *Arena {
	if cfg.Games < 1 {
		cfg.Games = 1
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &Arena{
		cfg:      cfg,
		logger:   logger,
		resultCh: make(chan Result),
	}
}

// SubscribeResults streams every finished episode into ch until
// [Arena.UnsubscribeResults] is called. A nil filter receives
// everything.
func (a *Arena) SubscribeResults(ch chan<- Result, filter func(Result) bool) {
	if filter == nil {
		filter = func(Result) bool { return true }
	}
	a.resultSub.Subscribe(ch, filter)
}

// UnsubscribeResults removes a subscription added by
// [Arena.SubscribeResults]. The subscriber channel is closed on
// unsubscribe and results not yet delivered are dropped; callers must
// not close ch themselves.
func (a *Arena) UnsubscribeResults(ch chan<- Result) {
	a.resultSub.Unsubscribe(ch)
}

// Run plays the configured number of episodes and returns the final
// tally. It may be called once per arena.
func (a *Arena) Run(ctx context.Context) (Stats, error) {
	a.logger.Info(
		"starting arena run",
		"games", a.cfg.Games,
		"workers", a.cfg.Workers,
		"seed", a.cfg.Seed)

	errg, ctx := errgroup.WithContext(ctx)

	errg.Go(func() error {
		// Ends when the worker pool below closes resultCh.
		return a.resultSub.Listen(ctx, a.resultCh)
	})

	errg.Go(func() error {
		defer close(a.resultCh)

		pool, ctx := errgroup.WithContext(ctx)
		for w := 0; w < a.cfg.Workers; w++ {
			w := w
			pool.Go(func() error { return a.work(ctx, w) })
		}
		return pool.Wait()
	})

	err := errg.Wait()

	a.mu.Lock()
	stats := a.stats
	a.mu.Unlock()

	if err == nil {
		a.logger.Info("arena run finished", "stats", stats.String())
	}
	return stats, err
}

// work plays the episodes assigned to one worker. Worker w plays games
// w, w+Workers, w+2·Workers, and so on, each worker on its own seeded
// environment and agent, so runs are reproducible regardless of
// scheduling.
func (a *Arena) work(ctx context.Context, w int) error {
	seed := a.cfg.Seed + int64(w)
	e := env.NewEnv()
	e.Seed(seed)
	ag := agent.NewRandom(seed)

	for g := w; g < a.cfg.Games; g += a.cfg.Workers {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := a.playEpisode(e, ag, g)
		if err != nil {
			return fmt.Errorf("game %d: %w", g, err)
		}
		if err := a.record(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

// playEpisode runs one game to completion with the agent picking for
// both sides.
func (a *Arena) playEpisode(e *env.Env, ag *agent.Random, gameNo int) (Result, error) {
	start := time.Now()
	e.Reset()
	if a.cfg.StartingMark == game.MarkX || a.cfg.StartingMark == game.MarkO {
		e.Board().Reset(a.cfg.StartingMark)
	}

	var moves int
	for {
		action, err := ag.SelectAction(e)
		if err != nil {
			return Result{}, fmt.Errorf("selecting move %d: %w", moves+1, err)
		}
		res, err := e.Step(action)
		if err != nil {
			return Result{}, fmt.Errorf("playing action %d: %w", action, err)
		}
		moves++

		if res.Done {
			return Result{
				ID:      uuid.NewString(),
				Game:    gameNo,
				Winner:  e.Board().Winner(),
				Moves:   moves,
				Elapsed: time.Since(start),
			}, nil
		}
	}
}

// record tallies a result and hands it to the broadcast loop.
func (a *Arena) record(ctx context.Context, res Result) error {
	a.mu.Lock()
	a.stats.Add(res)
	a.mu.Unlock()

	a.logger.Debug(
		"episode finished",
		"id", res.ID,
		"game", res.Game,
		"winner", res.Winner,
		"moves", res.Moves,
		"elapsed", res.Elapsed)

	select {
	case a.resultCh <- res:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
