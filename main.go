package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/utttsim/uttt/arena"
	"github.com/utttsim/uttt/env"
	"github.com/utttsim/uttt/game"
)

var (
	mode       = "demo"
	games      = 10
	workers    = 1
	seed       = int64(0)
	configPath = ""
	verbose    = false
)

func init() {
	pflag.StringVarP(&mode, "mode", "m", mode, "run mode: demo, play, or arena")
	pflag.IntVarP(&games, "games", "n", games, "number of games to play in arena mode")
	pflag.IntVarP(&workers, "workers", "w", workers, "number of parallel workers in arena mode")
	pflag.Int64VarP(&seed, "seed", "s", seed, "random seed, 0 for time-based")
	pflag.StringVarP(&configPath, "config", "c", configPath, "optional TOML config file for arena mode")
	pflag.BoolVarP(&verbose, "verbose", "v", verbose, "log every finished episode")
}

func main() {
	pflag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	os.Exit(start(ctx, logger))
}

func start(ctx context.Context, logger *slog.Logger) int {
	switch mode {
	case "demo":
		return runDemo(logger)
	case "play":
		return runPlay(ctx, logger)
	case "arena":
		return runArena(ctx, logger)
	default:
		logger.Error("unknown mode", "mode", mode)
		return 2
	}
}

// runDemo resets an environment, plays one scripted exchange, and dumps
// the board.
func runDemo(logger *slog.Logger) int {
	e, err := env.New(env.DefaultID)
	if err != nil {
		logger.Error("failed to create environment", "err", err)
		return 1
	}
	if seed != 0 {
		e.Seed(seed)
	}

	obs := e.Reset()
	fmt.Printf("environment %s, %s to move:\n%s\n\n",
		env.DefaultID, e.Board().CurrentPlayer(), e.Render())

	action := obs.Mask.Actions()[0]
	res, err := e.Step(action)
	if err != nil {
		logger.Error("step failed", "action", action, "err", err)
		return 1
	}

	fmt.Printf("after action %d:\n%s\n\n", action, e.Render())
	fmt.Printf("reward %.0f, done %v, %d legal replies\n",
		res.Reward, res.Done, res.Obs.Mask.Count())
	return 0
}

// runPlay runs an interactive game on stdin: the human plays X against a
// uniformly random O.
func runPlay(ctx context.Context, logger *slog.Logger) int {
	base, err := env.New(env.DefaultID)
	if err != nil {
		logger.Error("failed to create environment", "err", err)
		return 1
	}
	if seed != 0 {
		base.Seed(seed)
	}
	w := env.NewOpponentEnv(base, nil)

	obs := w.Reset()
	fmt.Println("you are X; enter a cell index from 0 to 80")
	fmt.Println(w.Board().Render())

	sc := bufio.NewScanner(os.Stdin)
	for ctx.Err() == nil {
		fmt.Printf("\nlegal: %v\n> ", obs.Mask.Actions())
		if !sc.Scan() {
			return 0
		}

		action, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
		if err != nil {
			fmt.Println("enter a number between 0 and 80")
			continue
		}

		res, err := w.Step(action)
		if errors.Is(err, game.ErrInvalidPosition) || errors.Is(err, game.ErrIllegalMove) {
			fmt.Printf("rejected: %v\n", err)
			continue
		}
		if err != nil {
			logger.Error("game error", "err", err)
			return 1
		}

		obs = res.Obs
		fmt.Println()
		fmt.Println(w.Board().Render())

		if res.Done {
			switch w.Board().Winner() {
			case game.MarkX:
				fmt.Println("\nyou win!")
			case game.MarkO:
				fmt.Println("\nthe opponent wins!")
			default:
				fmt.Println("\ndraw!")
			}
			return 0
		}
	}
	return 0
}

// runArena plays the configured batch of random-vs-random games and
// prints the tally.
func runArena(ctx context.Context, logger *slog.Logger) int {
	cfg := arena.DefaultConfig()
	cfg.Games = games
	cfg.Workers = workers
	if seed != 0 {
		cfg.Seed = seed
	}
	if configPath != "" {
		var err error
		cfg, err = loadConfig(configPath, cfg)
		if err != nil {
			logger.Error("failed to load config", "path", configPath, "err", err)
			return 1
		}
	}

	a := arena.NewArena(cfg, logger.With("component", "arena"))

	// Unsubscribing closes resultCh and drops any undelivered results,
	// so after a clean run the printer is told the episode count and
	// drains that many before teardown.
	resultCh := make(chan arena.Result)
	a.SubscribeResults(resultCh, nil)

	want := make(chan int, 1)
	printed := make(chan struct{})
	go func() {
		defer close(printed)
		seen, target := 0, -1
		for {
			select {
			case res, ok := <-resultCh:
				if !ok {
					return
				}
				seen++
				if verbose {
					fmt.Printf("game %d: winner %s in %d moves\n", res.Game+1, res.Winner, res.Moves)
				}
				if seen == target {
					return
				}
			case target = <-want:
				if seen >= target {
					return
				}
			}
		}
	}()

	stats, err := a.Run(ctx)
	if err != nil {
		a.UnsubscribeResults(resultCh)
		<-printed
		logger.Error("arena run failed", "err", err)
		return 1
	}

	want <- stats.Episodes
	<-printed
	a.UnsubscribeResults(resultCh)

	fmt.Println(stats)
	return 0
}
