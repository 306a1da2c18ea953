package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/utttsim/uttt/arena"
)

type fileConfig struct {
	Games   int   `toml:"games"`
	Workers int   `toml:"workers"`
	Seed    int64 `toml:"seed"`
}

// loadConfig overlays settings from a TOML file onto cfg. Keys absent
// from the file keep their current values.
func loadConfig(path string, cfg arena.Config) (arena.Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return arena.Config{}, fmt.Errorf("load arena config: %w", err)
	}

	if meta.IsDefined("games") {
		if raw.Games < 1 {
			return arena.Config{}, fmt.Errorf("games must be positive, got %d", raw.Games)
		}
		cfg.Games = raw.Games
	}

	if meta.IsDefined("workers") {
		if raw.Workers < 1 {
			return arena.Config{}, fmt.Errorf("workers must be positive, got %d", raw.Workers)
		}
		cfg.Workers = raw.Workers
	}

	if meta.IsDefined("seed") {
		cfg.Seed = raw.Seed
	}

	return cfg, nil
}
