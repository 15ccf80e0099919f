// Package config loads engine tuning knobs that sit outside the UCI
// protocol itself — the ones the protocol gives no command for — from an
// optional TOML file, with defaults that let the engine run unconfigured.
package config

import (
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable that is not reachable through a UCI command.
type Config struct {
	// MaxDepth is loaded from the file, but no command reads it:
	// getbestmove and getbestpiece search to the depth given on the command
	// line.
	MaxDepth int `toml:"max_depth"`

	// BulletThresholdMillis: at or below this much time left in the game,
	// PerMoveBudget returns BulletBudgetMillis per move rather than
	// DefaultBudgetMillis.
	BulletThresholdMillis int `toml:"bullet_threshold_ms"`

	// BulletBudgetMillis is the search budget used once the bullet
	// threshold has been crossed.
	BulletBudgetMillis int `toml:"bullet_budget_ms"`

	// DefaultBudgetMillis is the search budget used when time is ample, and
	// by getbestmove/getbestpiece when no time argument is given.
	DefaultBudgetMillis int `toml:"default_budget_ms"`

	// DebugLogPath is where the zap debug sink writes. Empty means stderr.
	DebugLogPath string `toml:"debug_log_path"`
}

// Default returns the configuration the engine runs with when no file is
// supplied.
func Default() Config {
	return Config{
		MaxDepth:              8,
		BulletThresholdMillis: 180_000,
		BulletBudgetMillis:    2000,
		DefaultBudgetMillis:   15000,
		DebugLogPath:          "",
	}
}

// Load reads path as TOML, starting from Default and overriding only the
// fields present in the file. An empty path is not an error: the defaults
// stand. A file that cannot be read is returned as an error. A malformed file is an Invalid Input error per spec §7.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PerMoveBudget returns the search time budget for a move given how much
// time is left in the game, per spec's bullet-play guard.
func (c Config) PerMoveBudget(timeLeftMillis int64) time.Duration {
	if timeLeftMillis <= int64(c.BulletThresholdMillis) {
		return time.Duration(c.BulletBudgetMillis) * time.Millisecond
	}
	return time.Duration(c.DefaultBudgetMillis) * time.Millisecond
}
