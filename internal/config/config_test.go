package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "localhost:8080", cfg.ServerAddress())
	assert.Equal(t, 250*time.Millisecond, cfg.AnimationDuration())
	assert.Equal(t, state.DealAlternate, cfg.DealOrder())
	assert.Equal(t, state.DefaultWelcome(), cfg.Welcome())
	assert.Equal(t, game.DefaultLayout(), cfg.TableLayout())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}

func TestLoadConfigOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  deal_order = "sequential"
  seed       = 42
}

animation {
  duration = "1s"
}

layout {
  player_y = 0
  spawn_x  = -50
}

log {
  level = "debug"
}

server {
  port = 9090
}

simulation {
  hands     = 50
  hit_below = 15
}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, state.DealSequential, cfg.DealOrder())
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, state.DefaultWelcome().Title, cfg.Game.WelcomeTitle)
	assert.Equal(t, time.Second, cfg.AnimationDuration())
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "blackjack.log", cfg.Log.File)
	assert.Equal(t, "localhost:9090", cfg.ServerAddress())
	assert.Equal(t, "assets/cards.hcl", cfg.Assets.Manifest)

	assert.Equal(t, 50, cfg.Simulation.Hands)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, 15, cfg.Simulation.HitBelow)

	layout := cfg.TableLayout()
	want := game.DefaultLayout()
	want.PlayerY = 0
	want.SpawnX = -50
	assert.Equal(t, want, layout)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `game {`))
	assert.ErrorContains(t, err, "parse")

	_, err = LoadConfig(writeConfig(t, `game { shoe = 6 }`))
	assert.ErrorContains(t, err, "decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"deal order", func(c *Config) { c.Game.DealOrder = "random" }, "deal order"},
		{"duration", func(c *Config) { c.Animation.Duration = "soon" }, "duration"},
		{"negative duration", func(c *Config) { c.Animation.Duration = "-1s" }, "negative"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log"},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "port"},
		{"hands", func(c *Config) { c.Simulation.Hands = -1 }, "hands"},
		{"workers", func(c *Config) { c.Simulation.Workers = -2 }, "workers"},
		{"hit below", func(c *Config) { c.Simulation.HitBelow = 30 }, "hit_below"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
