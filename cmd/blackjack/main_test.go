package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/state"
)

func TestGlobalsLoad(t *testing.T) {
	t.Run("missing file uses defaults", func(t *testing.T) {
		g := Globals{Config: filepath.Join(t.TempDir(), "missing.hcl")}
		cfg, err := g.load()
		require.NoError(t, err)
		assert.Equal(t, state.DealAlternate, cfg.DealOrder())
		assert.Equal(t, "localhost:8080", cfg.ServerAddress())
	})

	t.Run("flags override file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blackjack.hcl")
		require.NoError(t, os.WriteFile(path, []byte(`
game {
  deal_order = "sequential"
  seed       = 7
}
log {
  level = "warn"
}
`), 0o644))

		g := Globals{Config: path, LogLevel: "debug", Seed: 42}
		cfg, err := g.load()
		require.NoError(t, err)
		assert.Equal(t, state.DealSequential, cfg.DealOrder())
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, int64(42), cfg.Game.Seed)
	})

	t.Run("invalid override", func(t *testing.T) {
		g := Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), LogLevel: "loud"}
		_, err := g.load()
		assert.ErrorContains(t, err, "invalid configuration")
	})
}

func TestDeckFactorySeed(t *testing.T) {
	newDeck := deckFactory(99)
	a, b := newDeck(), newDeck()
	a.Shuffle()
	b.Shuffle()
	assert.Equal(t, a.Cards(), b.Cards())
}
