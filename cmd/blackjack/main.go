package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/lox/blackjack/internal/assets"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	Config   string `short:"c" default:"blackjack.hcl" env:"BLACKJACK_CONFIG" help:"Path to HCL configuration file"`
	LogLevel string `short:"l" env:"BLACKJACK_LOG_LEVEL" help:"Log level (overrides config)"`
	Seed     int64  `env:"BLACKJACK_SEED" help:"Shuffle seed (overrides config, 0 for random)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"1" help:"Play blackjack in the terminal"`
	Serve    ServeCmd         `cmd:"" help:"Serve blackjack tables over WebSocket"`
	Simulate SimulateCmd      `cmd:"" help:"Play many hands headless and report statistics"`
}

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Single-player blackjack against the dealer"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// load reads and validates the configuration with flag overrides applied
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.LoadConfig(g.Config)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", g.Config, err)
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.Seed != 0 {
		cfg.Game.Seed = g.Seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
}

// loadFaces loads the card artwork. Missing images leave blank cards.
func loadFaces(ctx context.Context, cfg *config.Config, logger *log.Logger) (*assets.Store, error) {
	store, err := assets.Load(ctx, cfg.Assets.Manifest, logger)
	if err != nil {
		return nil, fmt.Errorf("loading assets: %w", err)
	}
	logger.Info("Loaded card assets", "manifest", cfg.Assets.Manifest, "images", store.Len())
	return store, nil
}

// deckFactory returns a constructor for session decks. A fixed seed
// makes every session shuffle the same way.
func deckFactory(seed int64) func() *deck.Deck {
	return func() *deck.Deck {
		return deck.NewDeck(deck.NewRand(seed))
	}
}
