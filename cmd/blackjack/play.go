package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/blackjack/internal/tui"
)

type PlayCmd struct {
	LogFile string `help:"Write logs to this file (overrides config)"`
	NoColor bool   `env:"NO_COLOR" help:"Render without colours"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}

	// The terminal belongs to the table, so logs go to a file
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	logger := newLogger(logFile, cfg).WithPrefix("play")
	logger.Info("Starting game", "config", g.Config, "deal_order", cfg.DealOrder())

	faces, err := loadFaces(context.Background(), cfg, logger)
	if err != nil {
		return err
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model := tui.New(tui.Options{
		Faces:             faces,
		Layout:            cfg.TableLayout(),
		DealOrder:         cfg.DealOrder(),
		Welcome:           cfg.Welcome(),
		NewDeck:           deckFactory(cfg.Game.Seed),
		AnimationDuration: cfg.AnimationDuration(),
		Logger:            logger,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	logger.Info("Game closed")
	return nil
}
