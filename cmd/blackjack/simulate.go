package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/lox/blackjack/internal/simulator"
)

type SimulateCmd struct {
	Hands    int `short:"n" help:"Number of hands to play (overrides config)"`
	Workers  int `short:"w" help:"Number of parallel workers (overrides config)"`
	HitBelow int `help:"Player hits while below this total (overrides config)"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	if c.Hands > 0 {
		cfg.Simulation.Hands = c.Hands
	}
	if c.Workers > 0 {
		cfg.Simulation.Workers = c.Workers
	}
	if c.HitBelow > 0 {
		cfg.Simulation.HitBelow = c.HitBelow
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.New(simulator.Config{
		Hands:     cfg.Simulation.Hands,
		Workers:   cfg.Simulation.Workers,
		HitBelow:  cfg.Simulation.HitBelow,
		Seed:      cfg.Game.Seed,
		DealOrder: cfg.DealOrder(),
		Logger:    logger,
	})

	stats, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Println(stats.Summary())
	return nil
}
