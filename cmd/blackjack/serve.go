package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/server"
	"github.com/lox/blackjack/internal/table"
)

type ServeCmd struct {
	Addr            string        `short:"a" help:"Address to bind to (overrides config)"`
	ShutdownTimeout time.Duration `default:"5s" help:"How long to wait for connections to close"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	faces, err := loadFaces(ctx, cfg, logger)
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	clock := quartz.NewReal()
	newTable := func() *table.Table {
		return table.New(table.Options{
			Faces:             faces,
			Clock:             clock,
			AnimationDuration: cfg.AnimationDuration(),
			Layout:            cfg.TableLayout(),
			DealOrder:         cfg.DealOrder(),
			Welcome:           cfg.Welcome(),
			NewDeck:           deckFactory(cfg.Game.Seed),
			Logger:            logger,
		})
	}

	srv := server.NewServer(addr, newTable, logger)

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(srv.Start)
	grp.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})
	return grp.Wait()
}
