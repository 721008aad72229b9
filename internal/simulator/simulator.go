// Package simulator plays many blackjack hands without a display, one
// isolated table per worker, and aggregates the outcomes.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/state"
	"github.com/lox/blackjack/internal/statistics"
)

// maxActionsPerHand bounds the autoplay loop for a single hand
const maxActionsPerHand = 64

// ErrStuck is returned when a hand stops making progress
var ErrStuck = errors.New("hand made no progress")

// Config holds configuration for running simulations
type Config struct {
	Hands     int
	Workers   int
	HitBelow  int // Player hits while below this total
	Seed      int64
	DealOrder state.DealOrder
	Logger    *log.Logger
}

// Simulator runs blackjack hand simulations
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.HitBelow == 0 {
		config.HitBelow = state.DealerStandValue
	}
	if config.Seed == 0 {
		config.Seed = time.Now().UnixNano()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run plays config.Hands hands split across the workers
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if s.config.Hands < 1 {
		return nil, fmt.Errorf("invalid hands count: %d", s.config.Hands)
	}

	workers := min(s.config.Workers, s.config.Hands)
	perWorker := s.config.Hands / workers
	remainder := s.config.Hands % workers

	logger := s.config.Logger.WithPrefix("simulator")
	logger.Info("Starting simulation", "hands", s.config.Hands, "workers", workers, "seed", s.config.Seed)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	results := make([]*statistics.Statistics, workers)

	for w := 0; w < workers; w++ {
		hands := perWorker
		if w < remainder {
			hands++
		}
		seed := s.config.Seed + int64(w)

		g.Go(func() error {
			stats, err := s.runWorker(ctx, w, hands, seed)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := statistics.New()
	for _, r := range results {
		total.Merge(r)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	logger.Info("Simulation complete", "hands", total.Hands, "elapsed", time.Since(start), "mean", total.Mean())
	return total, nil
}

func (s *Simulator) runWorker(ctx context.Context, id, hands int, seed int64) (*statistics.Statistics, error) {
	p := newPlayer(s.config, seed, s.config.Logger.WithPrefix("simulator").With("worker", id))
	stats := statistics.New()

	for i := 0; i < hands; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := p.playHand()
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		stats.Add(result)
	}
	return stats, nil
}

// player owns one table: a recorder surface, a session and a machine,
// all driven from the worker goroutine
type player struct {
	hitBelow int
	surface  *render.Recorder
	machine  *state.Machine
	resolved *game.HandResolvedEvent
}

func newPlayer(cfg Config, seed int64, logger *log.Logger) *player {
	surface := render.NewRecorder(nil, logger)
	events := game.NewEventBus()
	p := &player{hitBelow: cfg.HitBelow, surface: surface}

	events.Subscribe(game.SubscriberFunc(func(e game.GameEvent) {
		if r, ok := e.(game.HandResolvedEvent); ok {
			p.resolved = &r
		}
	}))

	p.machine = state.NewMachine(state.Deps{
		Session:   game.NewSession(surface),
		Events:    events,
		DealOrder: cfg.DealOrder,
		NewDeck:   func() *deck.Deck { return deck.NewDeck(deck.NewRand(seed)) },
		Logger:    logger,
	})
	return p
}

// playHand plays one hand to game over with a fixed hit-below policy
func (p *player) playHand() (result statistics.HandResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			if perr, ok := r.(error); ok {
				err = fmt.Errorf("hand panicked: %w", perr)
			} else {
				err = fmt.Errorf("hand panicked: %v", r)
			}
		}
	}()

	if p.machine.Current() == "" {
		if err := p.machine.Start(); err != nil {
			return result, err
		}
	}
	p.resolved = nil
	if !p.machine.NewGame() {
		return result, fmt.Errorf("cannot start a hand in %s: %w", p.machine.Current(), ErrStuck)
	}

	for i := 0; i < maxActionsPerHand; i++ {
		p.surface.Drain()

		switch p.machine.Current() {
		case state.StateGameOver:
			return p.result()
		case state.StatePlayer:
			sig := state.SignalStand
			if p.machine.Session().Player().Hand().Value() < p.hitBelow {
				sig = state.SignalHit
			}
			if !p.machine.Signal(sig) {
				return result, fmt.Errorf("%s not accepted: %w", sig, ErrStuck)
			}
		default:
			return result, fmt.Errorf("waiting in %s: %w", p.machine.Current(), ErrStuck)
		}
	}
	return result, fmt.Errorf("no game over after %d actions: %w", maxActionsPerHand, ErrStuck)
}

func (p *player) result() (statistics.HandResult, error) {
	if p.resolved == nil {
		return statistics.HandResult{}, fmt.Errorf("game over without a resolved hand: %w", ErrStuck)
	}
	return statistics.HandResult{
		Outcome:     p.resolved.Outcome,
		PlayerValue: p.resolved.PlayerValue,
		DealerValue: p.resolved.DealerValue,
		PlayerCards: len(p.resolved.PlayerCards),
		DealerCards: len(p.resolved.DealerCards),
	}, nil
}
