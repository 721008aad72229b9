package table

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
)

// Surface is a headless render.Surface. It keeps a Scene, reports every
// operation to an observer and completes each animation after a fixed
// duration on the clock, posting the callback back onto the runner.
type Surface struct {
	scene    *render.Scene
	clock    quartz.Clock
	runner   *Runner
	duration time.Duration
	observer func(render.Op)
	inFlight int
	logger   *log.Logger
}

// NewSurface creates a headless surface spawning cards at the layout's
// spawn point
func NewSurface(faces render.FaceSource, layout game.Layout, clock quartz.Clock, runner *Runner, duration time.Duration, logger *log.Logger) *Surface {
	logger = logger.WithPrefix("surface")
	return &Surface{
		scene:    render.NewScene(faces, layout.SpawnX, layout.SpawnY, logger),
		clock:    clock,
		runner:   runner,
		duration: duration,
		logger:   logger,
	}
}

// Observe sets the function every operation is reported to. It runs on
// the runner.
func (s *Surface) Observe(fn func(render.Op)) {
	s.observer = fn
}

func (s *Surface) emit(op render.Op) {
	if s.observer != nil {
		s.observer(op)
	}
}

// CreateVisual implements render.Surface
func (s *Surface) CreateVisual(cardID string) render.Handle {
	op := s.scene.Create(cardID)
	s.emit(op)
	return op.Handle
}

// Animate implements render.Surface
func (s *Surface) Animate(h render.Handle, x, y float64, onComplete func(), flip bool) {
	op, ok := s.scene.Move(h, x, y, flip)
	if !ok {
		s.logger.Error("Animate on unknown visual", "handle", h)
	} else {
		s.emit(op)
	}

	s.inFlight++
	s.clock.AfterFunc(s.duration, func() {
		posted := s.runner.Post(func() {
			s.inFlight--
			if onComplete != nil {
				onComplete()
			}
		})
		if !posted {
			s.logger.Debug("Runner stopped, dropping animation completion", "handle", h)
		}
	})
}

// Release implements render.Surface
func (s *Surface) Release(h render.Handle) {
	op, ok := s.scene.Release(h)
	if !ok {
		s.logger.Error("Release of unknown visual", "handle", h)
		return
	}
	s.emit(op)
}

// FaceDown implements render.Surface
func (s *Surface) FaceDown(h render.Handle) bool {
	return s.scene.FaceDown(h)
}

// TogglePanel implements render.Surface
func (s *Surface) TogglePanel(p render.Panel, visible bool) {
	s.emit(s.scene.SetPanel(p, visible))
}

// SetMessage implements render.Surface
func (s *Surface) SetMessage(p render.Panel, text string) {
	s.emit(s.scene.SetMessage(p, text))
}

// Scene returns the surface's visual model. Only read it on the runner.
func (s *Surface) Scene() *render.Scene {
	return s.scene
}

// InFlight returns the number of animations not yet completed
func (s *Surface) InFlight() int {
	return s.inFlight
}
