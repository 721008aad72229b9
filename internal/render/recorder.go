package render

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// maxDrainSteps bounds Drain so a callback loop fails loudly
const maxDrainSteps = 10000

// Recorder is a Surface that completes animations only when told to.
// Completions queue in issue order; Step fires the oldest one. It backs
// the tests and the simulator, where no time needs to pass.
type Recorder struct {
	scene          *Scene
	logger         *log.Logger
	pending        []func()
	ops            []Op
	doubleReleases int
	sink           func(Op)
}

// NewRecorder creates a recorder surface. faces may be nil.
func NewRecorder(faces FaceSource, logger *log.Logger) *Recorder {
	logger = logger.WithPrefix("recorder")
	return &Recorder{
		scene:  NewScene(faces, 0, 0, logger),
		logger: logger,
	}
}

// OnOp registers a callback invoked for every operation
func (r *Recorder) OnOp(fn func(Op)) {
	r.sink = fn
}

func (r *Recorder) emit(op Op) {
	r.ops = append(r.ops, op)
	if r.sink != nil {
		r.sink(op)
	}
}

// CreateVisual implements Surface
func (r *Recorder) CreateVisual(cardID string) Handle {
	op := r.scene.Create(cardID)
	r.emit(op)
	return op.Handle
}

// Animate implements Surface
func (r *Recorder) Animate(h Handle, x, y float64, onComplete func(), flip bool) {
	op, ok := r.scene.Move(h, x, y, flip)
	if !ok {
		r.logger.Error("Animate on unknown visual", "handle", h)
	} else {
		r.emit(op)
	}
	if onComplete == nil {
		onComplete = func() {}
	}
	r.pending = append(r.pending, onComplete)
}

// Release implements Surface
func (r *Recorder) Release(h Handle) {
	op, ok := r.scene.Release(h)
	if !ok {
		r.doubleReleases++
		r.logger.Error("Release of unknown visual", "handle", h)
		return
	}
	r.emit(op)
}

// FaceDown implements Surface
func (r *Recorder) FaceDown(h Handle) bool {
	return r.scene.FaceDown(h)
}

// TogglePanel implements Surface
func (r *Recorder) TogglePanel(p Panel, visible bool) {
	r.emit(r.scene.SetPanel(p, visible))
}

// SetMessage implements Surface
func (r *Recorder) SetMessage(p Panel, text string) {
	r.emit(r.scene.SetMessage(p, text))
}

// Pending returns the number of animations awaiting completion
func (r *Recorder) Pending() int {
	return len(r.pending)
}

// Step completes the oldest pending animation. It reports false when
// nothing was pending.
func (r *Recorder) Step() bool {
	if len(r.pending) == 0 {
		return false
	}
	next := r.pending[0]
	r.pending = r.pending[1:]
	next()
	return true
}

// Drain completes animations until none are pending and returns how many
// ran. It panics if callbacks keep scheduling work past a sane bound.
func (r *Recorder) Drain() int {
	n := 0
	for r.Step() {
		n++
		if n > maxDrainSteps {
			panic(fmt.Sprintf("render: drain exceeded %d steps", maxDrainSteps))
		}
	}
	return n
}

// Scene exposes the recorder's scene for assertions
func (r *Recorder) Scene() *Scene {
	return r.scene
}

// Ops returns every operation recorded so far
func (r *Recorder) Ops() []Op {
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// DoubleReleases counts releases of handles that were not live
func (r *Recorder) DoubleReleases() int {
	return r.doubleReleases
}
