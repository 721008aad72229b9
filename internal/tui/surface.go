package tui

import (
	"github.com/lox/blackjack/internal/render"
)

var _ render.Surface = (*Model)(nil)

// CreateVisual implements render.Surface
func (m *Model) CreateVisual(cardID string) render.Handle {
	return m.scene.Create(cardID).Handle
}

// Animate implements render.Surface. The card is drawn in its final
// place straight away but shown as moving until the tick arrives.
func (m *Model) Animate(h render.Handle, x, y float64, onComplete func(), flip bool) {
	if _, ok := m.scene.Move(h, x, y, flip); !ok {
		m.logger.Error("Animate on unknown visual", "handle", h)
	}

	m.nextAnim++
	id := m.nextAnim
	m.moving[h]++
	m.animations[id] = func() {
		if m.moving[h]--; m.moving[h] <= 0 {
			delete(m.moving, h)
		}
		if onComplete != nil {
			onComplete()
		}
	}
	m.pending = append(m.pending, m.tick(m.duration, animationDoneMsg{id: id}))
}

// Release implements render.Surface
func (m *Model) Release(h render.Handle) {
	if _, ok := m.scene.Release(h); !ok {
		m.logger.Error("Release of unknown visual", "handle", h)
		return
	}
	delete(m.moving, h)
}

// FaceDown implements render.Surface
func (m *Model) FaceDown(h render.Handle) bool {
	return m.scene.FaceDown(h)
}

// TogglePanel implements render.Surface
func (m *Model) TogglePanel(p render.Panel, visible bool) {
	m.scene.SetPanel(p, visible)
}

// SetMessage implements render.Surface
func (m *Model) SetMessage(p render.Panel, text string) {
	m.scene.SetMessage(p, text)
}
