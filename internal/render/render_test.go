package render

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapFaces map[string][]byte

func (m mapFaces) Face(name string) ([]byte, error) {
	if b, ok := m[name]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestSceneCreateDegradesOnMissingAssets(t *testing.T) {
	faces := mapFaces{
		BackFace:        []byte("##"),
		"ace_of_spades": []byte("A♠"),
	}

	t.Run("known face", func(t *testing.T) {
		s := NewScene(faces, 400, 400, quietLogger())
		op := s.Create("ace_of_spades")
		assert.False(t, op.Blank)
		v, ok := s.Visual(op.Handle)
		require.True(t, ok)
		assert.Equal(t, []byte("A♠"), v.Face)
		assert.True(t, v.FaceDown)
		assert.Equal(t, 400.0, v.X)
	})

	t.Run("missing face", func(t *testing.T) {
		s := NewScene(faces, 0, 0, quietLogger())
		op := s.Create("2_of_clubs")
		assert.True(t, op.Blank)
		assert.NotEqual(t, NoHandle, op.Handle)
	})

	t.Run("missing back", func(t *testing.T) {
		s := NewScene(mapFaces{"ace_of_spades": []byte("A♠")}, 0, 0, quietLogger())
		assert.True(t, s.Create("ace_of_spades").Blank)
	})

	t.Run("no face source", func(t *testing.T) {
		s := NewScene(nil, 0, 0, quietLogger())
		assert.True(t, s.Create("ace_of_spades").Blank)
	})
}

func TestSceneMoveAndRelease(t *testing.T) {
	s := NewScene(nil, 0, 0, quietLogger())
	h := s.Create("ace_of_spades").Handle

	_, ok := s.Move(h, 120, -150, false)
	require.True(t, ok)
	assert.True(t, s.FaceDown(h))

	_, ok = s.Move(h, 120, -150, true)
	require.True(t, ok)
	assert.False(t, s.FaceDown(h))
	assert.Len(t, s.Row(-150), 1)

	_, ok = s.Release(h)
	assert.True(t, ok)
	_, ok = s.Release(h)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Live())

	_, ok = s.Move(h, 0, 0, true)
	assert.False(t, ok)
}

func TestRecorderCompletesInIssueOrder(t *testing.T) {
	r := NewRecorder(nil, quietLogger())
	a := r.CreateVisual("a")
	b := r.CreateVisual("b")

	var order []string
	r.Animate(a, 1, 1, func() {
		order = append(order, "a")
		r.Animate(b, 2, 2, func() { order = append(order, "b") }, true)
	}, true)

	assert.Equal(t, 1, r.Pending())
	assert.Equal(t, 2, r.Drain())
	assert.Equal(t, []string{"a", "b"}, order)
	assert.False(t, r.Step())
}

func TestRecorderCountsDoubleRelease(t *testing.T) {
	r := NewRecorder(nil, quietLogger())
	h := r.CreateVisual("a")
	r.Release(h)
	r.Release(h)
	assert.Equal(t, 1, r.DoubleReleases())
}

func TestRecorderPanelsAndMessages(t *testing.T) {
	r := NewRecorder(nil, quietLogger())
	var seen []OpKind
	r.OnOp(func(op Op) { seen = append(seen, op.Kind) })

	r.TogglePanel(PanelMessage, true)
	r.SetMessage(PanelMessage, "Welcome to Blackjack!")

	assert.True(t, r.Scene().PanelVisible(PanelMessage))
	assert.Equal(t, "Welcome to Blackjack!", r.Scene().Message(PanelMessage))
	assert.Equal(t, []OpKind{OpPanel, OpMessage}, seen)
	assert.Len(t, r.Ops(), 2)
}
