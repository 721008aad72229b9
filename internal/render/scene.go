package render

import (
	"sort"

	"github.com/charmbracelet/log"
)

// OpKind is the kind of a surface operation
type OpKind string

const (
	OpCreate  OpKind = "create"
	OpAnimate OpKind = "animate"
	OpRelease OpKind = "release"
	OpPanel   OpKind = "panel"
	OpMessage OpKind = "message"
)

// Op is one observable surface operation. Surfaces emit Ops so that
// remote clients and tests can follow what would be drawn.
type Op struct {
	Kind    OpKind  `json:"kind"`
	Handle  Handle  `json:"handle,omitempty"`
	CardID  string  `json:"card_id,omitempty"`
	Blank   bool    `json:"blank,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Flip    bool    `json:"flip,omitempty"`
	Panel   Panel   `json:"panel,omitempty"`
	Visible bool    `json:"visible,omitempty"`
	Text    string  `json:"text,omitempty"`
}

// Visual is the scene's record of one card visual
type Visual struct {
	Handle   Handle
	CardID   string
	Face     []byte
	Back     []byte
	Blank    bool
	X, Y     float64
	FaceDown bool
}

// Scene is the in-memory model every surface keeps: live visuals, panel
// visibility and message text. It is not safe for concurrent use; it
// belongs to the game's single logical thread.
type Scene struct {
	faces    FaceSource
	logger   *log.Logger
	spawnX   float64
	spawnY   float64
	next     Handle
	visuals  map[Handle]*Visual
	panels   map[Panel]bool
	messages map[Panel]string
}

// NewScene creates an empty scene. New visuals spawn at (spawnX, spawnY)
// face down. faces may be nil, in which case every visual is blank.
func NewScene(faces FaceSource, spawnX, spawnY float64, logger *log.Logger) *Scene {
	return &Scene{
		faces:    faces,
		logger:   logger,
		spawnX:   spawnX,
		spawnY:   spawnY,
		visuals:  make(map[Handle]*Visual),
		panels:   make(map[Panel]bool),
		messages: make(map[Panel]string),
	}
}

// Create adds a face-down visual for cardID. A missing face or back
// degrades to a blank visual instead of failing.
func (s *Scene) Create(cardID string) Op {
	s.next++
	v := &Visual{
		Handle:   s.next,
		CardID:   cardID,
		X:        s.spawnX,
		Y:        s.spawnY,
		FaceDown: true,
	}

	if s.faces == nil {
		v.Blank = true
	} else {
		back, err := s.faces.Face(BackFace)
		if err != nil {
			s.logger.Warn("Missing card back, using blank visual", "error", err)
			v.Blank = true
		} else {
			v.Back = back
			face, err := s.faces.Face(cardID)
			if err != nil {
				s.logger.Warn("Missing card face, using blank visual", "card", cardID, "error", err)
				v.Blank = true
			}
			v.Face = face
		}
	}

	s.visuals[v.Handle] = v
	return Op{Kind: OpCreate, Handle: v.Handle, CardID: cardID, Blank: v.Blank, X: v.X, Y: v.Y}
}

// Move places a visual at its animation target, turning it face up when
// flip is set. It reports false for unknown handles.
func (s *Scene) Move(h Handle, x, y float64, flip bool) (Op, bool) {
	v, ok := s.visuals[h]
	if !ok {
		return Op{}, false
	}
	v.X, v.Y = x, y
	if flip {
		v.FaceDown = false
	}
	return Op{Kind: OpAnimate, Handle: h, X: x, Y: y, Flip: flip}, true
}

// Release drops a visual. It reports false if the handle was not live,
// which means a double release.
func (s *Scene) Release(h Handle) (Op, bool) {
	if _, ok := s.visuals[h]; !ok {
		return Op{}, false
	}
	delete(s.visuals, h)
	return Op{Kind: OpRelease, Handle: h}, true
}

// FaceDown reports whether a live visual still shows its back
func (s *Scene) FaceDown(h Handle) bool {
	v, ok := s.visuals[h]
	return ok && v.FaceDown
}

// SetPanel records panel visibility
func (s *Scene) SetPanel(p Panel, visible bool) Op {
	s.panels[p] = visible
	return Op{Kind: OpPanel, Panel: p, Visible: visible}
}

// SetMessage records the text shown in a message slot
func (s *Scene) SetMessage(p Panel, text string) Op {
	s.messages[p] = text
	return Op{Kind: OpMessage, Panel: p, Text: text}
}

// PanelVisible reports whether a panel is shown
func (s *Scene) PanelVisible(p Panel) bool {
	return s.panels[p]
}

// Message returns the text of a message slot
func (s *Scene) Message(p Panel) string {
	return s.messages[p]
}

// Visual returns a copy of a live visual
func (s *Scene) Visual(h Handle) (Visual, bool) {
	v, ok := s.visuals[h]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Live returns the number of live visuals
func (s *Scene) Live() int {
	return len(s.visuals)
}

// Row returns copies of the live visuals whose Y matches y, ordered by
// creation.
func (s *Scene) Row(y float64) []Visual {
	var row []Visual
	for _, v := range s.visuals {
		if v.Y == y {
			row = append(row, *v)
		}
	}
	sort.Slice(row, func(i, j int) bool { return row[i].Handle < row[j].Handle })
	return row
}
