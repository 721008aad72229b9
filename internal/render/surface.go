// Package render defines the boundary between the game core and whatever
// draws it. The core only ever talks to a Surface; the terminal UI, the
// headless server surface and the test Recorder all implement it on top
// of a shared Scene.
package render

// Handle identifies a card visual owned by a surface. The zero Handle is
// never issued.
type Handle int

// NoHandle is the zero Handle
const NoHandle Handle = 0

// Panel names a UI panel or message slot
type Panel string

const (
	PanelMessage    Panel = "message"
	PanelSubMessage Panel = "sub_message"
	PanelGameplay   Panel = "gameplay"
)

// BackFace is the asset name used for the back of every card
const BackFace = "card_back"

// Surface is the rendering collaborator consumed by the game states.
//
// Animate is fire-and-forget: it returns immediately and the surface
// must invoke onComplete exactly once, later, on the same logical thread
// that drives the game. When flip is true the card turns face up as it
// moves; otherwise it keeps its current face.
type Surface interface {
	CreateVisual(cardID string) Handle
	Animate(h Handle, x, y float64, onComplete func(), flip bool)
	Release(h Handle)
	FaceDown(h Handle) bool
	TogglePanel(p Panel, visible bool)
	SetMessage(p Panel, text string)
}

// FaceSource resolves card identifiers to face artwork
type FaceSource interface {
	Face(name string) ([]byte, error)
}
