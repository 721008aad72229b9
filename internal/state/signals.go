package state

// Signal is a named, payload-free input produced by the UI
type Signal string

const (
	SignalStartGame Signal = "start-game"
	SignalHit       Signal = "hit"
	SignalStand     Signal = "stand"
	SignalNewGame   Signal = "new-game"
)

// ParseSignal maps a wire name to a Signal
func ParseSignal(name string) (Signal, bool) {
	switch s := Signal(name); s {
	case SignalStartGame, SignalHit, SignalStand, SignalNewGame:
		return s, true
	default:
		return "", false
	}
}

type subscription struct {
	id      int
	handler func()
}

// Signals routes input signals to whichever handlers the active state
// subscribed. Not safe for concurrent use.
type Signals struct {
	nextID   int
	handlers map[Signal][]subscription
}

// NewSignals creates an empty signal bus
func NewSignals() *Signals {
	return &Signals{handlers: make(map[Signal][]subscription)}
}

// Subscribe registers handler for sig and returns a func that removes it
func (s *Signals) Subscribe(sig Signal, handler func()) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.handlers[sig] = append(s.handlers[sig], subscription{id: id, handler: handler})
	return func() {
		subs := s.handlers[sig]
		for i, sub := range subs {
			if sub.id == id {
				s.handlers[sig] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers sig once to each handler subscribed at the time of the
// call and reports whether anyone was listening.
func (s *Signals) Emit(sig Signal) bool {
	subs := append([]subscription(nil), s.handlers[sig]...)
	for _, sub := range subs {
		sub.handler()
	}
	return len(subs) > 0
}

// Listening reports whether any handler is subscribed to sig
func (s *Signals) Listening(sig Signal) bool {
	return len(s.handlers[sig]) > 0
}
