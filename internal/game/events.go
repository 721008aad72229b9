package game

import (
	"fmt"
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeStateChange  EventType = "state_change"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypeStand        EventType = "stand"
	EventTypeHandResolved EventType = "hand_resolved"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens at the table
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// CardDealtEvent is published when a card joins a hand
type CardDealtEvent struct {
	Role      Role
	Card      deck.Card
	FaceDown  bool
	HandValue int
	timestamp time.Time
}

func (e CardDealtEvent) EventType() EventType { return EventTypeCardDealt }
func (e CardDealtEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDealtEvent creates a new card dealt event
func NewCardDealtEvent(role Role, card deck.Card, faceDown bool, handValue int) CardDealtEvent {
	return CardDealtEvent{
		Role:      role,
		Card:      card,
		FaceDown:  faceDown,
		HandValue: handValue,
		timestamp: time.Now(),
	}
}

// StandEvent is published when a participant stands
type StandEvent struct {
	Role      Role
	HandValue int
	timestamp time.Time
}

func (e StandEvent) EventType() EventType { return EventTypeStand }
func (e StandEvent) Timestamp() time.Time { return e.timestamp }

// NewStandEvent creates a new stand event
func NewStandEvent(role Role, handValue int) StandEvent {
	return StandEvent{Role: role, HandValue: handValue, timestamp: time.Now()}
}

// HandResolvedEvent is published when the game-over state settles a hand
type HandResolvedEvent struct {
	Outcome     Outcome
	PlayerValue int
	DealerValue int
	PlayerCards []deck.Card
	DealerCards []deck.Card
	timestamp   time.Time
}

func (e HandResolvedEvent) EventType() EventType { return EventTypeHandResolved }
func (e HandResolvedEvent) Timestamp() time.Time { return e.timestamp }

// NewHandResolvedEvent captures the final hands of a session
func NewHandResolvedEvent(outcome Outcome, s *Session) HandResolvedEvent {
	return HandResolvedEvent{
		Outcome:     outcome,
		PlayerValue: s.Player().Hand().Value(),
		DealerValue: s.Dealer().Hand().Value(),
		PlayerCards: s.Player().Hand().Cards(),
		DealerCards: s.Dealer().Hand().Cards(),
		timestamp:   time.Now(),
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(GameEvent)

// OnEvent calls f
func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event GameEvent)
}

// SimpleEventBus is a synchronous in-memory event bus. Like the rest of
// the core it is used from a single goroutine.
type SimpleEventBus struct {
	nextID      int
	subscribers map[int]EventSubscriber
	order       []int
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{subscribers: make(map[int]EventSubscriber)}
}

// Subscribe adds a subscriber and returns a func that removes it
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.nextID++
	id := bus.nextID
	bus.subscribers[id] = subscriber
	bus.order = append(bus.order, id)
	return func() {
		delete(bus.subscribers, id)
		for i, o := range bus.order {
			if o == id {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers an event to subscribers in subscription order
func (bus *SimpleEventBus) Publish(event GameEvent) {
	ids := append([]int(nil), bus.order...)
	for _, id := range ids {
		if sub, ok := bus.subscribers[id]; ok {
			sub.OnEvent(event)
		}
	}
}

// FormatEvent renders a domain event as a log line. Unknown events fall
// back to their type name.
func FormatEvent(event GameEvent) string {
	switch e := event.(type) {
	case CardDealtEvent:
		if e.FaceDown {
			return fmt.Sprintf("%s is dealt a card face down", e.Role)
		}
		return fmt.Sprintf("%s is dealt %s (%d)", e.Role, e.Card, e.HandValue)
	case StandEvent:
		return fmt.Sprintf("%s stands on %d", e.Role, e.HandValue)
	case HandResolvedEvent:
		return fmt.Sprintf("%s %s", e.Outcome.Message(), Summary(e.PlayerValue, e.DealerValue))
	default:
		return event.EventType().String()
	}
}
