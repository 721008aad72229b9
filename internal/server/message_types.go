package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeSignal  MessageType = "signal"
	MessageTypeNewGame MessageType = "new_game"

	// Server to client messages
	MessageTypeOp      MessageType = "op"
	MessageTypeState   MessageType = "state"
	MessageTypeEvent   MessageType = "event"
	MessageTypeOutcome MessageType = "outcome"
	MessageTypeError   MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}
