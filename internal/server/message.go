package server

import (
	"encoding/json"
	"time"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type SignalData struct {
	Signal string `json:"signal"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type StateData struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type EventData struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type OutcomeData struct {
	Outcome     string   `json:"outcome"`
	Message     string   `json:"message"`
	PlayerValue int      `json:"player_value"`
	DealerValue int      `json:"dealer_value"`
	PlayerCards []string `json:"player_cards"`
	DealerCards []string `json:"dealer_cards"`
}

// OutcomeDataFromEvent converts a resolved hand to its wire form
func OutcomeDataFromEvent(e game.HandResolvedEvent) OutcomeData {
	names := func(cards []deck.Card) []string {
		out := make([]string, len(cards))
		for i, c := range cards {
			out[i] = c.ShortName()
		}
		return out
	}
	return OutcomeData{
		Outcome:     e.Outcome.String(),
		Message:     e.Outcome.Message(),
		PlayerValue: e.PlayerValue,
		DealerValue: e.DealerValue,
		PlayerCards: names(e.PlayerCards),
		DealerCards: names(e.DealerCards),
	}
}
