package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/table"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// stackedTables deals cards first at every new table, with animations
// that complete immediately
func stackedTables(cards string) TableFactory {
	stacked := deck.MustParseCards(cards)
	return func() *table.Table {
		return table.New(table.Options{
			Clock:   quartz.NewReal(),
			NewDeck: func() *deck.Deck { return deck.NewStackedDeck(stacked...) },
			Logger:  testLogger(),
		})
	}
}

func startTestServer(t *testing.T, factory TableFactory) (*Server, string) {
	t.Helper()
	srv := NewServer("127.0.0.1:0", factory, testLogger())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		srv.cancel()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, mt MessageType, data interface{}) {
	t.Helper()
	msg, err := NewMessage(mt, data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(msg))
}

// readUntil reads messages until match returns true
func readUntil(t *testing.T, conn *websocket.Conn, match func(*Message) bool) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if match(&msg) {
			return &msg
		}
	}
}

func isState(to string) func(*Message) bool {
	return func(m *Message) bool {
		if m.Type != MessageTypeState {
			return false
		}
		var data StateData
		return json.Unmarshal(m.Data, &data) == nil && data.To == to
	}
}

func isType(mt MessageType) func(*Message) bool {
	return func(m *Message) bool { return m.Type == mt }
}

func TestServerHealth(t *testing.T) {
	srv := NewServer("127.0.0.1:0", stackedTables(""), testLogger())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
	srv.cancel()
}

func TestServerPlaysHandOverWebSocket(t *testing.T) {
	_, url := startTestServer(t, stackedTables("Th 9c 6d 7s Ks"))
	conn := dial(t, url)

	readUntil(t, conn, isState("setup"))

	send(t, conn, MessageTypeNewGame, struct{}{})
	readUntil(t, conn, isState("player"))

	send(t, conn, MessageTypeSignal, SignalData{Signal: "hit"})
	msg := readUntil(t, conn, isType(MessageTypeOutcome))

	var outcome OutcomeData
	require.NoError(t, json.Unmarshal(msg.Data, &outcome))
	assert.Equal(t, "player_bust", outcome.Outcome)
	assert.Equal(t, "Player Busted! Dealer Wins!", outcome.Message)
	assert.Equal(t, 26, outcome.PlayerValue)
	assert.Equal(t, 16, outcome.DealerValue)
	assert.Equal(t, []string{"10H", "6D", "KS"}, outcome.PlayerCards)
}

func TestServerStreamsSurfaceOps(t *testing.T) {
	_, url := startTestServer(t, stackedTables("Th 9c 9d 7s"))
	conn := dial(t, url)

	send(t, conn, MessageTypeSignal, SignalData{Signal: "start-game"})

	var creates []render.Op
	readUntil(t, conn, func(m *Message) bool {
		if m.Type == MessageTypeOp {
			var op render.Op
			require.NoError(t, json.Unmarshal(m.Data, &op))
			if op.Kind == render.OpCreate {
				creates = append(creates, op)
			}
		}
		return len(creates) == 4
	})

	assert.Equal(t, "10_of_hearts", creates[0].CardID)
	assert.Equal(t, "9_of_clubs", creates[1].CardID)
	assert.True(t, creates[0].Blank, "no faces configured")
}

func TestServerRejectsBadInput(t *testing.T) {
	_, url := startTestServer(t, stackedTables(""))
	conn := dial(t, url)

	send(t, conn, MessageTypeSignal, SignalData{Signal: "split"})
	msg := readUntil(t, conn, isType(MessageTypeError))
	var data ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "unknown_signal", data.Code)

	send(t, conn, "bet", struct{}{})
	msg = readUntil(t, conn, isType(MessageTypeError))
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "unknown_message_type", data.Code)
}

func TestServerTablePerConnection(t *testing.T) {
	srv, url := startTestServer(t, stackedTables("Th 9c 6d 7s Ks"))
	first := dial(t, url)
	second := dial(t, url)

	send(t, first, MessageTypeNewGame, struct{}{})
	readUntil(t, first, isState("player"))

	// the second client's table is still waiting in setup
	send(t, second, MessageTypeSignal, SignalData{Signal: "hit"})
	send(t, second, MessageTypeNewGame, struct{}{})
	readUntil(t, second, isState("deal"))

	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 2 }, 5*time.Second, 10*time.Millisecond)

	_ = second.Close()
	assert.Eventually(t, func() bool { return srv.ConnectionCount() == 1 }, 5*time.Second, 10*time.Millisecond)
}
