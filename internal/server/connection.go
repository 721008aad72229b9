package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/render"
	"github.com/lox/blackjack/internal/state"
	"github.com/lox/blackjack/internal/table"
)

const (
	writeTimeout   = 10 * time.Second
	pongTimeout    = 60 * time.Second
	pingInterval   = pongTimeout * 9 / 10 // must beat pongTimeout
	maxInboundSize = 1024
	sendQueueSize  = 256
)

// ErrSlowClient is returned when a client stops draining its messages
var ErrSlowClient = errors.New("client send queue full")

// Connection is one WebSocket client playing at its own table
type Connection struct {
	ws        *websocket.Conn
	outbox    chan *Message
	table     *table.Table
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps ws and binds it to t. The table is started by
// Start and stops when the connection closes.
func NewConnection(ws *websocket.Conn, t *table.Table, logger *log.Logger) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		ws:     ws,
		outbox: make(chan *Message, sendQueueSize),
		table:  t,
		logger: logger.WithPrefix("conn").With("remote", ws.RemoteAddr().String()),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start observes the table and begins pumping messages both ways
func (c *Connection) Start() {
	c.table.Observe(c.forwardOp, game.SubscriberFunc(c.forwardEvent))

	go c.runTable()
	go c.writeLoop()
	go c.readLoop()
}

// Close stops the table. The write loop flushes queued messages and
// then drops the socket. Safe to call repeatedly.
func (c *Connection) Close() error {
	c.closeOnce.Do(c.cancel)
	return nil
}

// Done is closed once the connection is closing
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// SendMessage queues msg for the client. A client whose queue is full
// is disconnected.
func (c *Connection) SendMessage(msg *Message) error {
	select {
	case c.outbox <- msg:
		return nil
	default:
		c.logger.Warn("Send queue full, dropping client")
		_ = c.Close()
		return ErrSlowClient
	}
}

// runTable runs the table until the connection closes. A table that
// dies (an exhausted deck) reports the error and drops the client.
func (c *Connection) runTable() {
	if err := c.table.Run(c.ctx); err != nil {
		c.logger.Error("Table stopped", "error", err)
		c.sendError("table_failed", err.Error())
	}
	_ = c.Close()
}

func (c *Connection) readLoop() {
	defer func() { _ = c.Close() }()

	c.ws.SetReadLimit(maxInboundSize)
	extend := func() { _ = c.ws.SetReadDeadline(time.Now().Add(pongTimeout)) }
	extend()
	c.ws.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	for c.ctx.Err() == nil {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("Read failed", "error", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writeLoop() {
	ping := time.NewTicker(pingInterval)
	defer func() {
		ping.Stop()
		_ = c.ws.Close()
	}()

	write := func(fn func() error) bool {
		_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := fn(); err != nil {
			c.logger.Debug("Write failed", "error", err)
			_ = c.Close()
			return false
		}
		return true
	}

	for {
		select {
		case msg := <-c.outbox:
			if !write(func() error { return c.ws.WriteJSON(msg) }) {
				return
			}
		case <-ping.C:
			if !write(func() error { return c.ws.WriteMessage(websocket.PingMessage, nil) }) {
				return
			}
		case <-c.ctx.Done():
			c.flush(write)
			return
		}
	}
}

// flush writes whatever is still queued, then says goodbye
func (c *Connection) flush(write func(func() error) bool) {
	for {
		select {
		case msg := <-c.outbox:
			if !write(func() error { return c.ws.WriteJSON(msg) }) {
				return
			}
		default:
			write(func() error {
				return c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			})
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeSignal:
		var data SignalData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse signal data")
			return
		}
		sig, ok := state.ParseSignal(data.Signal)
		if !ok {
			c.sendError("unknown_signal", "Unknown signal: "+data.Signal)
			return
		}
		if !c.table.Signal(sig) {
			c.sendError("table_stopped", "Table is no longer running")
		}

	case MessageTypeNewGame:
		if !c.table.NewGame() {
			c.sendError("table_stopped", "Table is no longer running")
		}

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) sendError(code, text string) {
	c.forward(MessageTypeError, ErrorData{Code: code, Message: text})
}

func (c *Connection) forward(t MessageType, data any) {
	msg, err := NewMessage(t, data)
	if err != nil {
		c.logger.Error("Failed to encode message", "type", t, "error", err)
		return
	}
	_ = c.SendMessage(msg)
}

func (c *Connection) forwardOp(op render.Op) {
	c.forward(MessageTypeOp, op)
}

func (c *Connection) forwardEvent(e game.GameEvent) {
	switch ev := e.(type) {
	case state.StateChangedEvent:
		c.forward(MessageTypeState, StateData{From: string(ev.From), To: string(ev.To)})
	case game.HandResolvedEvent:
		c.forward(MessageTypeEvent, EventData{Type: ev.EventType().String(), Text: game.FormatEvent(ev)})
		c.forward(MessageTypeOutcome, OutcomeDataFromEvent(ev))
	default:
		c.forward(MessageTypeEvent, EventData{Type: e.EventType().String(), Text: game.FormatEvent(e)})
	}
}
