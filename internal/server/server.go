// Package server serves blackjack tables over WebSocket. Every client
// gets its own table; surface operations and game events stream out as
// JSON messages and signals stream in.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/table"
)

// TableFactory builds a fresh table for each new connection
type TableFactory func() *table.Table

// Server accepts WebSocket players
type Server struct {
	addr       string
	upgrader   websocket.Upgrader
	newTable   TableFactory
	logger     *log.Logger
	httpServer *http.Server

	mu    sync.RWMutex
	conns map[*Connection]struct{}

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a server listening on addr once started
func NewServer(addr string, newTable TableFactory, logger *log.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		newTable: newTable,
		logger:   logger.WithPrefix("server"),
		conns:    make(map[*Connection]struct{}),
		ctx:      ctx,
		cancel:   cancel,
	}
	s.httpServer = &http.Server{Addr: addr, Handler: s.Handler()}
	return s
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.logger.Info("Listening", "addr", s.addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drops every client and shuts the listener down
func (s *Server) Stop(ctx context.Context) error {
	s.cancel()

	s.mu.RLock()
	for conn := range s.conns {
		_ = conn.Close()
	}
	s.mu.RUnlock()

	return s.httpServer.Shutdown(ctx)
}

// ConnectionCount returns the number of seated clients
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conns)
}

func (s *Server) track(conn *Connection) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx.Err() != nil {
		return false
	}
	s.conns[conn] = struct{}{}
	s.logger.Info("Client connected", "total", len(s.conns))
	return true
}

func (s *Server) untrack(conn *Connection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
	s.logger.Info("Client disconnected", "total", len(s.conns))
}

// handleWebSocket upgrades the request and seats the client at a new table
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	conn := NewConnection(ws, s.newTable(), s.logger)
	if !s.track(conn) {
		_ = conn.Close()
		_ = ws.Close()
		return
	}
	conn.Start()

	go func() {
		<-conn.Done()
		s.untrack(conn)
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
