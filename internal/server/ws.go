package server

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/deckpeek/deckpeek/internal/session"
)

// wsSurface adapts a websocket connection to the session.Surface interface.
// Writes are serialized; gorilla/websocket allows one concurrent writer.
type wsSurface struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newWSSurface(conn *websocket.Conn) *wsSurface {
	return &wsSurface{conn: conn}
}

func (s *wsSurface) Send(ctx context.Context, msg session.Outbound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(msg)
}
