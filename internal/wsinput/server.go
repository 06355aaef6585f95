// Package wsinput accepts touch input from a browser over a websocket.
package wsinput

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pleimann/swipepad/internal/gesture"
)

// Path is the endpoint the touch page connects to
const Path = "/touch"

// Message is one pointer event from the client
type Message struct {
	T        string  `json:"t"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pointers int     `json:"pointers"`
}

var messageActions = map[string]gesture.Action{
	"down":   gesture.ActionDown,
	"move":   gesture.ActionMove,
	"up":     gesture.ActionUp,
	"cancel": gesture.ActionCancel,
}

// Event converts m to a pointer event stamped with received. A missing
// pointer count means one contact.
func (m Message) Event(received time.Time) (gesture.PointerEvent, error) {
	action, ok := messageActions[m.T]
	if !ok {
		return gesture.PointerEvent{}, fmt.Errorf("unknown message type %q", m.T)
	}
	contacts := m.Pointers
	if contacts <= 0 {
		contacts = 1
	}
	return gesture.PointerEvent{
		Action:   action,
		Sample:   gesture.NewSample(m.X, m.Y, received),
		Contacts: contacts,
	}, nil
}

// ErrBusy is returned when a second client connects
var ErrBusy = errors.New("touch connection already active")

// Server handles the touch websocket. Only one client is served at a
// time.
type Server struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	events   chan<- gesture.PointerEvent
	conn     *websocket.Conn
	now      func() time.Time
}

// NewServer creates a server delivering events to events
func NewServer(events chan<- gesture.PointerEvent) *Server {
	return &Server{
		events: events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		now: time.Now,
	}
}

// Handler returns a mux serving the websocket at Path
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, s)
	return mux
}

// ListenAndServe serves the touch endpoint on addr until ctx is done
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return fmt.Errorf("touch server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		return ctx.Err()
	}
}

// ServeHTTP upgrades the connection and forwards pointer messages
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error()),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	var contact gesture.Contact

	ctx := r.Context()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Touch connection closed: %v", err)
			}
			s.cancelContact(ctx.Done(), &contact)
			return
		}

		ev, err := msg.Event(s.now())
		if err != nil {
			log.Printf("Ignoring touch message: %v", err)
			continue
		}

		select {
		case s.events <- ev:
			contact.Observe(ev)
		case <-ctx.Done():
			return
		}
	}
}

// cancelContact ends the contact left open by a dropped client at the
// last position it reported
func (s *Server) cancelContact(done <-chan struct{}, contact *gesture.Contact) {
	ev, ok := contact.Cancel(s.now())
	if !ok {
		return
	}
	select {
	case s.events <- ev:
	case <-done:
	}
}

func (s *Server) acceptConn(conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return ErrBusy
	}
	s.conn = conn
	return nil
}

func (s *Server) cleanupConn(conn *websocket.Conn) {
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
	conn.Close()
}

// Connected reports whether a client is attached
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}
