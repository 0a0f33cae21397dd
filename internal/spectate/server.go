package spectate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Server exposes a Hub over HTTP.
type Server struct {
	Hub  *Hub
	srv  *http.Server
	addr net.Addr
}

// Listen binds addr and starts serving in the background. Use ":0" for an
// ephemeral port and read it back from Addr.
func Listen(addr string) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("spectator listen %s: %w", addr, err)
	}
	hub := NewHub()
	s := &Server{
		Hub:  hub,
		srv:  &http.Server{Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second},
		addr: ln.Addr(),
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("spectator server failed")
		}
	}()
	return s, nil
}

// Addr is the bound listen address.
func (s *Server) Addr() net.Addr { return s.addr }

// Shutdown flushes and disconnects viewers, then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Close()
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("spectator shutdown: %w", err)
	}
	return nil
}
