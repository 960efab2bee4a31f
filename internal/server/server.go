package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/rffetap/internal/logging"
	"github.com/muurk/rffetap/internal/render"
	"github.com/muurk/rffetap/internal/rffe"
)

// Config holds the streaming server configuration
type Config struct {
	Listen     string // Listen address, e.g. ":8190"
	SampleRate uint64 // Capture sampling rate in Hz, 0 when unknown
	Source     string // Capture description reported to clients
}

// Server streams decoded annotations to WebSocket clients. It is also a
// decoder sink: annotations fed to Annotate are buffered for replay and
// broadcast to every connected client.
type Server struct {
	config *Config
	hub    *hub

	mu       sync.Mutex
	listener net.Listener
	httpSrv  *http.Server
}

// New creates a new Server instance
func New(config *Config) *Server {
	return &Server{
		config: config,
		hub:    newHub(),
	}
}

// Annotate implements rffe.Sink: the annotation joins the replay buffer
// and goes out to connected clients.
func (s *Server) Annotate(a rffe.Annotation) {
	s.hub.publish(render.NewEvent(a, s.config.SampleRate))
}

// Addr returns the bound listen address, empty before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Port returns the bound TCP port, 0 before Start.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Listen binds the listen address. Call before Serve when the bound
// port is needed up front, e.g. for the mDNS announcement.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	return nil
}

// Start binds the listen address and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve(ctx)
}

// Serve runs the stream until ctx is cancelled. Listen must have been
// called.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()
	if ln == nil {
		return fmt.Errorf("serve before listen")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleInfo)
	mux.HandleFunc("/stream", s.handleStream)

	srv := &http.Server{
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	s.mu.Lock()
	s.httpSrv = srv
	s.mu.Unlock()

	go s.hub.run(ctx)

	logging.Info("Annotation stream listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("source", s.config.Source),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// info is the document served at the root endpoint.
type info struct {
	Service    string `json:"service"`
	Source     string `json:"source"`
	SampleRate uint64 `json:"samplerate,omitempty"`
	Buffered   int    `json:"buffered"`
	StreamPath string `json:"stream_path"`
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(info{
		Service:    "rffetap",
		Source:     s.config.Source,
		SampleRate: s.config.SampleRate,
		Buffered:   s.hub.buffered(),
		StreamPath: "/stream",
	})
}
