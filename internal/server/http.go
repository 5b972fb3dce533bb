package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/zeusync/skyloop/internal/core/config"
	"github.com/zeusync/skyloop/internal/core/observability/log"
)

// HTTPServer serves the spectator websocket at /ws and a liveness probe at
// /healthz.
type HTTPServer struct {
	cfg       config.Spectator
	spectator *Spectator
	logger    log.Log

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

func NewHTTPServer(cfg config.Spectator, spectator *Spectator, logger log.Log) *HTTPServer {
	return &HTTPServer{
		cfg:       cfg,
		spectator: spectator,
		logger:    logger.With(log.String("component", "http")),
	}
}

func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", s.spectator)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Start listens on the configured address and serves in the background.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return ErrServerAlreadyRunning
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.ListenAddr)
	if err != nil {
		return errors.Join(ErrListenerFailed, err)
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server stopped", log.Error(err))
		}
	}(s.server)

	s.logger.Info("spectator feed listening", log.String("addr", ln.Addr().String()))
	return nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *HTTPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop disconnects spectators and shuts the listener down.
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.server
	s.mu.Unlock()
	if srv == nil {
		return ErrServerClosed
	}
	s.spectator.Close()
	return srv.Shutdown(ctx)
}
