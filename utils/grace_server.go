package utils

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultReadTimeout = 60 * time.Second

// Server wraps http.Server to support graceful shutdown on SIGTERM/SIGINT.
type Server struct {
	*http.Server

	signalChan   chan os.Signal
	shutdownChan chan struct{}
}

// NewServer creates a Server with the given address and handler. The write
// timeout stays zero so event-stream connections can idle.
func NewServer(addr string, handler http.Handler, readTimeout time.Duration) *Server {
	return &Server{
		Server: &http.Server{
			Addr:        addr,
			Handler:     handler,
			ReadTimeout: readTimeout,
		},
		signalChan:   make(chan os.Signal, 1),
		shutdownChan: make(chan struct{}),
	}
}

// ListenAndServe serves until a shutdown signal arrives, then drains
// in-flight requests before returning.
func (srv *Server) ListenAndServe() error {
	go srv.handleSignals()
	err := srv.Server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		// Wait until Shutdown finished
		<-srv.shutdownChan
		return nil
	}
	return err
}

func (srv *Server) handleSignals() {
	signal.Notify(srv.signalChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-srv.signalChan
	Sugar.Infof("received %s, graceful shutting down HTTP server", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		Sugar.Errorf("HTTP server shutdown error: %v", err)
	} else {
		Sugar.Info("HTTP server shutdown success")
	}
	close(srv.shutdownChan)
}

// GraceServer starts an HTTP server with graceful shutdown.
func GraceServer(addr string, handler http.Handler) error {
	return NewServer(addr, handler, defaultReadTimeout).ListenAndServe()
}
