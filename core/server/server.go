package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Server serves a Fiber application over TLS.
type Server struct {
	cfg    Config
	app    *fiber.App
	tls    *tls.Config
	logger *zap.Logger

	mu sync.Mutex
	ln net.Listener
}

// New validates the certificate pair and prepares the TLS context.
// It never binds a socket; a missing pair yields a *ConfigurationError.
func New(cfg Config, app *fiber.App, logger *zap.Logger) (*Server, error) {
	if err := CheckCertificates(cfg); err != nil {
		return nil, err
	}
	tlsConfig, err := LoadTLSConfig(cfg)
	if err != nil {
		return nil, err
	}
	// Handshake and transport failures are reported by fasthttp itself
	app.Server().Logger = zap.NewStdLog(logger.Named("fasthttp"))

	return &Server{
		cfg:    cfg,
		app:    app,
		tls:    tlsConfig,
		logger: logger,
	}, nil
}

// Listen binds the TCP listener and wraps it in TLS.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return errors.New("server is already listening")
	}
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	s.ln = tls.NewListener(ln, s.tls)
	s.logger.Info("Listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Serve accepts connections on the bound listener until Shutdown is called.
func (s *Server) Serve() error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	if ln == nil {
		return errors.New("server is not listening")
	}
	return s.app.Listener(ln)
}

// ListenAndServe binds the listener and serves until shutdown.
func (s *Server) ListenAndServe() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// URL returns the base URL, using the bound port once listening.
func (s *Server) URL() string {
	port := s.cfg.Port
	s.mu.Lock()
	if s.ln != nil {
		if addr, ok := s.ln.Addr().(*net.TCPAddr); ok {
			port = fmt.Sprint(addr.Port)
		}
	}
	s.mu.Unlock()
	return "https://" + net.JoinHostPort(s.cfg.Host, port)
}

// Shutdown stops accepting connections. In-flight connections get at most
// ShutdownTimeout to finish; they are not drained beyond that.
//
// The listener is closed here as well: fasthttp only knows about it once
// Serve has reached its accept loop, and a closed listener makes Serve return.
func (s *Server) Shutdown() error {
	err := s.app.ShutdownWithTimeout(s.cfg.ShutdownTimeout)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		s.logger.Debug("Shutdown deadline reached with open connections")
		err = nil
	case errors.Is(err, net.ErrClosed):
		err = nil
	}

	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()
	if ln != nil {
		if cerr := ln.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) && err == nil {
			err = fmt.Errorf("failed to close listener: %w", cerr)
		}
	}
	return err
}
