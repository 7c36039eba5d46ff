package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"camserve/internal/certengine"
	"camserve/internal/netaddr"
)

// Server is the camserve application server. It provisions the self-signed
// certificate, reports the reachable URLs, and serves the document root over
// HTTPS until interrupted.
type Server struct {
	config Config
	logger *slog.Logger
	out    io.Writer // operator-facing banner output, stdout outside tests
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.CertFile == "" {
		cfg.CertFile = "cert.pem"
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &Server{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
	}, nil
}

// Run provisions the certificate, binds the TLS listener, prints the startup
// report, and blocks serving requests until ctx is cancelled or the process
// receives SIGINT/SIGTERM. A clean shutdown returns nil.
func (s *Server) Run(ctx context.Context) error {
	cert, generated, err := certengine.Ensure(s.config.CertFile, s.config.Hosts)
	if err != nil {
		return fmt.Errorf("provision certificate: %w", err)
	}
	if generated {
		s.logger.Info("generated self-signed certificate",
			"path", s.config.CertFile,
			"notAfter", cert.Cert.NotAfter.Format(time.RFC3339),
		)
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert.TLSCertificate()},
		MinVersion:   tls.VersionTLS12,
	}

	addr := fmt.Sprintf(":%d", s.config.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.FileServer(http.Dir(s.config.Dir)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Bind before printing the banner so a port already in use fails loudly
	// instead of after a "Server started!" line.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}

	s.printBanner(netaddr.LocalIP())

	s.logger.Info("serving HTTPS",
		"addr", addr,
		"dir", s.config.Dir,
		"cert", s.config.CertFile,
	)

	return s.serve(ctx, srv, tls.NewListener(ln, tlsConfig))
}

// serve runs the server on the given listener with graceful shutdown on
// context cancellation or OS signal.
func (s *Server) serve(ctx context.Context, srv *http.Server, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal or serve error.
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		fmt.Fprintln(s.out, "\n👋 Server stopped")
	}

	return nil
}
