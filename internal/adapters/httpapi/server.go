// Package httpapi serves the desktop front end's JSON API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"go.trai.ch/dock/internal/core/domain"
	"go.trai.ch/dock/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

// Service is what the API needs from the application.
type Service interface {
	ListApps() []domain.App
	OpenApp(ctx context.Context, name string) (domain.OpenResult, error)
	LoginStatus() domain.LoginStatus
	Logins() ([]domain.LoginSummary, error)
	MonitorStatus() domain.RunStatus
	StartPublish(ctx context.Context, job domain.PublishJob) (string, error)
	PublishStatus() domain.RunStatus
}

// Server is the HTTP front of a Service.
type Server struct {
	svc     Service
	cfg     domain.ServerConfig
	logger  ports.Logger
	tracer  ports.Tracer
	now     func() time.Time
	handler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithClock sets the clock used for response timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// NewServer creates a Server for svc.
func NewServer(svc Service, cfg domain.ServerConfig, logger ports.Logger, tracer ports.Tracer, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		tracer: tracer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handler = s.routes()
	return s
}

// Handler returns the root handler with CORS and tracing applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", s.Addr())
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", s.Addr())
	}
	return s.Serve(ctx, lis)
}

// Serve accepts connections on lis until ctx is done, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(lis)
	}()
	s.logger.Info("api listening on http://" + lis.Addr().String())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return zerr.Wrap(err, "failed to shut down api server")
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return domain.Wrap(domain.ErrServerFailed, err)
	}
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/apps", s.handleApps)
	mux.HandleFunc("POST /api/open-app", s.handleOpenApp)
	mux.HandleFunc("GET /api/login-status", s.handleLoginStatus)
	mux.HandleFunc("GET /api/logins", s.handleLogins)
	mux.HandleFunc("GET /api/selenium-status", s.handleMonitorStatus)
	mux.HandleFunc("GET /api/monitor-status", s.handleMonitorStatus)
	mux.HandleFunc("POST /api/publish", s.handlePublish)
	mux.HandleFunc("GET /api/publish-status", s.handlePublishStatus)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch,
			http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(s.trace(mux))
}
