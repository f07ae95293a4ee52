package server

import (
	"context"
	"log/slog"
	"net/http"

	appscoreboard "github.com/preston-bernstein/rink-scoreboard/internal/app/scoreboard"
	"github.com/preston-bernstein/rink-scoreboard/internal/config"
	httpserver "github.com/preston-bernstein/rink-scoreboard/internal/http"
	"github.com/preston-bernstein/rink-scoreboard/internal/http/handlers"
	"github.com/preston-bernstein/rink-scoreboard/internal/http/middleware"
	"github.com/preston-bernstein/rink-scoreboard/internal/logging"
	"github.com/preston-bernstein/rink-scoreboard/internal/metrics"
	"github.com/preston-bernstein/rink-scoreboard/internal/persist"
	"github.com/preston-bernstein/rink-scoreboard/internal/render"
	"github.com/preston-bernstein/rink-scoreboard/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         store.Store
	adapter       *persist.Adapter
	service       *appscoreboard.Service
	hub           *render.Hub
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New opens the configured store, restores the saved scoreboard and wires the HTTP surface.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)
	st := openStoreOrMemory(ctx, cfg.Store, logger)
	srv := newServerWithStore(ctx, cfg, logger, st, recorder)
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	return srv
}

func newServerWithStore(ctx context.Context, cfg config.Config, logger *slog.Logger, st store.Store, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	hub := render.NewHub(logger, recorder, render.WithAllowedOrigin(cfg.AllowedOrigin))
	adapter, svc := buildService(ctx, cfg, st, hub, logger, recorder)
	httpSrv := buildHTTPServer(cfg, svc, adapter, hub, logger, recorder)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		store:      st,
		adapter:    adapter,
		service:    svc,
		hub:        hub,
		httpServer: httpSrv,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *appscoreboard.Service, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		service:    svc,
		httpServer: httpSrv,
	}
}

func buildService(ctx context.Context, cfg config.Config, st store.Store, sink render.Sink, logger *slog.Logger, recorder *metrics.Recorder) (*persist.Adapter, *appscoreboard.Service) {
	rules := cfg.Scoreboard.Rules()
	adapter := persist.NewAdapter(st, persist.Options{
		Key:          cfg.Store.Key,
		Rules:        rules,
		HistoryLimit: cfg.Scoreboard.HistoryLimit,
		Timeout:      cfg.Store.Timeout,
	}, logger, recorder)

	session := appscoreboard.NewSession(rules, cfg.Scoreboard.HistoryLimit)
	appscoreboard.Restore(ctx, session, adapter)

	return adapter, appscoreboard.NewService(session, render.Multi(sink, render.LogSink(logger)), adapter, logger, recorder)
}

func buildHTTPServer(cfg config.Config, svc *appscoreboard.Service, adapter *persist.Adapter, hub *render.Hub, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() persist.Status
	if adapter != nil {
		statusFn = adapter.Status
	}
	var ws http.Handler
	if hub != nil {
		ws = hub
	}

	handler := handlers.NewHandler(svc, logger, statusFn)
	router := httpserver.NewRouter(handler, ws)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.service != nil {
		s.service.Refresh()
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	// Hijacked websocket connections are not tracked by http.Server.Shutdown.
	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil && s.logger != nil {
			s.logger.Warn("store close failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "error", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Service exposes the scoreboard service.
func (s *Server) Service() *appscoreboard.Service {
	return s.service
}
