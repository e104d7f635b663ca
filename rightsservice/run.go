package rightsservice

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/knowyourrights/cards/server/internal/api"
	"github.com/knowyourrights/cards/server/internal/config"
	"github.com/knowyourrights/cards/server/internal/factory"
	"github.com/knowyourrights/cards/server/internal/health"
	"github.com/knowyourrights/cards/server/internal/logger"
	"github.com/knowyourrights/cards/server/internal/services"
	"github.com/knowyourrights/cards/server/internal/store"
)

// newLogger writes plain text in development and JSON everywhere else.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	if cfg.IsDevelopment() {
		return logger.NewConsole("rights-service", w, cfg.LogLevel)
	}
	return logger.NewWithWriter("rights-service", w, cfg.LogLevel)
}

// Run starts the rights service HTTP server and blocks until shutdown or error.
// A non-empty buildTarget overrides RIGHTS_SERVER_BUILD_TARGET.
func Run(buildTarget string) error {
	log := logger.New("rights-service")

	cfg, err := loadConfig(buildTarget)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}
	log = newLogger(cfg, os.Stdout)

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("store_driver", cfg.StoreDriver).
		Int("http_port", cfg.HTTPPort).
		Str("default_jurisdiction", cfg.DefaultJurisdiction).
		Msg("Rights service starting")

	// Create cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, backend, err := factory.NewStore(ctx, cfg, log)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store adapter unavailable")
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			log.Warn().Err(err).Msg("store close failed")
		}
	}()

	svcHealth := startHealthCheckers(ctx, cfg, log, st)
	router := buildRouter(st, cfg, svcHealth, log)

	// Block startup until dependencies report healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Stack().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	// Graceful shutdown on context cancel or server error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

func loadConfig(buildTarget string) (*config.Config, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	if buildTarget != "" && buildTarget != cfg.BuildTarget {
		cfg.BuildTarget = buildTarget
		cfg.StoreDriver = "auto"
		if err := cfg.ResolveDefaults(); err != nil {
			return nil, fmt.Errorf("invalid build-target override: %w", err)
		}
	}
	return cfg, nil
}

// newServices builds the domain services over st.
func newServices(st store.Store, cfg *config.Config, log zerolog.Logger) api.Services {
	return api.Services{
		Users:      services.NewUserService(st, cfg.DefaultJurisdiction),
		Encounters: services.NewEncounterService(st),
		Contacts:   services.NewContactService(st),
		Alerts:     services.NewAlertService(cfg.AppName, log.With().Str("component", "alerts").Logger()),
		Frames:     services.NewFrameService(cfg.BaseURL, cfg.DefaultJurisdiction),
	}
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, cfg *config.Config, h api.ServiceHealth, log zerolog.Logger) *mux.Router {
	return api.NewRouter(newServices(st, cfg, log), h, log)
}

// startHealthCheckers starts component checkers and the service-level aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns the startup health timeout in seconds,
// calculated as interval*2 with a minimum of 60 seconds.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is healthy or the startup window expires.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth api.ServiceHealth) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a cancellable context that is cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
