package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/cuptrip/internal/auth"
	"github.com/mmynk/cuptrip/internal/config"
	"github.com/mmynk/cuptrip/internal/metrics"
	"github.com/mmynk/cuptrip/internal/middleware"
	"github.com/mmynk/cuptrip/internal/rest"
	"github.com/mmynk/cuptrip/internal/service"
	"github.com/mmynk/cuptrip/internal/storage/sqlite"
	"github.com/mmynk/cuptrip/pkg/api"
	"github.com/mmynk/cuptrip/pkg/api/apiconnect"
	"github.com/mmynk/cuptrip/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	// Logging reads its own env vars, so it can come up before the config error is reported.
	logging.Setup()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	m := metrics.New()
	budget := service.NewBudgetService(store, m)

	// Interceptors run outermost first: auth attaches the session, the log interceptor reads it.
	logOpts := connect.WithInterceptors(middleware.RPCLogInterceptor())
	writeOpts, readOpts := logOpts, logOpts

	mux := http.NewServeMux()

	if cfg.AuthEnabled() {
		jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL, cfg.TripID)
		authenticator, err := auth.NewPassphraseAuthenticator(store, cfg.TripPassphrase)
		if err != nil {
			return err
		}
		writeOpts = connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.RPCLogInterceptor())
		readOpts = connect.WithInterceptors(middleware.OptionalAuth(jwtManager), middleware.RPCLogInterceptor())

		mux.Handle(apiconnect.NewAuthServiceHandler(
			service.NewAuthService(authenticator, jwtManager, slog.Default()),
			logOpts,
		))
		slog.Info("Auth enabled", "trip", cfg.TripID, "token_ttl", cfg.TokenTTL)
	} else {
		slog.Warn("TRIP_PASSPHRASE not set, auth disabled")
	}

	// Register Connect services
	mux.Handle(apiconnect.NewTravelerServiceHandler(service.NewTravelerService(store), writeOpts))
	mux.Handle(apiconnect.NewExpenseServiceHandler(service.NewExpenseService(store), writeOpts))
	mux.Handle(apiconnect.NewBudgetServiceHandler(budget, readOpts))

	rest.New(budget).Register(mux)
	mux.Handle("GET "+api.RouteMetrics, m.Handler())

	if cfg.StaticPath != "" {
		static, err := staticHandler(cfg.StaticPath)
		if err != nil {
			return err
		}
		mux.Handle("/", static)
	}

	handler := middleware.CORS(cfg.CORSOrigin, middleware.Logging(middleware.Metrics(m, mux)))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}

// staticHandler serves the web client, falling back to index.html for
// unknown paths so client-side routes load.
func staticHandler(path string) (http.Handler, error) {
	staticDir, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve static path: %w", err)
	}
	slog.Info("Serving static files", "path", staticDir)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown RPC paths are 404s, not the index page
		if strings.HasPrefix(r.URL.Path, apiconnect.PathPrefix) || strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}), nil
}
