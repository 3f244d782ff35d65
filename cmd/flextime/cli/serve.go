package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/odyssey-erp/flextime/internal/app"
	"github.com/odyssey-erp/flextime/internal/observability"
	"github.com/odyssey-erp/flextime/internal/resolve"
	resolvehttp "github.com/odyssey-erp/flextime/internal/resolve/http"
)

const shutdownTimeout = 10 * time.Second

// ServeOptions configures the HTTP server. Listener is optional; when nil
// the server listens on Config.AppAddr.
type ServeOptions struct {
	Config   *app.Config
	Logger   *slog.Logger
	Listener net.Listener
}

// Serve runs the HTTP API until ctx is cancelled, then shuts down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	cfg := opts.Config
	if cfg == nil {
		return errors.New("serve: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := observability.NewMetrics()
	service := resolve.NewService(logger, metrics, resolve.ServiceConfig{MaxConcurrency: cfg.BatchMaxConcurrency})
	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		ResolveHandler: resolvehttp.NewHandler(logger, service),
		Metrics:        metrics,
	})

	ln := opts.Listener
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", cfg.AppAddr)
		if err != nil {
			return err
		}
	}

	server := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("http server", slog.Any("error", err))
			return err
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
		return err
	}
	return nil
}
