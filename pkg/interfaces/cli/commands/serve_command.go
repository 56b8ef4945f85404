package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/vsinha/supplyplan/pkg/infrastructure/config"
	"github.com/vsinha/supplyplan/pkg/interfaces/api"
)

// shutdownTimeout bounds how long in-flight requests may take once the context ends
const shutdownTimeout = 5 * time.Second

// ServeConfig holds configuration for the serve command
type ServeConfig struct {
	Config  config.Config
	Verbose bool
}

// ServeCommand runs the planning HTTP API until its context is cancelled
type ServeCommand struct {
	config ServeConfig
	logger *zap.Logger
}

// NewServeCommand creates a new serve command
func NewServeCommand(config ServeConfig, logger *zap.Logger) *ServeCommand {
	return &ServeCommand{
		config: config,
		logger: newRunLogger(logger, "serve"),
	}
}

// Execute runs the serve command
func (c *ServeCommand) Execute(ctx context.Context) error {
	addr := c.config.Config.Server.HTTPAddr
	srv := &http.Server{
		Addr:    addr,
		Handler: api.NewRouter(c.config.Config, c.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("http server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if c.config.Verbose {
		fmt.Printf("🌐 Serving planning API on %s\n", addr)
	}

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	c.logger.Info("http server stopped")
	return nil
}
