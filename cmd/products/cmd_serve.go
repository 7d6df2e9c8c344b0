package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/product_service/internal/app"
	"github.com/Skotchmaster/product_service/internal/config"
	pkgdb "github.com/Skotchmaster/product_service/internal/db"
	"github.com/Skotchmaster/product_service/internal/logging"
)

var autoMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	serveCmd.Flags().BoolVar(&autoMigrate, "migrate", true, "create missing tables before serving")
}

func serve() error {
	cfg := config.LoadConfig()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	a, err := openApp(initCtx, cfg, logger, autoMigrate)
	cancel()
	if err != nil {
		return err
	}
	defer closeApp(a)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           a.Echo(),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("products listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	log.Println("products stopped")
	return nil
}

var createSchema = pkgdb.CreateSchema

// openApp builds the app and optionally creates missing tables.
// The app is closed again when the migration fails.
func openApp(ctx context.Context, cfg config.Config, logger *slog.Logger, migrate bool) (*app.App, error) {
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := createSchema(ctx, a.DB); err != nil {
			closeApp(a)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return a, nil
}

func closeApp(a *app.App) {
	if err := a.Close(); err != nil {
		log.Printf("close error: %v", err)
	}
}
