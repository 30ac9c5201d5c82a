package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	web "softgym/internal/adapters/http"
	"softgym/internal/adapters/logging"
	"softgym/internal/adapters/storage"
	"softgym/internal/adapters/storage/txn"
	"softgym/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "softgym:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	flush, err := logging.Install(cfg.LogLevel, !cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer flush()

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := storage.MigrateDB(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	// Every query goes through the timed wrapper for slow-query logs and metrics.
	timed := storage.NewTimedDB(db, cfg.SlowQuery())
	stores := &web.Stores{Stores: txn.Bind(timed), Tx: txn.New(timed)}

	handler := web.NewMux(web.Options{
		CSRFKey:            cfg.CSRFKeyBytes(),
		SecureCookies:      cfg.IsProduction(),
		TrustedOrigins:     cfg.TrustedOrigins,
		SessionTTL:         cfg.SessionTTL,
		RateLimitPerSecond: cfg.RateLimitPerSec,
		SlowRequest:        cfg.SlowRequest(),
		Location:           cfg.Location(),
		Health:             timed,
	}, stores)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server_start",
			zap.String("version", version),
			zap.String("addr", cfg.Addr),
			zap.String("env", cfg.Env),
			zap.String("timezone", cfg.Timezone),
			zap.Int("schema", storage.LatestSchemaVersion()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("server_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
