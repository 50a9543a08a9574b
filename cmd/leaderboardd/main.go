package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"kirosh/internal/config"
	"kirosh/internal/logging"
	"kirosh/internal/scoring"
)

const shutdownTimeout = 10 * time.Second

func serve(ctx context.Context, srv *http.Server, log zerolog.Logger) error {
	serveErr := make(chan error, 1)
	log.Info().Str("addr", srv.Addr).Msg("leaderboard listening")
	go func() {
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		err := srv.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		log.Info().Msg("leaderboard stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func run() error {
	addr := flag.String("addr", "", "Listen address (overrides KIROSH_LEADERBOARD_ADDR)")
	dbPath := flag.String("db", "", "SQLite database path (overrides KIROSH_LEADERBOARD_DB)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.LeaderboardAddr = *addr
	}
	if *dbPath != "" {
		cfg.LeaderboardDB = *dbPath
	}
	log := logging.Console(cfg.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.LeaderboardDB), 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	store, err := scoring.OpenSQLite(cfg.LeaderboardDB)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Info().Str("db", cfg.LeaderboardDB).Msg("leaderboard database open")

	srv := &http.Server{
		Addr:              cfg.LeaderboardAddr,
		Handler:           scoring.NewHandler(store, log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, log)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "leaderboardd: %v\n", err)
		os.Exit(1)
	}
}
