// cmd/bot/main.go
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

	"gymclub/config"
	"gymclub/internal/bot"
	"gymclub/internal/db"
	"gymclub/internal/server"
	"gymclub/internal/session"
	"gymclub/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New().Fatalw("Failed to load config", "error", err)
	}

	l := logger.New()
	if cfg.Log.Development {
		l = logger.NewDevelopment()
	}
	defer l.Sync()
	l.Info("Starting gym club bot...")

	if err := cfg.Validate(); err != nil {
		l.Fatalw("Invalid configuration", "error", err)
	}

	backend, closeBackend, err := openBackend(cfg, l)
	if err != nil {
		l.Fatalw("Failed to open session backend", "backend", cfg.Session.Backend, "error", err)
	}
	defer closeBackend()

	members := bot.NewMemberFactory(cfg.API.BaseURL, cfg.API.Timeout, backend, l)

	telegramBot, err := bot.NewTelegramBot(cfg.Telegram.Token, members, l)
	if err != nil {
		l.Fatalw("Failed to create Telegram bot", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l.Info("Starting Telegram bot...")
	if err := telegramBot.Start(ctx); err != nil {
		l.Fatalw("Failed to start Telegram bot", "error", err)
	}

	httpServer := server.NewServer(cfg.Server.Port, telegramBot, l)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info("Shutting down bot...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		l.Errorw("Error during HTTP server shutdown", "error", err)
	}
	if err := telegramBot.Stop(shutdownCtx); err != nil {
		l.Errorw("Error during bot shutdown", "error", err)
	}
	cancel()

	l.Info("Bot stopped successfully")
}

// openBackend returns the configured session backend and a function that
// releases it.
func openBackend(cfg *config.Config, l *logger.Logger) (session.Backend, func(), error) {
	switch cfg.Session.Backend {
	case config.BackendPostgres:
		var (
			database *db.PostgresDB
			err      error
		)
		maxRetries := 5
		for i := 0; i < maxRetries; i++ {
			database, err = db.NewPostgresDB(context.Background(), cfg.DB)
			if err == nil {
				break
			}
			l.Errorw("Failed to connect to database, retrying...", "attempt", i+1, "error", err)
			time.Sleep(time.Duration(i+1) * time.Second)
		}
		if database == nil {
			return nil, nil, fmt.Errorf("database unreachable after %d attempts: %w", maxRetries, err)
		}
		return database, database.Close, nil

	case config.BackendRedis:
		client, err := session.ConnectRedis(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				l.Warnw("Failed to close redis client", "error", err)
			}
		}
		return session.NewRedisBackend(client, "gymclub"), closeFn, nil

	default:
		l.Infow("Using file session backend", "path", cfg.Session.Path)
		return session.NewFileBackend(cfg.Session.Path), func() {}, nil
	}
}
