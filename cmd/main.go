package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cwrk-planet/forum-service/config"
	"github.com/cwrk-planet/forum-service/internal/pg"
	"github.com/cwrk-planet/forum-service/internal/repository/postgres"
	"github.com/cwrk-planet/forum-service/internal/security"
	"github.com/cwrk-planet/forum-service/internal/service"
	transport "github.com/cwrk-planet/forum-service/internal/transport/http"
	"github.com/cwrk-planet/forum-service/pkg/logger"
)

func main() {
	// Config init
	cfg, err := config.LoadConfig()
	if err != nil {
		println("failed to load config:", err.Error())
		os.Exit(1)
	}

	// Logger init
	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting forum-service", "version", cfg.Logging.Version)

	// PostgreSQL init
	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Postgres.ToPGConfig())
	if err != nil {
		slog.Error("failed to init postgres", slog.Any("err", err))
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("connected to postgres")

	// Repositories init
	usersRepo := postgres.NewUserRepoFromPool(pool)
	topicsRepo := postgres.NewTopicRepoFromPool(pool)
	roomsRepo := postgres.NewRoomRepoFromPool(pool)
	partsRepo := postgres.NewParticipantRepoFromPool(pool)
	messagesRepo := postgres.NewMessageRepoFromPool(pool)
	sessionsRepo := postgres.NewSessionRepoFromPool(pool)

	// Services init
	passCfg := security.BcryptConfig{
		Cost:      cfg.Security.Password.BcryptCost,
		MinLength: cfg.Security.Password.MinLength,
	}

	authSvc := service.NewAuthService(usersRepo, sessionsRepo, cfg.Security.Session.TTL, passCfg, time.Now)
	roomSvc := service.NewRoomService(roomsRepo, topicsRepo, partsRepo, messagesRepo, time.Now)
	msgSvc := service.NewMessageService(messagesRepo, roomsRepo, partsRepo, time.Now)
	userSvc := service.NewUserService(usersRepo, roomsRepo, topicsRepo, messagesRepo, time.Now)

	// HTTP server init
	h := transport.NewHandler(authSvc, roomSvc, msgSvc, userSvc,
		cfg.Security.Session.CookieName, cfg.Security.Session.Secure)
	router := transport.NewRouter(transport.Deps{Handler: h, DB: pool})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("http server failed", slog.Any("err", err))
		os.Exit(1)
	case sig := <-sigCh:
		slog.Info("shutdown signal received", "signal", sig.String())
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http shutdown failed", slog.Any("err", err))
	}
	pool.Close()

	slog.Info("forum-service stopped gracefully")
}
