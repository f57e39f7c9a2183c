// Command server starts the smart-notes HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/smart-notes/backend/internal/ai"
	"github.com/smart-notes/backend/internal/config"
	"github.com/smart-notes/backend/internal/limiter"
	"github.com/smart-notes/backend/internal/repository/mongodb"
	"github.com/smart-notes/backend/internal/server/httpserver"
	"github.com/smart-notes/backend/internal/service"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// main parses configuration, prepares indexes, and starts the HTTP server.
func main() {
	cfgPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Server.Addr),
	)

	if cfg.Auth.JWTKey == "" {
		logger.Fatal("missing jwt signing key (auth.jwt_key / JWT_SECRET)")
	}

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		logger.Fatal("mongodb.New", zap.Error(err))
	}
	defer func() { _ = db.Close(context.Background()) }()

	if err := db.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", zap.Error(err))
	}

	// Repositories
	userRepo := mongodb.NewUserRepo(db)
	noteRepo := mongodb.NewNoteRepo(db)
	taskRepo := mongodb.NewTaskRepo(db)

	lim := limiter.NewMongo(db.Limiter, cfg.Auth.LoginWindow, cfg.Auth.LoginMaxFails, cfg.Auth.LoginBlockFor)

	// Services
	signKey := []byte(cfg.Auth.JWTKey)
	authSvc := service.NewAuthService(userRepo, signKey, cfg.Auth.AccessTTL, lim)
	noteSvc := service.NewNoteService(noteRepo)
	taskSvc := service.NewTaskService(taskRepo)

	// Summarizer backend is chosen once here and injected; nothing below
	// consults the config again.
	var summarizer ai.Summarizer
	if cfg.AI.Enabled {
		summarizer = ai.NewOpenAI(cfg.AI.APIKey, cfg.AI.Model, cfg.AI.MaxTokens, cfg.AI.Temperature, logger)
	} else {
		summarizer = ai.NewMock()
	}

	app := httpserver.New(authSvc, noteSvc, taskSvc, summarizer, signKey, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: app.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
