package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jln-hub/lessongen/internal/ai"
	"github.com/jln-hub/lessongen/internal/api"
	"github.com/jln-hub/lessongen/internal/curriculum"
	"github.com/jln-hub/lessongen/internal/generator"
	"github.com/jln-hub/lessongen/internal/platform/cache"
	"github.com/jln-hub/lessongen/internal/platform/config"
	"github.com/jln-hub/lessongen/internal/platform/database"
	"github.com/jln-hub/lessongen/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a, cleanup, err := buildAPI(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      a.Mux(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr, "mode", cfg.Generator.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// buildAPI wires the analyzer, storage, cache, and curriculum catalog
// from configuration. The returned cleanup closes whatever was opened.
func buildAPI(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*api.API, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	analyzerImpl, err := buildAnalyzer(cfg, logger)
	if err != nil {
		return nil, cleanup, err
	}

	var lessonStore generator.LessonStore
	var readyChecks = map[string]api.ReadyChecker{}
	if cfg.Database.URL != "" {
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect database: %w", err)
		}
		closers = append(closers, db.Close)

		pg, err := store.NewPostgresStore(db.Pool)
		if err != nil {
			return nil, cleanup, err
		}
		if err := pg.Migrate(ctx); err != nil {
			return nil, cleanup, err
		}
		lessonStore = pg
		readyChecks["database"] = db.HealthCheck
		logger.Info("lesson storage enabled", "backend", "postgres")
	} else {
		lessonStore = generator.NewMemoryLessonStore()
		logger.Info("lesson storage enabled", "backend", "memory")
	}

	var resultCache generator.ResultCache
	if cfg.Cache.Enabled {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			return nil, cleanup, fmt.Errorf("connect cache: %w", err)
		}
		closers = append(closers, func() { _ = c.Close() })
		resultCache = c
		readyChecks["cache"] = c.HealthCheck
	}

	var catalog *curriculum.Loader
	if _, err := os.Stat(cfg.CurriculumPath); err == nil {
		catalog, err = curriculum.NewLoader(cfg.CurriculumPath)
		if err != nil {
			return nil, cleanup, err
		}
	} else {
		logger.Warn("curriculum path not found, catalog endpoints disabled", "path", cfg.CurriculumPath)
	}

	svc := generator.NewService(analyzerImpl, lessonStore, resultCache, logger)
	a := api.New(svc, catalog, logger)
	for name, check := range readyChecks {
		a.AddReadyCheck(name, check)
	}
	return a, cleanup, nil
}

func buildAnalyzer(cfg *config.Config, logger *slog.Logger) (generator.Analyzer, error) {
	if cfg.Generator.Mode == "rules" {
		return generator.NewRuleBased(logger), nil
	}

	router := ai.NewRouter(logger)
	if cfg.AI.OpenAI.APIKey != "" {
		router.Register("openai", ai.NewOpenAIProvider(cfg.AI.OpenAI.APIKey))
	}
	if cfg.AI.OpenRouter.APIKey != "" {
		router.Register("openrouter", ai.NewOpenRouterProvider(cfg.AI.OpenRouter.APIKey))
	}
	return generator.NewExternalService(router, logger)
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
