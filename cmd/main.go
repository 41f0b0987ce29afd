// cmd/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"

	"go_4_vocab_review/internal/config"
	"go_4_vocab_review/internal/handlers"
	"go_4_vocab_review/internal/jobs"
	"go_4_vocab_review/internal/middleware"
	"go_4_vocab_review/internal/repository"
	"go_4_vocab_review/internal/service"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// .env はなくてもよい (本番は環境変数を直接渡す)
	if err := godotenv.Load(); err != nil {
		tempLogger.Debug("No .env file loaded", slog.Any("error", err))
	}

	cfg, err := config.LoadConfig(configDir())
	if err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(cfg.Log.Level, tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...", "app", config.AppName, "version", config.AppVersion)

	ctx := middleware.WithLogger(context.Background(), logger)

	// 1. Backend (database.driver で切り替え)
	backend, db, err := newBackend(ctx, cfg, logger)
	if err != nil {
		slog.Error("Error initializing storage backend", slog.Any("error", err))
		os.Exit(1)
	}
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Error closing database connection", slog.Any("error", err))
			} else {
				slog.Info("Database connection closed.")
			}
		}()
	}

	// 2. Dependency Injection
	store := repository.NewItemStore(backend, cfg.Store.Capacity)
	defer store.Close()
	if err := store.Load(ctx); err != nil {
		// 読み込めなければ空のストアで続行する。保存済みデータを上書きしないよう、保存は reset まで止まる
		slog.Error("Failed to load learned items, starting with an empty store and saving disabled", slog.Any("error", err))
	}
	slog.Info("Learned items loaded", "count", store.Len(), "capacity", store.Capacity())

	scheduler := service.NewScheduler(store, time.Now)
	sessions := service.NewSessionOrchestrator(scheduler, time.Now)
	companion := service.NewCompanionService(store, scheduler, sessions, cfg)

	var healthCheck handlers.HealthCheck
	if db != nil {
		healthCheck = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}

	// 3. Background jobs
	runner := jobs.New(cfg.Jobs, store, scheduler, jobs.NewNotifier(cfg.Notify, logger), logger)
	if err := runner.Start(); err != nil {
		slog.Error("Error starting background jobs", slog.Any("error", err))
		os.Exit(1)
	}

	// 4. Router / Server
	router := handlers.NewRouter(logger, cfg, companion, healthCheck)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	runner.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	// 終了前に最後の保存
	if err := store.Save(shutdownCtx); err != nil {
		slog.Error("Final save failed", slog.Any("error", err))
	} else {
		slog.Info("Learned items saved", "count", store.Len())
	}

	slog.Info("Server exiting")
}

func configDir() string {
	if dir := os.Getenv("APP_CONFIG_DIR"); dir != "" {
		return dir
	}
	return "configs"
}

func newLogger(level string, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}

// newBackend は設定に応じた Backend を返します。DB を使う場合は *gorm.DB も返します。
func newBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Backend, *gorm.DB, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		db, err := repository.NewDB(cfg.Database.Driver, cfg.Database.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		backend, err := repository.NewGormBackend(ctx, db)
		if err != nil {
			return nil, nil, err
		}
		return backend, db, nil
	case config.DriverFile:
		return repository.NewFileBackend(cfg.Database.URL), nil, nil
	default:
		slog.Warn("Using in-memory storage, learned items are lost on exit")
		return repository.NewMemoryBackend(), nil, nil
	}
}
