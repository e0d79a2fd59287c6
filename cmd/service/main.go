// @title        Storefront API
// @version      1.0
// @description  商品型錄、留言、詢價、職缺與站內通知的後端 API
// @BasePath     /api
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name jwt
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/cache"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logging"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/upload"
	"storefront/internal/worker"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	_ "storefront/docs" // 引入 swag 產出的 docs
)

const (
	purgeInterval   = time.Hour
	shutdownTimeout = 10 * time.Second
)

var (
	loadEnv         = func() { _ = godotenv.Load() }
	loadConfig      = func() (*config.Config, error) { return config.Load(".", "..") }
	newLogger       = logging.New
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	newFileStore    = upload.NewFileStore
	startServer     = func(e *echo.Echo, cfg *config.Config) error {
		addr := ":" + cfg.Port
		if cfg.IsProduction() {
			return e.StartTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile)
		}
		return e.Start(addr)
	}
	shutdownSignal = func() <-chan os.Signal {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		return ch
	}
	exitFunc = os.Exit
)

// startPurge 啟動時先清一次，之後每 interval 交給 worker pool 清除過期通知
func startPurge(pool worker.Pool, purge func(context.Context) error, interval time.Duration, logger *zap.Logger) func() {
	done := make(chan struct{})
	submit := func() {
		pool.Submit(func() {
			if err := purge(context.Background()); err != nil {
				logger.Warn("purge expired notifications failed", zap.Error(err))
			}
		})
	}
	submit()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				submit()
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func run() error {
	loadEnv()
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("載入設定失敗: %w", err)
	}

	logger, err := newLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("建立 logger 失敗: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	tokens, err := service.NewTokenIssuer(cfg.JWTSecret, cfg.ApexDomain)
	if err != nil {
		return fmt.Errorf("建立 token issuer 失敗: %w", err)
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("關閉 Redis 連線失敗", zap.Error(err))
		}
	}()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	files, err := newFileStore(cfg.UploadDir)
	if err != nil {
		return fmt.Errorf("建立上傳目錄失敗: %w", err)
	}

	wp := newWorkerPool(cfg.WorkerCount, logger)
	defer wp.Stop()

	notifier := service.NewNotifier(db, logger)
	stopPurge := startPurge(wp, notifier.PurgeExpired, purgeInterval, logger)
	defer stopPurge()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	router.Setup(e, router.Deps{
		DB:         db,
		Cache:      rdb,
		Tokens:     tokens,
		Files:      files,
		Pool:       wp,
		Notifier:   notifier,
		Logger:     logger,
		Origins:    cfg.Origins(),
		Production: cfg.IsProduction(),
		UploadDir:  files.Root(),
	})

	logger.Info("server starting",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.Bool("tls", cfg.IsProduction()),
	)
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, cfg) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-shutdownSignal():
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	}
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
