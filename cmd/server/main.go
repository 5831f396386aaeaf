package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/borbabeats/sistema-comandas/internal/config"
	"github.com/borbabeats/sistema-comandas/internal/db"
	"github.com/borbabeats/sistema-comandas/internal/logger"
	"github.com/borbabeats/sistema-comandas/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedFlag        = flag.Bool("seed", false, "Seed sample menu data after migrating")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init(cfg.Env)
	defer logger.Sync()

	conn, err := db.ConnectAndMigrate(cfg.DatabaseDSN)
	if err != nil {
		logger.L().Fatal("database connection failed", zap.Error(err))
	}
	if *migrateOnlyFlag {
		logger.Info("migrations completed; exiting as requested")
		return
	}
	if *seedFlag {
		if err := db.Seed(conn); err != nil {
			logger.L().Fatal("seed failed", zap.Error(err))
		}
		logger.Info("sample menu seeded")
	}

	handler := server.New(conn, cfg)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", zap.Error(err))
	}
	logger.Info("server gracefully stopped")
}
