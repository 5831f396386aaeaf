package db

import (
	"fmt"
	"os"
	"time"

	"github.com/borbabeats/sistema-comandas/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectAndMigrate opens the postgres connection (with a short retry loop so
// the container can come up) and brings the schema current. If the MIGRATIONS
// env var points at a directory of SQL files those are applied; otherwise
// gorm AutoMigrate keeps the schema in sync.
func ConnectAndMigrate(rawDSN string) (*gorm.DB, error) {
	dsn := NormalizeDSN(rawDSN)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty; check environment configuration")
	}
	var conn *gorm.DB
	var err error
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if dir := os.Getenv("MIGRATIONS"); dir != "" {
		if err := runSQLMigrations(dsn, dir); err != nil {
			return nil, fmt.Errorf("sql migrations: %w", err)
		}
		return conn, nil
	}
	if err := AutoMigrate(conn); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return conn, nil
}

// AutoMigrate creates or updates every table the app knows about. Tests use
// it against in-memory sqlite.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&models.Plate{},
		&models.Beverage{},
		&models.Dessert{},
		&models.Order{},
		&models.User{},
	)
}
