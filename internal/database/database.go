package database

import (
	"log"
	"os"
	"time"

	"github.com/booksight/qbo-connect/connections"
	"github.com/booksight/qbo-connect/internal/config"
	"github.com/booksight/qbo-connect/users"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the postgres database and, when configured, migrates the
// two persisted schemas. Called exactly once at process start; the handle
// is injected into the repositories that need it.
func Connect(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()
	if dsn == "" {
		return nil, errors.New("[database Connect] DATABASE_URL is required")
	}

	logLevel := logger.Info
	if env != "DEV" {
		logLevel = logger.Error
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logLevel,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, errors.Wrap(err, "[database Connect] failed to open database")
	}

	if cfg.GetDatabaseMigrate() {
		if err := db.AutoMigrate(&users.User{}, &connections.Connection{}); err != nil {
			return nil, errors.Wrap(err, "[database Connect] migration failed")
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "[database Connect] failed to access sql.DB")
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
