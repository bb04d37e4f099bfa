package database

import (
	"context"
	"fmt"
	"os"

	"leaderboard/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormDB struct {
	DB *gorm.DB
}

// NewGormConnection opens the sqlite database at path, creating the file if
// needed. Foreign keys are enforced so test case results cascade with their
// owning submission.
func NewGormConnection(path string) (*GormDB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", path)
	}

	logLevel := logger.Silent
	if gormLogLevel := os.Getenv("GORM_LOG_LEVEL"); gormLogLevel != "" {
		switch gormLogLevel {
		case "silent":
			logLevel = logger.Silent
		case "error":
			logLevel = logger.Error
		case "warn":
			logLevel = logger.Warn
		case "info":
			logLevel = logger.Info
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer, single process. One pooled connection keeps sqlite
	// locking simple and makes :memory: behave as one database.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return &GormDB{DB: db}, nil
}

func (db *GormDB) AutoMigrate() error {
	err := db.DB.AutoMigrate(
		&models.ScoreHistory{},
		&models.TestCaseResult{},
		&models.TopScore{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

func (db *GormDB) WithContext(ctx context.Context) *gorm.DB {
	return db.DB.WithContext(ctx)
}

// Store returns a repository bundle bound to the shared connection, outside
// any transaction.
func (db *GormDB) Store() *Store {
	return NewStore(db.DB)
}

// Transact runs fn with a Store bound to one transaction. Any error returned
// by fn rolls the whole transaction back.
func (db *GormDB) Transact(ctx context.Context, fn func(store *Store) error) error {
	return db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (db *GormDB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
