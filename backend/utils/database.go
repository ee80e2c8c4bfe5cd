package utils

import (
	"coursework/backend/config"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB открывает подключение к PostgreSQL или SQLite в зависимости от DB_DRIVER
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}

	switch cfg.DBDriver {
	case "postgres", "":
		db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, nil
	case "sqlite":
		memory := cfg.DBPath == ":memory:"
		dsn := cfg.DBPath
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=foreign_keys(1)"
		}
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.DBPath, err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Каждое соединение с :memory: видит свою базу, поэтому держим одно
		if memory {
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
