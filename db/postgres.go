// db/postgres.go
package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sapictureday/sail/config"
	logger "github.com/sapictureday/sail/logging"
	"github.com/sapictureday/sail/model"
)

var (
	// DB is the request-scoped application handle.
	DB *gorm.DB

	// AdminDB is a separate handle on an elevated-privilege DSN. It exists
	// only for the admin role oracle, which must not go through the
	// request-scoped row filters.
	AdminDB *gorm.DB
)

func InitPostgres() error {
	var err error
	dsn := config.GetString("postgres.dsn")
	logger.Info("Connecting to Postgres")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access Postgres connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := DB.AutoMigrate(&model.User{}, &model.Workspace{}, &model.WorkspacePreference{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	adminDSN := config.GetString("postgres.adminDSN")
	AdminDB, err = gorm.Open(postgres.Open(adminDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect privileged Postgres handle: %w", err)
	}

	logger.Info("Successfully connected to Postgres")
	return nil
}

func ClosePostgres() {
	for _, handle := range []*gorm.DB{DB, AdminDB} {
		if handle == nil {
			continue
		}
		sqlDB, err := handle.DB()
		if err != nil {
			logger.Error("Error accessing Postgres connection pool", zap.Error(err))
			continue
		}
		if err := sqlDB.Close(); err != nil {
			logger.Error("Error closing Postgres connection", zap.Error(err))
		}
	}
}
