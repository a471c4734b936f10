package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vladimiradmaev/health-tracker/internal/config"
	"github.com/vladimiradmaev/health-tracker/internal/database/migrations"
	"github.com/vladimiradmaev/health-tracker/internal/domain"
	"github.com/vladimiradmaev/health-tracker/internal/logger"
)

// Models lists every table managed by AutoMigrate, parents first.
var Models = []any{
	&domain.User{},
	&domain.UserSettings{},
	&domain.BloodPressureReading{},
	&domain.GlucoseReading{},
	&domain.Medication{},
	&domain.MedicationLog{},
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Tables first; the SQL migrations add constraints on top of them.
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := migrations.LoadSQLMigrations(migrations.Files, "."); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established and migrations completed",
		"host", cfg.Host, "database", cfg.DBName)
	return db, nil
}
