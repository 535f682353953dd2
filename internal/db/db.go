package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/mech-ai/internal/config"
	"github.com/BruksfildServices01/mech-ai/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dialector = postgres.Open(cfg.DBUrl)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		PrepareStmt: cfg.DBDriver == config.DriverPostgres,
		Logger:      NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		// sqlite serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(10 * time.Minute)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Car{},
		&models.ServiceRecord{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// linhas antigas sem flag viram ativas
	if err := db.Exec(`
        UPDATE service_records
        SET active = true
        WHERE active IS NULL
    `).Error; err != nil {
		return fmt.Errorf("backfill active flag: %w", err)
	}

	if err := backfillMatchKeys(db); err != nil {
		return fmt.Errorf("backfill match keys: %w", err)
	}

	return nil
}

// backfillMatchKeys fills the *_key columns of rows written before they
// existed. The keys are computed in Go, so this cannot be a single UPDATE.
func backfillMatchKeys(db *gorm.DB) error {
	var clients []models.Client
	if err := db.Where("name_key IS NULL OR name_key = ''").Find(&clients).Error; err != nil {
		return err
	}
	for _, c := range clients {
		if err := db.Model(&models.Client{}).Where("id = ?", c.ID).
			UpdateColumn("name_key", models.MatchKey(c.Name)).Error; err != nil {
			return err
		}
	}

	var cars []models.Car
	if err := db.Where("model_key IS NULL OR model_key = ''").Find(&cars).Error; err != nil {
		return err
	}
	for _, c := range cars {
		brand, color := "", ""
		if c.Brand != nil {
			brand = models.MatchKey(*c.Brand)
		}
		if c.Color != nil {
			color = models.MatchKey(*c.Color)
		}
		if err := db.Model(&models.Car{}).Where("id = ?", c.ID).UpdateColumns(map[string]any{
			"brand_key": brand,
			"model_key": models.MatchKey(c.Model),
			"color_key": color,
		}).Error; err != nil {
			return err
		}
	}

	var records []models.ServiceRecord
	if err := db.Where("servico_key IS NULL OR servico_key = ''").Find(&records).Error; err != nil {
		return err
	}
	for _, r := range records {
		if err := db.Model(&models.ServiceRecord{}).Where("id = ?", r.ID).
			UpdateColumn("servico_key", models.MatchKey(r.Servico)).Error; err != nil {
			return err
		}
	}

	return nil
}

// NewGormLogger routes gorm's warnings and slow queries to zap.
func NewGormLogger(log *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
