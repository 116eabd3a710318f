package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"weathercontract.app/internal/config"
	"weathercontract.app/pkg/errors"
)

// Open connects to the result store selected by RESULTS_STORE and migrates it.
// It returns nil when results are not persisted.
func Open(cfg *config.ResultsConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, errors.NewConfigurationError("results config cannot be nil", nil)
	}

	var dialector gorm.Dialector
	switch cfg.Store {
	case config.StoreTypeNone:
		return nil, nil
	case config.StoreTypeSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.StoreTypePostgres:
		dialector = postgres.Open(cfg.Database.GetDSN())
	default:
		return nil, errors.NewConfigurationError(fmt.Sprintf("unsupported results store: %s", cfg.Store.String()), nil)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, errors.NewDatabaseError(fmt.Sprintf("failed to connect to %s result store", cfg.Store.String()), err)
	}

	if err := Migrate(db); err != nil {
		_ = Close(db)
		return nil, errors.NewDatabaseError("failed to migrate result store", err)
	}

	return db, nil
}

// Close safely closes the database connection
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.NewDatabaseError("failed to get database handle", err)
	}
	if err := sqlDB.Close(); err != nil {
		return errors.NewDatabaseError("failed to close database", err)
	}
	return nil
}
