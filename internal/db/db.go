package db

import (
	"fmt" // Error wrapping

	"vocab_system/internal/config" // Application configuration

	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // GORM query logger
)

// Open connects to the configured database
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DB.Driver)
	}
	level := logger.Warn // Only slow queries and errors
	if cfg.IsProd {
		level = logger.Error
	}
	return OpenDialector(dialector, logger.Default.LogMode(level))
}

// OpenDialector opens a connection with the settings every store relies on
func OpenDialector(dialector gorm.Dialector, log logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // Surface gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated
		Logger:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
