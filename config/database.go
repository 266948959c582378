package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kendall-kelly/shower-configurator-api/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the configured database and stores it as the process-wide instance
func ConnectDatabase(cfg *Config) error {
	db, err := OpenDatabase(cfg.DatabaseDriver, cfg.GetDatabaseURL())
	if err != nil {
		return err
	}

	DB = db
	zap.L().Info("Database connection established",
		zap.String("driver", cfg.DatabaseDriver))
	return nil
}

// OpenDatabase connects to a postgres or sqlite database.
// SQLite connections always run with foreign key enforcement enabled.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(withForeignKeys(dsn))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		// Each sqlite connection is its own session, and ":memory:" databases are per connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates every table of the catalog schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}

// newGormLogger sends gorm's slow-query and error reports to the process zap logger.
// Missing rows are expected lookups and are not logged.
func newGormLogger() logger.Interface {
	return logger.New(zapWriter{}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// zapWriter resolves zap.L() on every write so a logger installed after connecting is used
type zapWriter struct{}

func (zapWriter) Printf(format string, args ...interface{}) {
	zap.L().Warn(strings.TrimSpace(fmt.Sprintf(format, args...)), zap.String("component", "gorm"))
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}
