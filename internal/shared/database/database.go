package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// DB wraps both GORM and sql.DB. GORM is only available for postgres;
// sqlite connections are served through plain database/sql.
type DB struct {
	*sql.DB
	GORM   *gorm.DB
	Driver string
}

// NewDB opens a connection for the given driver ("postgres" or "sqlite").
func NewDB(driver, connStr string) (*DB, error) {
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	switch driver {
	case "postgres":
		sqlDB, err := sql.Open("postgres", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		configurePool(sqlDB)
		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to open gorm: %w", err)
		}

		log.Info().Str("driver", driver).Msg("✅ Database connected (GORM)!")
		return &DB{DB: sqlDB, GORM: gormDB, Driver: driver}, nil

	case "sqlite":
		sqlDB, err := sql.Open("sqlite", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// sqlite serializes writers anyway
		sqlDB.SetMaxOpenConns(1)
		if err := sqlDB.Ping(); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to ping sqlite: %w", err)
		}

		log.Info().Str("driver", driver).Msg("✅ Database connected!")
		return &DB{DB: sqlDB, Driver: driver}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(60 * time.Minute)
}

func (db *DB) Close() error {
	log.Info().Msg("🔌 Closing database connection...")
	return db.DB.Close()
}
