package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the inventory console.
type Config struct {
	DBDriver          string        `validate:"oneof=sqlite postgres mysql"`
	DatabaseDSN       string        `validate:"required"`
	DBMaxOpenConns    int           `validate:"gte=1"`
	DBMaxIdleConns    int           `validate:"gte=0"`
	DBConnMaxLifetime time.Duration `validate:"gte=0"`
	DBLogLevel        string        `validate:"oneof=silent error warn info"`

	// Locale drives the collation used when sorting by name.
	Locale string `validate:"required"`
	// SearchScope is "name" for the storefront search or "all" for the
	// management search across description, category and brand.
	SearchScope string `validate:"oneof=name all"`

	// ManagerPasswordHash is a bcrypt hash; empty leaves manager mode unlocked.
	ManagerPasswordHash string
	SeedDemoData        bool
}

// Load reads an optional .env file and then the environment. Missing keys fall
// back to defaults suitable for a local SQLite database.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
			}
			log.Printf("No %s file found, using process environment", envFile)
		}
	}

	v := viper.New()
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:gudang.db?_foreign_keys=1")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 5*time.Minute)
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("CATALOG_LOCALE", "en")
	v.SetDefault("CATALOG_SEARCH_SCOPE", "all")
	v.SetDefault("MANAGER_PASSWORD_HASH", "")
	v.SetDefault("SEED_DEMO_DATA", true)
	v.AutomaticEnv()

	cfg := &Config{
		DBDriver:            v.GetString("DB_DRIVER"),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		DBMaxOpenConns:      v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:      v.GetInt("DB_MAX_IDLE_CONNS"),
		DBConnMaxLifetime:   v.GetDuration("DB_CONN_MAX_LIFETIME"),
		DBLogLevel:          v.GetString("DB_LOG_LEVEL"),
		Locale:              v.GetString("CATALOG_LOCALE"),
		SearchScope:         v.GetString("CATALOG_SEARCH_SCOPE"),
		ManagerPasswordHash: v.GetString("MANAGER_PASSWORD_HASH"),
		SeedDemoData:        v.GetBool("SEED_DEMO_DATA"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
