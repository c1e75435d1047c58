package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/estately/estately/internal/model"
)

type Config struct {
	// Dialect is one of sqlite, postgres.
	Dialect string `conf:"dialect" yaml:"dialect" json:"dialect"`
	DSN     string `conf:"dsn"     yaml:"dsn"     json:"dsn"`
	Debug   bool   `conf:"debug"   yaml:"debug"   json:"debug"`
}

// New opens the database and migrates the marketplace schema.
func New(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Dialect {
	case "postgres", "pgx", "pg", "postgresql":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "sqlite3", "":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = "file:estately.db?_fk=1"
		}

		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("invalid dialect: %s", cfg.Dialect)
	}

	opts := &gorm.Config{}
	if cfg.Debug {
		opts.Logger = logger.Default.LogMode(logger.Info)
	} else {
		opts.Logger = logger.Default.LogMode(logger.Silent)
	}

	client, err := gorm.Open(dialector, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(client); err != nil {
		return nil, err
	}

	return client, nil
}

// Migrate creates or updates the schema for every marketplace entity.
func Migrate(client *gorm.DB) error {
	err := client.AutoMigrate(
		&model.User{},
		&model.SellerApplication{},
		&model.Property{},
		&model.PropertyImage{},
		&model.Inquiry{},
		&model.Favorite{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
