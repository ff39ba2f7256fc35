package db

import (
	"fmt"
	"log"

	"signet/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

// NewStore connects to postgres when POSTGRES_DSN is set and falls back to
// an embedded sqlite file otherwise. TranslateError is on so uniqueness
// violations surface as gorm.ErrDuplicatedKey on both dialects.
func NewStore(cfg config.Config) (*Store, error) {
	var dial gorm.Dialector
	if cfg.PostgresDSN != "" {
		dial = postgres.Open(cfg.PostgresDSN)
	} else {
		path := cfg.SQLitePath
		if path == "" {
			path = "signet.db"
		}
		log.Printf("POSTGRES_DSN not set; using sqlite store at %s", path)
		dial = sqlite.Open(path)
	}

	gdb, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := gdb.AutoMigrate(&IdentityModel{}, &SignatureModel{}, &VerificationLogModel{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{DB: gdb}, nil
}
