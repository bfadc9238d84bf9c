package database

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/K-is-SAD/nebula-dapp/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the SQLite database backing the ledger.
// For "memory" (or an empty DSN) it uses an in-memory database; any other DSN
// is treated as a file path. SQLite serializes writers, which gives the
// repositories the single serializing ledger the rest of the system assumes.
func Init() (*gorm.DB, error) {
	var err error
	dsn := config.AppConfig.Ledger.DSN

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	gormConfig := &gorm.Config{
		Logger: gormLogger,
	}

	if dsn == "memory" || dsn == "" {
		log.Println("INFO: [Database] Initializing in-memory SQLite ledger (DSN: 'memory' or empty).")
		// cache=shared keeps all connections of this process on one database.
		DB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormConfig)
	} else {
		log.Printf("INFO: [Database] Initializing file-based SQLite ledger at DSN: '%s'.", dsn)
		dbDir := filepath.Dir(dsn)
		if dbDir != "." && dbDir != "/" {
			if _, statErr := os.Stat(dbDir); os.IsNotExist(statErr) {
				log.Printf("INFO: [Database] Ledger directory '%s' does not exist, attempting to create.", dbDir)
				if mkdirErr := os.MkdirAll(dbDir, 0755); mkdirErr != nil {
					log.Printf("ERROR: [Database] Failed to create ledger directory '%s': %v", dbDir, mkdirErr)
					return nil, fmt.Errorf("failed to create ledger directory '%s': %w", dbDir, mkdirErr)
				}
			}
		}
		DB, err = gorm.Open(sqlite.Open(dsn), gormConfig)
	}

	if err != nil {
		log.Printf("ERROR: [Database] Failed to connect to ledger database (DSN: '%s'): %v", dsn, err)
		return nil, fmt.Errorf("failed to connect to ledger database (DSN: '%s'): %w", dsn, err)
	}

	log.Println("INFO: [Database] Ledger database connection established successfully.")
	return DB, nil
}

// GetDB returns the global database instance.
// It panics if DB has not been initialized via Init().
func GetDB() *gorm.DB {
	if DB == nil {
		log.Fatal("FATAL: [Database] Database instance has not been initialized. Call database.Init() first.")
	}
	return DB
}
