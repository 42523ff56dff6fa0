package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prathibhasolutions/v-mobile/internal/models"
)

// ConnectAndMigrate opens the database named by the DSN and applies the
// gorm migrations. Postgres DSNs (postgres:// or key=value form) use the
// postgres driver; anything else is treated as a sqlite path.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN, check DATABASE_DSN")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	var conn *gorm.DB
	var err error
	if isPostgres(dsn) {
		// Retry to give postgres time to come up alongside the app.
		for i := 0; i < 5; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Printf("attempt %d/5 failed, retrying...\n", i+1)
			time.Sleep(2 * time.Second)
		}
	} else {
		conn, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if err := conn.AutoMigrate(
		&models.Mobile{},
		&models.Invoice{},
		&models.InvoiceItem{},
	); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}
	return conn, nil
}

func isPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}
