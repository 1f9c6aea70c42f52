package postgres

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func FormatDSN(cfg Config) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, sslMode)
}

func New(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", FormatDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

const schemaAILog = `
CREATE TABLE IF NOT EXISTS ai_log (
	id SERIAL PRIMARY KEY,
	command VARCHAR(255) NOT NULL,
	response TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`

// Migrate performs the one-time schema bootstrap. The interaction log is the
// only table this process owns.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schemaAILog); err != nil {
		return fmt.Errorf("failed to create ai_log table: %w", err)
	}

	return nil
}
