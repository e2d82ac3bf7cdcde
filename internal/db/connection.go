package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// defaultConnectionString points at a local SQLite file. Any real deployment
// overrides it with a postgres:// connection string.
const defaultConnectionString = "smartpay.db"

// DBService represents a service that interacts with a database.
type DBService struct {
	DB     *sql.DB
	Driver string
}

// NewDBService initializes a new database service from the environment.
func NewDBService() (*DBService, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	connStr := os.Getenv("DB_CONNECTION_STRING")
	if connStr == "" {
		log.Printf("DB_CONNECTION_STRING not set, using local SQLite file %q", defaultConnectionString)
		connStr = defaultConnectionString
	}

	return Open(connStr)
}

// Open connects to the database identified by connStr, verifies the
// connection and bootstraps the schema. postgres:// strings go through the
// pgx driver, anything else is treated as a SQLite path.
func Open(connStr string) (*DBService, error) {
	driver := "sqlite"
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		driver = "pgx"
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("could not open db connection: %v", err)
	}

	if driver == "pgx" {
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
	} else if strings.Contains(connStr, ":memory:") {
		// every new connection to :memory: is a fresh empty database
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to the database: %v", err)
	}

	s := &DBService{DB: db, Driver: driver}
	if err := s.bootstrapSchema(); err != nil {
		return nil, fmt.Errorf("could not bootstrap schema: %v", err)
	}

	return s, nil
}

// bootstrapSchema creates the tables if they do not exist yet. There is
// deliberately no unique index on budgets (user_id, category, period):
// duplicate budgets for the same key are an accepted race, and this is where
// the constraint would go if that ever changes.
func (s *DBService) bootstrapSchema() error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	timestampType := "DATETIME"
	if s.Driver == "pgx" {
		idColumn = "id BIGSERIAL PRIMARY KEY"
		timestampType = "TIMESTAMPTZ"
	}

	migrations := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			%s,
			email TEXT UNIQUE NOT NULL,
			full_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			created_at %s NOT NULL
		)`, idColumn, timestampType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS transactions (
			%s,
			user_id BIGINT NOT NULL REFERENCES users(id),
			amount DOUBLE PRECISION NOT NULL,
			category TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			timestamp %s NOT NULL
		)`, idColumn, timestampType),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS budgets (
			%s,
			user_id BIGINT NOT NULL REFERENCES users(id),
			category TEXT NOT NULL,
			limit_amount DOUBLE PRECISION NOT NULL,
			period TEXT NOT NULL
		)`, idColumn),
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_category ON transactions (user_id, category)`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_user ON budgets (user_id)`,
	}

	for _, m := range migrations {
		if _, err := s.DB.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Health checks the health of the database connection by pinging the database.
func (s *DBService) Health() map[string]string {
	stats := make(map[string]string)

	err := s.DB.Ping()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"
	return stats
}

// Close closes the database connection.
func (s *DBService) Close() error {
	log.Println("Closing database connection")
	return s.DB.Close()
}
