package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// DB is the global database connection
var DB *sqlx.DB

// Connect establishes a connection to the database.
// DB_TYPE selects the backend: "sqlite" (default) or "postgres".
func Connect() error {
	dbType := os.Getenv("DB_TYPE")
	if dbType == "" {
		dbType = "sqlite"
	}

	switch dbType {
	case "postgres":
		return connectPostgres()
	case "sqlite":
		return connectSQLite()
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

func connectPostgres() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db.SetMaxOpenConns(10)

	DB = db
	return initializeSchema()
}

func connectSQLite() error {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dataDir := "data"
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		dbPath = filepath.Join(dataDir, "readlog.db")
	}

	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	DB = db
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if DB.DriverName() == "postgres" {
		idColumn = "BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS books (
			id %s,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			total_pages INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'reading',
			started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(title, author)
		)`, idColumn),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS reading_sessions (
			id %s,
			book_id INTEGER NOT NULL,
			read_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			minutes INTEGER NOT NULL DEFAULT 0,
			start_page INTEGER NOT NULL DEFAULT 0,
			end_page INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (book_id) REFERENCES books(id)
		)`, idColumn),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS words (
			id %s,
			book_id INTEGER,
			text TEXT NOT NULL,
			definition TEXT NOT NULL DEFAULT '',
			context TEXT NOT NULL DEFAULT '',
			translation TEXT NOT NULL DEFAULT '',
			srs_due_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			srs_interval_days INTEGER NOT NULL DEFAULT 0,
			srs_ease REAL NOT NULL DEFAULT 2.5,
			srs_reps INTEGER NOT NULL DEFAULT 0,
			last_reviewed_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (book_id) REFERENCES books(id)
		)`, idColumn),
		fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS review_logs (
			id %s,
			word_id INTEGER NOT NULL,
			rating TEXT NOT NULL,
			interval_days INTEGER NOT NULL,
			ease REAL NOT NULL,
			reviewed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (word_id) REFERENCES words(id)
		)`, idColumn),
		`CREATE INDEX IF NOT EXISTS idx_words_due ON words(srs_due_at)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_book ON reading_sessions(book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_review_logs_word ON review_logs(word_id)`,
	}

	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
