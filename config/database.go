package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Migration is one schema step. Versions are applied in order, once.
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// Migrations is the schema history of the booth database
var Migrations = []Migration{
	{
		Version:     1,
		Description: "create_initial_tables",
		SQL: `
			CREATE TABLE IF NOT EXISTS events (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				date TEXT NOT NULL,
				time TEXT NOT NULL,
				location TEXT,
				description TEXT,
				max_photos INTEGER DEFAULT 50,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP
			);

			CREATE TABLE IF NOT EXISTS photos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				event_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				taken_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (event_id) REFERENCES events(id)
			);

			CREATE TABLE IF NOT EXISTS shares (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				photo_id INTEGER NOT NULL,
				type TEXT NOT NULL,
				status TEXT DEFAULT 'pending',
				destination TEXT,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (photo_id) REFERENCES photos(id)
			);`,
	},
	{
		Version:     2,
		Description: "add_event_paper_size",
		SQL:         `ALTER TABLE events ADD COLUMN paper_size TEXT DEFAULT '4R';`,
	},
	{
		Version:     3,
		Description: "add_event_template_image",
		SQL:         `ALTER TABLE events ADD COLUMN template_image TEXT;`,
	},
	{
		Version:     4,
		Description: "add_event_photo_boxes",
		SQL:         `ALTER TABLE events ADD COLUMN photo_boxes TEXT;`,
	},
}

// InitDatabase opens the SQLite database at path and brings its schema up to date
func InitDatabase(path string) (*sql.DB, error) {
	// Create data directory if not exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db, Migrations); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Database initialized at %s", path)
	return db, nil
}

func runMigrations(db *sql.DB, migrations []Migration) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: %w", m.Version, err)
		}
		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
			m.Version, m.Description); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Description)
	}
	return nil
}
