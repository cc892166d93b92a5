package database

import (
	"database/sql"

	_ "github.com/glebarez/go-sqlite"
)

// Outcome values recorded for a finished download attempt.
const (
	OutcomeDone   = "done"
	OutcomeTooBig = "too_big"
	OutcomeError  = "error"
)

func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	createTable := `
        CREATE TABLE IF NOT EXISTS downloads (
						id INTEGER PRIMARY KEY AUTOINCREMENT,
						user_id INTEGER NOT NULL,
						url TEXT NOT NULL,
						title TEXT,
						format TEXT,
						quality TEXT,
						outcome TEXT NOT NULL,
						size_bytes INTEGER NOT NULL DEFAULT 0,
						created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
				);
    `
	_, err = db.Exec(createTable)
	if err != nil {
		return nil, err
	}

	return db, nil
}
