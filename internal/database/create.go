package database

import "database/sql"

// Record is one finished download attempt, whatever its outcome.
type Record struct {
	UserID    int64
	URL       string
	Title     string
	Format    string
	Quality   string
	Outcome   string
	SizeBytes int64
}

func RecordDownload(db *sql.DB, rec Record) error {
	_, err := db.Exec(
		`INSERT INTO downloads (user_id, url, title, format, quality, outcome, size_bytes) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.UserID, rec.URL, rec.Title, rec.Format, rec.Quality, rec.Outcome, rec.SizeBytes,
	)
	if err != nil {
		return err
	}
	return nil
}
