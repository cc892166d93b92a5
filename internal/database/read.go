package database

import (
	"database/sql"
	"fmt"
)

// RecentByUser returns a user's latest attempts, newest first.
func RecentByUser(db *sql.DB, userID int64, limit int) ([]Record, error) {
	rows, err := db.Query(
		`SELECT url, title, format, quality, outcome, size_bytes FROM downloads WHERE user_id = ? ORDER BY id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query downloads: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec := Record{UserID: userID}
		err := rows.Scan(&rec.URL, &rec.Title, &rec.Format, &rec.Quality, &rec.Outcome, &rec.SizeBytes)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountByUser returns how many attempts a user has made in total.
func CountByUser(db *sql.DB, userID int64) (int64, error) {
	var count int64
	err := db.QueryRow(`SELECT COUNT(*) FROM downloads WHERE user_id = ?`, userID).Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("count downloads: %w", err)
	}
	return count, nil
}
