package database

import (
	"database/sql"
	"fmt"
	"time"
)

// PruneOlderThan drops history rows older than the retention window,
// keeping the file bounded. Called at startup.
func PruneOlderThan(db *sql.DB, retention time.Duration) error {
	cutoff := time.Now().Add(-retention).UTC()
	_, err := db.Exec(`DELETE FROM downloads WHERE created_at < ?`, cutoff.Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("prune downloads: %w", err)
	}
	return nil
}
