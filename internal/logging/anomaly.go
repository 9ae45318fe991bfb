package logging

import (
	"database/sql"
	"fmt"
	"time"
)

// #region log-anomaly
// LogAnomaly writes an anomaly entry to the anomaly_log table.
func LogAnomaly(db *sql.DB, entry AnomalyEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := db.Exec(
		`INSERT INTO anomaly_log (session_id, actor_id, prev_token, next_token, score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.SessionID,
		entry.ActorID,
		entry.PrevToken,
		entry.NextToken,
		entry.Score,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log anomaly: %w", err)
	}
	return nil
}

// #endregion log-anomaly

// #region list-anomalies
// ListAnomalies returns the most recent anomaly entries, newest first.
func ListAnomalies(db *sql.DB, limit int) ([]AnomalyEntry, error) {
	rows, err := db.Query(
		`SELECT session_id, actor_id, prev_token, next_token, score, created_at
		 FROM anomaly_log ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list anomalies: %w", err)
	}
	defer rows.Close()

	var entries []AnomalyEntry
	for rows.Next() {
		var e AnomalyEntry
		var createdStr string
		if err := rows.Scan(&e.SessionID, &e.ActorID, &e.PrevToken, &e.NextToken, &e.Score, &createdStr); err != nil {
			return nil, fmt.Errorf("scan anomaly: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion list-anomalies
