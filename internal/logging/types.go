package logging

import "time"

// #region anomaly-entry
// AnomalyEntry is a single row in the anomaly_log table: an observed
// transition the model scored above the configured threshold.
type AnomalyEntry struct {
	SessionID string
	ActorID   string
	PrevToken int
	NextToken int
	Score     float64
	CreatedAt time.Time
}

// #endregion anomaly-entry
