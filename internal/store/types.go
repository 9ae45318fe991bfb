package store

import "time"

// #region snapshot

// Snapshot is one persisted model version. Doc holds the serialized
// model document; TotalObservations and Sessions are denormalized for
// listing without decoding.
type Snapshot struct {
	VersionID         string
	ParentID          string
	Doc               []byte
	TotalObservations int
	Sessions          int
	CreatedAt         time.Time
}

// #endregion snapshot
