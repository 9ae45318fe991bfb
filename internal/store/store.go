package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS model_snapshots (
	version_id         TEXT PRIMARY KEY,
	parent_id          TEXT,
	doc                BLOB NOT NULL,
	total_observations INTEGER NOT NULL,
	sessions           INTEGER NOT NULL,
	created_at         TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES model_snapshots(version_id)
);

CREATE TABLE IF NOT EXISTS transition_edges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id  TEXT NOT NULL,
	prev_token  INTEGER NOT NULL,
	class       INTEGER NOT NULL,
	next_token  INTEGER NOT NULL,
	count       INTEGER NOT NULL,
	FOREIGN KEY (version_id) REFERENCES model_snapshots(version_id)
);

CREATE INDEX IF NOT EXISTS idx_transition_edges_version
ON transition_edges(version_id);

CREATE TABLE IF NOT EXISTS active_snapshot (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	version_id  TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES model_snapshots(version_id)
);

CREATE TABLE IF NOT EXISTS anomaly_log (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id  TEXT NOT NULL,
	actor_id    TEXT NOT NULL,
	prev_token  INTEGER NOT NULL,
	next_token  INTEGER NOT NULL,
	score       REAL NOT NULL,
	created_at  TEXT NOT NULL
);
`

// #endregion schema

// #region store-struct

// Store persists versioned model snapshots in SQLite, each with its
// flattened transition edges for inspection queries.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by other packages
// (e.g. logging).
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store-struct

// #region save

// Save serializes the model, inserts a new snapshot with its edge rows,
// and moves the active pointer, all in one transaction.
func (s *Store) Save(m *model.Model, sessions int, parentID string) (Snapshot, error) {
	doc, err := m.Serialize()
	if err != nil {
		return Snapshot{}, fmt.Errorf("serialize model: %w", err)
	}

	snap := Snapshot{
		VersionID:         uuid.New().String(),
		ParentID:          parentID,
		Doc:               doc,
		TotalObservations: m.TotalObservations(),
		Sessions:          sessions,
		CreatedAt:         time.Now().UTC(),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Snapshot{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var parentPtr interface{}
	if snap.ParentID != "" {
		parentPtr = snap.ParentID
	}

	_, err = tx.Exec(
		`INSERT INTO model_snapshots (version_id, parent_id, doc, total_observations, sessions, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.VersionID, parentPtr, snap.Doc, snap.TotalObservations, snap.Sessions,
		snap.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	for _, e := range m.Edges() {
		_, err = tx.Exec(
			`INSERT INTO transition_edges (version_id, prev_token, class, next_token, count)
			 VALUES (?, ?, ?, ?, ?)`,
			snap.VersionID, int(e.Prev), int(e.Class), int(e.Next), e.Count,
		)
		if err != nil {
			return Snapshot{}, fmt.Errorf("insert edge: %w", err)
		}
	}

	_, err = tx.Exec(
		`INSERT INTO active_snapshot (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		snap.VersionID,
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("set active: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snapshot{}, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

// #endregion save

// #region load

// LoadCurrent decodes the active snapshot into a model. A corrupt
// document fails here rather than producing a partial model.
func (s *Store) LoadCurrent() (*model.Model, Snapshot, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_snapshot WHERE id = 1`).Scan(&versionID)
	if err != nil {
		return nil, Snapshot{}, fmt.Errorf("get active: %w", err)
	}
	return s.LoadVersion(versionID)
}

// LoadVersion decodes a specific snapshot into a model.
func (s *Store) LoadVersion(id string) (*model.Model, Snapshot, error) {
	snap, err := s.GetSnapshot(id)
	if err != nil {
		return nil, Snapshot{}, err
	}
	m, err := model.Deserialize(snap.Doc)
	if err != nil {
		return nil, Snapshot{}, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return m, snap, nil
}

// GetSnapshot retrieves snapshot metadata and the raw document.
func (s *Store) GetSnapshot(id string) (Snapshot, error) {
	var snap Snapshot
	var parentID sql.NullString
	var createdStr string

	err := s.db.QueryRow(
		`SELECT version_id, parent_id, doc, total_observations, sessions, created_at
		 FROM model_snapshots WHERE version_id = ?`, id,
	).Scan(&snap.VersionID, &parentID, &snap.Doc, &snap.TotalObservations, &snap.Sessions, &createdStr)
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	if parentID.Valid {
		snap.ParentID = parentID.String
	}
	snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return snap, nil
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, doc, total_observations, sessions, created_at
		 FROM model_snapshots ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		var parentID sql.NullString
		var createdStr string
		if err := rows.Scan(&snap.VersionID, &parentID, &snap.Doc, &snap.TotalObservations, &snap.Sessions, &createdStr); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if parentID.Valid {
			snap.ParentID = parentID.String
		}
		snap.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// #endregion load

// #region rollback

// Rollback points the active snapshot at a previous version.
func (s *Store) Rollback(targetVersionID string) error {
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM model_snapshots WHERE version_id = ?`, targetVersionID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("version %s not found", targetVersionID)
	}

	_, err = s.db.Exec(`UPDATE active_snapshot SET version_id = ? WHERE id = 1`, targetVersionID)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

// #endregion rollback

// #region top-edges

// TopEdges returns a snapshot's heaviest transition edges, ordered by
// count descending then token order, without decoding the document.
func (s *Store) TopEdges(versionID string, limit int) ([]model.Edge, error) {
	rows, err := s.db.Query(
		`SELECT prev_token, class, next_token, count FROM transition_edges
		 WHERE version_id = ?
		 ORDER BY count DESC, prev_token ASC, next_token ASC LIMIT ?`,
		versionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query edges: %w", err)
	}
	defer rows.Close()

	var edges []model.Edge
	for rows.Next() {
		var prev, class, next, count int
		if err := rows.Scan(&prev, &class, &next, &count); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, model.Edge{
			Prev:  token.Token(prev),
			Class: model.Class(class),
			Next:  token.Token(next),
			Count: count,
		})
	}
	return edges, rows.Err()
}

// #endregion top-edges
