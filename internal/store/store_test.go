package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "playsense.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seededModel() *model.Model {
	m := model.New()
	a, b, c := token.Token(10), token.Token(266), token.Token(20)
	for i := 0; i < 5; i++ {
		m.Observe(&a, &b)
	}
	m.Observe(&a, &c)
	m.Observe(nil, &a)
	return m
}

func TestSaveAndLoadCurrent(t *testing.T) {
	s := openTestStore(t)
	m := seededModel()

	snap, err := s.Save(m, 4, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if snap.TotalObservations != m.TotalObservations() {
		t.Fatalf("denormalized total mismatch: %d vs %d", snap.TotalObservations, m.TotalObservations())
	}
	if snap.Sessions != 4 {
		t.Fatalf("expected sessions 4, got %d", snap.Sessions)
	}

	restored, loaded, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("load current: %v", err)
	}
	if loaded.VersionID != snap.VersionID {
		t.Fatalf("active pointer mismatch: %s vs %s", loaded.VersionID, snap.VersionID)
	}
	if restored.TotalObservations() != m.TotalObservations() {
		t.Fatalf("total mismatch after load")
	}
	if !reflect.DeepEqual(restored.Edges(), m.Edges()) {
		t.Fatalf("edges diverge after load")
	}
}

func TestSaveLineageAndRollback(t *testing.T) {
	s := openTestStore(t)

	first, err := s.Save(model.New(), 0, "")
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := s.Save(seededModel(), 2, first.VersionID)
	if err != nil {
		t.Fatalf("save second: %v", err)
	}
	if second.ParentID != first.VersionID {
		t.Fatalf("expected parent %s, got %s", first.VersionID, second.ParentID)
	}

	// Active pointer follows the latest save, then rolls back.
	_, cur, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("load current: %v", err)
	}
	if cur.VersionID != second.VersionID {
		t.Fatalf("expected active %s, got %s", second.VersionID, cur.VersionID)
	}

	if err := s.Rollback(first.VersionID); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	restored, cur, err := s.LoadCurrent()
	if err != nil {
		t.Fatalf("load after rollback: %v", err)
	}
	if cur.VersionID != first.VersionID {
		t.Fatalf("rollback did not move active pointer")
	}
	if restored.TotalObservations() != 0 {
		t.Fatalf("expected empty model after rollback")
	}
}

func TestRollbackUnknownVersion(t *testing.T) {
	s := openTestStore(t)
	if err := s.Rollback("no-such-version"); err == nil {
		t.Fatal("expected error for unknown version")
	}
}

func TestListSnapshots(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Save(model.New(), 0, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save(seededModel(), 3, ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	snaps, err := s.ListSnapshots(10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snaps))
	}
}

func TestTopEdges(t *testing.T) {
	s := openTestStore(t)
	snap, err := s.Save(seededModel(), 1, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	edges, err := s.TopEdges(snap.VersionID, 10)
	if err != nil {
		t.Fatalf("top edges: %v", err)
	}
	if len(edges) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(edges))
	}
	if edges[0].Count != 5 || edges[0].Next != 266 {
		t.Fatalf("expected heaviest edge (10→266, 5), got %+v", edges[0])
	}
	if edges[1].Count != 1 {
		t.Fatalf("expected second edge count 1, got %d", edges[1].Count)
	}
}

func TestLoadVersionCorruptDocFailsLoudly(t *testing.T) {
	s := openTestStore(t)
	snap, err := s.Save(model.New(), 0, "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := s.DB().Exec(
		`UPDATE model_snapshots SET doc = ? WHERE version_id = ?`,
		[]byte(`{"version":99}`), snap.VersionID,
	); err != nil {
		t.Fatalf("corrupt doc: %v", err)
	}

	if _, _, err := s.LoadVersion(snap.VersionID); err == nil {
		t.Fatal("expected decode error for corrupt document")
	}
}
