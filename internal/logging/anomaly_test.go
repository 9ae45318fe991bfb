package logging

import (
	"path/filepath"
	"testing"

	"github.com/mbcrowell/playsense/go-tracker/internal/store"
)

func TestLogAndListAnomalies(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "playsense.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	entries := []AnomalyEntry{
		{SessionID: "play-1", ActorID: "qb", PrevToken: 10, NextToken: 266, Score: 0.92},
		{SessionID: "play-1", ActorID: "wr", PrevToken: 20, NextToken: 21, Score: 1.0},
	}
	for _, e := range entries {
		if err := LogAnomaly(s.DB(), e); err != nil {
			t.Fatalf("log anomaly: %v", err)
		}
	}

	got, err := ListAnomalies(s.DB(), 10)
	if err != nil {
		t.Fatalf("list anomalies: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].ActorID != "wr" || got[0].Score != 1.0 {
		t.Fatalf("unexpected first entry %+v", got[0])
	}
	if got[1].PrevToken != 10 || got[1].NextToken != 266 {
		t.Fatalf("unexpected second entry %+v", got[1])
	}
	if got[0].CreatedAt.IsZero() {
		t.Fatal("created_at should be backfilled")
	}
}

func TestListAnomaliesEmpty(t *testing.T) {
	s, err := store.NewStore(filepath.Join(t.TempDir(), "playsense.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer s.Close()

	got, err := ListAnomalies(s.DB(), 5)
	if err != nil {
		t.Fatalf("list anomalies: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no entries, got %d", len(got))
	}
}
