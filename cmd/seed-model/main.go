package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/replay"
	"github.com/mbcrowell/playsense/go-tracker/internal/store"
	_ "modernc.org/sqlite"
)

// #region main
func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON to learn from")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: seed-model --fixture path/to/fixture.json")
		os.Exit(2)
	}

	dbPath := envOr("PLAYSENSE_DB", "playsense.db")

	fmt.Println("=== Model Seed Tool ===")
	fmt.Printf("  DB: %s | Fixture: %s\n", dbPath, *fixturePath)

	f, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("load fixture: %v", err)
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	// Continue an existing lineage when the DB already has an active
	// snapshot; otherwise seed from a cold model.
	m := model.New()
	parentID := ""
	priorSessions := 0
	if existing, snap, err := st.LoadCurrent(); err == nil {
		m = existing
		parentID = snap.VersionID
		priorSessions = snap.Sessions
		fmt.Printf("  Extending model %s (%d observations, %d plays)\n",
			shortID(snap.VersionID), snap.TotalObservations, snap.Sessions)
	}

	results := replay.Replay(m, f.Plays, f.Config.ToTrackerConfig())
	sum := replay.Summarize(results, m)

	saved, err := st.Save(m, priorSessions+sum.TotalPlays, parentID)
	if err != nil {
		log.Fatalf("save snapshot: %v", err)
	}

	fmt.Printf("\n=== Seed Complete ===\n")
	fmt.Printf("  Plays replayed: %d\n", sum.TotalPlays)
	fmt.Printf("  Frames observed: %d\n", sum.TotalFrames)
	fmt.Printf("  Model observations: %d\n", sum.Observations)
	fmt.Printf("  Snapshot: %s\n", shortID(saved.VersionID))
}

// #endregion main

// #region helpers
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion helpers
