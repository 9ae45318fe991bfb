package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/replay"
	"github.com/mbcrowell/playsense/go-tracker/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to fixture JSON")
	dbPath := flag.String("db", "", "optional: seed the model from this DB's active snapshot")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json [--db path/to/playsense.db]")
		os.Exit(2)
	}

	os.Exit(run(*fixturePath, *dbPath))
}

// #endregion main

// #region run

func run(fixturePath, dbPath string) int {
	f, err := replay.LoadFixture(fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		return 2
	}

	m := model.New()
	if dbPath != "" {
		st, err := store.NewStore(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open db: %v\n", err)
			return 2
		}
		defer st.Close()

		seeded, snap, err := st.LoadCurrent()
		if err != nil {
			fmt.Fprintf(os.Stderr, "load active snapshot: %v\n", err)
			return 2
		}
		m = seeded
		fmt.Printf("Seeded model %s (%d observations)\n", shortID(snap.VersionID), snap.TotalObservations)
	}

	if f.Description != "" {
		fmt.Printf("Fixture: %s\n", f.Description)
	}

	results := replay.Replay(m, f.Plays, f.Config.ToTrackerConfig())

	expected := make(map[string]int, len(f.Expected))
	for _, e := range f.Expected {
		expected[e.PlayID] = e.Anomalies
	}

	return printComparison(results, expected, m)
}

// #endregion run

// #region output

// printComparison outputs a per-play comparison table and returns the
// exit code: 0 when every play matched its expected anomaly count.
func printComparison(results []replay.PlayResult, expected map[string]int, m *model.Model) int {
	fmt.Printf("%-12s| %-8s| %-10s| %-10s| %s\n", "Play", "Frames", "Expected", "Replayed", "Match")
	fmt.Printf("%-12s+%-9s+%-11s+%-11s+%s\n",
		"------------", "---------", "-----------", "-----------", "------")

	matches := 0
	for _, r := range results {
		exp, known := expected[r.PlayID]
		got := len(r.Anomalies)

		match := "DIFF"
		if !known {
			match = "—"
		} else if exp == got {
			match = "OK"
			matches++
		}

		expStr := "—"
		if known {
			expStr = fmt.Sprintf("%d", exp)
		}
		fmt.Printf("%-12s| %-8d| %-10s| %-10d| %s\n", r.PlayID, r.Frames, expStr, got, match)
	}

	sum := replay.Summarize(results, m)
	fmt.Printf("\nSummary: %d plays, %d frames, %d anomalies, %d model observations\n",
		sum.TotalPlays, sum.TotalFrames, sum.TotalAnomalies, sum.Observations)

	diverge := len(expected) - matches
	if diverge > 0 {
		fmt.Printf("%d plays diverged from expectations\n", diverge)
		return 1
	}
	return 0
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
