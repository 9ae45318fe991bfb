package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/mbcrowell/playsense/go-tracker/internal/logging"
	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/store"
	_ "modernc.org/sqlite"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to playsense.db")
	last := flag.Int("last", 20, "show N most recent snapshots")
	version := flag.String("version", "", "show single snapshot detail")
	edges := flag.Int("edges", 10, "top transition edges in detail mode")
	anomalies := flag.Int("anomalies", 10, "recent anomalies shown in list mode")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/playsense.db [--last N] [--version id] [--edges N] [--json]")
		os.Exit(2)
	}

	st, err := store.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *version != "" {
		if err := runDetailMode(st, *version, *edges, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := runListMode(st, *last, *anomalies, *jsonOut); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	VersionID    string `json:"version_id"`
	ParentID     string `json:"parent_id,omitempty"`
	Observations int    `json:"observations"`
	Sessions     int    `json:"sessions"`
	Active       bool   `json:"active"`
	CreatedAt    string `json:"created_at"`
}

func runListMode(st *store.Store, last, anomalyLimit int, jsonOut bool) error {
	snaps, err := st.ListSnapshots(last)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Fprintln(os.Stderr, "no snapshots found")
		return nil
	}

	activeID := ""
	if _, active, err := st.LoadCurrent(); err == nil {
		activeID = active.VersionID
	}

	// Store returns DESC, reverse for chronological.
	listRows := make([]listRow, len(snaps))
	for i, snap := range snaps {
		listRows[len(snaps)-1-i] = listRow{
			VersionID:    snap.VersionID,
			ParentID:     snap.ParentID,
			Observations: snap.TotalObservations,
			Sessions:     snap.Sessions,
			Active:       snap.VersionID == activeID,
			CreatedAt:    snap.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(listRows)
	}
	return printListTable(st, listRows, anomalyLimit)
}

func printListTable(st *store.Store, rows []listRow, anomalyLimit int) error {
	fmt.Printf("%-12s  %-12s  %12s  %8s  %6s  %s\n",
		"Version", "Parent", "Observations", "Plays", "Active", "Time")
	fmt.Printf("%-12s+-%-12s+-%12s+-%8s+-%6s+-%s\n",
		"------------", "------------", "------------", "--------", "------", "--------------------")

	for _, r := range rows {
		parent := "—"
		if r.ParentID != "" {
			parent = shortID(r.ParentID)
		}
		active := ""
		if r.Active {
			active = "*"
		}
		fmt.Printf("%-12s  %-12s  %12d  %8d  %6s  %s\n",
			shortID(r.VersionID), parent, r.Observations, r.Sessions, active, r.CreatedAt)
	}

	entries, err := logging.ListAnomalies(st.DB(), anomalyLimit)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		fmt.Printf("\nRecent anomalies:\n")
		for _, e := range entries {
			fmt.Printf("  %-10s  score=%.3f  %d→%d  %s\n",
				e.ActorID, e.Score, e.PrevToken, e.NextToken,
				e.CreatedAt.Format("2006-01-02T15:04:05Z"))
		}
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	VersionID    string    `json:"version_id"`
	ParentID     string    `json:"parent_id,omitempty"`
	CreatedAt    string    `json:"created_at"`
	Observations int       `json:"observations"`
	Sessions     int       `json:"sessions"`
	TopEdges     []edgeRow `json:"top_edges"`
}

type edgeRow struct {
	PrevToken int    `json:"prev_token"`
	Class     string `json:"class"`
	NextToken int    `json:"next_token"`
	Count     int    `json:"count"`
}

func runDetailMode(st *store.Store, versionID string, edgeLimit int, jsonOut bool) error {
	snap, err := st.GetSnapshot(versionID)
	if err != nil {
		return err
	}

	topEdges, err := st.TopEdges(versionID, edgeLimit)
	if err != nil {
		return err
	}

	out := detailOutput{
		VersionID:    snap.VersionID,
		ParentID:     snap.ParentID,
		CreatedAt:    snap.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Observations: snap.TotalObservations,
		Sessions:     snap.Sessions,
	}
	for _, e := range topEdges {
		out.TopEdges = append(out.TopEdges, edgeRow{
			PrevToken: int(e.Prev),
			Class:     className(e.Class),
			NextToken: int(e.Next),
			Count:     e.Count,
		})
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Version:      %s\n", out.VersionID)
	fmt.Printf("Parent:       %s\n", out.ParentID)
	fmt.Printf("Created:      %s\n", out.CreatedAt)
	fmt.Printf("Observations: %d\n", out.Observations)
	fmt.Printf("Plays:        %d\n", out.Sessions)

	if len(out.TopEdges) > 0 {
		fmt.Printf("\nTop transitions:\n")
		fmt.Printf("  %6s  %-12s  %6s  %6s\n", "From", "Class", "To", "Count")
		for _, e := range out.TopEdges {
			fmt.Printf("  %6d  %-12s  %6d  %6d\n", e.PrevToken, e.Class, e.NextToken, e.Count)
		}
	}
	return nil
}

// #endregion detail-mode

// #region output

func className(c model.Class) string {
	switch c {
	case model.ClassStationary:
		return "stationary"
	case model.ClassZoneChanged:
		return "zone-changed"
	case model.ClassFatigued:
		return "fatigued"
	case model.ClassRecovered:
		return "recovered"
	default:
		return "other"
	}
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// #endregion output
