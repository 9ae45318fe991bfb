package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mbcrowell/playsense/go-tracker/internal/logging"
	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/replay"
	"github.com/mbcrowell/playsense/go-tracker/internal/store"
	"github.com/mbcrowell/playsense/go-tracker/internal/tracker"
)

// #region events

// event is one JSON line on stdin from the game loop.
type event struct {
	Type     string               `json:"type"` // "start_play" | "frame" | "end_play" | "predict"
	ActorID  string               `json:"actor_id,omitempty"`
	Snapshot *replay.FixtureFrame `json:"snapshot,omitempty"`
}

// #endregion events

// #region main
func main() {
	_ = godotenv.Load()

	dbPath := envOr("PLAYSENSE_DB", "playsense.db")
	configPath := envOr("PLAYSENSE_CONFIG", "")

	cfg := tracker.DefaultConfig()
	if configPath != "" {
		loaded, err := tracker.LoadConfig(configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	st, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer st.Close()

	// Resume the active model if one was persisted; otherwise start cold.
	m, snap, err := st.LoadCurrent()
	parentID := ""
	sessions := 0
	if err != nil {
		log.Println("[TRACK] no active model snapshot, starting cold")
		m = model.New()
	} else {
		parentID = snap.VersionID
		sessions = snap.Sessions
		log.Printf("[TRACK] resumed model %s (%d observations, %d sessions)",
			shortID(snap.VersionID), snap.TotalObservations, snap.Sessions)
	}

	tr := tracker.New(m, cfg)
	tr.ResumeSessions(sessions)

	sessionID := ""
	tr.OnAnomaly(func(e tracker.AnomalyEvent) {
		fmt.Printf("anomaly actor=%s score=%.3f\n", e.ActorID, e.Score)
		err := logging.LogAnomaly(st.DB(), logging.AnomalyEntry{
			SessionID: sessionID,
			ActorID:   e.ActorID,
			PrevToken: int(e.PrevToken),
			NextToken: int(e.NextToken),
			Score:     e.Score,
		})
		if err != nil {
			log.Printf("[TRACK] logging error: %v", err)
		}
	})

	fmt.Println("Playsense tracker ready.")
	fmt.Printf("  DB: %s | warmup=%d threshold=%.2f axis=%.0f\n",
		dbPath, cfg.WarmupSessions, cfg.AnomalyThreshold, cfg.AxisLength)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		var ev event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			log.Printf("[TRACK] bad event: %v", err)
			continue
		}

		switch ev.Type {
		case "start_play":
			sessionID = uuid.New().String()
			tr.StartSession()
			log.Printf("[TRACK] play %d started (%s)", tr.Sessions(), shortID(sessionID))

		case "frame":
			if ev.Snapshot == nil {
				log.Printf("[TRACK] frame event without snapshot")
				continue
			}
			tr.Observe(ev.Snapshot.ToSnapshot())

		case "end_play":
			tr.EndSession()
			saved, err := st.Save(tr.Model(), tr.Sessions(), parentID)
			if err != nil {
				log.Printf("[TRACK] snapshot save error: %v", err)
				continue
			}
			parentID = saved.VersionID
			log.Printf("[TRACK] play ended, model %s saved (%d observations)",
				shortID(saved.VersionID), saved.TotalObservations)

		case "predict":
			if ev.Snapshot == nil {
				log.Printf("[TRACK] predict event without snapshot")
				continue
			}
			if !tr.WarmedUp() {
				fmt.Printf("predict actor=%s: warming up (%d/%d plays)\n",
					ev.ActorID, tr.Sessions(), cfg.WarmupSessions)
				continue
			}
			preds := tr.PredictFor(ev.Snapshot.ToSnapshot())
			if len(preds) == 0 {
				fmt.Printf("predict actor=%s: no candidates above the probability floor\n", ev.ActorID)
				continue
			}
			for i, p := range preds {
				fmt.Printf("predict actor=%s #%d token=%d p=%.3f n=%d at=(%.1f, %.1f)\n",
					ev.ActorID, i+1, p.Token, p.Probability, p.Observations,
					p.Position.X, p.Position.Lateral)
			}

		default:
			log.Printf("[TRACK] unknown event type %q", ev.Type)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("stdin: %v", err)
	}
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
