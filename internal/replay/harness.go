package replay

import (
	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/tracker"
)

// #region types

// PlayResult captures the outcome of replaying one play.
type PlayResult struct {
	PlayID    string
	Frames    int
	Anomalies []tracker.AnomalyEvent
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	TotalPlays     int
	TotalFrames    int
	TotalAnomalies int
	Observations   int // model total after the run
}

// #endregion types

// #region replay

// Replay drives the plays through a fresh tracker wrapping m, one
// session per play: start → frames → end. Operates entirely in-memory;
// the model accumulates counts across plays exactly as it would live.
func Replay(m *model.Model, plays []FixturePlay, config tracker.Config) []PlayResult {
	tr := tracker.New(m, config)

	results := make([]PlayResult, 0, len(plays))
	for _, play := range plays {
		var anomalies []tracker.AnomalyEvent
		tr.OnAnomaly(func(e tracker.AnomalyEvent) {
			anomalies = append(anomalies, e)
		})

		tr.StartSession()
		for _, frame := range play.Frames {
			tr.Observe(frame.ToSnapshot())
		}
		tr.EndSession()

		results = append(results, PlayResult{
			PlayID:    play.PlayID,
			Frames:    len(play.Frames),
			Anomalies: anomalies,
		})
	}

	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []PlayResult, m *model.Model) Summary {
	s := Summary{
		TotalPlays:   len(results),
		Observations: m.TotalObservations(),
	}
	for _, r := range results {
		s.TotalFrames += r.Frames
		s.TotalAnomalies += len(r.Anomalies)
	}
	return s
}

// #endregion replay
