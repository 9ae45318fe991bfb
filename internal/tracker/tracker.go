package tracker

import (
	"github.com/mbcrowell/playsense/go-tracker/internal/field"
	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/sampler"
	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

// #region tracker-struct

// Tracker ties per-actor observation to play boundaries. It owns the
// per-actor token cursors and the warm-up gate; the model it wraps is
// caller-constructed and survives across plays, the cursors do not.
type Tracker struct {
	config    Config
	model     *model.Model
	cursors   map[string]token.Token
	sessions  int
	onAnomaly AnomalyFunc
}

// New wraps a model with per-actor lifecycle bookkeeping.
func New(m *model.Model, config Config) *Tracker {
	return &Tracker{
		config:  config,
		model:   m,
		cursors: make(map[string]token.Token),
	}
}

// Model returns the wrapped transition model, e.g. for persistence.
func (t *Tracker) Model() *model.Model {
	return t.model
}

// Sessions returns how many plays have started.
func (t *Tracker) Sessions() int {
	return t.sessions
}

// ResumeSessions restores the play counter from persisted state so the
// warm-up gate carries across process restarts.
func (t *Tracker) ResumeSessions(n int) {
	if n > t.sessions {
		t.sessions = n
	}
}

// OnAnomaly registers the anomaly callback. Pass nil to unregister.
func (t *Tracker) OnAnomaly(fn AnomalyFunc) {
	t.onAnomaly = fn
}

// WarmedUp reports whether enough plays have elapsed for predictions
// and anomaly scores to be statistically meaningful.
func (t *Tracker) WarmedUp() bool {
	return t.sessions >= t.config.WarmupSessions
}

// #endregion tracker-struct

// #region observe

// Observe folds one snapshot into the model. The first sighting of an
// actor records an entering half-transition; subsequent sightings
// record the full edge and, past warm-up, score it for anomalies. The
// callback fires at most once per observation.
func (t *Tracker) Observe(snap sampler.ActorSnapshot) {
	tok := sampler.SnapshotToToken(snap, t.config.AxisLength)

	prev, tracked := t.cursors[snap.ID]
	if !tracked {
		t.model.Observe(nil, &tok)
		t.cursors[snap.ID] = tok
		return
	}

	// Score before folding the edge in: once counted, a never-seen
	// transition no longer scores 1.0.
	score, scored := 0.0, false
	if t.WarmedUp() && t.onAnomaly != nil {
		score = t.model.AnomalyScore(prev, tok)
		scored = true
	}

	t.model.Observe(&prev, &tok)
	t.cursors[snap.ID] = tok

	if scored && score > t.config.AnomalyThreshold {
		t.onAnomaly(AnomalyEvent{ActorID: snap.ID, Score: score, PrevToken: prev, NextToken: tok})
	}
}

// #endregion observe

// #region session-boundaries

// StartSession marks the beginning of a play, advancing the warm-up
// counter.
func (t *Tracker) StartSession() {
	t.sessions++
}

// EndSession records a leaving half-transition for every tracked actor
// and clears the cursors. The model's learned counts are retained; only
// each actor's position in the chain resets.
func (t *Tracker) EndSession() {
	for _, cur := range t.cursors {
		t.model.Observe(&cur, nil)
	}
	t.cursors = make(map[string]token.Token)
}

// #endregion session-boundaries

// #region predict-for

// PredictFor returns ranked candidates for the snapshot's next token,
// filtered to the configured probability floor and count cap, each with
// a reconstructed field position. Nil until the warm-up gate opens.
func (t *Tracker) PredictFor(snap sampler.ActorSnapshot) []PlacedPrediction {
	if !t.WarmedUp() {
		return nil
	}

	tok := sampler.SnapshotToToken(snap, t.config.AxisLength)
	var placed []PlacedPrediction
	for _, p := range t.model.Predict(tok) {
		if p.Probability < t.config.MinProbability {
			continue
		}
		placed = append(placed, PlacedPrediction{
			Prediction: p,
			Position:   field.ZoneToPosition(p.Token.Zone(), t.config.AxisLength),
		})
		if len(placed) >= t.config.MaxPredictions {
			break
		}
	}
	return placed
}

// #endregion predict-for
