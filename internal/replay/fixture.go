package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mbcrowell/playsense/go-tracker/internal/sampler"
	"github.com/mbcrowell/playsense/go-tracker/internal/tracker"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture: a
// sequence of recorded plays with the tracker tuning they ran under.
type Fixture struct {
	Description string            `json:"description"`
	Config      FixtureConfig     `json:"config"`
	Plays       []FixturePlay     `json:"plays"`
	Expected    []FixtureExpected `json:"expected"`
}

// FixtureConfig mirrors tracker.Config with JSON tags. Omitted fields
// keep their defaults; an explicit zero is honored.
type FixtureConfig struct {
	WarmupSessions   *int     `json:"warmup_sessions"`
	AnomalyThreshold *float64 `json:"anomaly_threshold"`
	MaxPredictions   *int     `json:"max_predictions"`
	MinProbability   *float64 `json:"min_probability"`
	AxisLength       *float64 `json:"axis_length"`
}

// FixturePlay is one recorded play: an ordered frame stream.
type FixturePlay struct {
	PlayID string         `json:"play_id"`
	Frames []FixtureFrame `json:"frames"`
}

// FixtureFrame mirrors sampler.ActorSnapshot with JSON tags.
type FixtureFrame struct {
	ActorID  string  `json:"actor_id"`
	Category int     `json:"category"`
	Action   int     `json:"action"`
	X        float64 `json:"x"`
	Lateral  float64 `json:"lateral"`
	Stamina  float64 `json:"stamina"`
}

// FixtureExpected captures the expected anomaly count per play.
type FixtureExpected struct {
	PlayID    string `json:"play_id"`
	Anomalies int    `json:"anomalies"`
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// ToTrackerConfig converts a FixtureConfig to a tracker.Config,
// defaulting any omitted field.
func (fc *FixtureConfig) ToTrackerConfig() tracker.Config {
	cfg := tracker.DefaultConfig()
	if fc.WarmupSessions != nil {
		cfg.WarmupSessions = *fc.WarmupSessions
	}
	if fc.AnomalyThreshold != nil {
		cfg.AnomalyThreshold = *fc.AnomalyThreshold
	}
	if fc.MaxPredictions != nil {
		cfg.MaxPredictions = *fc.MaxPredictions
	}
	if fc.MinProbability != nil {
		cfg.MinProbability = *fc.MinProbability
	}
	if fc.AxisLength != nil {
		cfg.AxisLength = *fc.AxisLength
	}
	return cfg
}

// ToSnapshot converts a FixtureFrame to a domain ActorSnapshot.
func (ff *FixtureFrame) ToSnapshot() sampler.ActorSnapshot {
	return sampler.ActorSnapshot{
		ID:       ff.ActorID,
		Category: ff.Category,
		Action:   ff.Action,
		X:        ff.X,
		Lateral:  ff.Lateral,
		Stamina:  ff.Stamina,
	}
}

// #endregion fixture-loader
