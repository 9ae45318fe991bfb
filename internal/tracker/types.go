package tracker

import (
	"github.com/mbcrowell/playsense/go-tracker/internal/field"
	"github.com/mbcrowell/playsense/go-tracker/internal/model"
	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

// #region config

// Config holds the tracker's tunable policy constants. These are
// explicit configuration rather than embedded constants so tuning does
// not require a redeploy.
type Config struct {
	WarmupSessions   int     // plays observed before predictions/anomalies surface
	AnomalyThreshold float64 // callback fires when score exceeds this
	MaxPredictions   int     // cap on candidates returned by PredictFor
	MinProbability   float64 // floor on candidate probability in PredictFor
	AxisLength       float64 // traversal-axis length for zone mapping
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		WarmupSessions:   3,
		AnomalyThreshold: 0.85,
		MaxPredictions:   3,
		MinProbability:   0.1,
		AxisLength:       100,
	}
}

// #endregion config

// #region anomaly-event

// AnomalyEvent reports an unexpected observed transition. Raised
// transiently through the registered callback, never stored here. The
// token pair is carried so journaling consumers can record the edge.
type AnomalyEvent struct {
	ActorID   string
	Score     float64 // 0..1, 1 = never-seen transition
	PrevToken token.Token
	NextToken token.Token
}

// AnomalyFunc receives anomaly events, at most one per observation.
type AnomalyFunc func(AnomalyEvent)

// #endregion anomaly-event

// #region placed-prediction

// PlacedPrediction pairs a ranked candidate with the approximate field
// position reconstructed from its zone, ready for the renderer.
type PlacedPrediction struct {
	model.Prediction
	Position field.Position
}

// #endregion placed-prediction
