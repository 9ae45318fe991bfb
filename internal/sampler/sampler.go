package sampler

import (
	"github.com/mbcrowell/playsense/go-tracker/internal/field"
	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

// #region snapshot

// ActorSnapshot is the raw per-frame actor state supplied by the game
// loop. The sampler reads it, never mutates it.
type ActorSnapshot struct {
	ID       string
	Category int     // actor category enum, 8 values
	Action   int     // current action enum, 8 values
	X        float64 // traversal-axis coordinate
	Lateral  float64 // signed lateral coordinate
	Stamina  float64 // 0..100
}

// Position returns the snapshot's field position.
func (s ActorSnapshot) Position() field.Position {
	return field.Position{X: s.X, Lateral: s.Lateral}
}

// #endregion snapshot

// #region stamina-bucket

// Stamina bucket thresholds: fresh ≥75, good ≥50, tired ≥25, gassed below.
const (
	BucketGassed = 0
	BucketTired  = 1
	BucketGood   = 2
	BucketFresh  = 3
)

// BucketStamina maps raw stamina to its ordinal bucket.
func BucketStamina(raw float64) int {
	switch {
	case raw >= 75:
		return BucketFresh
	case raw >= 50:
		return BucketGood
	case raw >= 25:
		return BucketTired
	default:
		return BucketGassed
	}
}

// #endregion stamina-bucket

// #region snapshot-to-token

// SnapshotToToken discretizes a raw snapshot into a Token. Unrecognized
// category or action values truncate inside the codec instead of
// failing, so the sampler stays total.
func SnapshotToToken(snap ActorSnapshot, axisLength float64) token.Token {
	zone := field.PositionToZone(snap.Position(), axisLength)
	bucket := BucketStamina(snap.Stamina)
	return token.Encode(snap.Category, snap.Action, bucket, zone)
}

// #endregion snapshot-to-token
