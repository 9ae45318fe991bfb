package model

import "github.com/mbcrowell/playsense/go-tracker/internal/token"

// #region class

// Class groups raw token-to-token observations by the kind of change
// they represent. It is inferred from the token delta and used only as
// a secondary key inside the count structure, never exposed to callers.
type Class int

const (
	ClassStationary Class = iota
	ClassZoneChanged
	ClassOther
	ClassFatigued
	ClassRecovered

	classCount
)

// classify infers the transition class from a before/after token pair.
// A simultaneous zone and stamina change counts as zone-changed; the
// zone check runs first.
func classify(prev, next token.Token) Class {
	if prev == next {
		return ClassStationary
	}
	if prev.Zone() != next.Zone() {
		return ClassZoneChanged
	}
	switch {
	case next.StaminaBucket() < prev.StaminaBucket():
		return ClassFatigued
	case next.StaminaBucket() > prev.StaminaBucket():
		return ClassRecovered
	default:
		return ClassOther
	}
}

// #endregion class

// #region prediction

// Prediction is one ranked candidate for an actor's next token.
type Prediction struct {
	Token        token.Token
	Probability  float64 // 0..1, normalized over all outgoing counts
	Observations int     // raw count backing this candidate
}

// #endregion prediction

// #region edge

// Edge is one flattened (prev, class, next, count) entry, used when
// persisting the count structure as rows.
type Edge struct {
	Prev  token.Token
	Class Class
	Next  token.Token
	Count int
}

// #endregion edge
