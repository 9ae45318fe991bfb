package model

import (
	"sort"

	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

// #region model-struct

// Model is the online transition learner: a monotonically growing count
// structure prevToken → class → nextToken → count. Observe performs a
// non-atomic read-modify-write, so a multi-threaded host must funnel
// writes through a single owner; Predict and AnomalyScore are read-only.
type Model struct {
	transitions map[token.Token]map[Class]map[token.Token]int
	total       int
}

// New returns an empty model.
func New() *Model {
	return &Model{
		transitions: make(map[token.Token]map[Class]map[token.Token]int),
	}
}

// TotalObservations returns the number of Observe calls recorded,
// including half-transitions.
func (m *Model) TotalObservations() int {
	return m.total
}

// #endregion model-struct

// #region observe

// Observe records one transition. A nil side means the actor entered or
// left tracking: only the observation counter moves, no edge is stored.
func (m *Model) Observe(prev, next *token.Token) {
	m.total++
	if prev == nil || next == nil {
		return
	}

	class := classify(*prev, *next)

	byClass, ok := m.transitions[*prev]
	if !ok {
		byClass = make(map[Class]map[token.Token]int)
		m.transitions[*prev] = byClass
	}
	byNext, ok := byClass[class]
	if !ok {
		byNext = make(map[token.Token]int)
		byClass[class] = byNext
	}
	byNext[*next]++
}

// #endregion observe

// #region predict

// maxCandidates caps how many ranked predictions Predict returns.
const maxCandidates = 5

// syntheticPrior is the stay-put probability reported for a token with
// no recorded outgoing transitions.
const syntheticPrior = 0.6

// Predict returns ranked next-token candidates for current, at most 5,
// sorted by descending probability with ties broken by ascending token
// value. A cold token yields exactly one synthetic stay-put prediction,
// so callers never see an empty result.
func (m *Model) Predict(current token.Token) []Prediction {
	aggregated := make(map[token.Token]int)
	total := 0
	for _, byNext := range m.transitions[current] {
		for next, count := range byNext {
			aggregated[next] += count
			total += count
		}
	}

	if total == 0 {
		return []Prediction{{Token: current, Probability: syntheticPrior, Observations: 0}}
	}

	candidates := make([]Prediction, 0, len(aggregated))
	for next, count := range aggregated {
		candidates = append(candidates, Prediction{
			Token:        next,
			Probability:  float64(count) / float64(total),
			Observations: count,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Probability != candidates[j].Probability {
			return candidates[i].Probability > candidates[j].Probability
		}
		return candidates[i].Token < candidates[j].Token
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

// #endregion predict

// #region anomaly-score

// AnomalyScore returns 1 − P(next | prev) when next is among the ranked
// candidates for prev, and 1.0 for a transition the model has never
// seen. 0 means fully expected.
func (m *Model) AnomalyScore(prev, next token.Token) float64 {
	for _, p := range m.Predict(prev) {
		if p.Token == next {
			return 1.0 - p.Probability
		}
	}
	return 1.0
}

// #endregion anomaly-score

// #region edges

// Edges flattens the count structure into deterministic row order:
// ascending prev token, class, next token.
func (m *Model) Edges() []Edge {
	var edges []Edge
	for prev, byClass := range m.transitions {
		for class, byNext := range byClass {
			for next, count := range byNext {
				edges = append(edges, Edge{Prev: prev, Class: class, Next: next, Count: count})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Prev != edges[j].Prev {
			return edges[i].Prev < edges[j].Prev
		}
		if edges[i].Class != edges[j].Class {
			return edges[i].Class < edges[j].Class
		}
		return edges[i].Next < edges[j].Next
	})
	return edges
}

// #endregion edges
