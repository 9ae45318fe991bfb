package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/mbcrowell/playsense/go-tracker/internal/token"
)

// #region schema

// SchemaVersion tags serialized model documents. Deserialize rejects
// any other version instead of guessing.
const SchemaVersion = 1

// modelDoc is the on-disk JSON shape. Map keys are string-encoded
// integers for serialization portability.
type modelDoc struct {
	Version           int                                  `json:"version"`
	TotalObservations int                                  `json:"totalObservations"`
	Transitions       map[string]map[string]map[string]int `json:"transitions"`
}

// #endregion schema

// #region serialize

// Serialize encodes the model as a versioned JSON document. The round
// trip through Deserialize is order-independent and exact.
func (m *Model) Serialize() ([]byte, error) {
	doc := modelDoc{
		Version:           SchemaVersion,
		TotalObservations: m.total,
		Transitions:       make(map[string]map[string]map[string]int, len(m.transitions)),
	}

	for prev, byClass := range m.transitions {
		classDoc := make(map[string]map[string]int, len(byClass))
		for class, byNext := range byClass {
			nextDoc := make(map[string]int, len(byNext))
			for next, count := range byNext {
				nextDoc[strconv.Itoa(int(next))] = count
			}
			classDoc[strconv.Itoa(int(class))] = nextDoc
		}
		doc.Transitions[strconv.Itoa(int(prev))] = classDoc
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal model: %w", err)
	}
	return data, nil
}

// #endregion serialize

// #region deserialize

// Deserialize parses a versioned model document. Malformed JSON,
// unknown versions, non-integer keys, and out-of-range values all fail
// with a descriptive error; no partially populated model comes back.
func Deserialize(data []byte) (*Model, error) {
	var doc modelDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model document: %w", err)
	}
	if doc.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported model schema version %d (want %d)", doc.Version, SchemaVersion)
	}
	if doc.TotalObservations < 0 {
		return nil, fmt.Errorf("negative totalObservations %d", doc.TotalObservations)
	}

	m := New()
	m.total = doc.TotalObservations

	for prevKey, classDoc := range doc.Transitions {
		prev, err := parseTokenKey(prevKey)
		if err != nil {
			return nil, fmt.Errorf("previous token key %q: %w", prevKey, err)
		}
		for classKey, nextDoc := range classDoc {
			classVal, err := strconv.Atoi(classKey)
			if err != nil {
				return nil, fmt.Errorf("transition class key %q: %w", classKey, err)
			}
			if classVal < 0 || Class(classVal) >= classCount {
				return nil, fmt.Errorf("transition class %d out of range", classVal)
			}
			for nextKey, count := range nextDoc {
				next, err := parseTokenKey(nextKey)
				if err != nil {
					return nil, fmt.Errorf("next token key %q: %w", nextKey, err)
				}
				if count < 0 {
					return nil, fmt.Errorf("negative count %d at %s/%s/%s", count, prevKey, classKey, nextKey)
				}
				byClass, ok := m.transitions[prev]
				if !ok {
					byClass = make(map[Class]map[token.Token]int)
					m.transitions[prev] = byClass
				}
				byNext, ok := byClass[Class(classVal)]
				if !ok {
					byNext = make(map[token.Token]int)
					byClass[Class(classVal)] = byNext
				}
				byNext[next] = count
			}
		}
	}

	return m, nil
}

// parseTokenKey parses a string-encoded token and bounds-checks it
// against the 12-bit domain.
func parseTokenKey(key string) (token.Token, error) {
	v, err := strconv.Atoi(key)
	if err != nil {
		return 0, err
	}
	if v < 0 || v >= token.Domain {
		return 0, fmt.Errorf("token %d outside domain [0, %d)", v, token.Domain)
	}
	return token.Token(v), nil
}

// #endregion deserialize
