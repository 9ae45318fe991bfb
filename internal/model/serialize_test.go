package model

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	m := New()
	observeN(m, 10, 20, 5)
	observeN(m, 10, 30, 2)
	observeN(m, 20, 20, 1)
	m.Observe(nil, tok(40))
	m.Observe(tok(40), nil)

	data, err := m.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}

	if restored.TotalObservations() != m.TotalObservations() {
		t.Fatalf("totalObservations: expected %d, got %d", m.TotalObservations(), restored.TotalObservations())
	}
	if !reflect.DeepEqual(restored.Edges(), m.Edges()) {
		t.Fatalf("edge mismatch after round trip:\n  want %+v\n  got  %+v", m.Edges(), restored.Edges())
	}
	if !reflect.DeepEqual(restored.Predict(10), m.Predict(10)) {
		t.Fatalf("predictions diverge after round trip")
	}
}

func TestSerializeRoundTripEmptyModel(t *testing.T) {
	m := New()
	data, err := m.Serialize()
	if err != nil {
		t.Fatalf("serialize empty: %v", err)
	}
	restored, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize empty: %v", err)
	}
	if restored.TotalObservations() != 0 || len(restored.Edges()) != 0 {
		t.Fatalf("empty model did not round trip cleanly")
	}
}

func TestSerializeEmitsVersionAndStringKeys(t *testing.T) {
	m := New()
	observeN(m, 10, 20, 1)

	data, err := m.Serialize()
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if string(doc["version"]) != "1" {
		t.Fatalf("expected version 1, got %s", doc["version"])
	}
	if !strings.Contains(string(doc["transitions"]), `"10"`) {
		t.Fatalf("expected string-encoded token keys, got %s", doc["transitions"])
	}
}

func TestDeserializeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"not json", `{not json`},
		{"wrong version", `{"version":2,"totalObservations":0,"transitions":{}}`},
		{"missing version", `{"totalObservations":0,"transitions":{}}`},
		{"non-integer prev key", `{"version":1,"totalObservations":1,"transitions":{"abc":{"0":{"1":1}}}}`},
		{"non-integer class key", `{"version":1,"totalObservations":1,"transitions":{"1":{"x":{"1":1}}}}`},
		{"non-integer next key", `{"version":1,"totalObservations":1,"transitions":{"1":{"0":{"?":1}}}}`},
		{"class out of range", `{"version":1,"totalObservations":1,"transitions":{"1":{"9":{"1":1}}}}`},
		{"token out of domain", `{"version":1,"totalObservations":1,"transitions":{"5000":{"0":{"1":1}}}}`},
		{"negative count", `{"version":1,"totalObservations":1,"transitions":{"1":{"0":{"2":-3}}}}`},
		{"negative total", `{"version":1,"totalObservations":-1,"transitions":{}}`},
	}
	for _, c := range cases {
		if _, err := Deserialize([]byte(c.doc)); err == nil {
			t.Fatalf("%s: expected error, got nil", c.name)
		}
	}
}
