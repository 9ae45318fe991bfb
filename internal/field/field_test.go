package field

import "testing"

func TestPositionToZoneBasic(t *testing.T) {
	// First segment, negative lateral half
	z := PositionToZone(Position{X: 1, Lateral: -5}, 100)
	if z != 0 {
		t.Fatalf("expected zone 0, got %d", z)
	}
	// First segment, positive lateral half
	z = PositionToZone(Position{X: 1, Lateral: 5}, 100)
	if z != 1 {
		t.Fatalf("expected zone 1, got %d", z)
	}
}

func TestPositionToZoneSegments(t *testing.T) {
	// Each 12.5-unit slice of a 100-unit axis is its own segment
	for seg := 0; seg < Segments; seg++ {
		x := float64(seg)*12.5 + 6.0
		z := PositionToZone(Position{X: x, Lateral: -1}, 100)
		if z != seg*2 {
			t.Fatalf("x=%.1f: expected zone %d, got %d", x, seg*2, z)
		}
	}
}

func TestPositionToZoneClampsAtAxisLength(t *testing.T) {
	// Exactly at the axis end: last segment, not segment 8
	z := PositionToZone(Position{X: 100, Lateral: 1}, 100)
	if z != 15 {
		t.Fatalf("expected zone 15 at axis end, got %d", z)
	}
	// Past the end clamps too
	z = PositionToZone(Position{X: 250, Lateral: -1}, 100)
	if z != 14 {
		t.Fatalf("expected zone 14 past axis end, got %d", z)
	}
	// Negative clamps to the first segment
	z = PositionToZone(Position{X: -10, Lateral: -1}, 100)
	if z != 0 {
		t.Fatalf("expected zone 0 for negative x, got %d", z)
	}
}

func TestPositionToZoneRange(t *testing.T) {
	for x := -20.0; x <= 120.0; x += 3.7 {
		for _, lat := range []float64{-30, -0.001, 0, 0.001, 30} {
			z := PositionToZone(Position{X: x, Lateral: lat}, 100)
			if z < 0 || z > ZoneMax {
				t.Fatalf("zone %d out of range for x=%.1f lat=%.3f", z, x, lat)
			}
		}
	}
}

func TestZoneToPositionCenters(t *testing.T) {
	// Zone 0: first segment center, negative half
	p := ZoneToPosition(0, 100)
	if p.X != 6.25 || p.Lateral != -25 {
		t.Fatalf("zone 0: expected (6.25, -25), got (%.2f, %.2f)", p.X, p.Lateral)
	}
	// Zone 15: last segment center, positive half
	p = ZoneToPosition(15, 100)
	if p.X != 93.75 || p.Lateral != 25 {
		t.Fatalf("zone 15: expected (93.75, 25), got (%.2f, %.2f)", p.X, p.Lateral)
	}
}

func TestZoneRoundTripLandsInSameZone(t *testing.T) {
	// The inverse is lossy, but the center must map back to its own zone.
	for zone := 0; zone <= ZoneMax; zone++ {
		p := ZoneToPosition(zone, 100)
		back := PositionToZone(p, 100)
		if back != zone {
			t.Fatalf("zone %d center (%.2f, %.2f) mapped back to %d", zone, p.X, p.Lateral, back)
		}
	}
}

func TestZoneToPositionClampsZone(t *testing.T) {
	lo := ZoneToPosition(-3, 100)
	if lo != ZoneToPosition(0, 100) {
		t.Fatalf("negative zone should clamp to 0")
	}
	hi := ZoneToPosition(40, 100)
	if hi != ZoneToPosition(ZoneMax, 100) {
		t.Fatalf("oversized zone should clamp to %d", ZoneMax)
	}
}
