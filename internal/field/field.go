package field

// #region position

// Position is a point on the field: X along the traversal axis
// (0..axis length), Lateral signed across the field's centerline.
type Position struct {
	X       float64
	Lateral float64
}

// #endregion position

// #region constants

// The traversal axis splits into 8 equal segments and the lateral axis
// into 2 halves, giving 16 discrete zones: zone = segment*2 + half.
const (
	Segments = 8
	ZoneMax  = Segments*2 - 1
)

// #endregion constants

// #region position-to-zone

// PositionToZone maps a continuous position to one of 16 zones.
// The traversal coordinate is clamped to [0, axisLength]; a point
// exactly at axisLength lands in the last segment, never past it.
func PositionToZone(pos Position, axisLength float64) int {
	x := pos.X
	if x < 0 {
		x = 0
	}
	if x > axisLength {
		x = axisLength
	}

	segment := int(x / axisLength * Segments)
	if segment > Segments-1 {
		segment = Segments - 1
	}

	half := 0
	if pos.Lateral >= 0 {
		half = 1
	}

	return segment*2 + half
}

// #endregion position-to-zone

// #region zone-to-position

// ZoneToPosition returns the center point of a zone. This is an
// approximate inverse: the discretization discarded the original
// position, so only the segment/half midpoint comes back.
func ZoneToPosition(zone int, axisLength float64) Position {
	if zone < 0 {
		zone = 0
	}
	if zone > ZoneMax {
		zone = ZoneMax
	}

	segment := zone / 2
	half := zone % 2

	segWidth := axisLength / Segments
	x := (float64(segment) + 0.5) * segWidth

	// Lateral midpoints sit at ±1/4 of the axis length from center.
	lateral := -axisLength / 4
	if half == 1 {
		lateral = axisLength / 4
	}

	return Position{X: x, Lateral: lateral}
}

// #endregion zone-to-position
