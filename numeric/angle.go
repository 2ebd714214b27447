package numeric

import "math"

// Angle returns the direction of the vector (dx, dy) in degrees, in the
// half-open range [0, 360), with 0 pointing east and angles increasing
// counter-clockwise — the same convention the wall-tip fan (package
// analyse) sorts by.
//
// Complexity: O(1).
func Angle(dx, dy float64) float64 {
	// atan2 already returns (-180, 180]; fold the negative half up into
	// [0, 360) so every caller can compare angles without branching on sign.
	a := math.Atan2(dy, dx) * 180.0 / math.Pi
	if a < 0 {
		a += 360.0
	}

	return a
}

// Dist returns the Euclidean length of the vector (dx, dy).
//
// Complexity: O(1).
func Dist(dx, dy float64) float64 {
	return math.Hypot(dx, dy)
}

// AngleDiff returns the smallest signed difference a-b, folded into
// (-180, 180], so comparisons near the 0/360 wraparound behave correctly.
func AngleDiff(a, b float64) float64 {
	d := a - b
	for d > 180.0 {
		d -= 360.0
	}
	for d <= -180.0 {
		d += 360.0
	}

	return d
}
