package mathutil

import "math"

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d / 180 * math.Pi
}

// HalfAngleTan returns tan(deg/2) for an angle given in degrees.
// A vertical field of view maps to the frustum half-extent this way.
func HalfAngleTan(deg float64) float64 {
	return math.Tan(Deg2Rad(deg) * 0.5)
}
