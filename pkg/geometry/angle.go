package geometry

import "math"

// NormalizeAngle wraps an angle in radians into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// SweepCCW returns the counter-clockwise sweep from angle a to angle b,
// in [0, 2π).
func SweepCCW(a, b float64) float64 {
	return NormalizeAngle(b - a)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// PointOnCircle returns the point at the given angle and radius from center.
func PointOnCircle(center Point2D, radius, angle float64) Point2D {
	return Point2D{
		X: center.X + radius*math.Cos(angle),
		Y: center.Y + radius*math.Sin(angle),
	}
}
