// Package physics provides collision detection and vector utilities.
package physics

import "math"

// Vec is a 2D vector in play-area units.
type Vec struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Lerp interpolates linearly between a and b. t is clamped to [0, 1].
func Lerp(a, b Vec, t float64) Vec {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return Vec{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// Aim returns a velocity of the given speed pointing from `from` towards `to`.
func Aim(from, to Vec, speed float64) Vec {
	angle := math.Atan2(to.Y-from.Y, to.X-from.X)
	return Vec{
		X: math.Cos(angle) * speed,
		Y: math.Sin(angle) * speed,
	}
}

// Heading returns the angle of travel from prev to cur.
// A zero displacement has no direction, so fallback is returned instead.
func Heading(prev, cur Vec, fallback float64) float64 {
	d := cur.Sub(prev)
	if d.X == 0 && d.Y == 0 {
		return fallback
	}
	return math.Atan2(d.Y, d.X)
}

// Box is an axis-aligned rectangle described by its center and size.
type Box struct {
	X, Y          float64 // Center
	Width, Height float64
}

// Collides reports whether two boxes overlap. Touching edges count as overlap.
func Collides(a, b Box) bool {
	if math.Abs(a.X-b.X) > (a.Width+b.Width)/2 {
		return false
	}
	if math.Abs(a.Y-b.Y) > (a.Height+b.Height)/2 {
		return false
	}
	return true
}
