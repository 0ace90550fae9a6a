// File: utils/vector.go
package utils

import "math"

// Vector2 is a 2D vector in draw units. Pointer methods mutate in place;
// value methods return a new vector and leave the receiver untouched.
type Vector2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// VectorFromAngle returns a vector of the given length pointing at angle
// radians from straight up (0 = up, positive = clockwise on screen).
func VectorFromAngle(angle, length float64) Vector2 {
	return Vector2{X: math.Sin(angle) * length, Y: -math.Cos(angle) * length}
}

func (v Vector2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

func (v Vector2) Dot(o Vector2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector2) Plus(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2) Minus(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector2) Times(s float64) Vector2 {
	return Vector2{X: v.X * s, Y: v.Y * s}
}

// Normalized returns a unit-length copy. The zero vector stays zero.
func (v Vector2) Normalized() Vector2 {
	v.Normalize()
	return v
}

// Perpendicular returns the vector rotated by 90 degrees.
func (v Vector2) Perpendicular() Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// Rotated returns the vector rotated by angle radians.
func (v Vector2) Rotated(angle float64) Vector2 {
	sin, cos := math.Sincos(angle)
	return Vector2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}

func (v Vector2) Distance(o Vector2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

func (v *Vector2) Add(o Vector2) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vector2) Sub(o Vector2) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *Vector2) Scale(s float64) {
	v.X *= s
	v.Y *= s
}

// Normalize scales v to unit length in place. A zero vector is left as is.
func (v *Vector2) Normalize() {
	m := v.Magnitude()
	if m == 0 {
		return
	}
	v.X /= m
	v.Y /= m
}

// SetMagnitude rescales v to the given length, keeping its direction.
func (v *Vector2) SetMagnitude(length float64) {
	v.Normalize()
	v.Scale(length)
}
