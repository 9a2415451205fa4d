// Package geom provides integer grid geometry.
package geom

import (
	"fmt"
	"math"
)

// Vector2i is a point or offset on the integer grid.
// Arithmetic wraps on overflow like any int32.
type Vector2i struct {
	X, Y int32
}

// Vec creates a Vector2i.
func Vec(x, y int32) Vector2i {
	return Vector2i{X: x, Y: y}
}

// Zero returns (0,0).
func Zero() Vector2i {
	return Vector2i{}
}

// One returns (1,1).
func One() Vector2i {
	return Vector2i{X: 1, Y: 1}
}

// Add returns v + o.
func (v Vector2i) Add(o Vector2i) Vector2i {
	return Vector2i{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vector2i) Sub(o Vector2i) Vector2i {
	return Vector2i{X: v.X - o.X, Y: v.Y - o.Y}
}

// Neg returns -v.
func (v Vector2i) Neg() Vector2i {
	return Vector2i{X: -v.X, Y: -v.Y}
}

// Mul returns v scaled by k.
func (v Vector2i) Mul(k int32) Vector2i {
	return Vector2i{X: v.X * k, Y: v.Y * k}
}

// Scale returns k * v. It is the same as v.Mul(k).
func Scale(k int32, v Vector2i) Vector2i {
	return v.Mul(k)
}

func (v *Vector2i) AddAssign(o Vector2i) {
	v.X += o.X
	v.Y += o.Y
}

func (v *Vector2i) SubAssign(o Vector2i) {
	v.X -= o.X
	v.Y -= o.Y
}

func (v *Vector2i) MulAssign(k int32) {
	v.X *= k
	v.Y *= k
}

// SquareDistance returns dx²+dy² between a and b. It stays integral so
// comparisons don't lose precision.
func SquareDistance(a, b Vector2i) int32 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2i) float64 {
	return math.Sqrt(float64(SquareDistance(a, b)))
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector2i) int32 {
	return a.X*b.X + a.Y*b.Y
}

func (v Vector2i) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}
