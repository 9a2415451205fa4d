package geom_test

import (
	"math"
	"testing"

	"github.com/plus3/glyphwalk/geom"
	"github.com/stretchr/testify/assert"
)

func TestSquareDistance(t *testing.T) {
	assert.Equal(t, int32(2), geom.SquareDistance(geom.Vec(1, 1), geom.Vec(2, 2)))
	assert.Equal(t, int32(0), geom.SquareDistance(geom.Vec(5, -3), geom.Vec(5, -3)))
	assert.Equal(t, int32(25), geom.SquareDistance(geom.Vec(0, 0), geom.Vec(3, -4)))
}

func TestDistance(t *testing.T) {
	assert.Equal(t, math.Sqrt(2), geom.Distance(geom.Vec(1, 1), geom.Vec(2, 2)))
	assert.Equal(t, 5.0, geom.Distance(geom.Vec(0, 0), geom.Vec(-3, 4)))
}

func TestArithmetic(t *testing.T) {
	assert.Equal(t, geom.Vec(4, 6), geom.Vec(1, 2).Add(geom.Vec(3, 4)))
	assert.Equal(t, geom.Vec(-2, -2), geom.Vec(1, 2).Sub(geom.Vec(3, 4)))
	assert.Equal(t, geom.Vec(2, 4), geom.Vec(1, 2).Mul(2))
	assert.Equal(t, geom.Vec(2, 4), geom.Scale(2, geom.Vec(1, 2)))
	assert.Equal(t, geom.Vec(-1, -2), geom.Vec(1, 2).Neg())
	assert.Equal(t, int32(11), geom.Dot(geom.Vec(1, 2), geom.Vec(3, 4)))
	assert.Equal(t, geom.Vector2i{}, geom.Zero())
	assert.Equal(t, geom.Vec(1, 1), geom.One())
}

func TestAssignOperators(t *testing.T) {
	p := geom.Vec(1, 2)
	p.AddAssign(geom.Vec(3, 4))
	assert.Equal(t, geom.Vec(4, 6), p)

	p = geom.Vec(1, 2)
	p.SubAssign(geom.Vec(3, 4))
	assert.Equal(t, geom.Vec(-2, -2), p)

	p = geom.Vec(1, 2)
	p.MulAssign(4)
	assert.Equal(t, geom.Vec(4, 8), p)
}

func TestAdditiveRoundTrip(t *testing.T) {
	points := []geom.Vector2i{
		geom.Vec(0, 0),
		geom.Vec(7, -3),
		geom.Vec(-100, 250),
		geom.Vec(math.MaxInt32, math.MinInt32),
	}

	for _, p := range points {
		for _, q := range points {
			assert.Equal(t, p, p.Add(q).Sub(q), "p=%v q=%v", p, q)
		}
	}
}

func TestScaleCommutes(t *testing.T) {
	for _, k := range []int32{-3, -1, 0, 1, 2, 17} {
		for _, p := range []geom.Vector2i{geom.Vec(1, 2), geom.Vec(-4, 9), geom.Zero()} {
			assert.Equal(t, p.Mul(k), geom.Scale(k, p))
		}
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "(3,-1)", geom.Vec(3, -1).String())
}
