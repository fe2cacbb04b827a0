package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedArea(t *testing.T) {
	ccw := []Vec{{0, 0}, {4, 0}, {4, 3}, {0, 3}}
	cw := []Vec{{0, 0}, {0, 3}, {4, 3}, {4, 0}}

	assert.InDelta(t, 12.0, SignedArea(ccw), 1e-12)
	assert.InDelta(t, -12.0, SignedArea(cw), 1e-12)
	assert.True(t, IsCCW(ccw))
	assert.False(t, IsCCW(cw))
	assert.Zero(t, SignedArea([]Vec{{1, 1}, {2, 2}}))
}

func TestSameDirection(t *testing.T) {
	assert.True(t, SameDirection(Vec{1, 0}, Vec{1, 0}))
	assert.False(t, SameDirection(Vec{1, 0}, Vec{-1, 0}))
	assert.False(t, SameDirection(Vec{1, 0}, Vec{0, 1}))
}

func TestNormalOffset(t *testing.T) {
	// Offsetting a point on a +X wall by 2 moves it up (interior of CCW).
	p := NormalOffset(Vec{5, 0}, Vec{1, 0}, 2)
	assert.InDelta(t, 5.0, p.X, 1e-12)
	assert.InDelta(t, 2.0, p.Y, 1e-12)
}

func TestMiterOffset(t *testing.T) {
	t.Run("right angle", func(t *testing.T) {
		// Corner at origin between a +X wall and a +Y wall. The parallel
		// curves at distance 1 meet at (-1, 1): sqrt(2) along the bisector.
		p := MiterOffset(Vec{0, 0}, Vec{1, 0}, Vec{0, 1}, 1)
		assert.InDelta(t, -1.0, p.X, 1e-9)
		assert.InDelta(t, 1.0, p.Y, 1e-9)
		assert.InDelta(t, math.Sqrt2, p.Len(), 1e-9)
	})

	t.Run("straight corner", func(t *testing.T) {
		p := MiterOffset(Vec{2, 0}, Vec{1, 0}, Vec{1, 0}, 1.5)
		assert.InDelta(t, 2.0, p.X, 1e-9)
		assert.InDelta(t, 1.5, p.Y, 1e-9)
	})

	t.Run("reversal falls back to normal", func(t *testing.T) {
		p := MiterOffset(Vec{0, 0}, Vec{1, 0}, Vec{-1, 0}, 1)
		assert.InDelta(t, 0.0, p.X, 1e-9)
		assert.InDelta(t, 1.0, p.Y, 1e-9)
	})
}
