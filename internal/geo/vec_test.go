package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVecOps(t *testing.T) {
	a := Vec{3, 4}
	b := Vec{1, -2}

	assert.Equal(t, Vec{4, 2}, a.Add(b))
	assert.Equal(t, Vec{2, 6}, a.Sub(b))
	assert.Equal(t, Vec{6, 8}, a.Scale(2))
	assert.InDelta(t, -5.0, a.Dot(b), 1e-12)
	assert.InDelta(t, -10.0, a.Cross(b), 1e-12)
	assert.InDelta(t, 5.0, a.Len(), 1e-12)
	assert.InDelta(t, 5.0, a.Dist(Vec{0, 0}), 1e-12)
}

func TestUnit(t *testing.T) {
	u := Vec{0, 10}.Unit()
	assert.InDelta(t, 0.0, u.X, 1e-12)
	assert.InDelta(t, 1.0, u.Y, 1e-12)

	assert.Equal(t, Vec{}, Vec{}.Unit())
}

func TestPerp(t *testing.T) {
	// Left normal of +X is +Y.
	assert.Equal(t, Vec{0, 1}, Vec{1, 0}.Perp())
	assert.Equal(t, Vec{-1, 0}, Vec{0, 1}.Perp())
}
