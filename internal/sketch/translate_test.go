package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	wallCorners map[string][2]string
	cornerWalls map[string][2]string
	cornerSide  map[string]Side
	firstPoint  map[string]string
}

func (r fakeResolver) WallCorners(id string) (string, string, bool) {
	c, ok := r.wallCorners[id]
	return c[0], c[1], ok
}

func (r fakeResolver) CornerWalls(id string) (string, string, bool) {
	w, ok := r.cornerWalls[id]
	return w[0], w[1], ok
}

func (r fakeResolver) CornerSide(id string) (Side, bool) {
	s, ok := r.cornerSide[id]
	return s, ok
}

func (r fakeResolver) LineFirstPoint(id string) (string, bool) {
	p, ok := r.firstPoint[id]
	return p, ok
}

func testResolver() fakeResolver {
	return fakeResolver{
		wallCorners: map[string][2]string{
			"wall_ab": {"corner_a", "corner_b"},
			"wall_bc": {"corner_b", "corner_c"},
		},
		cornerWalls: map[string][2]string{
			"corner_b": {"wall_ab", "wall_bc"},
		},
		cornerSide: map[string]Side{
			"corner_a": SideLeft,
			"corner_b": SideLeft,
			"corner_c": SideLeft,
		},
		firstPoint: map[string]string{
			"ln_wall_ab": "pt_corner_a",
		},
	}
}

func mustTranslate(t *testing.T, c BuildingConstraint) []Constraint {
	t.Helper()
	prims, err := Translate(c, c.Key(), testResolver())
	require.NoError(t, err)
	return prims
}

func TestTranslateWallLength(t *testing.T) {
	t.Run("reference side", func(t *testing.T) {
		prims := mustTranslate(t, WallLength{Wall: "wall_ab", Side: SideLeft, Length: 6000})
		require.Len(t, prims, 1)
		p := prims[0]
		assert.Equal(t, "bc_wl:wall_ab", p.ID)
		assert.Equal(t, TypeP2PDistance, p.Type)
		assert.Equal(t, "pt_corner_a", p.P1)
		assert.Equal(t, "pt_corner_b", p.P2)
		require.NotNil(t, p.Distance)
		assert.Equal(t, 6000.0, *p.Distance)
		assert.True(t, p.Driving)
	})

	t.Run("opposite side", func(t *testing.T) {
		prims := mustTranslate(t, WallLength{Wall: "wall_ab", Side: SideRight, Length: 6000})
		require.Len(t, prims, 1)
		assert.Equal(t, "pt_corner_a__wall_ab", prims[0].P1)
		assert.Equal(t, "pt_corner_b__wall_ab", prims[0].P2)
	})
}

func TestTranslateColinearCorner(t *testing.T) {
	prims := mustTranslate(t, ColinearCorner{Corner: "corner_b"})
	require.Len(t, prims, 1)
	p := prims[0]
	assert.Equal(t, "bc_col:corner_b", p.ID)
	assert.Equal(t, TypePointOnLine, p.Type)
	// The far corner of the leaving wall sits on the entering wall's line.
	assert.Equal(t, "pt_corner_c", p.P)
	assert.Equal(t, "ln_wall_ab", p.L)
}

func TestTranslateParallel(t *testing.T) {
	t.Run("without distance", func(t *testing.T) {
		c := Parallel{WallA: "wall_ab", WallB: "wall_bc"}
		prims := mustTranslate(t, c)
		require.Len(t, prims, 1)
		assert.Equal(t, "bc_"+c.Key()+"_par", prims[0].ID)
		assert.Equal(t, TypeParallel, prims[0].Type)
		assert.Equal(t, "ln_wall_ab", prims[0].L1)
		assert.Equal(t, "ln_wall_bc", prims[0].L2)
	})

	t.Run("with distance", func(t *testing.T) {
		dist := 4000.0
		c := Parallel{WallA: "wall_ab", WallB: "wall_bc", Distance: &dist}
		prims := mustTranslate(t, c)
		require.Len(t, prims, 2)
		d := prims[1]
		assert.Equal(t, "bc_"+c.Key()+"_dist", d.ID)
		assert.Equal(t, TypeP2LDistance, d.Type)
		assert.Equal(t, "pt_corner_a", d.P)
		assert.Equal(t, "ln_wall_bc", d.L)
		require.NotNil(t, d.Distance)
		assert.Equal(t, 4000.0, *d.Distance)
	})

	t.Run("distance half omitted without a first point", func(t *testing.T) {
		dist := 4000.0
		c := Parallel{WallA: "wall_bc", WallB: "wall_ab", Distance: &dist}
		prims, err := Translate(c, c.Key(), testResolver())
		require.NoError(t, err)
		// ln_wall_bc has no registered first point: the parallel half
		// alone survives.
		require.Len(t, prims, 1)
		assert.Equal(t, TypeParallel, prims[0].Type)
	})
}

func TestTranslatePerpendicular(t *testing.T) {
	c := Perpendicular{WallA: "wall_ab", WallB: "wall_bc"}
	prims := mustTranslate(t, c)
	require.Len(t, prims, 1)
	assert.Equal(t, "bc_"+c.Key(), prims[0].ID)
	assert.Equal(t, TypePerpendicular, prims[0].Type)
	assert.Equal(t, "ln_wall_ab", prims[0].L1)
	assert.Equal(t, "ln_wall_bc", prims[0].L2)
}

func TestTranslatePerpendicularCorner(t *testing.T) {
	prims := mustTranslate(t, PerpendicularCorner{Corner: "corner_b"})
	require.Len(t, prims, 1)
	assert.Equal(t, "bc_pc:corner_b", prims[0].ID)
	assert.Equal(t, TypePerpendicular, prims[0].Type)
	assert.Equal(t, "ln_wall_ab", prims[0].L1)
	assert.Equal(t, "ln_wall_bc", prims[0].L2)
}

func TestTranslateCornerAngle(t *testing.T) {
	prims := mustTranslate(t, CornerAngle{Corner: "corner_b", Radians: 2.2})
	require.Len(t, prims, 1)
	p := prims[0]
	assert.Equal(t, "bc_ang:corner_b", p.ID)
	assert.Equal(t, TypeL2LAngle, p.Type)
	require.NotNil(t, p.Angle)
	assert.Equal(t, 2.2, *p.Angle)
}

func TestTranslateAxisWalls(t *testing.T) {
	prims := mustTranslate(t, HorizontalWall{Wall: "wall_ab"})
	require.Len(t, prims, 1)
	assert.Equal(t, TypeHorizontal, prims[0].Type)
	assert.Equal(t, "pt_corner_a", prims[0].P1)
	assert.Equal(t, "pt_corner_b", prims[0].P2)

	prims = mustTranslate(t, VerticalWall{Wall: "wall_bc"})
	require.Len(t, prims, 1)
	assert.Equal(t, TypeVertical, prims[0].Type)
	assert.Equal(t, "bc_hv:wall_bc", prims[0].ID)
}

func TestTranslateWallEntities(t *testing.T) {
	prims := mustTranslate(t, WallEntityAbsolute{Entity: "open_1", Corner: "corner_a", Distance: 1200})
	require.Len(t, prims, 1)
	p := prims[0]
	assert.Equal(t, TypeP2PDistance, p.Type)
	assert.Equal(t, "pt_open_1__c", p.P1)
	assert.Equal(t, "pt_corner_a", p.P2)

	prims = mustTranslate(t, WallEntityRelative{EntityA: "open_1", EntityB: "post_1", Distance: 800})
	require.Len(t, prims, 1)
	assert.Equal(t, "pt_open_1__c", prims[0].P1)
	assert.Equal(t, "pt_post_1__c", prims[0].P2)
}

func TestTranslateUnknownLookups(t *testing.T) {
	r := testResolver()

	_, err := Translate(WallLength{Wall: "wall_zz", Side: SideLeft, Length: 1}, "wl:wall_zz", r)
	assert.Error(t, err)

	_, err = Translate(ColinearCorner{Corner: "corner_zz"}, "col:corner_zz", r)
	assert.Error(t, err)

	_, err = Translate(CornerAngle{Corner: "corner_zz", Radians: 1}, "ang:corner_zz", r)
	assert.Error(t, err)
}
