package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/backend-go/internal/geo"
)

type fakeDomain struct {
	wallCorners map[string][2]string
	cornerWalls map[string][2]string
	cornerSide  map[string]Side
	geometry    map[string]*PerimeterGeometry
}

func newFakeDomain() *fakeDomain {
	return &fakeDomain{
		wallCorners: make(map[string][2]string),
		cornerWalls: make(map[string][2]string),
		cornerSide:  make(map[string]Side),
		geometry:    make(map[string]*PerimeterGeometry),
	}
}

func (d *fakeDomain) WallCorners(id string) (string, string, bool) {
	c, ok := d.wallCorners[id]
	return c[0], c[1], ok
}

func (d *fakeDomain) CornerWalls(id string) (string, string, bool) {
	w, ok := d.cornerWalls[id]
	return w[0], w[1], ok
}

func (d *fakeDomain) CornerSide(id string) (Side, bool) {
	s, ok := d.cornerSide[id]
	return s, ok
}

func (d *fakeDomain) PerimeterGeometry(id string) (*PerimeterGeometry, bool) {
	g, ok := d.geometry[id]
	return g, ok
}

// addRect registers a closed 6000x4000 rectangle. Offsets are synthetic;
// the store never inspects positions.
func (d *fakeDomain) addRect(perimID string, corners, walls [4]string) {
	pts := []geo.Vec{{X: 0, Y: 0}, {X: 6000, Y: 0}, {X: 6000, Y: 4000}, {X: 0, Y: 4000}}
	g := &PerimeterGeometry{ID: perimID, Side: SideLeft}
	for i, id := range corners {
		g.Corners = append(g.Corners, CornerGeometry{ID: id, Point: pts[i]})
		d.cornerSide[id] = SideLeft
		d.cornerWalls[id] = [2]string{walls[(i+3)%4], walls[i]}
	}
	for i, id := range walls {
		start, end := corners[i], corners[(i+1)%4]
		g.Walls = append(g.Walls, WallGeometry{
			ID: id, Start: start, End: end, Thickness: 240,
			StartOffset: pts[i].Sub(geo.Vec{Y: 240}),
			EndOffset:   pts[(i+1)%4].Sub(geo.Vec{Y: 240}),
		})
		d.wallCorners[id] = [2]string{start, end}
	}
	d.geometry[perimID] = g
}

func rectStore(t *testing.T) (*Store, *fakeDomain) {
	t.Helper()
	d := newFakeDomain()
	d.addRect("perim_1",
		[4]string{"corner_a", "corner_b", "corner_c", "corner_d"},
		[4]string{"wall_ab", "wall_bc", "wall_cd", "wall_da"})
	s := NewStore(d)
	require.NoError(t, s.AddPerimeterGeometry("perim_1"))
	return s, d
}

func TestAddPerimeterGeometry(t *testing.T) {
	s, _ := rectStore(t)

	// 4 reference points plus 2 projected points per wall.
	assert.Len(t, s.Points(), 12)
	// Reference and offset line per wall.
	assert.Len(t, s.Lines(), 8)
	// Per wall: parallel + 2 thickness offsets; per corner: coincidence.
	assert.Len(t, s.Constraints(), 16)
	assert.True(t, s.Tracked("perim_1"))

	reg := s.Registry()["perim_1"]
	assert.Len(t, reg.Points, 12)
	assert.Len(t, reg.Lines, 8)
	assert.Len(t, reg.Constraints, 16)
}

func TestAddPerimeterGeometryEntities(t *testing.T) {
	d := newFakeDomain()
	d.addRect("perim_1",
		[4]string{"corner_a", "corner_b", "corner_c", "corner_d"},
		[4]string{"wall_ab", "wall_bc", "wall_cd", "wall_da"})
	d.geometry["perim_1"].Walls[0].Entities = []EntityGeometry{{
		ID: "open_1", Kind: "opening", Width: 900,
		Start:  geo.Vec{X: 1000, Y: 0},
		Center: geo.Vec{X: 1450, Y: 0},
		End:    geo.Vec{X: 1900, Y: 0},
	}}

	s := NewStore(d)
	require.NoError(t, s.AddPerimeterGeometry("perim_1"))

	assert.Len(t, s.Points(), 15)
	// 3 point-on-line, a bisector and a width per entity.
	assert.Len(t, s.Constraints(), 21)

	sk := s.SolverSketch()
	var width *Constraint
	for i := range sk.Constraints {
		if sk.Constraints[i].ID == "gc_wid_open_1" {
			width = &sk.Constraints[i]
		}
	}
	require.NotNil(t, width)
	assert.Equal(t, TypeP2PDistance, width.Type)
	require.NotNil(t, width.Distance)
	assert.Equal(t, 900.0, *width.Distance)
}

func TestStraightCornerGeometry(t *testing.T) {
	d := newFakeDomain()
	g := &PerimeterGeometry{ID: "perim_1", Side: SideLeft}
	pts := []geo.Vec{{X: 0, Y: 0}, {X: 3000, Y: 0}, {X: 6000, Y: 0}, {X: 6000, Y: 4000}, {X: 0, Y: 4000}}
	corners := []string{"corner_a", "corner_b", "corner_c", "corner_d", "corner_e"}
	walls := []string{"wall_ab", "wall_bc", "wall_cd", "wall_de", "wall_ea"}
	for i, id := range corners {
		g.Corners = append(g.Corners, CornerGeometry{ID: id, Point: pts[i], Straight: id == "corner_b"})
		d.cornerSide[id] = SideLeft
		d.cornerWalls[id] = [2]string{walls[(i+4)%5], walls[i]}
	}
	for i, id := range walls {
		start, end := corners[i], corners[(i+1)%5]
		g.Walls = append(g.Walls, WallGeometry{ID: id, Start: start, End: end, Thickness: 300})
		d.wallCorners[id] = [2]string{start, end}
	}
	d.geometry["perim_1"] = g

	s := NewStore(d)
	require.NoError(t, s.AddPerimeterGeometry("perim_1"))

	// The straight corner gets two connector lines instead of a
	// coincidence constraint.
	lines := s.Lines()
	var connectors []Line
	for _, l := range lines {
		if l.ID == "cn_corner_b__wall_ab" || l.ID == "cn_corner_b__wall_bc" {
			connectors = append(connectors, l)
		}
	}
	require.Len(t, connectors, 2)
	assert.Len(t, lines, 12)

	ids := make(map[string]Constraint)
	for _, c := range s.Constraints() {
		ids[c.ID] = c
	}
	assert.NotContains(t, ids, "gc_coin_corner_b")
	assert.Contains(t, ids, "gc_coin_corner_c")
	require.Contains(t, ids, "gc_perp_corner_b__wall_ab")
	assert.Equal(t, TypePerpendicular, ids["gc_perp_corner_b__wall_ab"].Type)
	assert.Equal(t, "cn_corner_b__wall_ab", ids["gc_perp_corner_b__wall_ab"].L1)
	assert.Equal(t, "ln_wall_ab", ids["gc_perp_corner_b__wall_ab"].L2)
}

func TestAddBuildingConstraint(t *testing.T) {
	s, _ := rectStore(t)

	key, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ab"})
	require.NoError(t, err)
	assert.Equal(t, "hv:wall_ab", key)

	stored := s.BuildingConstraints()
	require.Contains(t, stored, key)
	assert.Equal(t, KindHorizontalWall, stored[key].Kind())

	var found bool
	for _, c := range s.Constraints() {
		if c.ID == "bc_hv:wall_ab" {
			found = true
			assert.Equal(t, TypeHorizontal, c.Type)
		}
	}
	assert.True(t, found)
}

func TestAddBuildingConstraintDuplicateKeepsOriginal(t *testing.T) {
	s, _ := rectStore(t)

	key, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ab"})
	require.NoError(t, err)

	// A vertical on the same wall collides by design; the original wins
	// and the call still reports the key without error.
	key2, err := s.AddBuildingConstraint(VerticalWall{Wall: "wall_ab"})
	require.NoError(t, err)
	assert.Equal(t, key, key2)
	assert.Equal(t, KindHorizontalWall, s.BuildingConstraints()[key].Kind())
}

func TestRemoveThenAddDifferentKind(t *testing.T) {
	s, _ := rectStore(t)

	key, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ab"})
	require.NoError(t, err)
	s.RemoveBuildingConstraint(key)

	key2, err := s.AddBuildingConstraint(VerticalWall{Wall: "wall_ab"})
	require.NoError(t, err)
	assert.Equal(t, key, key2)
	assert.Equal(t, KindVerticalWall, s.BuildingConstraints()[key].Kind())
}

func TestRemoveBuildingConstraintUnknownKey(t *testing.T) {
	s, _ := rectStore(t)
	before := len(s.Constraints())

	s.RemoveBuildingConstraint("wl:wall_zz")

	assert.Len(t, s.Constraints(), before)
	assert.Empty(t, s.BuildingConstraints())
}

func TestAddBuildingConstraintMissingEntity(t *testing.T) {
	s, _ := rectStore(t)

	_, err := s.AddBuildingConstraint(WallLength{Wall: "wall_zz", Side: SideLeft, Length: 100})
	require.ErrorIs(t, err, ErrMissingEntity)
	assert.Contains(t, err.Error(), "wall_zz")
	assert.Empty(t, s.BuildingConstraints())

	_, err = s.AddBuildingConstraint(WallEntityAbsolute{Entity: "open_zz", Corner: "corner_a", Distance: 1})
	require.ErrorIs(t, err, ErrMissingEntity)
	assert.Contains(t, err.Error(), "open_zz")
}

func TestParallelPrimitivesStoredAndRemoved(t *testing.T) {
	s, _ := rectStore(t)

	dist := 4000.0
	key, err := s.AddBuildingConstraint(Parallel{WallA: "wall_ab", WallB: "wall_cd", Distance: &dist})
	require.NoError(t, err)

	ids := make(map[string]struct{})
	for _, c := range s.Constraints() {
		ids[c.ID] = struct{}{}
	}
	assert.Contains(t, ids, "bc_"+key+"_par")
	assert.Contains(t, ids, "bc_"+key+"_dist")

	s.RemoveBuildingConstraint(key)
	for _, c := range s.Constraints() {
		assert.NotEqual(t, "bc_"+key+"_par", c.ID)
		assert.NotEqual(t, "bc_"+key+"_dist", c.ID)
	}
}

func TestUpsertKeepsCountsAndSweepsConstraints(t *testing.T) {
	s, _ := rectStore(t)

	_, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ab"})
	require.NoError(t, err)

	points, lines := len(s.Points()), len(s.Lines())

	// Upsert with unchanged domain geometry: identical ids regenerate and
	// every building constraint that referenced the old geometry is gone.
	require.NoError(t, s.AddPerimeterGeometry("perim_1"))

	assert.Len(t, s.Points(), points)
	assert.Len(t, s.Lines(), lines)
	assert.Empty(t, s.BuildingConstraints())
	for _, c := range s.Constraints() {
		assert.NotEqual(t, "bc_hv:wall_ab", c.ID)
	}
}

func TestUpsertSweepsRenamedWalls(t *testing.T) {
	s, d := rectStore(t)

	_, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ab"})
	require.NoError(t, err)

	// The domain re-created the perimeter with fresh wall ids.
	d.addRect("perim_1",
		[4]string{"corner_a", "corner_b", "corner_c", "corner_d"},
		[4]string{"wall_ab2", "wall_bc2", "wall_cd2", "wall_da2"})
	require.NoError(t, s.AddPerimeterGeometry("perim_1"))

	assert.Empty(t, s.BuildingConstraints())
	assert.Len(t, s.Points(), 12)
	assert.Len(t, s.Lines(), 8)
}

func TestRemovePerimeterGeometryIsolated(t *testing.T) {
	d := newFakeDomain()
	d.addRect("perim_1",
		[4]string{"corner_a", "corner_b", "corner_c", "corner_d"},
		[4]string{"wall_ab", "wall_bc", "wall_cd", "wall_da"})
	d.addRect("perim_2",
		[4]string{"corner_e", "corner_f", "corner_g", "corner_h"},
		[4]string{"wall_ef", "wall_fg", "wall_gh", "wall_he"})
	s := NewStore(d)
	require.NoError(t, s.AddPerimeterGeometry("perim_1"))
	require.NoError(t, s.AddPerimeterGeometry("perim_2"))

	_, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ab"})
	require.NoError(t, err)
	keyOther, err := s.AddBuildingConstraint(HorizontalWall{Wall: "wall_ef"})
	require.NoError(t, err)

	s.RemovePerimeterGeometry("perim_1")

	assert.False(t, s.Tracked("perim_1"))
	assert.True(t, s.Tracked("perim_2"))
	assert.Len(t, s.Points(), 12)
	assert.Len(t, s.Lines(), 8)

	// Constraints on the surviving perimeter are untouched; the removed
	// perimeter's were swept.
	stored := s.BuildingConstraints()
	assert.Len(t, stored, 1)
	assert.Contains(t, stored, keyOther)
}

func TestRemovePerimeterGeometryUntracked(t *testing.T) {
	s, _ := rectStore(t)
	points := len(s.Points())

	s.RemovePerimeterGeometry("perim_zz")

	assert.Len(t, s.Points(), points)
	assert.True(t, s.Tracked("perim_1"))
}

func TestBatchRemovalNotifications(t *testing.T) {
	s, _ := rectStore(t)

	var calls int
	s.OnChange(func() { calls++ })

	s.RemovePoints()
	s.RemoveLines()
	s.RemoveConstraints()
	assert.Zero(t, calls)

	s.RemovePoints("pt_corner_a")
	assert.Equal(t, 1, calls)
}

func TestOnChangeUnsubscribe(t *testing.T) {
	s, _ := rectStore(t)

	var calls int
	off := s.OnChange(func() { calls++ })

	s.AddPoint(Point{ID: "pt_tmp"})
	require.Equal(t, 1, calls)

	off()
	s.AddPoint(Point{ID: "pt_tmp2"})
	assert.Equal(t, 1, calls)
}

func TestSolveReportStatus(t *testing.T) {
	s, _ := rectStore(t)

	dist := 4000.0
	key, err := s.AddBuildingConstraint(Parallel{WallA: "wall_ab", WallB: "wall_cd", Distance: &dist})
	require.NoError(t, err)

	s.SetSolveReport([]string{"bc_" + key + "_par"}, []string{"bc_" + key + "_dist", "gc_par_wall_ab"})

	st, ok := s.ConstraintStatus(key)
	require.True(t, ok)
	assert.True(t, st.Conflicting)
	assert.True(t, st.Redundant)

	_, ok = s.ConstraintStatus("wl:wall_zz")
	assert.False(t, ok)

	// A fresh report clears the previous flags.
	s.SetSolveReport(nil, nil)
	st, ok = s.ConstraintStatus(key)
	require.True(t, ok)
	assert.False(t, st.Conflicting)
	assert.False(t, st.Redundant)
}

func TestRevAdvances(t *testing.T) {
	s, _ := rectStore(t)
	before := s.Rev()

	s.AddPoint(Point{ID: "pt_tmp"})
	assert.Greater(t, s.Rev(), before)
}
