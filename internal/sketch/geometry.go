package sketch

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/planhaus/planhaus/backend-go/internal/geo"
)

// PerimeterGeometry is the derived geometry of one perimeter as queried
// from the domain model: reference-side corner positions, wall endpoints
// with per-wall thickness offsets, and wall-mounted entity footprints.
type PerimeterGeometry struct {
	ID      string
	Side    Side
	Corners []CornerGeometry
	Walls   []WallGeometry
}

type CornerGeometry struct {
	ID       string
	Point    geo.Vec
	Straight bool
}

// WallGeometry describes one wall: Start and End are corner ids, the
// offsets are the initial non-reference-side positions at each endpoint.
type WallGeometry struct {
	ID          string
	Start       string
	End         string
	Thickness   float64
	StartOffset geo.Vec
	EndOffset   geo.Vec
	Entities    []EntityGeometry
}

// EntityGeometry is the footprint of an opening or post on the wall's
// reference line.
type EntityGeometry struct {
	ID     string
	Kind   string
	Start  geo.Vec
	Center geo.Vec
	End    geo.Vec
	Width  float64
}

// AddPerimeterGeometry (re)generates the sketch geometry for a perimeter
// from the domain model's current state. Upsert semantics: existing
// geometry is fully torn down first, which also sweeps every building
// constraint that referenced the old geometry.
func (s *Store) AddPerimeterGeometry(perimeterID string) error {
	s.mu.Lock()
	g, ok := s.domain.PerimeterGeometry(perimeterID)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("unknown perimeter %q", perimeterID)
	}
	if _, tracked := s.registry[perimeterID]; tracked {
		s.removePerimeterLocked(perimeterID)
	}
	s.buildPerimeterLocked(g)
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
	return nil
}

// RemovePerimeterGeometry tears down everything generated for a
// perimeter. An untracked id is logged and ignored.
func (s *Store) RemovePerimeterGeometry(perimeterID string) {
	s.mu.Lock()
	if _, ok := s.registry[perimeterID]; !ok {
		s.mu.Unlock()
		slog.Warn("perimeter not tracked", "perimeter", perimeterID)
		return
	}
	s.removePerimeterLocked(perimeterID)
	fns := s.fireLocked()
	s.mu.Unlock()
	dispatch(fns)
}

func (s *Store) removePerimeterLocked(perimeterID string) {
	reg := s.registry[perimeterID]
	for _, id := range reg.Constraints {
		delete(s.primitives, id)
	}
	for _, id := range reg.Lines {
		delete(s.lines, id)
	}
	for _, id := range reg.Points {
		delete(s.points, id)
	}
	delete(s.registry, perimeterID)
	s.sweepOrphansLocked()
}

// sweepOrphansLocked removes every building constraint whose referenced
// geometry no longer exists.
func (s *Store) sweepOrphansLocked() {
	var orphaned []string
	for key, c := range s.declared {
		if s.validateLocked(c) != nil {
			orphaned = append(orphaned, key)
		}
	}
	sort.Strings(orphaned)
	for _, key := range orphaned {
		s.removeBuildingLocked(key)
		slog.Info("removed orphaned building constraint", "key", key)
	}
}

func (s *Store) buildPerimeterLocked(g *PerimeterGeometry) {
	reg := &RegistryEntry{}

	addPoint := func(p Point) {
		s.points[p.ID] = p
		reg.Points = append(reg.Points, p.ID)
	}
	addLine := func(l Line) {
		s.lines[l.ID] = l
		reg.Lines = append(reg.Lines, l.ID)
	}
	addCons := func(c Constraint) {
		s.primitives[c.ID] = c
		reg.Constraints = append(reg.Constraints, c.ID)
	}

	for _, c := range g.Corners {
		addPoint(Point{ID: cornerPointID(c.ID), X: c.Point.X, Y: c.Point.Y})
	}

	// prevWall ends at the corner, nextWall starts there.
	prevWall := make(map[string]string, len(g.Walls))
	nextWall := make(map[string]string, len(g.Walls))
	for _, w := range g.Walls {
		nextWall[w.Start] = w.ID
		prevWall[w.End] = w.ID
	}

	for _, w := range g.Walls {
		ref := wallLineID(w.ID)
		off := wallOffsetLineID(w.ID)
		ps := cornerWallPointID(w.Start, w.ID)
		pe := cornerWallPointID(w.End, w.ID)

		addPoint(Point{ID: ps, X: w.StartOffset.X, Y: w.StartOffset.Y})
		addPoint(Point{ID: pe, X: w.EndOffset.X, Y: w.EndOffset.Y})
		addLine(Line{ID: ref, P1: cornerPointID(w.Start), P2: cornerPointID(w.End)})
		addLine(Line{ID: off, P1: ps, P2: pe})
		addCons(newParallel(genParallelID(w.ID), ref, off))
		addCons(newP2LDistance(genOffsetID(w.Start, w.ID), ps, ref, w.Thickness))
		addCons(newP2LDistance(genOffsetID(w.End, w.ID), pe, ref, w.Thickness))

		for _, e := range w.Entities {
			addPoint(Point{ID: entityStartID(e.ID), X: e.Start.X, Y: e.Start.Y})
			addPoint(Point{ID: entityCenterID(e.ID), X: e.Center.X, Y: e.Center.Y})
			addPoint(Point{ID: entityEndID(e.ID), X: e.End.X, Y: e.End.Y})
			addCons(newPointOnLine(genOnLineID(e.ID, "s"), entityStartID(e.ID), ref))
			addCons(newPointOnLine(genOnLineID(e.ID, "c"), entityCenterID(e.ID), ref))
			addCons(newPointOnLine(genOnLineID(e.ID, "e"), entityEndID(e.ID), ref))
			addCons(newPointOnPerpBisector(genBisectorID(e.ID), entityCenterID(e.ID), entityStartID(e.ID), entityEndID(e.ID)))
			addCons(newP2PDistance(genWidthID(e.ID), entityStartID(e.ID), entityEndID(e.ID), e.Width))
		}
	}

	for _, c := range g.Corners {
		pw, okP := prevWall[c.ID]
		nw, okN := nextWall[c.ID]
		if !okP || !okN {
			// Open ring, nothing to tie.
			continue
		}
		if !c.Straight {
			addCons(newP2PDistance(genCoincidentID(c.ID), cornerWallPointID(c.ID, pw), cornerWallPointID(c.ID, nw), 0))
			continue
		}
		// Straight corner: the two projected points stay across from the
		// reference point via a perpendicular connector per wall, and the
		// adjacent offset lines are left unjoined so the walls can carry
		// different thicknesses.
		for _, w := range []string{pw, nw} {
			cn := connectorLineID(c.ID, w)
			addLine(Line{ID: cn, P1: cornerPointID(c.ID), P2: cornerWallPointID(c.ID, w)})
			addCons(newPerpendicular(genConnectorID(c.ID, w), cn, wallLineID(w)))
		}
	}

	s.registry[g.ID] = reg
}
