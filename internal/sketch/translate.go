package sketch

import "fmt"

// Resolver is the read-only context the translator needs: wall/corner
// adjacency, the reference side of a corner's perimeter, and the first
// endpoint of a sketch line. Every method may report not-found; apart from
// the documented parallel-distance case, a failed lookup aborts the
// translation with an error.
type Resolver interface {
	// WallCorners returns the start and end corner of a wall.
	WallCorners(wallID string) (start, end string, ok bool)
	// CornerWalls returns the wall entering and the wall leaving a corner.
	CornerWalls(cornerID string) (prev, next string, ok bool)
	// CornerSide returns the reference side of the corner's perimeter.
	CornerSide(cornerID string) (Side, bool)
	// LineFirstPoint returns the first endpoint of a sketch line.
	LineFirstPoint(lineID string) (pointID string, ok bool)
}

// Translate maps one building constraint to its solver primitives. The
// result is deterministic: a non-parallel kind yields exactly one primitive
// with id bc_<key>; parallel yields bc_<key>_par plus, when a distance is
// given and a representative point on the first wall resolves, a
// bc_<key>_dist half. A missing distance half is not an error.
func Translate(c BuildingConstraint, key string, r Resolver) ([]Constraint, error) {
	switch c := c.(type) {
	case WallLength:
		start, end, ok := r.WallCorners(c.Wall)
		if !ok {
			return nil, fmt.Errorf("unknown wall %q", c.Wall)
		}
		p1, err := sidePoint(start, c.Wall, c.Side, r)
		if err != nil {
			return nil, err
		}
		p2, err := sidePoint(end, c.Wall, c.Side, r)
		if err != nil {
			return nil, err
		}
		return []Constraint{newP2PDistance(bcID(key), p1, p2, c.Length)}, nil

	case ColinearCorner:
		prev, next, ok := r.CornerWalls(c.Corner)
		if !ok {
			return nil, fmt.Errorf("unknown corner %q", c.Corner)
		}
		far, err := farCorner(next, c.Corner, r)
		if err != nil {
			return nil, err
		}
		return []Constraint{newPointOnLine(bcID(key), cornerPointID(far), wallLineID(prev))}, nil

	case Parallel:
		out := []Constraint{newParallel(bcParID(key), wallLineID(c.WallA), wallLineID(c.WallB))}
		if c.Distance != nil {
			if p, ok := r.LineFirstPoint(wallLineID(c.WallA)); ok {
				out = append(out, newP2LDistance(bcDistID(key), p, wallLineID(c.WallB), *c.Distance))
			}
			// Otherwise the distance half is silently omitted.
		}
		return out, nil

	case Perpendicular:
		return []Constraint{newPerpendicular(bcID(key), wallLineID(c.WallA), wallLineID(c.WallB))}, nil

	case PerpendicularCorner:
		prev, next, ok := r.CornerWalls(c.Corner)
		if !ok {
			return nil, fmt.Errorf("unknown corner %q", c.Corner)
		}
		return []Constraint{newPerpendicular(bcID(key), wallLineID(prev), wallLineID(next))}, nil

	case CornerAngle:
		prev, next, ok := r.CornerWalls(c.Corner)
		if !ok {
			return nil, fmt.Errorf("unknown corner %q", c.Corner)
		}
		return []Constraint{newL2LAngle(bcID(key), wallLineID(prev), wallLineID(next), c.Radians)}, nil

	case HorizontalWall:
		start, end, ok := r.WallCorners(c.Wall)
		if !ok {
			return nil, fmt.Errorf("unknown wall %q", c.Wall)
		}
		return []Constraint{newHorizontal(bcID(key), cornerPointID(start), cornerPointID(end))}, nil

	case VerticalWall:
		start, end, ok := r.WallCorners(c.Wall)
		if !ok {
			return nil, fmt.Errorf("unknown wall %q", c.Wall)
		}
		return []Constraint{newVertical(bcID(key), cornerPointID(start), cornerPointID(end))}, nil

	case WallEntityAbsolute:
		return []Constraint{newP2PDistance(bcID(key), entityCenterID(c.Entity), cornerPointID(c.Corner), c.Distance)}, nil

	case WallEntityRelative:
		return []Constraint{newP2PDistance(bcID(key), entityCenterID(c.EntityA), entityCenterID(c.EntityB), c.Distance)}, nil

	default:
		panic(fmt.Sprintf("unhandled building constraint kind %T", c))
	}
}

// sidePoint picks the sketch point representing a corner on the given
// side: the reference point when the declared side matches the perimeter's
// reference side, otherwise the wall-projected non-reference point.
func sidePoint(corner, wall string, declared Side, r Resolver) (string, error) {
	ref, ok := r.CornerSide(corner)
	if !ok {
		return "", fmt.Errorf("unknown corner %q", corner)
	}
	if declared == ref {
		return cornerPointID(corner), nil
	}
	return cornerWallPointID(corner, wall), nil
}

// farCorner returns the endpoint of a wall that is not the given corner.
func farCorner(wall, corner string, r Resolver) (string, error) {
	start, end, ok := r.WallCorners(wall)
	if !ok {
		return "", fmt.Errorf("unknown wall %q", wall)
	}
	if start == corner {
		return end, nil
	}
	return start, nil
}
