package sketch

// BuildingConstraint is a declarative constraint expressed in terms of
// domain entities (corners, walls, wall-mounted openings and posts). The
// set of kinds is closed: every kind lives in this package and the
// translator rejects anything else.
type BuildingConstraint interface {
	// Key returns the canonical, order-independent identity of the
	// constraint. Two constraints with equal keys cannot coexist.
	Key() string
	// Kind returns the constraint's wire tag.
	Kind() string

	refs() []entityRef
	isBuildingConstraint()
}

// Canonical kind tags.
const (
	KindWallLength          = "wallLength"
	KindColinearCorner      = "colinearCorner"
	KindParallel            = "parallel"
	KindPerpendicular       = "perpendicular"
	KindPerpendicularCorner = "perpendicularCorner"
	KindCornerAngle         = "cornerAngle"
	KindHorizontalWall      = "horizontalWall"
	KindVerticalWall        = "verticalWall"
	KindWallEntityAbsolute  = "wallEntityAbsolute"
	KindWallEntityRelative  = "wallEntityRelative"
)

// entityRef names one domain entity a constraint depends on. Used to
// validate that the sketch already carries the entity's geometry, and to
// sweep constraints whose geometry has been torn down.
type entityRef struct {
	kind refKind
	id   string
}

type refKind int

const (
	refCorner refKind = iota
	refWall
	refEntity
)

// References lists the corner, wall and opening/post ids a constraint
// depends on.
func References(c BuildingConstraint) (corners, walls, entities []string) {
	for _, r := range c.refs() {
		switch r.kind {
		case refCorner:
			corners = append(corners, r.id)
		case refWall:
			walls = append(walls, r.id)
		case refEntity:
			entities = append(entities, r.id)
		}
	}
	return corners, walls, entities
}

// WallLength pins a wall's length, measured on the given side.
type WallLength struct {
	Wall   string
	Side   Side
	Length float64
}

// ColinearCorner flattens a corner so its two adjacent walls stay on one
// straight line.
type ColinearCorner struct {
	Corner string
}

// Parallel keeps two walls parallel, optionally at a fixed distance.
type Parallel struct {
	WallA    string
	WallB    string
	Distance *float64
}

// Perpendicular keeps two walls at a right angle.
type Perpendicular struct {
	WallA string
	WallB string
}

// PerpendicularCorner keeps the two walls adjacent to a corner at a right
// angle.
type PerpendicularCorner struct {
	Corner string
}

// CornerAngle fixes the angle between a corner's two adjacent walls.
type CornerAngle struct {
	Corner  string
	Radians float64
}

// HorizontalWall keeps a wall horizontal.
type HorizontalWall struct {
	Wall string
}

// VerticalWall keeps a wall vertical.
type VerticalWall struct {
	Wall string
}

// WallEntityAbsolute anchors an opening or post at a fixed distance from
// a corner.
type WallEntityAbsolute struct {
	Entity   string
	Corner   string
	Distance float64
}

// WallEntityRelative ties two openings/posts together at a fixed distance.
type WallEntityRelative struct {
	EntityA  string
	EntityB  string
	Distance float64
}

func (WallLength) Kind() string          { return KindWallLength }
func (ColinearCorner) Kind() string      { return KindColinearCorner }
func (Parallel) Kind() string            { return KindParallel }
func (Perpendicular) Kind() string       { return KindPerpendicular }
func (PerpendicularCorner) Kind() string { return KindPerpendicularCorner }
func (CornerAngle) Kind() string         { return KindCornerAngle }
func (HorizontalWall) Kind() string      { return KindHorizontalWall }
func (VerticalWall) Kind() string        { return KindVerticalWall }
func (WallEntityAbsolute) Kind() string  { return KindWallEntityAbsolute }
func (WallEntityRelative) Kind() string  { return KindWallEntityRelative }

func (c WallLength) refs() []entityRef {
	return []entityRef{{refWall, c.Wall}}
}

func (c ColinearCorner) refs() []entityRef {
	return []entityRef{{refCorner, c.Corner}}
}

func (c Parallel) refs() []entityRef {
	return []entityRef{{refWall, c.WallA}, {refWall, c.WallB}}
}

func (c Perpendicular) refs() []entityRef {
	return []entityRef{{refWall, c.WallA}, {refWall, c.WallB}}
}

func (c PerpendicularCorner) refs() []entityRef {
	return []entityRef{{refCorner, c.Corner}}
}

func (c CornerAngle) refs() []entityRef {
	return []entityRef{{refCorner, c.Corner}}
}

func (c HorizontalWall) refs() []entityRef {
	return []entityRef{{refWall, c.Wall}}
}

func (c VerticalWall) refs() []entityRef {
	return []entityRef{{refWall, c.Wall}}
}

func (c WallEntityAbsolute) refs() []entityRef {
	return []entityRef{{refEntity, c.Entity}, {refCorner, c.Corner}}
}

func (c WallEntityRelative) refs() []entityRef {
	return []entityRef{{refEntity, c.EntityA}, {refEntity, c.EntityB}}
}

func (WallLength) isBuildingConstraint()          {}
func (ColinearCorner) isBuildingConstraint()      {}
func (Parallel) isBuildingConstraint()            {}
func (Perpendicular) isBuildingConstraint()       {}
func (PerpendicularCorner) isBuildingConstraint() {}
func (CornerAngle) isBuildingConstraint()         {}
func (HorizontalWall) isBuildingConstraint()      {}
func (VerticalWall) isBuildingConstraint()        {}
func (WallEntityAbsolute) isBuildingConstraint()  {}
func (WallEntityRelative) isBuildingConstraint()  {}
