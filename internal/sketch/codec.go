package sketch

import "fmt"

// ConstraintDoc is the serialized form of a building constraint, shared by
// the HTTP API and the plan file loader. Only the fields of the named kind
// are read; the rest stay empty.
type ConstraintDoc struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Wall     string   `json:"wall,omitempty" yaml:"wall,omitempty"`
	WallA    string   `json:"wallA,omitempty" yaml:"wallA,omitempty"`
	WallB    string   `json:"wallB,omitempty" yaml:"wallB,omitempty"`
	Corner   string   `json:"corner,omitempty" yaml:"corner,omitempty"`
	Entity   string   `json:"entity,omitempty" yaml:"entity,omitempty"`
	EntityA  string   `json:"entityA,omitempty" yaml:"entityA,omitempty"`
	EntityB  string   `json:"entityB,omitempty" yaml:"entityB,omitempty"`
	Side     Side     `json:"side,omitempty" yaml:"side,omitempty"`
	Length   *float64 `json:"length,omitempty" yaml:"length,omitempty"`
	Distance *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
	Radians  *float64 `json:"radians,omitempty" yaml:"radians,omitempty"`
}

// Legacy kind tags from the node-tuple taxonomy, accepted on decode only.
var legacyKinds = map[string]string{
	"distance":   KindWallLength,
	"colinear":   KindColinearCorner,
	"angle":      KindCornerAngle,
	"horizontal": KindHorizontalWall,
	"vertical":   KindVerticalWall,
}

// DecodeConstraint converts a document into its constraint value. Legacy
// kind tags are mapped to their canonical kinds; unknown kinds and missing
// required fields are errors.
func DecodeConstraint(doc ConstraintDoc) (BuildingConstraint, error) {
	kind := doc.Kind
	if canonical, ok := legacyKinds[kind]; ok {
		kind = canonical
	}

	switch kind {
	case KindWallLength:
		if doc.Wall == "" || doc.Length == nil {
			return nil, fmt.Errorf("wallLength requires wall and length")
		}
		side := doc.Side
		if side == "" {
			side = SideLeft
		}
		return WallLength{Wall: doc.Wall, Side: side, Length: *doc.Length}, nil
	case KindColinearCorner:
		if doc.Corner == "" {
			return nil, fmt.Errorf("colinearCorner requires corner")
		}
		return ColinearCorner{Corner: doc.Corner}, nil
	case KindParallel:
		if doc.WallA == "" || doc.WallB == "" {
			return nil, fmt.Errorf("parallel requires wallA and wallB")
		}
		return Parallel{WallA: doc.WallA, WallB: doc.WallB, Distance: doc.Distance}, nil
	case KindPerpendicular:
		if doc.WallA == "" || doc.WallB == "" {
			return nil, fmt.Errorf("perpendicular requires wallA and wallB")
		}
		return Perpendicular{WallA: doc.WallA, WallB: doc.WallB}, nil
	case KindPerpendicularCorner:
		if doc.Corner == "" {
			return nil, fmt.Errorf("perpendicularCorner requires corner")
		}
		return PerpendicularCorner{Corner: doc.Corner}, nil
	case KindCornerAngle:
		if doc.Corner == "" || doc.Radians == nil {
			return nil, fmt.Errorf("cornerAngle requires corner and radians")
		}
		return CornerAngle{Corner: doc.Corner, Radians: *doc.Radians}, nil
	case KindHorizontalWall:
		if doc.Wall == "" {
			return nil, fmt.Errorf("horizontalWall requires wall")
		}
		return HorizontalWall{Wall: doc.Wall}, nil
	case KindVerticalWall:
		if doc.Wall == "" {
			return nil, fmt.Errorf("verticalWall requires wall")
		}
		return VerticalWall{Wall: doc.Wall}, nil
	case KindWallEntityAbsolute:
		if doc.Entity == "" || doc.Corner == "" || doc.Distance == nil {
			return nil, fmt.Errorf("wallEntityAbsolute requires entity, corner and distance")
		}
		return WallEntityAbsolute{Entity: doc.Entity, Corner: doc.Corner, Distance: *doc.Distance}, nil
	case KindWallEntityRelative:
		if doc.EntityA == "" || doc.EntityB == "" || doc.Distance == nil {
			return nil, fmt.Errorf("wallEntityRelative requires entityA, entityB and distance")
		}
		return WallEntityRelative{EntityA: doc.EntityA, EntityB: doc.EntityB, Distance: *doc.Distance}, nil
	default:
		return nil, fmt.Errorf("unknown constraint kind %q", doc.Kind)
	}
}

// EncodeConstraint converts a constraint into its document form.
func EncodeConstraint(c BuildingConstraint) ConstraintDoc {
	switch c := c.(type) {
	case WallLength:
		l := c.Length
		return ConstraintDoc{Kind: c.Kind(), Wall: c.Wall, Side: c.Side, Length: &l}
	case ColinearCorner:
		return ConstraintDoc{Kind: c.Kind(), Corner: c.Corner}
	case Parallel:
		return ConstraintDoc{Kind: c.Kind(), WallA: c.WallA, WallB: c.WallB, Distance: c.Distance}
	case Perpendicular:
		return ConstraintDoc{Kind: c.Kind(), WallA: c.WallA, WallB: c.WallB}
	case PerpendicularCorner:
		return ConstraintDoc{Kind: c.Kind(), Corner: c.Corner}
	case CornerAngle:
		r := c.Radians
		return ConstraintDoc{Kind: c.Kind(), Corner: c.Corner, Radians: &r}
	case HorizontalWall:
		return ConstraintDoc{Kind: c.Kind(), Wall: c.Wall}
	case VerticalWall:
		return ConstraintDoc{Kind: c.Kind(), Wall: c.Wall}
	case WallEntityAbsolute:
		d := c.Distance
		return ConstraintDoc{Kind: c.Kind(), Entity: c.Entity, Corner: c.Corner, Distance: &d}
	case WallEntityRelative:
		d := c.Distance
		return ConstraintDoc{Kind: c.Kind(), EntityA: c.EntityA, EntityB: c.EntityB, Distance: &d}
	default:
		panic(fmt.Sprintf("unhandled building constraint kind %T", c))
	}
}
