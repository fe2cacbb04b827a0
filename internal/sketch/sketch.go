package sketch

// Side identifies one of the two faces of a directed wall.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Mode is the authoring mode of a perimeter.
type Mode string

const (
	ModePreset   Mode = "preset"
	ModeFreeform Mode = "freeform"
)

// Primitive constraint type tags. These are part of the solver wire
// contract and must not be renamed.
const (
	TypeP2PDistance         = "p2p_distance"
	TypeP2LDistance         = "p2l_distance"
	TypeParallel            = "parallel"
	TypePerpendicular       = "perpendicular"
	TypePointOnLine         = "point_on_line"
	TypePointOnPerpBisector = "point_on_perp_bisector"
	TypeL2LAngle            = "l2l_angle"
	TypeHorizontal          = "horizontal_pp"
	TypeVertical            = "vertical_pp"
)

// Point is a solver sketch point.
type Point struct {
	ID    string  `json:"id"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Fixed bool    `json:"fixed"`
}

// Line is a solver sketch line between two points.
type Line struct {
	ID string `json:"id"`
	P1 string `json:"p1_id"`
	P2 string `json:"p2_id"`
}

// Constraint is a solver primitive constraint. Only the fields relevant
// to its type are set; Distance and Angle are pointers so a zero value
// still crosses the wire.
type Constraint struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Driving  bool     `json:"driving"`
	P        string   `json:"p_id,omitempty"`
	P1       string   `json:"p1_id,omitempty"`
	P2       string   `json:"p2_id,omitempty"`
	L        string   `json:"l_id,omitempty"`
	L1       string   `json:"l1_id,omitempty"`
	L2       string   `json:"l2_id,omitempty"`
	Distance *float64 `json:"distance,omitempty"`
	Angle    *float64 `json:"angle,omitempty"`
}

// SolverSketch is the full primitive sketch in the solver's data shape.
type SolverSketch struct {
	Points      []Point      `json:"points"`
	Lines       []Line       `json:"lines"`
	Constraints []Constraint `json:"constraints"`
}

func newP2PDistance(id, p1, p2 string, dist float64) Constraint {
	return Constraint{ID: id, Type: TypeP2PDistance, Driving: true, P1: p1, P2: p2, Distance: &dist}
}

func newP2LDistance(id, p, l string, dist float64) Constraint {
	return Constraint{ID: id, Type: TypeP2LDistance, Driving: true, P: p, L: l, Distance: &dist}
}

func newParallel(id, l1, l2 string) Constraint {
	return Constraint{ID: id, Type: TypeParallel, Driving: true, L1: l1, L2: l2}
}

func newPerpendicular(id, l1, l2 string) Constraint {
	return Constraint{ID: id, Type: TypePerpendicular, Driving: true, L1: l1, L2: l2}
}

func newPointOnLine(id, p, l string) Constraint {
	return Constraint{ID: id, Type: TypePointOnLine, Driving: true, P: p, L: l}
}

func newPointOnPerpBisector(id, p, p1, p2 string) Constraint {
	return Constraint{ID: id, Type: TypePointOnPerpBisector, Driving: true, P: p, P1: p1, P2: p2}
}

func newL2LAngle(id, l1, l2 string, radians float64) Constraint {
	return Constraint{ID: id, Type: TypeL2LAngle, Driving: true, L1: l1, L2: l2, Angle: &radians}
}

func newHorizontal(id, p1, p2 string) Constraint {
	return Constraint{ID: id, Type: TypeHorizontal, Driving: true, P1: p1, P2: p2}
}

func newVertical(id, p1, p2 string) Constraint {
	return Constraint{ID: id, Type: TypeVertical, Driving: true, P1: p1, P2: p2}
}
