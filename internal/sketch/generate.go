package sketch

import (
	"math"

	"github.com/planhaus/planhaus/backend-go/internal/geo"
)

// Freeform inference tolerances. Axis alignment allows one model unit of
// slack for hand-drawn input; preset geometry is axis-exact and uses none.
const (
	axisTolerance     = 1.0
	perpDotTolerance  = 1e-3
	colinearThreshold = 0.9999
)

// GeneratorCorner is one corner of a perimeter ring, in order.
type GeneratorCorner struct {
	ID    string
	Point geo.Vec
}

// GeneratorWall is the wall from corner i to corner i+1 (wrapping).
type GeneratorWall struct {
	ID             string
	LengthOverride *float64
}

// GeneratorInput is the reference-side geometry of one perimeter.
type GeneratorInput struct {
	Mode    Mode
	Side    Side
	Corners []GeneratorCorner
	Walls   []GeneratorWall
}

// Generate infers the baseline building constraints for a freshly created
// perimeter. Preset mode pins every wall length and records exact axis
// alignment; freeform mode only pins explicitly overridden lengths and
// infers axis alignment, right angles and flattened corners within
// tolerances.
func Generate(in GeneratorInput) []BuildingConstraint {
	n := len(in.Corners)
	if n < 3 || len(in.Walls) != n {
		return nil
	}

	switch in.Mode {
	case ModePreset:
		return generatePreset(in)
	case ModeFreeform:
		return generateFreeform(in)
	default:
		return nil
	}
}

func generatePreset(in GeneratorInput) []BuildingConstraint {
	n := len(in.Corners)
	out := make([]BuildingConstraint, 0, 2*n)

	for i, w := range in.Walls {
		start := in.Corners[i].Point
		end := in.Corners[(i+1)%n].Point
		out = append(out, WallLength{Wall: w.ID, Side: in.Side, Length: start.Dist(end)})
	}

	// Preset authoring guarantees exact axis alignment, so no tolerance.
	// Horizontal/vertical pairs already fix every right angle; emitting
	// perpendiculars on top would over-determine the sketch.
	for i, w := range in.Walls {
		start := in.Corners[i].Point
		end := in.Corners[(i+1)%n].Point
		switch {
		case start.Y == end.Y:
			out = append(out, HorizontalWall{Wall: w.ID})
		case start.X == end.X:
			out = append(out, VerticalWall{Wall: w.ID})
		}
	}
	return out
}

func generateFreeform(in GeneratorInput) []BuildingConstraint {
	n := len(in.Corners)
	out := make([]BuildingConstraint, 0, 2*n)

	for _, w := range in.Walls {
		if w.LengthOverride != nil {
			out = append(out, WallLength{Wall: w.ID, Side: in.Side, Length: *w.LengthOverride})
		}
	}

	// Track which walls picked up an axis constraint: a perpendicular
	// between two axis-constrained walls would be redundant at best and
	// contradictory at worst.
	axis := make([]bool, n)
	for i, w := range in.Walls {
		start := in.Corners[i].Point
		end := in.Corners[(i+1)%n].Point
		switch {
		case math.Abs(start.Y-end.Y) <= axisTolerance:
			out = append(out, HorizontalWall{Wall: w.ID})
			axis[i] = true
		case math.Abs(start.X-end.X) <= axisTolerance:
			out = append(out, VerticalWall{Wall: w.ID})
			axis[i] = true
		}
	}

	for i := range in.Corners {
		prev := (i - 1 + n) % n
		next := i
		d1 := wallDir(in, prev)
		d2 := wallDir(in, next)
		dot := d1.Dot(d2)

		switch {
		case dot >= colinearThreshold:
			out = append(out, ColinearCorner{Corner: in.Corners[i].ID})
		case math.Abs(dot) < perpDotTolerance && !(axis[prev] && axis[next]):
			out = append(out, PerpendicularCorner{Corner: in.Corners[i].ID})
		}
	}
	return out
}

func wallDir(in GeneratorInput, i int) geo.Vec {
	n := len(in.Corners)
	return in.Corners[(i+1)%n].Point.Sub(in.Corners[i].Point).Unit()
}
