package building

import (
	"github.com/planhaus/planhaus/backend-go/internal/geo"
	"github.com/planhaus/planhaus/backend-go/internal/sketch"
)

func (p *Perimeter) points() []geo.Vec {
	pts := make([]geo.Vec, len(p.Corners))
	for i, c := range p.Corners {
		pts[i] = c.Position
	}
	return pts
}

// Normalize reorders the corner ring to counter-clockwise winding. Walls
// are remapped so each one still joins the same pair of corners.
func (p *Perimeter) Normalize() {
	n := len(p.Corners)
	if n < 3 || geo.IsCCW(p.points()) {
		return
	}
	corners := make([]Corner, n)
	for i := range p.Corners {
		corners[i] = p.Corners[n-1-i]
	}
	walls := make([]Wall, n)
	for j := range p.Walls {
		walls[j] = p.Walls[(2*n-2-j)%n]
	}
	p.Corners = corners
	p.Walls = walls
}

// WallDir returns the unit direction of wall i along the reference ring.
func (p *Perimeter) WallDir(i int) geo.Vec {
	n := len(p.Corners)
	return p.Corners[(i+1)%n].Position.Sub(p.Corners[i].Position).Unit()
}

// WallRefLength returns the reference-side length of wall i.
func (p *Perimeter) WallRefLength(i int) float64 {
	n := len(p.Corners)
	return p.Corners[i].Position.Dist(p.Corners[(i+1)%n].Position)
}

// cornerWallIndexes returns the wall ending at corner i and the wall
// starting there.
func (p *Perimeter) cornerWallIndexes(i int) (prev, next int) {
	n := len(p.Corners)
	return (i - 1 + n) % n, i
}

// IsStraightCorner reports whether corner i joins two colinear walls.
func (p *Perimeter) IsStraightCorner(i int) bool {
	prev, next := p.cornerWallIndexes(i)
	return geo.SameDirection(p.WallDir(prev), p.WallDir(next))
}

// SketchSide maps the perimeter's reference face to the wall-relative side
// used by constraints. After normalization the ring winds counter-clockwise,
// so the inside face lies on the left of every wall.
func (p *Perimeter) SketchSide() sketch.Side {
	if p.ReferenceSide == ReferenceOutside {
		return sketch.SideRight
	}
	return sketch.SideLeft
}

// offsetSign is the direction of the non-reference face along the left
// normal of each wall.
func (p *Perimeter) offsetSign() float64 {
	if p.ReferenceSide == ReferenceOutside {
		return 1
	}
	return -1
}

// CornerOffset returns the initial position of corner cornerIdx projected
// onto the non-reference face of wall wallIdx. Non-straight corners get a
// miter offset so both adjacent walls see their own thickness; straight
// corners a plain normal offset.
func (p *Perimeter) CornerOffset(cornerIdx, wallIdx int) geo.Vec {
	pos := p.Corners[cornerIdx].Position
	t := p.Walls[wallIdx].Thickness * p.offsetSign()
	if p.IsStraightCorner(cornerIdx) {
		return geo.NormalOffset(pos, p.WallDir(wallIdx), t)
	}
	prev, next := p.cornerWallIndexes(cornerIdx)
	return geo.MiterOffset(pos, p.WallDir(prev), p.WallDir(next), t)
}

// Geometry derives the sketch-facing geometry of the perimeter.
func (p *Perimeter) Geometry() *sketch.PerimeterGeometry {
	n := len(p.Corners)
	g := &sketch.PerimeterGeometry{ID: p.ID, Side: p.SketchSide()}
	for i, c := range p.Corners {
		g.Corners = append(g.Corners, sketch.CornerGeometry{
			ID:       c.ID,
			Point:    c.Position,
			Straight: p.IsStraightCorner(i),
		})
	}
	for i, w := range p.Walls {
		start := p.Corners[i]
		end := p.Corners[(i+1)%n]
		wg := sketch.WallGeometry{
			ID:          w.ID,
			Start:       start.ID,
			End:         end.ID,
			Thickness:   w.Thickness,
			StartOffset: p.CornerOffset(i, i),
			EndOffset:   p.CornerOffset((i+1)%n, i),
		}
		dir := p.WallDir(i)
		for _, o := range w.Openings {
			wg.Entities = append(wg.Entities, entityGeometry(o.ID, string(o.Kind), start.Position, dir, o.Offset, o.Width))
		}
		for _, post := range w.Posts {
			wg.Entities = append(wg.Entities, entityGeometry(post.ID, "post", start.Position, dir, post.Offset, post.Width))
		}
		g.Walls = append(g.Walls, wg)
	}
	return g
}

func entityGeometry(id, kind string, wallStart, dir geo.Vec, offset, width float64) sketch.EntityGeometry {
	center := wallStart.Add(dir.Scale(offset))
	half := dir.Scale(width / 2)
	return sketch.EntityGeometry{
		ID:     id,
		Kind:   kind,
		Start:  center.Sub(half),
		Center: center,
		End:    center.Add(half),
		Width:  width,
	}
}

// GeneratorInput assembles the constraint generator's view of the
// perimeter.
func (p *Perimeter) GeneratorInput() sketch.GeneratorInput {
	in := sketch.GeneratorInput{Mode: p.Mode, Side: p.SketchSide()}
	for _, c := range p.Corners {
		in.Corners = append(in.Corners, sketch.GeneratorCorner{ID: c.ID, Point: c.Position})
	}
	for _, w := range p.Walls {
		in.Walls = append(in.Walls, sketch.GeneratorWall{ID: w.ID, LengthOverride: w.LengthOverride})
	}
	return in
}
