package geo

import "math"

// epsilon below which two unit directions count as the same direction.
const colinearEps = 1e-9

// SignedArea returns the signed area of the polygon described by pts.
// Positive for counter-clockwise winding, negative for clockwise.
func SignedArea(pts []Vec) float64 {
	if len(pts) < 3 {
		return 0
	}
	sum := 0.0
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// IsCCW reports whether the polygon described by pts winds counter-clockwise.
func IsCCW(pts []Vec) bool {
	return SignedArea(pts) > 0
}

// SameDirection reports whether two unit vectors point the same way,
// i.e. the corner between two consecutive walls with these directions
// is a straight 180-degree corner.
func SameDirection(a, b Vec) bool {
	return math.Abs(a.Cross(b)) < colinearEps && a.Dot(b) > 0
}

// NormalOffset returns p displaced by dist along the left normal of dir.
func NormalOffset(p, dir Vec, dist float64) Vec {
	return p.Add(dir.Unit().Perp().Scale(dist))
}

// MiterOffset returns the corner point p displaced to the parallel curve at
// distance dist, where dirIn is the unit direction of the wall entering the
// corner and dirOut the unit direction of the wall leaving it. The offset
// runs along the angle bisector and is scaled so both adjacent offset walls
// stay at distance dist. Falls back to a plain normal offset when the two
// walls are colinear.
func MiterOffset(p, dirIn, dirOut Vec, dist float64) Vec {
	n1 := dirIn.Unit().Perp()
	n2 := dirOut.Unit().Perp()
	bisector := n1.Add(n2)
	if bisector.Len() < colinearEps {
		// 180-degree reversal, no meaningful miter.
		return p.Add(n1.Scale(dist))
	}
	bisector = bisector.Unit()
	scale := bisector.Dot(n1)
	if math.Abs(scale) < colinearEps {
		return p.Add(n1.Scale(dist))
	}
	return p.Add(bisector.Scale(dist / scale))
}
