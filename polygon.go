package jersey

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

// Polygons are ordered vertex sequences, implicitly closed (last vertex
// connects back to first). Outline winding is clockwise throughout this
// package; hole contours wind counter-clockwise. Under the y-up frame the
// shoelace sum of a clockwise contour is negative.

// SignedArea returns the shoelace sum of the implicitly closed polygon.
// Negative for clockwise winding, positive for counter-clockwise.
func SignedArea(poly []ms2.Vec) float32 {
	if len(poly) < 3 {
		return 0
	}
	var sum float32
	prev := poly[len(poly)-1]
	for _, p := range poly {
		sum += prev.X*p.Y - p.X*prev.Y
		prev = p
	}
	return sum / 2
}

// Area returns the unsigned area of the polygon.
func Area(poly []ms2.Vec) float32 {
	return absf(SignedArea(poly))
}

// IsClockwise reports whether the polygon follows this package's outline
// winding convention.
func IsClockwise(poly []ms2.Vec) bool {
	return SignedArea(poly) < 0
}

// reverse returns the polygon with opposite winding. Used to turn an outline
// into a hole contour and vice versa.
func reverse(poly []ms2.Vec) []ms2.Vec {
	out := make([]ms2.Vec, len(poly))
	for i, p := range poly {
		out[len(poly)-1-i] = p
	}
	return out
}

// inwardNormal returns the interior-facing unit normal of an edge vector.
// For a clockwise contour the interior lies to the right of the direction of
// travel. Zero-length edges are treated as length 1 rather than producing NaN.
func inwardNormal(edge ms2.Vec, clockwise bool) ms2.Vec {
	n := ms2.Vec{X: edge.Y, Y: -edge.X}
	if !clockwise {
		n = ms2.Vec{X: -edge.Y, Y: edge.X}
	}
	return unitguard(n)
}

// segDist returns the distance from p to the segment a-b.
func segDist(p, a, b ms2.Vec) float32 {
	ab := ms2.Sub(b, a)
	l2 := ms2.Dot(ab, ab)
	if l2 == 0 {
		return ms2.Norm(ms2.Sub(p, a))
	}
	t := minf(maxf(ms2.Dot(ms2.Sub(p, a), ab)/l2, 0), 1)
	return ms2.Norm(ms2.Sub(p, ms2.Add(a, ms2.Scale(t, ab))))
}

// Inset shrinks the closed polygon inward by distance using per-vertex
// angle-bisector (miter join) displacement: each vertex moves along the
// normalized sum of its two incident inward edge normals, scaled so the
// result stays at least distance away from both incident edges.
//
// The bisector method is a local approximation. Offsetting past the outline's
// safe radius folds the result through itself; Inset guards against that case
// by verifying every displaced vertex keeps the offset distance from the
// source edges and that the result preserves winding with strictly less area,
// and reports a shape error instead of returning a self-intersected outline.
func (bld *Builder) Inset(poly []ms2.Vec, distance float32) []ms2.Vec {
	// Collapse zero-length edges so corner normals stay well defined.
	src := make([]ms2.Vec, 0, len(poly))
	for _, v := range poly {
		if len(src) == 0 || v != src[len(src)-1] {
			src = append(src, v)
		}
	}
	if len(src) > 1 && src[0] == src[len(src)-1] {
		src = src[:len(src)-1]
	}
	if len(src) < 3 {
		bld.shapeErrorf("inset of degenerate polygon with %d vertices", len(src))
		return nil
	}
	ok := distance > 0 && !math32.IsInf(distance, 1) && !math32.IsNaN(distance)
	if !ok {
		bld.shapeErrorf("inset distance %g must be positive and finite", distance)
		return nil
	}
	cw := IsClockwise(src)
	n := len(src)
	out := make([]ms2.Vec, n)
	for i, v := range src {
		prev := src[(i+n-1)%n]
		next := src[(i+1)%n]
		n0 := inwardNormal(ms2.Sub(v, prev), cw)
		n1 := inwardNormal(ms2.Sub(next, v), cw)
		bisector := unitguard(ms2.Add(n0, n1))
		// Miter scaling keeps the displaced vertex at distance `distance`
		// from both incident edges, not just from the corner.
		miter := ms2.Dot(bisector, n0)
		if miter < epstol {
			miter = 1 // Degenerate corner, fall back to plain displacement.
		}
		out[i] = ms2.Add(v, ms2.Scale(distance/miter, bisector))
	}
	// A folded outline can keep its winding and still enclose area, so the
	// offset distance itself is validated: every displaced vertex must remain
	// at least distance away from all source edges.
	const foldTol = 1e-2
	for _, p := range out {
		nearest := math32.Inf(1)
		for i, a := range src {
			nearest = minf(nearest, segDist(p, a, src[(i+1)%n]))
		}
		if nearest < distance*(1-foldTol) {
			bld.shapeErrorf("inset distance %g exceeds safe radius of outline", distance)
			return nil
		}
	}
	a0 := SignedArea(src)
	a1 := SignedArea(out)
	if signf(a0) != signf(a1) || absf(a1) >= absf(a0) {
		bld.shapeErrorf("inset distance %g exceeds safe radius of outline", distance)
		return nil
	}
	return out
}
