package textmesh

import "github.com/soypat/geometry/ms2"

// CurveSteps is the fixed flattening step count for Bezier curve commands.
// Sampling is deterministic; there is no adaptive subdivision.
const CurveSteps = 8

// AppendQuadBezier appends the quadratic Bezier p0-c-p1 sampled at t=i/steps
// for i=1..steps to dst and returns the result. The start point is excluded
// and the end point included, so dst grows by exactly steps points.
func AppendQuadBezier(dst []ms2.Vec, p0, c, p1 ms2.Vec, steps int) []ms2.Vec {
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		u := 1 - t
		p := ms2.Add(ms2.Add(
			ms2.Scale(u*u, p0),
			ms2.Scale(2*u*t, c)),
			ms2.Scale(t*t, p1))
		dst = append(dst, p)
	}
	return dst
}

// AppendCubicBezier appends the cubic Bezier p0-c0-c1-p1 sampled at t=i/steps
// for i=1..steps to dst and returns the result, excluding the start point and
// including the end point.
func AppendCubicBezier(dst []ms2.Vec, p0, c0, c1, p1 ms2.Vec, steps int) []ms2.Vec {
	for i := 1; i <= steps; i++ {
		t := float32(i) / float32(steps)
		u := 1 - t
		p := ms2.Add(
			ms2.Add(ms2.Scale(u*u*u, p0), ms2.Scale(3*u*u*t, c0)),
			ms2.Add(ms2.Scale(3*u*t*t, c1), ms2.Scale(t*t*t, p1)))
		dst = append(dst, p)
	}
	return dst
}
