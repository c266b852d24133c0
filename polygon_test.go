package jersey

import (
	"math/rand"
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
)

func TestSignedAreaWinding(t *testing.T) {
	cw := []ms2.Vec{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	if got := SignedArea(cw); got != -1 {
		t.Errorf("clockwise unit square signed area = %g, want -1", got)
	}
	if !IsClockwise(cw) {
		t.Error("clockwise square not detected as clockwise")
	}
	ccw := reverse(cw)
	if got := SignedArea(ccw); got != 1 {
		t.Errorf("counter-clockwise unit square signed area = %g, want 1", got)
	}
	if IsClockwise(ccw) {
		t.Error("counter-clockwise square detected as clockwise")
	}
	if got := SignedArea(cw[:2]); got != 0 {
		t.Errorf("degenerate polygon signed area = %g, want 0", got)
	}
}

// squareCW returns an axis-aligned clockwise square of side l anchored at
// (x0, y0).
func squareCW(x0, y0, l float32) []ms2.Vec {
	return []ms2.Vec{{X: x0, Y: y0}, {X: x0, Y: y0 + l}, {X: x0 + l, Y: y0 + l}, {X: x0 + l, Y: y0}}
}

// regularCW returns a clockwise regular n-gon of radius r centered on c.
func regularCW(n int, r float32, c ms2.Vec) []ms2.Vec {
	poly := make([]ms2.Vec, n)
	for i := range poly {
		theta := -2 * math32.Pi * float32(i) / float32(n)
		poly[i] = ms2.Add(c, ms2.Vec{X: r * math32.Cos(theta), Y: r * math32.Sin(theta)})
	}
	return poly
}

func segmentDistance(p, a, b ms2.Vec) float32 {
	ab := ms2.Sub(b, a)
	l2 := ms2.Dot(ab, ab)
	if l2 == 0 {
		return ms2.Norm(ms2.Sub(p, a))
	}
	t := ms2.Dot(ms2.Sub(p, a), ab) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return ms2.Norm(ms2.Sub(p, ms2.Add(a, ms2.Scale(t, ab))))
}

func TestInsetConvex(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	var bld Builder
	bld.NoDimensionPanic = true
	for i := 0; i < 50; i++ {
		var poly []ms2.Vec
		if i%2 == 0 {
			poly = squareCW(rng.Float32()*20, rng.Float32()*20, 10+rng.Float32()*40)
		} else {
			poly = regularCW(3+rng.Intn(9), 10+rng.Float32()*30, ms2.Vec{X: 50, Y: 50})
		}
		d := 0.5 + rng.Float32()*2
		inset := bld.Inset(poly, d)
		if err := bld.Err(); err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if Area(inset) >= Area(poly) {
			t.Errorf("case %d: inset area %g not smaller than %g", i, Area(inset), Area(poly))
		}
		if IsClockwise(inset) != IsClockwise(poly) {
			t.Errorf("case %d: inset flipped winding", i)
		}
		// Every offset vertex keeps at least d from its nearest source edge.
		const eps = 1e-2
		for vi, p := range inset {
			nearest := math32.Inf(1)
			for ei := range poly {
				dist := segmentDistance(p, poly[ei], poly[(ei+1)%len(poly)])
				nearest = minf(nearest, dist)
			}
			if nearest < d*(1-eps) {
				t.Errorf("case %d vertex %d: distance %g to source edge, want >= %g", i, vi, nearest, d)
			}
		}
	}
}

func TestInsetPastSafeRadius(t *testing.T) {
	for _, tc := range []struct {
		name string
		poly []ms2.Vec
		d    float32
	}{
		// Folding through itself can leave the winding intact with a small
		// positive area, so both must be rejected on offset distance alone.
		{name: "square past half side", poly: squareCW(0, 0, 10), d: 6},
		{name: "rectangle past half height", poly: []ms2.Vec{{X: 0, Y: 0}, {X: 0, Y: 4}, {X: 30, Y: 4}, {X: 30, Y: 0}}, d: 3},
	} {
		var bld Builder
		bld.NoDimensionPanic = true
		if got := bld.Inset(tc.poly, tc.d); got != nil {
			t.Errorf("%s: over-offset inset returned a polygon", tc.name)
		}
		if bld.Err() == nil {
			t.Errorf("%s: over-offset inset accumulated no error", tc.name)
		}
	}
}

func TestInsetZeroLengthEdge(t *testing.T) {
	var bld Builder
	bld.NoDimensionPanic = true
	// Clockwise square with one vertex duplicated, yielding a zero-length edge.
	poly := []ms2.Vec{{X: 0, Y: 0}, {X: 0, Y: 10}, {X: 0, Y: 10}, {X: 10, Y: 10}, {X: 10, Y: 0}}
	inset := bld.Inset(poly, 1)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	for i, p := range inset {
		if math32.IsNaN(p.X) || math32.IsNaN(p.Y) {
			t.Fatalf("vertex %d is NaN after inset over zero-length edge", i)
		}
	}
	if Area(inset) >= Area(poly) {
		t.Error("inset with duplicated vertex did not shrink polygon")
	}
}

func TestInsetArgumentErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		poly []ms2.Vec
		d    float32
	}{
		{name: "degenerate", poly: squareCW(0, 0, 10)[:2], d: 1},
		{name: "zero distance", poly: squareCW(0, 0, 10), d: 0},
		{name: "negative distance", poly: squareCW(0, 0, 10), d: -1},
		{name: "NaN distance", poly: squareCW(0, 0, 10), d: math32.NaN()},
	} {
		var bld Builder
		bld.NoDimensionPanic = true
		if got := bld.Inset(tc.poly, tc.d); got != nil {
			t.Errorf("%s: got polygon, want nil", tc.name)
		}
		if bld.Err() == nil {
			t.Errorf("%s: no accumulated error", tc.name)
		}
	}
}
