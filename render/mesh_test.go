package render_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/geometry/ms3"

	jersey "github.com/KJLJon/Custom-3d-printer-designs"
	"github.com/KJLJon/Custom-3d-printer-designs/render"
)

// convexFace returns a regular n-gon face of radius r in the z=0 plane.
func convexFace(n int, r float64) jersey.Face {
	f := make(jersey.Face, n)
	for i := range f {
		theta := 2 * math.Pi * float64(i) / float64(n)
		f[i] = ms3.Vec{X: float32(r * math.Cos(theta)), Y: float32(r * math.Sin(theta))}
	}
	return f
}

func faceArea(f jersey.Face) float64 {
	var sum float64
	for i := 1; i+1 < len(f); i++ {
		ax := float64(f[i].X - f[0].X)
		ay := float64(f[i].Y - f[0].Y)
		bx := float64(f[i+1].X - f[0].X)
		by := float64(f[i+1].Y - f[0].Y)
		sum += ax*by - ay*bx
	}
	return math.Abs(sum) / 2
}

func TestFanTriangulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 30; i++ {
		n := 3 + rng.Intn(12)
		face := convexFace(n, 1+rng.Float64()*20)
		var m render.Mesh
		m.AppendFace(face)
		if got, want := m.TriangleCount(), n-2; got != want {
			t.Fatalf("n=%d: %d triangles, want %d", n, got, want)
		}
		var sum float64
		for _, tri := range m.Triangles() {
			sum += faceArea(jersey.Face{tri[0], tri[1], tri[2]})
		}
		if want := faceArea(face); math.Abs(sum-want) > 1e-3*want {
			t.Errorf("n=%d: triangle area sum %g, want polygon area %g", n, sum, want)
		}
	}
}

func TestAppendFaceSkipsDegenerate(t *testing.T) {
	var m render.Mesh
	m.AppendFace(nil)
	m.AppendFace(jersey.Face{{X: 1}})
	m.AppendFace(jersey.Face{{X: 1}, {Y: 1}})
	if !m.IsEmpty() {
		t.Errorf("degenerate faces produced %d triangles", m.TriangleCount())
	}
}

func TestMergeSolidsFlatNormals(t *testing.T) {
	var bld jersey.Builder
	bld.NoDimensionPanic = true
	box := bld.Extrude(squareOutline(10), 4, 0)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	m := render.MergeSolids(render.ShadingFlat, box, nil)
	if m.IsEmpty() {
		t.Fatal("merge produced empty mesh")
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Fatalf("normal buffer length %d, vertex buffer length %d", len(m.Normals), len(m.Vertices))
	}
	// A box prism has only axis-aligned faces.
	for i := 0; i+2 < len(m.Normals); i += 3 {
		n := [3]float32{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
		var unit int
		for _, c := range n {
			switch {
			case c == 1 || c == -1:
				unit++
			case c != 0:
				t.Fatalf("normal %v not axis-aligned", n)
			}
		}
		if unit != 1 {
			t.Fatalf("normal %v is not unit length", n)
		}
	}
}

func TestMergeSolidsSmoothNormals(t *testing.T) {
	var bld jersey.Builder
	bld.NoDimensionPanic = true
	box := bld.Extrude(squareOutline(10), 4, 0)
	if err := bld.Err(); err != nil {
		t.Fatal(err)
	}
	m := render.MergeSolids(render.ShadingSmooth, box)
	for i := 0; i+2 < len(m.Normals); i += 3 {
		x, y, z := float64(m.Normals[i]), float64(m.Normals[i+1]), float64(m.Normals[i+2])
		norm := math.Sqrt(x*x + y*y + z*z)
		if math.Abs(norm-1) > 1e-4 {
			t.Fatalf("smooth normal %d has length %g", i/3, norm)
		}
	}
}

func TestTriangleNormalWinding(t *testing.T) {
	up := render.TriangleNormal(ms3.Triangle{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1},
	})
	if up.Z != 1 || up.X != 0 || up.Y != 0 {
		t.Errorf("counter-clockwise xy triangle normal = %+v, want +z", up)
	}
	degenerate := render.TriangleNormal(ms3.Triangle{
		{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2},
	})
	if degenerate != (ms3.Vec{}) {
		t.Errorf("degenerate triangle normal = %+v, want zero", degenerate)
	}
}
