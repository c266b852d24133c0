// Package render triangulates solids into flat vertex buffers for on-screen
// display and serializes triangle meshes to the binary STL interchange
// format.
package render

import (
	"github.com/soypat/geometry/ms3"

	jersey "github.com/KJLJon/Custom-3d-printer-designs"
)

// Shading selects how per-vertex normals are assigned when merging.
type Shading uint8

const (
	// ShadingFlat assigns every vertex its triangle's face normal.
	ShadingFlat Shading = iota
	// ShadingSmooth averages the face normals of all triangles sharing a
	// vertex position.
	ShadingSmooth
)

// Mesh is a triangle mesh suitable for rendering. Buffers are flat:
// Vertices holds 3 floats per vertex and 9 per triangle, with indexing
// implicit by sequential triples (vertices are duplicated per triangle, no
// index buffer). Normals, when present, parallels Vertices.
type Mesh struct {
	Vertices []float32
	Normals  []float32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Vertices) / 9 }

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) / 3 }

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool { return len(m.Vertices) == 0 }

// Triangles expands the flat buffer back into triangles.
func (m *Mesh) Triangles() []ms3.Triangle {
	out := make([]ms3.Triangle, 0, m.TriangleCount())
	for i := 0; i+8 < len(m.Vertices); i += 9 {
		var t ms3.Triangle
		for v := 0; v < 3; v++ {
			t[v] = ms3.Vec{
				X: m.Vertices[i+3*v],
				Y: m.Vertices[i+3*v+1],
				Z: m.Vertices[i+3*v+2],
			}
		}
		out = append(out, t)
	}
	return out
}

// AppendFace fan-triangulates the face from its first vertex, appending n-2
// triangles to the mesh. Faces with fewer than 3 vertices are skipped, never
// an error.
func (m *Mesh) AppendFace(face jersey.Face) {
	for i := 1; i+1 < len(face); i++ {
		m.appendTriangle(ms3.Triangle{face[0], face[i], face[i+1]})
	}
}

func (m *Mesh) appendTriangle(t ms3.Triangle) {
	for _, v := range t {
		m.Vertices = append(m.Vertices, v.X, v.Y, v.Z)
	}
}

// MergeSolids fan-triangulates every face of every solid into a single mesh
// and assigns per-vertex normals per the shading mode. Nil and empty solids
// contribute nothing.
func MergeSolids(shading Shading, solids ...*jersey.Solid) *Mesh {
	m := new(Mesh)
	for _, s := range solids {
		if s.IsEmpty() {
			continue
		}
		for _, f := range s.Faces() {
			m.AppendFace(f)
		}
	}
	m.shade(shading)
	return m
}

func (m *Mesh) shade(shading Shading) {
	m.Normals = make([]float32, len(m.Vertices))
	tris := m.Triangles()
	if shading == ShadingFlat {
		for i, t := range tris {
			n := TriangleNormal(t)
			for v := 0; v < 3; v++ {
				m.Normals[9*i+3*v] = n.X
				m.Normals[9*i+3*v+1] = n.Y
				m.Normals[9*i+3*v+2] = n.Z
			}
		}
		return
	}
	// Smooth shading: accumulate face normals per shared vertex position,
	// then normalize the sums.
	acc := make(map[[3]float32]ms3.Vec, len(tris))
	for _, t := range tris {
		n := TriangleNormal(t)
		for _, v := range t {
			k := [3]float32{v.X, v.Y, v.Z}
			acc[k] = ms3.Add(acc[k], n)
		}
	}
	for i, t := range tris {
		for v := 0; v < 3; v++ {
			k := [3]float32{t[v].X, t[v].Y, t[v].Z}
			n := unitOrZero(acc[k])
			m.Normals[9*i+3*v] = n.X
			m.Normals[9*i+3*v+1] = n.Y
			m.Normals[9*i+3*v+2] = n.Z
		}
	}
}

// TriangleNormal returns the unit normal of the triangle's plane following
// its winding order, or the zero vector for degenerate triangles.
func TriangleNormal(t ms3.Triangle) ms3.Vec {
	a := ms3.Sub(t[1], t[0])
	b := ms3.Sub(t[2], t[0])
	return unitOrZero(ms3.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	})
}

func unitOrZero(v ms3.Vec) ms3.Vec {
	n := ms3.Norm(v)
	if n < 1e-12 {
		return ms3.Vec{}
	}
	return ms3.Scale(1/n, v)
}
