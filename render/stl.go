package render

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/soypat/geometry/ms3"

	jersey "github.com/KJLJon/Custom-3d-printer-designs"
)

const (
	stlHeaderSize   = 80
	stlTriangleSize = 50
)

// stlTriangle is the 50 byte binary STL record: face normal, three vertices
// in winding order and two unused attribute bytes.
type stlTriangle struct {
	Normal [3]float32
	Verts  [3][3]float32
	_      uint16
}

// WriteBinarySTL writes triangles in the binary STL layout, little-endian:
// an 80 byte header, a uint32 triangle count and one 50 byte record per
// triangle. Face normals are recomputed from each triangle's winding so that
// equal meshes serialize to byte-identical buffers, 84+50*N bytes in total.
// Returns the number of bytes written.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	var header [stlHeaderSize]byte
	copy(header[:], "binary STL jersey design")
	bw := bufio.NewWriter(w)
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return 0, err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(len(triangles))); err != nil {
		return 0, err
	}
	for i, t := range triangles {
		n := TriangleNormal(t)
		rec := stlTriangle{Normal: [3]float32{n.X, n.Y, n.Z}}
		for v := 0; v < 3; v++ {
			rec.Verts[v] = [3]float32{t[v].X, t[v].Y, t[v].Z}
		}
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return 0, fmt.Errorf("triangle %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return 0, err
	}
	return stlHeaderSize + 4 + stlTriangleSize*len(triangles), nil
}

// ReadBinarySTL parses a binary STL buffer back into triangles. Normals are
// discarded; they are implied by the winding order.
func ReadBinarySTL(r io.Reader) ([]ms3.Triangle, error) {
	var header struct {
		_     [stlHeaderSize]byte
		Count uint32
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("STL header: %w", err)
	}
	out := make([]ms3.Triangle, 0, header.Count)
	var rec stlTriangle
	for i := uint32(0); i < header.Count; i++ {
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		var t ms3.Triangle
		for v := 0; v < 3; v++ {
			t[v] = ms3.Vec{X: rec.Verts[v][0], Y: rec.Verts[v][1], Z: rec.Verts[v][2]}
		}
		out = append(out, t)
	}
	return out, nil
}

// WriteMeshSTL serializes an already merged mesh.
func WriteMeshSTL(w io.Writer, m *Mesh) (int, error) {
	return WriteBinarySTL(w, m.Triangles())
}

// WriteSolidsSTL merges one or more solids and serializes the result.
func WriteSolidsSTL(w io.Writer, solids ...*jersey.Solid) (int, error) {
	return WriteMeshSTL(w, MergeSolids(ShadingFlat, solids...))
}

// ExportFilename returns the per-region export name
// "<design>__<region>.stl". Path separators and spaces are replaced so the
// result is always a bare file name.
func ExportFilename(design, region string) string {
	if design == "" {
		design = "design"
	}
	return sanitize(design) + "__" + sanitize(region) + ".stl"
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', ':':
			return '-'
		}
		return r
	}, s)
}
