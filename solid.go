package jersey

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	libtess2 "github.com/hajimehoshi/go-libtess2"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Face is a planar polygon in 3D space, the atomic unit of a Solid's boundary.
type Face []ms3.Vec

// Solid is a closed boundary representation: a set of planar faces whose
// union forms a watertight shape. Solids are immutable once built; composing
// two solids produces a new Solid and never mutates the operands.
//
// All solids in this package are right prisms over a 2D footprint. The
// footprint contours are retained so that boolean composition can run in
// footprint space; clockwise contours add material and counter-clockwise
// contours remove it.
type Solid struct {
	faces    []Face
	contours [][]ms2.Vec
	z0, z1   float32
}

// Faces returns the boundary faces of the solid. The returned slice is a
// read-only view; callers must not modify it.
func (s *Solid) Faces() []Face {
	return s.faces
}

// IsEmpty reports whether the solid has no boundary.
func (s *Solid) IsEmpty() bool {
	return s == nil || len(s.faces) == 0
}

// Bounds returns the axis-aligned bounding box of the solid.
func (s *Solid) Bounds() ms3.Box {
	if s.IsEmpty() {
		return ms3.Box{}
	}
	first := s.faces[0][0]
	bb := ms3.Box{Min: first, Max: first}
	for _, f := range s.faces {
		for _, v := range f {
			bb.Min = ms3.MinElem(bb.Min, v)
			bb.Max = ms3.MaxElem(bb.Max, v)
		}
	}
	return bb
}

// Volume returns the enclosed volume computed with the divergence theorem
// over the fan-triangulated boundary.
func (s *Solid) Volume() float32 {
	var vol float32
	for _, f := range s.faces {
		if len(f) < 3 {
			continue
		}
		for i := 1; i < len(f)-1; i++ {
			vol += dot3(f[0], cross3(f[i], f[i+1]))
		}
	}
	return absf(vol / 6)
}

// Extrude builds a right prism with the polygon as footprint, base at
// z=zOfs and top at z=zOfs+height. The polygon must follow the clockwise
// outline convention.
func (bld *Builder) Extrude(polygon []ms2.Vec, height, zOfs float32) *Solid {
	return bld.ExtrudeContours([][]ms2.Vec{polygon}, height, zOfs)
}

// ExtrudeContours builds a right prism over a multi-contour footprint, such
// as a glyph outline with hole contours. Contours with fewer than 3 vertices
// are dropped silently; they are expected sampling artifacts, not errors.
func (bld *Builder) ExtrudeContours(contours [][]ms2.Vec, height, zOfs float32) *Solid {
	ok := height > 0 && !math32.IsInf(height, 1) && !math32.IsNaN(height) && !math32.IsNaN(zOfs)
	if !ok {
		bld.shapeErrorf("extrude height %g must be positive and finite", height)
		return &Solid{}
	}
	kept := make([][]ms2.Vec, 0, len(contours))
	for _, c := range contours {
		if len(c) >= 3 {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		bld.shapeErrorf("extrude of empty footprint")
		return &Solid{}
	}
	s, err := makePrism(kept, zOfs, zOfs+height)
	if err != nil {
		bld.shapeErrorf("extrude: %s", err)
		return &Solid{}
	}
	return s
}

// Union returns the solid whose boundary encloses the union of all operand
// volumes. Operands must be non-empty prism solids spanning the same z range.
// A single operand is returned unchanged. Union is pure; a failed composition
// leaves the operands untouched.
func (bld *Builder) Union(solids ...*Solid) (*Solid, error) {
	if len(solids) == 0 {
		return nil, errors.New("union requires at least one operand")
	}
	var contours [][]ms2.Vec
	var z0, z1 float32
	for i, s := range solids {
		if err := checkPrismOperand(s); err != nil {
			return nil, fmt.Errorf("union operand %d: %w", i, err)
		}
		if i == 0 {
			z0, z1 = s.z0, s.z1
		} else if s.z0 != z0 || s.z1 != z1 {
			return nil, fmt.Errorf("union operand %d spans z [%g,%g], want [%g,%g]", i, s.z0, s.z1, z0, z1)
		}
		contours = append(contours, s.contours...)
	}
	if len(solids) == 1 {
		return solids[0], nil
	}
	out, err := makePrism(contours, z0, z1)
	if err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}
	return out, nil
}

// Subtract returns outer with inner's volume removed. Both must be non-empty
// prism solids spanning the same z range. Subtract is pure.
func (bld *Builder) Subtract(outer, inner *Solid) (*Solid, error) {
	if err := checkPrismOperand(outer); err != nil {
		return nil, fmt.Errorf("subtract outer operand: %w", err)
	}
	if err := checkPrismOperand(inner); err != nil {
		return nil, fmt.Errorf("subtract inner operand: %w", err)
	}
	if outer.z0 != inner.z0 || outer.z1 != inner.z1 {
		return nil, fmt.Errorf("subtract operands span z [%g,%g] and [%g,%g], want equal", outer.z0, outer.z1, inner.z0, inner.z1)
	}
	contours := make([][]ms2.Vec, 0, len(outer.contours)+len(inner.contours))
	contours = append(contours, outer.contours...)
	for _, c := range inner.contours {
		contours = append(contours, reverse(c))
	}
	out, err := makePrism(contours, outer.z0, outer.z1)
	if err != nil {
		return nil, fmt.Errorf("subtract: %w", err)
	}
	return out, nil
}

// Translate returns a copy of the solid displaced by (x, y, z) in the shared
// frame. The operand is not modified.
func (bld *Builder) Translate(s *Solid, x, y, z float32) *Solid {
	if s == nil {
		bld.shapeErrorf("translate of nil solid")
		return &Solid{}
	}
	d3 := ms3.Vec{X: x, Y: y, Z: z}
	d2 := ms2.Vec{X: x, Y: y}
	out := &Solid{
		faces:    make([]Face, len(s.faces)),
		contours: make([][]ms2.Vec, len(s.contours)),
		z0:       s.z0 + z,
		z1:       s.z1 + z,
	}
	for i, f := range s.faces {
		nf := make(Face, len(f))
		for j, v := range f {
			nf[j] = ms3.Add(v, d3)
		}
		out.faces[i] = nf
	}
	for i, c := range s.contours {
		nc := make([]ms2.Vec, len(c))
		for j, p := range c {
			nc[j] = ms2.Add(p, d2)
		}
		out.contours[i] = nc
	}
	return out
}

func checkPrismOperand(s *Solid) error {
	switch {
	case s.IsEmpty():
		return errors.New("empty solid")
	case len(s.contours) == 0:
		return errors.New("not a prism solid")
	}
	return nil
}

// makePrism constructs the watertight boundary of a right prism over the
// footprint enclosed by contours under the positive winding rule. The
// tessellator orients the projection so the dominant winding is positive,
// which makes clockwise outlines fill and counter-clockwise hole contours
// carve. Caps come from the footprint tessellation; side walls from the
// directed boundary edges left after interior edges cancel.
func makePrism(contours [][]ms2.Vec, z0, z1 float32) (*Solid, error) {
	tcs := make([]libtess2.Contour, len(contours))
	for i, c := range contours {
		tc := make(libtess2.Contour, len(c))
		for j, p := range c {
			tc[j] = libtess2.Vertex{X: p.X, Y: p.Y}
		}
		tcs[i] = tc
	}
	elems, verts, err := libtess2.Tesselate(tcs, libtess2.WindingRulePositive)
	if err != nil {
		return nil, fmt.Errorf("footprint tessellation: %w", err)
	}
	if len(elems) == 0 {
		return nil, errors.New("footprint encloses no area")
	}

	// Boundary edges are found by netting directed edges keyed on vertex
	// coordinates, not tessellator indices: the tessellator may emit distinct
	// vertices at identical coordinates, and skipped sliver triangles leave
	// coincident edges behind that must cancel against their neighbors.
	type dirEdge struct {
		a, b ms2.Vec
		net  int
	}
	edges := make(map[[4]float32]*dirEdge)
	addEdge := func(i, j int) {
		a := ms2.Vec{X: verts[i].X, Y: verts[i].Y}
		b := ms2.Vec{X: verts[j].X, Y: verts[j].Y}
		if a == b {
			return
		}
		dir := 1
		if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
			a, b = b, a
			dir = -1
		}
		key := [4]float32{a.X, a.Y, b.X, b.Y}
		if e, ok := edges[key]; ok {
			e.net += dir
		} else {
			edges[key] = &dirEdge{a: a, b: b, net: dir}
		}
	}
	at := func(i int, z float32) ms3.Vec {
		return ms3.Vec{X: verts[i].X, Y: verts[i].Y, Z: z}
	}

	s := &Solid{contours: contours, z0: z0, z1: z1}
	for e := 0; e+2 < len(elems); e += 3 {
		a, b, c := elems[e], elems[e+1], elems[e+2]
		pa, pb, pc := verts[a], verts[b], verts[c]
		area2 := (pb.X-pa.X)*(pc.Y-pa.Y) - (pc.X-pa.X)*(pb.Y-pa.Y)
		if absf(area2) < epstol {
			continue // zero-area sliver.
		}
		if area2 < 0 {
			b, c = c, b // normalize to counter-clockwise in the xy plane.
		}
		// Top cap faces +z, bottom cap -z.
		s.faces = append(s.faces,
			Face{at(a, z1), at(b, z1), at(c, z1)},
			Face{at(a, z0), at(c, z0), at(b, z0)},
		)
		addEdge(a, b)
		addEdge(b, c)
		addEdge(c, a)
	}
	if len(s.faces) == 0 {
		return nil, errors.New("footprint encloses no area")
	}
	// Interior lies left of each directed edge of a counter-clockwise
	// triangle; interior edges are traversed once per side in opposite
	// directions and net to zero. An unbalanced edge a->b walls off the
	// outside on its right.
	for _, de := range edges {
		n := de.net
		a, b := de.a, de.b
		if n < 0 {
			a, b = b, a
			n = -n
		}
		for ; n > 0; n-- {
			s.faces = append(s.faces, Face{
				{X: a.X, Y: a.Y, Z: z0},
				{X: b.X, Y: b.Y, Z: z0},
				{X: b.X, Y: b.Y, Z: z1},
				{X: a.X, Y: a.Y, Z: z1},
			})
		}
	}
	return s, nil
}
