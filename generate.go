package jersey

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/soypat/geometry/ms2"

	"github.com/KJLJon/Custom-3d-printer-designs/forge/textmesh"
)

// Region is one independently colored, printed and exported portion of a
// design.
type Region struct {
	ID    string
	Color string
	// Solid is nil when the region has no geometry, which is distinct from
	// an error: an empty text field simply produces no solid.
	Solid *Solid
	// Err is set when composing this region failed. Sibling regions are
	// unaffected.
	Err error
}

// Present reports whether the region carries geometry.
func (r *Region) Present() bool {
	return r != nil && r.Err == nil && !r.Solid.IsEmpty()
}

// Result is the outcome of one generation call.
type Result struct {
	// Seq increases monotonically per pipeline. Callers issuing generations
	// in quick succession keep the result with the highest Seq and discard
	// the rest; the pipeline itself never cancels in flight work.
	Seq     uint64
	Design  Design
	Regions []Region
}

// Region returns the entry with the given identifier, or nil.
func (r *Result) Region(id string) *Region {
	for i := range r.Regions {
		if r.Regions[i].ID == id {
			return &r.Regions[i]
		}
	}
	return nil
}

// Solids returns the present region solids in region order. All share the
// frame coordinate origin, so meshes exported separately stay in
// registration.
func (r *Result) Solids() []*Solid {
	out := make([]*Solid, 0, len(r.Regions))
	for i := range r.Regions {
		if r.Regions[i].Present() {
			out = append(out, r.Regions[i].Solid)
		}
	}
	return out
}

// Pipeline owns the read-only resources shared by generation calls: the
// loaded font. Construct once with NewPipeline and reuse; a Pipeline is never
// mutated by Generate aside from the result sequence counter.
type Pipeline struct {
	font *textmesh.Font
	seq  atomic.Uint64
}

// NewPipeline parses the font resource the pipeline will shape text with.
// A nil or empty blob loads the embedded default font. A parse failure is a
// resource failure: no pipeline is returned.
func NewPipeline(ttf []byte) (*Pipeline, error) {
	if len(ttf) == 0 {
		ttf = textmesh.DefaultTTF()
	}
	f := new(textmesh.Font)
	if err := f.LoadTTFBytes(ttf); err != nil {
		return nil, fmt.Errorf("loading design font: %w", err)
	}
	return &Pipeline{font: f}, nil
}

// Generate builds all region solids for the design. It is a pure function of
// the design record plus the cached font: no state is retained between calls
// and returned solids are never reused.
//
// A region whose composition fails gets its Err set without aborting sibling
// regions. The returned error is reserved for resource failures that void
// the whole call.
func (p *Pipeline) Generate(d Design) (*Result, error) {
	if p == nil || p.font == nil {
		return nil, errors.New("generate: pipeline has no font resource")
	}
	d = d.normalized()

	var bld Builder
	bld.NoDimensionPanic = true
	outline := bld.Silhouette(d.Style)

	res := &Result{Seq: p.seq.Add(1), Design: d}
	res.Regions = []Region{
		p.baseRegion(d, outline),
		p.trimRegion(d, outline),
		p.textRegion(RegionName, d.NameColor, d.Name, d.NameSize, nameCenterY),
		p.textRegion(RegionNumber, d.NumberColor, d.Number, d.NumberSize, numberCenterY),
	}
	return res, nil
}

func (p *Pipeline) baseRegion(d Design, outline []ms2.Vec) Region {
	bld := Builder{NoDimensionPanic: true}
	s := bld.Extrude(outline, baseThickness, 0)
	if err := bld.Err(); err != nil {
		return Region{ID: RegionBase, Color: d.BaseColor, Err: err}
	}
	return Region{ID: RegionBase, Color: d.BaseColor, Solid: s}
}

func (p *Pipeline) trimRegion(d Design, outline []ms2.Vec) Region {
	if !d.Trim {
		return Region{ID: RegionTrim, Color: d.TrimColor}
	}
	bld := Builder{NoDimensionPanic: true}
	inner := bld.Inset(outline, trimInset)
	outerSolid := bld.Extrude(outline, trimThickness, trimZ)
	innerSolid := bld.Extrude(inner, trimThickness, trimZ)
	if err := bld.Err(); err != nil {
		return Region{ID: RegionTrim, Color: d.TrimColor, Err: err}
	}
	ring, err := bld.Subtract(outerSolid, innerSolid)
	if err != nil {
		return Region{ID: RegionTrim, Color: d.TrimColor, Err: err}
	}
	return Region{ID: RegionTrim, Color: d.TrimColor, Solid: ring}
}

// textRegion lays out a text line centered horizontally on the frame and
// vertically on centerY, extrudes one solid per glyph and unions them. Empty
// or whitespace-only text is explicit absence, not an error.
func (p *Pipeline) textRegion(id, color, text string, size, centerY float32) Region {
	line, err := p.font.TextLine(text, size)
	if err != nil {
		return Region{ID: id, Color: color, Err: err}
	}
	if len(line.Glyphs) == 0 {
		return Region{ID: id, Color: color}
	}
	bld := Builder{NoDimensionPanic: true}
	startX := line.StartX(FrameWidth / 2)
	bb := line.Bounds()
	dy := centerY - (bb.Min.Y+bb.Max.Y)/2
	solids := make([]*Solid, 0, len(line.Glyphs))
	for _, g := range line.Glyphs {
		gs := bld.ExtrudeContours(g.Contours, textThickness, textZ)
		solids = append(solids, bld.Translate(gs, startX+g.Offset, dy, 0))
	}
	if err := bld.Err(); err != nil {
		return Region{ID: id, Color: color, Err: err}
	}
	united, err := bld.Union(solids...)
	if err != nil {
		return Region{ID: id, Color: color, Err: err}
	}
	return Region{ID: id, Color: color, Solid: united}
}
