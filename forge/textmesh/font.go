// Package textmesh converts text strings into closed 2D glyph outlines
// suitable for extrusion into printable solids. Outlines come from TrueType
// glyph curves flattened with a fixed-step Bezier sampler; layout applies
// advance widths and kerning, with horizontal centering computed from the
// total accumulated advance.
package textmesh

import (
	"bytes"
	"errors"
	"unicode"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/golang/freetype/truetype"
	"github.com/soypat/geometry/ms2"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the glyph size in millimeters used when a non-positive size
// is requested.
const DefaultSize = 12

// Font implements font parsing and glyph outline generation.
// Load once and treat as read-only; a loaded Font is never mutated by
// outline generation and is safe to share across generation calls.
type Font struct {
	ttf        truetype.Font
	gb         truetype.GlyphBuf
	hb         *gotextfont.Face // non-nil enables the HarfBuzz shaping path.
	upem       float32
	fixedScale fixed.Int26_6
}

// LoadTTFBytes loads a TTF file blob into f. After calling Load the Font is
// ready to generate text outlines.
func (f *Font) LoadTTFBytes(ttf []byte) error {
	font, err := truetype.Parse(ttf)
	if err != nil {
		return err
	}
	f.ttf = *font
	f.upem = float32(font.FUnitsPerEm())
	// GlyphBuf coordinates come out as 64 fixed-point units per font unit.
	f.fixedScale = fixed.I(int(f.upem))
	f.hb = nil
	if hb, err := gotextfont.ParseTTF(bytes.NewReader(ttf)); err == nil {
		f.hb = hb // Shaping is best effort; the Kern walk covers the rest.
	}
	return nil
}

// Glyph is one positioned glyph outline of a text line. Contours are closed
// polygons in the glyph's local millimeter frame: outlines wind clockwise,
// hole contours counter-clockwise, per TrueType fill convention. Contours
// with fewer than 3 sampled points have already been dropped.
type Glyph struct {
	Contours [][]ms2.Vec
	// Offset is the pen x offset from the line origin, mm.
	Offset float32
}

// Line is a laid out single line of text.
type Line struct {
	Glyphs []Glyph
	// Advance is the total advance width of the line, mm.
	Advance float32
}

// StartX returns the pen origin x that centers the line at centerX.
func (l Line) StartX(centerX float32) float32 {
	return centerX - l.Advance/2
}

// Bounds returns the bounding box of all line contours with glyph offsets
// applied. The zero box is returned for lines without outlines.
func (l Line) Bounds() ms2.Box {
	var bb ms2.Box
	first := true
	for _, g := range l.Glyphs {
		for _, c := range g.Contours {
			for _, p := range c {
				p.X += g.Offset
				if first {
					bb = ms2.Box{Min: p, Max: p}
					first = false
					continue
				}
				bb.Min = ms2.MinElem(bb.Min, p)
				bb.Max = ms2.MaxElem(bb.Max, p)
			}
		}
	}
	return bb
}

// TextLine lays out a single line of text at the given glyph size in
// millimeters, taking kerning and advance width into account for letter
// spacing. Glyph outlines are placed in their local frames with pen offsets
// starting at x=0 in the positive x direction.
//
// Whitespace and unloadable glyphs contribute advance but no outline. An
// empty or whitespace-only string yields a Line with no glyphs, which is not
// an error. A non-positive size falls back to DefaultSize.
func (f *Font) TextLine(s string, size float32) (Line, error) {
	if f.upem == 0 {
		return Line{}, errors.New("font not loaded")
	}
	if size <= 0 {
		size = DefaultSize
	}
	scale := size / f.upem // mm per font unit.

	var line Line
	if shaped, advance, ok := f.shapeLine(s); ok {
		for _, g := range shaped {
			contours := f.glyphContours(g.index, scale)
			if len(contours) == 0 {
				continue
			}
			line.Glyphs = append(line.Glyphs, Glyph{Contours: contours, Offset: g.penX * scale})
		}
		line.Advance = advance * scale
		return line, nil
	}

	// Index walk with kerning lookup between consecutive glyph pairs.
	var penX float32 // font units.
	var prev truetype.Index
	hasPrev := false
	for _, r := range s {
		idx := f.ttf.Index(r)
		if hasPrev {
			penX += float32(f.ttf.Kern(f.fixedScale, prev, idx)) / 64
		}
		prev, hasPrev = idx, true
		adv := float32(f.ttf.HMetric(f.fixedScale, idx).AdvanceWidth) / 64
		if unicode.IsSpace(r) || !unicode.IsGraphic(r) {
			penX += adv
			continue
		}
		if contours := f.glyphContours(idx, scale); len(contours) > 0 {
			line.Glyphs = append(line.Glyphs, Glyph{Contours: contours, Offset: penX * scale})
		}
		penX += adv
	}
	line.Advance = penX * scale
	return line, nil
}

// glyphContours loads a glyph and flattens its contours to polygons in the
// glyph-local millimeter frame, dropping degenerate contours.
func (f *Font) glyphContours(idx truetype.Index, scale float32) [][]ms2.Vec {
	if err := f.gb.Load(&f.ttf, f.fixedScale, idx, xfont.HintingNone); err != nil {
		return nil // Unloadable glyph: no outline, advance still applies.
	}
	coord := scale / 64
	var out [][]ms2.Vec
	start := 0
	for _, end := range f.gb.Ends {
		pts := f.gb.Points[start:end]
		start = end
		if len(pts) == 0 {
			continue
		}
		if poly := flattenContour(pts, coord); len(poly) >= 3 {
			out = append(out, poly)
		}
	}
	return out
}

// flattenContour walks one TrueType contour, emitting straight segments for
// consecutive on-curve points and sampled quadratics for off-curve control
// points, with implied on-curve midpoints between consecutive off-curve
// points. The result is implicitly closed.
func flattenContour(pts []truetype.Point, scale float32) []ms2.Vec {
	n := len(pts)
	toVec := func(p truetype.Point) ms2.Vec {
		return ms2.Vec{X: float32(p.X) * scale, Y: float32(p.Y) * scale}
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&1 != 0 }
	mid := func(a, b ms2.Vec) ms2.Vec { return ms2.Scale(0.5, ms2.Add(a, b)) }

	// Contour anchor: the first on-curve point, or the implied midpoint when
	// the contour opens with off-curve points on both ends. The walk visits n
	// points; for an on-curve anchor it revisits the anchor last to close the
	// loop, for a midpoint anchor the trailing control closes it instead.
	var startPt ms2.Vec
	walk := 1
	switch {
	case onCurve(pts[0]):
		startPt = toVec(pts[0])
	case onCurve(pts[n-1]):
		startPt = toVec(pts[n-1])
		walk = 0
	default:
		startPt = mid(toVec(pts[n-1]), toVec(pts[0]))
		walk = 0
	}

	poly := make([]ms2.Vec, 0, n*CurveSteps/2)
	poly = append(poly, startPt)
	prevOn := startPt
	var ctrl ms2.Vec
	haveCtrl := false
	i := walk % n
	for step := 0; step < n; step++ {
		p := pts[i]
		i = (i + 1) % n
		if onCurve(p) {
			on := toVec(p)
			if haveCtrl {
				poly = AppendQuadBezier(poly, prevOn, ctrl, on, CurveSteps)
				haveCtrl = false
			} else {
				poly = append(poly, on)
			}
			prevOn = on
			continue
		}
		c := toVec(p)
		if haveCtrl {
			// Consecutive off-curve points imply an on-curve midpoint.
			implied := mid(ctrl, c)
			poly = AppendQuadBezier(poly, prevOn, ctrl, implied, CurveSteps)
			prevOn = implied
		}
		ctrl = c
		haveCtrl = true
	}
	if haveCtrl {
		poly = AppendQuadBezier(poly, prevOn, ctrl, startPt, CurveSteps)
	}
	// Polygons are implicitly closed: drop an explicit closing duplicate.
	if len(poly) > 1 && poly[len(poly)-1] == poly[0] {
		poly = poly[:len(poly)-1]
	}
	return poly
}
