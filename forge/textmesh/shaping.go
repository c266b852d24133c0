package textmesh

import (
	"unicode"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/math/fixed"
)

type positionedGlyph struct {
	index truetype.Index
	penX  float32 // font units.
}

// shapeLine positions glyphs with the HarfBuzz shaper when the font parsed
// under go-text/typesetting. Shaping applies kerning and substitutions from
// the font's layout tables; when unavailable the caller falls back to the
// index walk with Kern table lookups.
func (f *Font) shapeLine(s string) ([]positionedGlyph, float32, bool) {
	if f.hb == nil {
		return nil, 0, false
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0, true
	}
	shaper := shaping.HarfbuzzShaper{}
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      f.hb,
		Size:      fixed.I(int(f.upem)),
	})
	res := make([]positionedGlyph, 0, len(out.Glyphs))
	var penX float32
	for i, g := range out.Glyphs {
		xOfs := float32(out.ToFontUnit(g.XOffset))
		// Whitespace and control clusters keep their advance but draw
		// nothing; the shaper maps some of them to visible fallback glyphs.
		if drawableCluster(runes, out.Glyphs, i) {
			res = append(res, positionedGlyph{
				index: truetype.Index(g.GlyphID),
				penX:  penX + xOfs,
			})
		}
		penX += float32(out.ToFontUnit(g.XAdvance))
	}
	return res, penX, true
}

// drawableCluster reports whether the i-th shaped glyph's source cluster
// contains at least one graphic, non-space rune. Clusters are contiguous in
// left-to-right runs, spanning up to the next glyph's cluster start.
func drawableCluster(runes []rune, glyphs []shaping.Glyph, i int) bool {
	start := glyphs[i].ClusterIndex
	end := len(runes)
	if i+1 < len(glyphs) && glyphs[i+1].ClusterIndex > start {
		end = glyphs[i+1].ClusterIndex
	}
	if start < 0 || start >= len(runes) || end > len(runes) {
		return true
	}
	for _, r := range runes[start:end] {
		if !unicode.IsSpace(r) && unicode.IsGraphic(r) {
			return true
		}
	}
	return false
}
