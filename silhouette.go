package jersey

import (
	"strings"

	"github.com/soypat/geometry/ms2"
)

// Style selects the jersey cut used for the silhouette outline.
type Style uint8

const (
	// StyleCollege is the default cut. Unknown style selectors fall back to it.
	StyleCollege Style = iota
	// StyleRetro has the boxy 70s cut with the deepest shoulder drop.
	StyleRetro
	// StyleNBAModern has the swingman cut with wide armholes and a deep collar.
	StyleNBAModern
)

func (s Style) String() string {
	switch s {
	case StyleRetro:
		return "Retro"
	case StyleNBAModern:
		return "NBA Modern"
	default:
		return "College"
	}
}

// ParseStyle matches a style selector case-insensitively, ignoring spaces.
// Unknown selectors yield StyleCollege, the documented default.
func ParseStyle(s string) Style {
	switch strings.ReplaceAll(strings.ToLower(s), " ", "") {
	case "retro":
		return StyleRetro
	case "nbamodern", "nba":
		return StyleNBAModern
	default:
		return StyleCollege
	}
}

// silhouetteDims are the five derived dimensions of a jersey cut, mm.
type silhouetteDims struct {
	shoulderDrop float32 // outer shoulder below collar top
	armholeWidth float32 // armhole notch cut inward from the side
	armholeDepth float32 // vertical extent of the armhole notch
	collarWidth  float32 // V collar opening across the top
	collarDepth  float32 // V collar dip below the top edge
}

func (s Style) dims() silhouetteDims {
	switch s {
	case StyleRetro:
		return silhouetteDims{shoulderDrop: 18, armholeWidth: 14, armholeDepth: 26, collarWidth: 26, collarDepth: 16}
	case StyleNBAModern:
		return silhouetteDims{shoulderDrop: 14, armholeWidth: 16, armholeDepth: 30, collarWidth: 30, collarDepth: 20}
	default:
		return silhouetteDims{shoulderDrop: 16, armholeWidth: 15, armholeDepth: 28, collarWidth: 28, collarDepth: 14}
	}
}

// Silhouette returns the closed 13-point jersey outline for the style within
// the fixed FrameWidth by FrameHeight canvas. The contour is built clockwise
// starting at the bottom-left corner: up the left side, armhole notch,
// stepped shoulder, V collar at top center, then mirrored down the right
// side. Pure; has no error conditions.
func (bld *Builder) Silhouette(style Style) []ms2.Vec {
	d := style.dims()
	const w, h = FrameWidth, FrameHeight
	underarm := h - d.shoulderDrop - d.armholeDepth
	shoulder := h - d.shoulderDrop
	collarL := (w - d.collarWidth) / 2
	collarR := (w + d.collarWidth) / 2
	return []ms2.Vec{
		{X: 0, Y: 0},
		{X: 0, Y: underarm},
		{X: d.armholeWidth, Y: underarm},
		{X: d.armholeWidth, Y: shoulder},
		{X: collarL, Y: shoulder},
		{X: collarL, Y: h}, // shoulder step up to the collar top.
		{X: w / 2, Y: h - d.collarDepth},
		{X: collarR, Y: h},
		{X: collarR, Y: shoulder},
		{X: w - d.armholeWidth, Y: shoulder},
		{X: w - d.armholeWidth, Y: underarm},
		{X: w, Y: underarm},
		{X: w, Y: 0},
	}
}
