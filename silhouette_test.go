package jersey

import (
	"testing"

	"github.com/soypat/geometry/ms2"
)

var allStyles = []Style{StyleCollege, StyleRetro, StyleNBAModern}

func TestSilhouetteShape(t *testing.T) {
	var bld Builder
	for _, style := range allStyles {
		poly := bld.Silhouette(style)
		if len(poly) != 13 {
			t.Fatalf("%s: got %d points, want 13", style, len(poly))
		}
		if (poly[0] != ms2.Vec{}) {
			t.Errorf("%s: outline starts at %v, want bottom-left corner", style, poly[0])
		}
		if !IsClockwise(poly) {
			t.Errorf("%s: outline is not clockwise", style)
		}
		seen := make(map[ms2.Vec]bool, len(poly))
		for i, p := range poly {
			if p.X < 0 || p.X > FrameWidth || p.Y < 0 || p.Y > FrameHeight {
				t.Errorf("%s: point %d = %v outside frame", style, i, p)
			}
			if seen[p] {
				t.Errorf("%s: point %d = %v duplicated", style, i, p)
			}
			seen[p] = true
		}
		// Symmetric about the frame centerline.
		for i, p := range poly {
			mirror := ms2.Vec{X: FrameWidth - p.X, Y: p.Y}
			if !seen[mirror] {
				t.Errorf("%s: point %d = %v has no mirrored counterpart", style, i, p)
			}
		}
	}
}

func TestSilhouetteStyleDimensions(t *testing.T) {
	retro := StyleRetro.dims()
	modern := StyleNBAModern.dims()
	if retro.shoulderDrop != 18 {
		t.Errorf("Retro shoulder drop = %g, want 18", retro.shoulderDrop)
	}
	if modern.shoulderDrop != 14 {
		t.Errorf("NBA Modern shoulder drop = %g, want 14", modern.shoulderDrop)
	}
	if d := retro.shoulderDrop - modern.shoulderDrop; d != 4 {
		t.Errorf("Retro vs NBA Modern shoulder drop delta = %g, want 4", d)
	}
	if Style(250).dims() != StyleCollege.dims() {
		t.Error("unknown style does not fall back to the College dimensions")
	}
}

func TestParseStyle(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Style
	}{
		{"Retro", StyleRetro},
		{"retro", StyleRetro},
		{"NBA Modern", StyleNBAModern},
		{"nbamodern", StyleNBAModern},
		{"College", StyleCollege},
		{"", StyleCollege},
		{"space jam", StyleCollege}, // unknown selector falls back.
	} {
		if got := ParseStyle(tc.in); got != tc.want {
			t.Errorf("ParseStyle(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
