// Package jersey generates parametric, multi-region 3D printable jersey
// designs. Solids are built as boundary representations from 2D outlines:
// a parametric jersey silhouette, an inward-offset trim ring and extruded
// text glyphs, all placed in one shared millimeter coordinate frame so that
// independently exported regions register at the origin.
package jersey

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

const (
	// Silhouette canvas dimensions in millimeters. All region geometry is
	// placed within this frame.
	FrameWidth  = 100
	FrameHeight = 140

	// epstol is used to check for badly conditioned denominators
	// such as lengths used for normalization.
	epstol = 6e-7
)

// Builder wraps polygon and solid construction logic.
// Provides error handling strategies with panics or error accumulation during shape generation.
type Builder struct {
	// NoDimensionPanic accumulates dimension errors instead of panicking
	// when shape arguments are out of range.
	NoDimensionPanic bool
	accumErrs        []error
}

// Err returns errors accumulated during shape creation, or nil if none occurred.
func (bld *Builder) Err() error {
	if len(bld.accumErrs) == 0 {
		return nil
	}
	return errors.Join(bld.accumErrs...)
}

// ClearErrors discards accumulated shape errors. Useful for reusing a Builder
// across independently scoped compositions.
func (bld *Builder) ClearErrors() {
	bld.accumErrs = bld.accumErrs[:0]
}

func (bld *Builder) shapeErrorf(msg string, args ...any) {
	if !bld.NoDimensionPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	bld.accumErrs = append(bld.accumErrs, fmt.Errorf(msg, args...))
}

func minf(a, b float32) float32 {
	return math32.Min(a, b)
}

func maxf(a, b float32) float32 {
	return math32.Max(a, b)
}

func absf(a float32) float32 {
	return math32.Abs(a)
}

func signf(a float32) float32 {
	if a == 0 {
		return 0
	}
	return math32.Copysign(1, a)
}

// unitguard returns v normalized. Degenerate vectors are scaled
// as if their length were 1 so callers never see NaN components.
func unitguard(v ms2.Vec) ms2.Vec {
	n := ms2.Norm(v)
	if n < epstol {
		n = 1
	}
	return ms2.Scale(1/n, v)
}

func cross3(a, b ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func dot3(a, b ms3.Vec) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}
