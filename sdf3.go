package sdf

import (
	"math"

	"github.com/soypat/bccsurf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// 3D signed distance utility functions.

// SDF3 is the interface to a 3d signed distance function object.
type SDF3 interface {
	// Evaluate takes a point in 3D space as input and returns
	// the minimum distance of the SDF3 to the point. Positive
	// values are inside, negative outside.
	Evaluate(p r3.Vec) float64
	// Bounds returns the bounding box that completely contains
	// the SDF3.
	Bounds() r3.Box
}

// SDF3Union is an SDF3 whose blending function between children can be
// swapped out for a smoother or sharper alternative.
type SDF3Union interface {
	SDF3
	SetMin(MinFunc)
}

// SDF3Diff is an SDF3 whose subtraction blending function can be swapped out.
type SDF3Diff interface {
	SDF3
	SetMax(MaxFunc)
}

// SDF3Func adapts a plain point-to-distance function and a bounding box into
// an SDF3. This is the shape the level-set extractor's caller usually starts
// from: a pure function with no notion of Union3D/Transform3D wrapping.
type SDF3Func struct {
	Func  func(p r3.Vec) float64
	Bound r3.Box
}

// Evaluate calls the wrapped function.
func (s SDF3Func) Evaluate(p r3.Vec) float64 { return s.Func(p) }

// Bounds returns the wrapped bounding box.
func (s SDF3Func) Bounds() r3.Box { return s.Bound }

// Sphere3D returns an SDF3 for a sphere of the given radius, centered on the origin.
func Sphere3D(radius float64) SDF3 {
	if radius <= 0 {
		panic("radius <= 0")
	}
	d := r3.Vec{X: radius, Y: radius, Z: radius}
	return &sphere3{
		radius: radius,
		bb:     r3.Box{Min: r3.Scale(-1, d), Max: d},
	}
}

type sphere3 struct {
	radius float64
	bb     r3.Box
}

func (s *sphere3) Evaluate(p r3.Vec) float64 { return s.radius - r3.Norm(p) }
func (s *sphere3) Bounds() r3.Box            { return s.bb }

// Box3D returns an SDF3 for an axis-aligned box centered on the origin
// (rounded corners with round > 0).
func Box3D(size r3.Vec, round float64) SDF3 {
	if d3.LTEZero(size) {
		panic("size <= 0")
	}
	if round < 0 {
		panic("round < 0")
	}
	half := r3.Scale(0.5, size)
	return &box3{
		size:  r3.Sub(half, d3.Elem(round)),
		round: round,
		bb:    r3.Box{Min: r3.Scale(-1, half), Max: half},
	}
}

type box3 struct {
	size  r3.Vec
	round float64
	bb    r3.Box
}

func (s *box3) Evaluate(p r3.Vec) float64 {
	return s.round - sdfBox3d(p, s.size)
}
func (s *box3) Bounds() r3.Box { return s.bb }

func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	if d.X > 0 && d.Y > 0 && d.Z > 0 {
		return r3.Norm(d)
	}
	if d.X > 0 && d.Y > 0 {
		return math.Hypot(d.X, d.Y)
	}
	if d.X > 0 && d.Z > 0 {
		return math.Hypot(d.X, d.Z)
	}
	if d.Y > 0 && d.Z > 0 {
		return math.Hypot(d.Y, d.Z)
	}
	if d.X > 0 {
		return d.X
	}
	if d.Y > 0 {
		return d.Y
	}
	if d.Z > 0 {
		return d.Z
	}
	return math.Max(d.X, math.Max(d.Y, d.Z))
}

// Torus3D returns an SDF3 for a torus lying on the XY plane, centered on the
// origin. majorRadius is the distance from the origin to the tube center,
// minorRadius is the tube radius.
func Torus3D(majorRadius, minorRadius float64) SDF3 {
	if majorRadius <= 0 || minorRadius <= 0 {
		panic("radius <= 0")
	}
	d := r3.Vec{X: majorRadius + minorRadius, Y: majorRadius + minorRadius, Z: minorRadius}
	return &torus3{
		major: majorRadius,
		minor: minorRadius,
		bb:    r3.Box{Min: r3.Scale(-1, d), Max: d},
	}
}

type torus3 struct {
	major, minor float64
	bb           r3.Box
}

func (s *torus3) Evaluate(p r3.Vec) float64 {
	q := math.Hypot(p.X, p.Y) - s.major
	return s.minor - math.Hypot(q, p.Z)
}
func (s *torus3) Bounds() r3.Box { return s.bb }

// MinFunc is a minimum function for SDF blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

// union3 is the union of multiple SDF3 objects.
type union3 struct {
	sdf []SDF3
	min MinFunc
	bb  r3.Box
}

// Union3D returns the union of two or more SDF3 objects.
func Union3D(sdf ...SDF3) SDF3Union {
	if len(sdf) < 2 {
		panic("union requires at least 2 sdfs")
	}
	s := union3{sdf: sdf, min: math.Max}
	bb := d3.Box(sdf[0].Bounds())
	for _, x := range sdf[1:] {
		bb = bb.Extend(d3.Box(x.Bounds()))
	}
	s.bb = r3.Box(bb)
	return &s
}

func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.sdf[0].Evaluate(p)
	for _, x := range s.sdf[1:] {
		d = s.min(d, x.Evaluate(p))
	}
	return d
}
func (s *union3) SetMin(min MinFunc) { s.min = min }
func (s *union3) Bounds() r3.Box     { return s.bb }

// diff3 is the difference of two SDF3 objects: s0 - s1.
type diff3 struct {
	s0, s1 SDF3
	max    MaxFunc
	bb     r3.Box
}

// Difference3D returns the difference of two SDF3 objects, s0 - s1.
func Difference3D(s0, s1 SDF3) SDF3Diff {
	if s0 == nil || s1 == nil {
		panic("nil sdf argument")
	}
	return &diff3{s0: s0, s1: s1, max: math.Min, bb: s0.Bounds()}
}

func (s *diff3) Evaluate(p r3.Vec) float64 { return s.max(s.s0.Evaluate(p), -s.s1.Evaluate(p)) }
func (s *diff3) SetMax(max MaxFunc)        { s.max = max }
func (s *diff3) Bounds() r3.Box            { return s.bb }

// intersect3 is the intersection of two SDF3 objects.
type intersect3 struct {
	s0, s1 SDF3
	max    MaxFunc
	bb     r3.Box
}

// Intersect3D returns the intersection of two SDF3 objects.
func Intersect3D(s0, s1 SDF3) SDF3Diff {
	if s0 == nil || s1 == nil {
		panic("nil sdf argument")
	}
	bb0, bb1 := d3.Box(s0.Bounds()), d3.Box(s1.Bounds())
	bb := d3.Box{Min: d3.MaxElem(bb0.Min, bb1.Min), Max: d3.MinElem(bb0.Max, bb1.Max)}
	return &intersect3{s0: s0, s1: s1, max: math.Min, bb: r3.Box(bb)}
}

func (s *intersect3) Evaluate(p r3.Vec) float64 { return s.max(s.s0.Evaluate(p), s.s1.Evaluate(p)) }
func (s *intersect3) SetMax(max MaxFunc)        { s.max = max }
func (s *intersect3) Bounds() r3.Box            { return s.bb }

// transform3 applies a rotation/translation to an SDF3. Distance is preserved.
type transform3 struct {
	sdf SDF3
	inv d3.Transform
	bb  r3.Box
}

// Transform3D applies a rigid transform (rotation + translation) to sdf.
// Distance is preserved because the transform carries no scaling.
func Transform3D(sdf SDF3, t d3.Transform) SDF3 {
	s := &transform3{sdf: sdf, inv: t.Inv()}
	bb := d3.Box{}
	for i, v := range d3.Box(sdf.Bounds()).Vertices() {
		w := t.Transform(v)
		if i == 0 {
			bb = d3.Box{Min: w, Max: w}
		} else {
			bb = bb.Include(w)
		}
	}
	s.bb = r3.Box(bb)
	return s
}

func (s *transform3) Evaluate(p r3.Vec) float64 { return s.sdf.Evaluate(s.inv.Transform(p)) }
func (s *transform3) Bounds() r3.Box            { return s.bb }

// Translate3D returns a transform that translates by v.
func Translate3D(v r3.Vec) d3.Transform {
	return d3.Transform{}.Translate(v)
}

// RotateZ3D returns a transform that rotates by theta radians about the Z axis.
func RotateZ3D(theta float64) d3.Transform {
	half := theta / 2
	q := r3.Rotation{Real: math.Cos(half), Kmag: math.Sin(half)}
	return d3.ComposeTransform(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1}, q)
}

// offset3 grows or shrinks an SDF3 by a fixed distance.
type offset3 struct {
	sdf    SDF3
	offset float64
	bb     r3.Box
}

// Offset3D returns sdf grown outward by offset (or shrunk, if offset is
// negative).
func Offset3D(sdf SDF3, offset float64) SDF3 {
	bb := d3.Box(sdf.Bounds()).Enlarge(d3.Elem(2 * offset))
	return &offset3{sdf: sdf, offset: offset, bb: r3.Box(bb)}
}

func (s *offset3) Evaluate(p r3.Vec) float64 { return s.sdf.Evaluate(p) + s.offset }
func (s *offset3) Bounds() r3.Box            { return s.bb }

// shell3 keeps only a thin shell around an SDF3's surface.
type shell3 struct {
	sdf   SDF3
	delta float64
	bb    r3.Box
}

// Shell3D returns the hollow shell of sdf, thickness wide, centered on its
// surface.
func Shell3D(sdf SDF3, thickness float64) SDF3 {
	if thickness <= 0 {
		panic("thickness <= 0")
	}
	bb := d3.Box(sdf.Bounds()).Enlarge(d3.Elem(thickness))
	return &shell3{sdf: sdf, delta: 0.5 * thickness, bb: r3.Box(bb)}
}

func (s *shell3) Evaluate(p r3.Vec) float64 {
	return s.delta - math.Abs(s.sdf.Evaluate(p))
}
func (s *shell3) Bounds() r3.Box { return s.bb }

// empty3 is an SDF3 with no volume, everywhere "outside".
type empty3 struct{ center r3.Vec }

func (e empty3) Evaluate(r3.Vec) float64 { return -math.MaxFloat64 / 2 }
func (e empty3) Bounds() r3.Box          { return r3.Box{Min: e.center, Max: e.center} }
