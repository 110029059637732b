package broadphase2d

import "math"

// epsilon guards Normalize against dividing by a near-zero length, matching
// the tolerance the reference tree implementation uses for the same guard.
const epsilon = 1.1920929e-7

// Vec2 is a 2D column vector. It carries only the arithmetic the tree and
// broad-phase actually need (fattening, unions, the ray separating-axis
// test). Rotations, matrices and the 3-vector/3x3 family a narrow-phase or
// constraint solver would need belong to those external collaborators, not
// to this module.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Perp returns the vector rotated 90 degrees counter-clockwise, i.e.
// cross(1, v) in the classic 2D cross-with-scalar convention. Used to build
// the ray's separating axis in DynamicTree.RayCast.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) Abs() Vec2 { return Vec2{math.Abs(v.X), math.Abs(v.Y)} }

func (v Vec2) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) LengthSquared() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector in the direction of v, and the original
// length. A near-zero vector normalizes to itself with a reported length of
// zero rather than dividing by (near) zero.
func (v Vec2) Normalize() (Vec2, float64) {
	length := v.Length()
	if length < epsilon {
		return v, 0
	}
	return Vec2{v.X / length, v.Y / length}, length
}

func minVec2(a, b Vec2) Vec2 { return Vec2{minOf(a.X, b.X), minOf(a.Y, b.Y)} }
func maxVec2(a, b Vec2) Vec2 { return Vec2{maxOf(a.X, b.X), maxOf(a.Y, b.Y)} }

// AABB is an axis-aligned bounding box: LowerBound must be component-wise
// less than or equal to UpperBound.
type AABB struct {
	LowerBound Vec2
	UpperBound Vec2
}

// Center returns the AABB's midpoint.
func (bb AABB) Center() Vec2 {
	return bb.LowerBound.Add(bb.UpperBound).Scale(0.5)
}

// Extents returns the AABB's half-widths.
func (bb AABB) Extents() Vec2 {
	return bb.UpperBound.Sub(bb.LowerBound).Scale(0.5)
}

// Perimeter returns the box's perimeter, used throughout the tree as a cheap
// stand-in for surface area (2D's version of the surface area heuristic).
func (bb AABB) Perimeter() float64 {
	wx := bb.UpperBound.X - bb.LowerBound.X
	wy := bb.UpperBound.Y - bb.LowerBound.Y
	return 2.0 * (wx + wy)
}

// Combine returns the union of two AABBs.
func Combine(a, b AABB) AABB {
	return AABB{
		LowerBound: minVec2(a.LowerBound, b.LowerBound),
		UpperBound: maxVec2(a.UpperBound, b.UpperBound),
	}
}

// CombineInto unions o into bb in place.
func (bb *AABB) CombineInto(o AABB) {
	bb.LowerBound = minVec2(bb.LowerBound, o.LowerBound)
	bb.UpperBound = maxVec2(bb.UpperBound, o.UpperBound)
}

// Contains reports whether bb fully contains o.
func (bb AABB) Contains(o AABB) bool {
	return bb.LowerBound.X <= o.LowerBound.X &&
		bb.LowerBound.Y <= o.LowerBound.Y &&
		o.UpperBound.X <= bb.UpperBound.X &&
		o.UpperBound.Y <= bb.UpperBound.Y
}

// IsValid reports whether bb has non-negative extents and finite bounds.
func (bb AABB) IsValid() bool {
	d := bb.UpperBound.Sub(bb.LowerBound)
	if d.X < 0 || d.Y < 0 {
		return false
	}
	return isFinite(bb.LowerBound) && isFinite(bb.UpperBound)
}

func isFinite(v Vec2) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Overlaps is the separating-axis overlap test between two AABBs.
func Overlaps(a, b AABB) bool {
	d1 := b.LowerBound.Sub(a.UpperBound)
	d2 := a.LowerBound.Sub(b.UpperBound)

	if d1.X > 0.0 || d1.Y > 0.0 {
		return false
	}
	if d2.X > 0.0 || d2.Y > 0.0 {
		return false
	}
	return true
}

// RayCastInput carries a segment from P1 to P1 + MaxFraction*(P2-P1).
type RayCastInput struct {
	P1, P2      Vec2
	MaxFraction float64
}

// RayCastOutput reports where along the input segment a hit occurred.
type RayCastOutput struct {
	Normal   Vec2
	Fraction float64
}
