package broadphase2d

import "testing"

func TestVec2Normalize(t *testing.T) {
	v, length := Vec2{3, 4}.Normalize()
	if length != 5 {
		t.Fatalf("length = %v, want 5", length)
	}
	if v.X != 0.6 || v.Y != 0.8 {
		t.Fatalf("normalized = %+v, want {0.6 0.8}", v)
	}
}

func TestVec2NormalizeZero(t *testing.T) {
	v, length := Vec2{0, 0}.Normalize()
	if length != 0 {
		t.Fatalf("length = %v, want 0", length)
	}
	if v != (Vec2{0, 0}) {
		t.Fatalf("normalized = %+v, want zero vector unchanged", v)
	}
}

func TestAABBCombine(t *testing.T) {
	a := AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{1, 1}}
	b := AABB{LowerBound: Vec2{-1, 2}, UpperBound: Vec2{3, 3}}

	c := Combine(a, b)
	want := AABB{LowerBound: Vec2{-1, 0}, UpperBound: Vec2{3, 3}}
	if c != want {
		t.Fatalf("Combine = %+v, want %+v", c, want)
	}
}

func TestAABBContains(t *testing.T) {
	outer := AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{10, 10}}
	inner := AABB{LowerBound: Vec2{1, 1}, UpperBound: Vec2{9, 9}}
	if !outer.Contains(inner) {
		t.Fatal("outer should contain inner")
	}
	if inner.Contains(outer) {
		t.Fatal("inner should not contain outer")
	}
}

func TestAABBPerimeter(t *testing.T) {
	bb := AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{2, 3}}
	if got := bb.Perimeter(); got != 10 {
		t.Fatalf("Perimeter = %v, want 10", got)
	}
}

func TestOverlaps(t *testing.T) {
	a := AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{2, 2}}
	b := AABB{LowerBound: Vec2{1, 1}, UpperBound: Vec2{3, 3}}
	c := AABB{LowerBound: Vec2{5, 5}, UpperBound: Vec2{6, 6}}

	if !Overlaps(a, b) {
		t.Fatal("a and b should overlap")
	}
	if Overlaps(a, c) {
		t.Fatal("a and c should not overlap")
	}
}

func TestAABBIsValid(t *testing.T) {
	valid := AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{1, 1}}
	if !valid.IsValid() {
		t.Fatal("expected valid AABB to be valid")
	}

	inverted := AABB{LowerBound: Vec2{1, 1}, UpperBound: Vec2{0, 0}}
	if inverted.IsValid() {
		t.Fatal("expected inverted AABB to be invalid")
	}
}
