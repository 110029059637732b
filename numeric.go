package broadphase2d

import "golang.org/x/exp/constraints"

// minOf, maxOf and absOf replace the hand-rolled, untyped MinInt/MaxInt/AbsInt
// helpers that ports of the classic dynamic-tree BVH tend to carry: with
// generics available there's no reason to duplicate them per numeric type.
func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func absOf[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}
