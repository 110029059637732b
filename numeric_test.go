package broadphase2d

import "testing"

func TestMinMaxOf(t *testing.T) {
	if minOf(3, 5) != 3 {
		t.Fatal("minOf(3,5) != 3")
	}
	if maxOf(3, 5) != 5 {
		t.Fatal("maxOf(3,5) != 5")
	}
	if minOf(2.5, -1.0) != -1.0 {
		t.Fatal("minOf(2.5,-1.0) != -1.0")
	}
}

func TestAbsOf(t *testing.T) {
	if absOf(-4) != 4 {
		t.Fatal("absOf(-4) != 4")
	}
	if absOf(4) != 4 {
		t.Fatal("absOf(4) != 4")
	}
	if absOf(-1.5) != 1.5 {
		t.Fatal("absOf(-1.5) != 1.5")
	}
}
