package broadphase2d

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// assertGolden fails t with a unified diff when got != want, the same
// comparison style the reference implementation's own compliance test uses.
func assertGolden(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "Expected",
		ToFile:   "Current",
		Context:  1,
	}
	text, _ := difflib.GetUnifiedDiffString(diff)
	t.Fatalf("golden mismatch:\n%s", text)
}

func TestBlockAllocatorDebugDumpGolden(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSizes = []int{16, 32}
	cfg.ChunkSize = 32
	a := NewBlockAllocator(cfg)

	p := a.Allocate(16)
	a.Allocate(16)
	a.Free(p, 16)

	want := "chunks=1\n" +
		"class[0] size=16 free=1\n" +
		"class[1] size=32 free=0\n"
	assertGolden(t, want, a.DebugDump())
}

func TestDynamicTreeDebugDumpGolden(t *testing.T) {
	tr := NewDynamicTree(DefaultConfig())
	tr.CreateProxy(AABB{LowerBound: Vec2{0, 0}, UpperBound: Vec2{1, 1}}, "solo")

	want := "root=0 nodeCount=1 nodeCapacity=16\n" +
		"node[0] leaf height=0 parent=-1 aabb=(-0.1000,-0.1000)-(1.1000,1.1000)\n"
	assertGolden(t, want, tr.DebugDump())
}
