package broadphase2d

import "testing"

func TestBlockAllocatorReusesFreedBlock(t *testing.T) {
	a := NewBlockAllocator(DefaultConfig())

	p := a.Allocate(16)
	if len(p) != 16 {
		t.Fatalf("len(p) = %d, want 16", len(p))
	}
	a.Free(p, 16)

	q := a.Allocate(16)
	if &p[0] != &q[0] {
		t.Fatal("expected freed block to be reused")
	}
}

func TestBlockAllocatorOversizedPassesThrough(t *testing.T) {
	a := NewBlockAllocator(DefaultConfig())
	p := a.Allocate(4096)
	if len(p) != 4096 {
		t.Fatalf("len(p) = %d, want 4096", len(p))
	}
	a.Free(p, 4096) // must not panic; oversized blocks are just dropped
}

func TestBlockAllocatorZeroSize(t *testing.T) {
	a := NewBlockAllocator(DefaultConfig())
	if p := a.Allocate(0); p != nil {
		t.Fatalf("Allocate(0) = %v, want nil", p)
	}
}

func TestBlockAllocatorGrowsChunkOnDemand(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = 64 // exactly 4 blocks of the smallest (16-byte) class
	a := NewBlockAllocator(cfg)

	var blocks [][]byte
	for i := 0; i < 5; i++ {
		blocks = append(blocks, a.Allocate(16))
	}
	if len(a.chunks) != 2 {
		t.Fatalf("chunks = %d, want 2 after exhausting the first", len(a.chunks))
	}
}

func TestBlockAllocatorClear(t *testing.T) {
	a := NewBlockAllocator(DefaultConfig())
	p := a.Allocate(16)
	a.Free(p, 16)
	a.Clear()

	if len(a.chunks) != 0 {
		t.Fatalf("chunks = %d, want 0 after Clear", len(a.chunks))
	}
	for _, list := range a.freeLists {
		if len(list) != 0 {
			t.Fatal("expected every free list empty after Clear")
		}
	}
}
