package broadphase2d

import "testing"

func TestStackAllocatorLIFO(t *testing.T) {
	s := NewStackAllocator(DefaultConfig())

	a := s.Allocate(32)
	b := s.Allocate(64)

	if s.GetMaxAllocation() != 96 {
		t.Fatalf("GetMaxAllocation() = %d, want 96", s.GetMaxAllocation())
	}

	s.Free(b)
	s.Free(a)

	if s.allocation != 0 {
		t.Fatalf("allocation = %d, want 0 after draining", s.allocation)
	}
	if s.GetMaxAllocation() != 96 {
		t.Fatal("peak allocation must not decrease after freeing")
	}
}

func TestStackAllocatorFreeOutOfOrderPanics(t *testing.T) {
	s := NewStackAllocator(DefaultConfig())
	a := s.Allocate(16)
	_ = s.Allocate(16)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic freeing out of LIFO order")
		}
	}()
	s.Free(a)
}

func TestStackAllocatorOverflowsToHeap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StackArenaSize = 16
	s := NewStackAllocator(cfg)

	p := s.Allocate(1024)
	if len(p) != 1024 {
		t.Fatalf("len(p) = %d, want 1024", len(p))
	}
	s.Free(p) // must not panic despite the overflow
}

func TestStackAllocatorExceedsMaxEntries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxStackEntries = 1
	s := NewStackAllocator(cfg)

	s.Allocate(8)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic exceeding max stack entries")
		}
	}()
	s.Allocate(8)
}
