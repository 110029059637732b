package broadphase2d

import "reflect"

// stackEntry records one outstanding allocation: where it came from (the
// bump arena or the heap, if the arena overflowed) and how big it was, so
// Free can route to the right place without the caller having to remember.
type stackEntry struct {
	data         []byte
	usedOverflow bool
}

// StackAllocator is a fast, strictly-LIFO scratch allocator for per-step
// transient memory. Allocations must be freed in exactly the reverse order
// they were made; mispairing is a precondition violation.
//
// Allocations that don't fit in the remaining arena overflow to the Go heap
// transparently; Free detects this via the entry's flag.
type StackAllocator struct {
	cfg Config

	data  []byte
	index int

	entries []stackEntry

	allocation    int
	maxAllocation int
}

// NewStackAllocator creates a scratch allocator with cfg's arena size and
// entry-count limit.
func NewStackAllocator(cfg Config) *StackAllocator {
	return &StackAllocator{
		cfg:     cfg,
		data:    make([]byte, cfg.StackArenaSize),
		entries: make([]stackEntry, 0, cfg.MaxStackEntries),
	}
}

// Allocate pushes a new entry of size bytes and returns it. Exceeding the
// entry-count limit is fatal.
func (s *StackAllocator) Allocate(size int) []byte {
	if size == 0 {
		return nil
	}

	assertf(len(s.entries) < s.cfg.MaxStackEntries,
		"StackAllocator.Allocate: exceeded max stack entries (%d)", s.cfg.MaxStackEntries)

	var entry stackEntry
	if s.index+size > len(s.data) {
		entry.data = make([]byte, size)
		entry.usedOverflow = true
	} else {
		entry.data = s.data[s.index : s.index+size : s.index+size]
		s.index += size
	}

	s.entries = append(s.entries, entry)
	s.allocation += size
	s.maxAllocation = maxOf(s.maxAllocation, s.allocation)

	return entry.data
}

// Free pops the top entry. p must be exactly what the matching Allocate
// call returned; passing anything else is a strict-LIFO violation.
func (s *StackAllocator) Free(p []byte) {
	if len(p) == 0 {
		return
	}

	assertf(len(s.entries) > 0, "StackAllocator.Free: stack is empty")

	top := s.entries[len(s.entries)-1]
	assertf(samePointer(p, top.data), "StackAllocator.Free: p is not the top entry (LIFO violation)")

	if !top.usedOverflow {
		s.index -= len(top.data)
	}

	s.allocation -= len(top.data)
	s.entries = s.entries[:len(s.entries)-1]
}

// GetMaxAllocation returns the historical peak allocation, monotonically
// non-decreasing for the allocator's lifetime.
func (s *StackAllocator) GetMaxAllocation() int {
	return s.maxAllocation
}

// samePointer reports whether a and b are slices over the same backing
// array at the same offset, without resorting to the unsafe package.
func samePointer(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}
