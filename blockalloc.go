package broadphase2d

import (
	"fmt"
	"sort"
	"strings"
)

// BlockAllocator is a small-object pool for persistent records with a
// lifetime longer than one physics step (contact data, persisted user
// records, anything an external collaborator keeps around across steps).
// It recognizes a handful of size classes; allocations are rounded up to
// the smallest class that fits and served from that class's free list in
// O(1), falling back to the Go heap above the largest class.
//
// A Go slice is already a fat pointer, so a stack of previously-freed
// slices gives the same O(1) push/pop behavior a pointer-threaded free
// list would, without unsafe.Pointer.
type BlockAllocator struct {
	cfg Config

	// freeLists[i] is a LIFO stack of available blocks for size class i.
	freeLists [][][]byte

	// chunks holds every slab ever carved, keeping their backing arrays
	// alive until Clear.
	chunks [][]byte
}

// NewBlockAllocator creates an allocator using cfg's block-size schedule and
// chunk size. cfg.BlockSizes must already be validated (Config.Validate).
func NewBlockAllocator(cfg Config) *BlockAllocator {
	return &BlockAllocator{
		cfg:       cfg,
		freeLists: make([][][]byte, len(cfg.BlockSizes)),
	}
}

// classFor returns the index of the smallest size class that fits size, or
// -1 if size exceeds the largest recognized class.
func (a *BlockAllocator) classFor(size int) int {
	sizes := a.cfg.BlockSizes
	idx := sort.SearchInts(sizes, size)
	if idx == len(sizes) {
		return -1
	}
	return idx
}

// Allocate returns a zeroed block of at least size bytes, rounded up to its
// size class: the returned slice's length is the class size, not size
// itself (pass the same size back to Free, not len(p)). Sizes larger than
// the largest recognized class pass through to a plain heap allocation of
// exactly size bytes.
func (a *BlockAllocator) Allocate(size int) []byte {
	assertf(size >= 0, "BlockAllocator.Allocate: negative size %d", size)
	if size == 0 {
		return nil
	}

	class := a.classFor(size)
	if class == -1 {
		return make([]byte, size)
	}

	if list := a.freeLists[class]; len(list) > 0 {
		block := list[len(list)-1]
		a.freeLists[class] = list[:len(list)-1]
		for i := range block {
			block[i] = 0
		}
		return block
	}

	a.growChunk(class)
	list := a.freeLists[class]
	block := list[len(list)-1]
	a.freeLists[class] = list[:len(list)-1]
	return block
}

// growChunk carves a fresh chunk into same-size blocks for class and threads
// every one of them onto the free list; Allocate then pops the block it
// hands out.
func (a *BlockAllocator) growChunk(class int) {
	classSize := a.cfg.BlockSizes[class]
	chunk := make([]byte, a.cfg.ChunkSize)
	a.chunks = append(a.chunks, chunk)

	count := len(chunk) / classSize
	assertf(count > 0, "BlockAllocator: chunk size %d smaller than class size %d", a.cfg.ChunkSize, classSize)

	for i := 0; i < count; i++ {
		block := chunk[i*classSize : (i+1)*classSize : (i+1)*classSize]
		a.freeLists[class] = append(a.freeLists[class], block)
	}
}

// Free returns p to its size class's free list. size must be the exact size
// passed to the Allocate call that produced p.
func (a *BlockAllocator) Free(p []byte, size int) {
	if size == 0 {
		return
	}

	class := a.classFor(size)
	if class == -1 {
		// Heap-allocated; let the garbage collector reclaim it.
		return
	}

	assertf(len(p) == a.cfg.BlockSizes[class],
		"BlockAllocator.Free: block length %d does not match class size %d for requested size %d",
		len(p), a.cfg.BlockSizes[class], size)

	a.freeLists[class] = append(a.freeLists[class], p)
}

// Clear releases every chunk and resets every free list. Memory already
// handed out via Allocate and not yet freed becomes the caller's problem
// (use-after-Clear is undefined, same as using a pointer into a freed pool).
func (a *BlockAllocator) Clear() {
	a.chunks = nil
	for i := range a.freeLists {
		a.freeLists[i] = nil
	}
}

// DebugDump renders per-class chunk/free-block counts, used by golden-text
// tests to assert on allocator state after a sequence of operations.
func (a *BlockAllocator) DebugDump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "chunks=%d\n", len(a.chunks))
	for i, size := range a.cfg.BlockSizes {
		fmt.Fprintf(&b, "class[%d] size=%d free=%d\n", i, size, len(a.freeLists[i]))
	}
	return b.String()
}
