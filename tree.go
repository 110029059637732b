package broadphase2d

import (
	"fmt"
	"math"
	"strings"
)

// NullNode is the sentinel index meaning "no node": used for child, parent
// and free-list links alike.
const NullNode int32 = -1

// QueryCallback is invoked once per leaf whose fat AABB overlaps a Query
// region. Returning false aborts the traversal early.
type QueryCallback func(proxyID int32) bool

// RayCastCallback is invoked once per leaf candidate during a RayCast. Its
// return value clips the ray for subsequent nodes: 0 aborts the cast,
// negative ignores this proxy without clipping, and a positive value in
// (0, maxFraction] becomes the new maxFraction.
type RayCastCallback func(input RayCastInput, proxyID int32) float64

// TreeNode is one arena slot: either a live leaf/internal node, or a free
// slot linked into the arena's free list. Next and Parent occupy the same
// logical role depending on whether the slot is free (Height == -1, in
// which case Next chains to the next free slot) or live.
type TreeNode struct {
	AABB     AABB
	UserData any

	Parent int32 // live node: index of the parent, or NullNode for the root
	Next   int32 // free slot: index of the next free slot, or NullNode

	Child1, Child2 int32 // NullNode, NullNode for leaves

	// Height is 0 for leaves, -1 for free slots, 1+max(child heights)
	// otherwise.
	Height int32

	// Moved is true iff this leaf was created or moved since the last
	// UpdatePairs cleared it, and so still needs pair generation.
	Moved bool
}

// IsLeaf reports whether node is a leaf (both children are NullNode, which
// always hold together by construction).
func (n TreeNode) IsLeaf() bool { return n.Child1 == NullNode }

// DynamicTree is an arena-indexed, AVL-like bounding volume hierarchy over
// fattened AABBs. Nodes are identified by their arena index rather than by
// pointer so the arena can grow (by doubling, with a memcpy-equivalent
// append) without invalidating any proxy id a caller is holding.
type DynamicTree struct {
	cfg Config

	root int32

	nodes        []TreeNode
	nodeCount    int32
	nodeCapacity int32

	freeList int32

	insertionCount int64
}

// NewDynamicTree creates an empty tree using cfg's tunables (fattening
// extension, multiplier, initial arena capacity).
func NewDynamicTree(cfg Config) *DynamicTree {
	capacity := int32(cfg.InitialTreeCapacity)
	if capacity <= 0 {
		capacity = 16
	}

	t := &DynamicTree{
		cfg:          cfg,
		root:         NullNode,
		nodeCapacity: capacity,
		nodes:        make([]TreeNode, capacity),
	}
	t.threadFreeList(0, capacity)
	t.freeList = 0
	return t
}

// threadFreeList links nodes[from:to) into a free chain terminated by
// NullNode, marking each slot's height -1.
func (t *DynamicTree) threadFreeList(from, to int32) {
	for i := from; i < to-1; i++ {
		t.nodes[i].Next = i + 1
		t.nodes[i].Height = -1
	}
	t.nodes[to-1].Next = NullNode
	t.nodes[to-1].Height = -1
}

// GetUserData returns the opaque handle stored at proxyID.
func (t *DynamicTree) GetUserData(proxyID int32) any {
	assertf(0 <= proxyID && proxyID < t.nodeCapacity, "DynamicTree: proxy id %d out of range", proxyID)
	return t.nodes[proxyID].UserData
}

// GetFatAABB returns the stored (fattened) AABB at proxyID.
func (t *DynamicTree) GetFatAABB(proxyID int32) AABB {
	assertf(0 <= proxyID && proxyID < t.nodeCapacity, "DynamicTree: proxy id %d out of range", proxyID)
	return t.nodes[proxyID].AABB
}

// WasMoved reports whether proxyID was created or moved since its Moved
// flag was last cleared.
func (t *DynamicTree) WasMoved(proxyID int32) bool {
	assertf(0 <= proxyID && proxyID < t.nodeCapacity, "DynamicTree: proxy id %d out of range", proxyID)
	return t.nodes[proxyID].Moved
}

// ClearMoved resets proxyID's Moved flag.
func (t *DynamicTree) ClearMoved(proxyID int32) {
	assertf(0 <= proxyID && proxyID < t.nodeCapacity, "DynamicTree: proxy id %d out of range", proxyID)
	t.nodes[proxyID].Moved = false
}

// allocateNode pops a slot from the free list, growing the arena by
// doubling if the free list is exhausted.
func (t *DynamicTree) allocateNode() int32 {
	if t.freeList == NullNode {
		assertf(t.nodeCount == t.nodeCapacity, "DynamicTree: free list empty but arena not full")

		oldCapacity := t.nodeCapacity
		t.nodeCapacity *= 2
		t.nodes = append(t.nodes, make([]TreeNode, oldCapacity)...)
		t.threadFreeList(oldCapacity, t.nodeCapacity)
		t.freeList = oldCapacity
	}

	id := t.freeList
	t.freeList = t.nodes[id].Next
	t.nodes[id] = TreeNode{
		Parent: NullNode,
		Child1: NullNode,
		Child2: NullNode,
		Height: 0,
	}
	t.nodeCount++
	return id
}

// freeNode pushes id back onto the free list.
func (t *DynamicTree) freeNode(id int32) {
	assertf(0 <= id && id < t.nodeCapacity, "DynamicTree: free id %d out of range", id)
	assertf(t.nodeCount > 0, "DynamicTree: free on empty tree")
	t.nodes[id].Next = t.freeList
	t.nodes[id].Height = -1
	t.freeList = id
	t.nodeCount--
}

func (t *DynamicTree) fatten(aabb AABB) AABB {
	r := Vec2{t.cfg.AABBExtension, t.cfg.AABBExtension}
	return AABB{
		LowerBound: aabb.LowerBound.Sub(r),
		UpperBound: aabb.UpperBound.Add(r),
	}
}

// CreateProxy inserts aabb as a new leaf (fattened by cfg.AABBExtension) and
// returns its proxy id. The leaf is marked Moved so the next UpdatePairs
// reports it against anything it now overlaps.
func (t *DynamicTree) CreateProxy(aabb AABB, userData any) int32 {
	id := t.allocateNode()

	t.nodes[id].AABB = t.fatten(aabb)
	t.nodes[id].UserData = userData
	t.nodes[id].Height = 0
	t.nodes[id].Moved = true

	t.insertLeaf(id)
	return id
}

// DestroyProxy removes proxyID's leaf from the tree and returns its slot to
// the free list. proxyID must refer to a leaf.
func (t *DynamicTree) DestroyProxy(proxyID int32) {
	assertf(0 <= proxyID && proxyID < t.nodeCapacity, "DynamicTree: proxy id %d out of range", proxyID)
	assertf(t.nodes[proxyID].IsLeaf(), "DynamicTree.DestroyProxy: proxy %d is not a leaf", proxyID)

	t.removeLeaf(proxyID)
	t.freeNode(proxyID)
}

// MoveProxy recomputes proxyID's fat AABB for aabb and displacement. It
// returns false (leaving the tree untouched) when the existing fat AABB
// already contains aabb and isn't grossly oversized; otherwise it removes
// and reinserts the leaf with the new fat AABB and marks it Moved, returning
// true.
func (t *DynamicTree) MoveProxy(proxyID int32, aabb AABB, displacement Vec2) bool {
	assertf(0 <= proxyID && proxyID < t.nodeCapacity, "DynamicTree: proxy id %d out of range", proxyID)
	assertf(t.nodes[proxyID].IsLeaf(), "DynamicTree.MoveProxy: proxy %d is not a leaf", proxyID)

	fat := t.fatten(aabb)

	d := displacement.Scale(t.cfg.AABBMultiplier)
	if d.X < 0 {
		fat.LowerBound.X += d.X
	} else {
		fat.UpperBound.X += d.X
	}
	if d.Y < 0 {
		fat.LowerBound.Y += d.Y
	} else {
		fat.UpperBound.Y += d.Y
	}

	treeAABB := t.nodes[proxyID].AABB
	if treeAABB.Contains(aabb) {
		// The stored fat AABB still covers the object, but it might be
		// grossly oversized (the object moved fast and then came to rest).
		// Only skip the update if a hugely-inflated version of the new fat
		// AABB would still contain the old one.
		r := Vec2{t.cfg.AABBExtension, t.cfg.AABBExtension}.Scale(t.cfg.HugeAABBFactor)
		huge := AABB{
			LowerBound: fat.LowerBound.Sub(r),
			UpperBound: fat.UpperBound.Add(r),
		}
		if huge.Contains(treeAABB) {
			return false
		}
	}

	t.removeLeaf(proxyID)
	t.nodes[proxyID].AABB = fat
	t.insertLeaf(proxyID)
	t.nodes[proxyID].Moved = true

	return true
}

// insertLeaf walks down from the root choosing, at each internal node, the
// child whose subtree would grow least in perimeter by absorbing leaf (the
// 2D stand-in for the surface area heuristic), splices in a fresh parent
// above the chosen sibling, then rebalances every ancestor on the way back
// up to the root.
func (t *DynamicTree) insertLeaf(leaf int32) {
	t.insertionCount++

	if t.root == NullNode {
		t.root = leaf
		t.nodes[t.root].Parent = NullNode
		return
	}

	leafAABB := t.nodes[leaf].AABB
	index := t.root
	for !t.nodes[index].IsLeaf() {
		child1 := t.nodes[index].Child1
		child2 := t.nodes[index].Child2

		area := t.nodes[index].AABB.Perimeter()

		combined := Combine(t.nodes[index].AABB, leafAABB)
		combinedArea := combined.Perimeter()

		cost := 2.0 * combinedArea
		inheritance := 2.0 * (combinedArea - area)

		costOf := func(child int32) float64 {
			merged := Combine(leafAABB, t.nodes[child].AABB)
			if t.nodes[child].IsLeaf() {
				return merged.Perimeter() + inheritance
			}
			return (merged.Perimeter() - t.nodes[child].AABB.Perimeter()) + inheritance
		}

		cost1 := costOf(child1)
		cost2 := costOf(child2)

		if cost < cost1 && cost < cost2 {
			break
		}

		if cost1 < cost2 {
			index = child1
		} else {
			index = child2
		}
	}

	sibling := index
	oldParent := t.nodes[sibling].Parent
	newParent := t.allocateNode()

	t.nodes[newParent].Parent = oldParent
	t.nodes[newParent].AABB = Combine(leafAABB, t.nodes[sibling].AABB)
	t.nodes[newParent].Height = t.nodes[sibling].Height + 1

	if oldParent != NullNode {
		if t.nodes[oldParent].Child1 == sibling {
			t.nodes[oldParent].Child1 = newParent
		} else {
			t.nodes[oldParent].Child2 = newParent
		}
	} else {
		t.root = newParent
	}

	t.nodes[newParent].Child1 = sibling
	t.nodes[newParent].Child2 = leaf
	t.nodes[sibling].Parent = newParent
	t.nodes[leaf].Parent = newParent

	// Walk back up fixing heights and AABBs, rebalancing each ancestor.
	index = t.nodes[leaf].Parent
	for index != NullNode {
		index = t.balance(index)

		child1 := t.nodes[index].Child1
		child2 := t.nodes[index].Child2
		assertf(child1 != NullNode && child2 != NullNode, "DynamicTree: internal node %d missing a child after insert", index)

		t.nodes[index].Height = 1 + maxOf(t.nodes[child1].Height, t.nodes[child2].Height)
		t.nodes[index].AABB = Combine(t.nodes[child1].AABB, t.nodes[child2].AABB)

		index = t.nodes[index].Parent
	}
}

// removeLeaf detaches leaf from the tree, collapsing its parent and
// reconnecting its sibling to its grandparent, then rebalances every
// ancestor from the grandparent up to the root.
func (t *DynamicTree) removeLeaf(leaf int32) {
	if leaf == t.root {
		t.root = NullNode
		return
	}

	parent := t.nodes[leaf].Parent
	grandParent := t.nodes[parent].Parent

	var sibling int32
	if t.nodes[parent].Child1 == leaf {
		sibling = t.nodes[parent].Child2
	} else {
		sibling = t.nodes[parent].Child1
	}

	if grandParent != NullNode {
		if t.nodes[grandParent].Child1 == parent {
			t.nodes[grandParent].Child1 = sibling
		} else {
			t.nodes[grandParent].Child2 = sibling
		}
		t.nodes[sibling].Parent = grandParent
		t.freeNode(parent)

		index := grandParent
		for index != NullNode {
			index = t.balance(index)

			child1 := t.nodes[index].Child1
			child2 := t.nodes[index].Child2
			t.nodes[index].AABB = Combine(t.nodes[child1].AABB, t.nodes[child2].AABB)
			t.nodes[index].Height = 1 + maxOf(t.nodes[child1].Height, t.nodes[child2].Height)

			index = t.nodes[index].Parent
		}
	} else {
		t.root = sibling
		t.nodes[sibling].Parent = NullNode
		t.freeNode(parent)
	}
}

// balance performs a single AVL-style rotation at iA if its two children's
// heights differ by more than one, returning the index of whatever node now
// occupies iA's old position (iA itself if no rotation was needed).
func (t *DynamicTree) balance(iA int32) int32 {
	assertf(iA != NullNode, "DynamicTree.balance: called with NullNode")

	A := &t.nodes[iA]
	if A.IsLeaf() || A.Height < 2 {
		return iA
	}

	iB := A.Child1
	iC := A.Child2
	B := &t.nodes[iB]
	C := &t.nodes[iC]

	balanceFactor := C.Height - B.Height

	if balanceFactor > 1 {
		return t.rotate(iA, iB, iC)
	}
	if balanceFactor < -1 {
		return t.rotate(iA, iC, iB)
	}
	return iA
}

// rotate hoists iHeavy (the taller child) above iA, demoting iA to be
// iHeavy's child alongside whichever of iHeavy's own children is taller;
// the shorter one moves down to become iA's second child.
// Called as rotate(iA, iLight, iHeavy); iLight stays as iA's remaining
// child no matter which side (Child1/Child2) originally held it, since both
// balance() call sites route through this single rotation.
func (t *DynamicTree) rotate(iA, iLight, iHeavy int32) int32 {
	A := &t.nodes[iA]
	heavy := &t.nodes[iHeavy]

	iF := heavy.Child1
	iG := heavy.Child2
	F := &t.nodes[iF]
	G := &t.nodes[iG]

	heavy.Child1 = iA
	heavy.Parent = A.Parent
	A.Parent = iHeavy

	if heavy.Parent != NullNode {
		if t.nodes[heavy.Parent].Child1 == iA {
			t.nodes[heavy.Parent].Child1 = iHeavy
		} else {
			assertf(t.nodes[heavy.Parent].Child2 == iA, "DynamicTree.rotate: parent/child mismatch")
			t.nodes[heavy.Parent].Child2 = iHeavy
		}
	} else {
		t.root = iHeavy
	}

	light := t.nodes[iLight]

	if F.Height > G.Height {
		heavy.Child2 = iF
		A.Child2 = iG
		t.nodes[iG].Parent = iA
		A.AABB = Combine(light.AABB, G.AABB)
		heavy.AABB = Combine(A.AABB, F.AABB)
		A.Height = 1 + maxOf(light.Height, G.Height)
		heavy.Height = 1 + maxOf(A.Height, F.Height)
	} else {
		heavy.Child2 = iG
		A.Child2 = iF
		t.nodes[iF].Parent = iA
		A.AABB = Combine(light.AABB, F.AABB)
		heavy.AABB = Combine(A.AABB, G.AABB)
		A.Height = 1 + maxOf(light.Height, F.Height)
		heavy.Height = 1 + maxOf(A.Height, G.Height)
	}

	A.Child1 = iLight

	return iHeavy
}

// GetHeight returns the root's height, 0 for an empty tree.
func (t *DynamicTree) GetHeight() int32 {
	if t.root == NullNode {
		return 0
	}
	return t.nodes[t.root].Height
}

// GetAreaRatio returns the ratio of the sum of every live node's perimeter
// to the root's perimeter, a cheap proxy for how "tight" the tree is.
func (t *DynamicTree) GetAreaRatio() float64 {
	if t.root == NullNode {
		return 0
	}
	rootArea := t.nodes[t.root].AABB.Perimeter()

	total := 0.0
	for i := int32(0); i < t.nodeCapacity; i++ {
		if t.nodes[i].Height < 0 {
			continue
		}
		total += t.nodes[i].AABB.Perimeter()
	}
	return total / rootArea
}

// ComputeHeight recomputes the height of the subtree rooted at nodeID from
// scratch, independent of the incrementally-maintained Height field. Used
// to validate that the two agree.
func (t *DynamicTree) ComputeHeight(nodeID int32) int32 {
	assertf(0 <= nodeID && nodeID < t.nodeCapacity, "DynamicTree: node id %d out of range", nodeID)
	node := t.nodes[nodeID]
	if node.IsLeaf() {
		return 0
	}
	h1 := t.ComputeHeight(node.Child1)
	h2 := t.ComputeHeight(node.Child2)
	return 1 + maxOf(h1, h2)
}

// ComputeTotalHeight recomputes the whole tree's height from scratch.
func (t *DynamicTree) ComputeTotalHeight() int32 {
	if t.root == NullNode {
		return 0
	}
	return t.ComputeHeight(t.root)
}

// GetMaxBalance returns the largest per-node child-height imbalance found
// anywhere in the tree, near zero for a well-balanced tree under uniform
// random workloads.
func (t *DynamicTree) GetMaxBalance() int32 {
	var maxBalance int32
	for i := int32(0); i < t.nodeCapacity; i++ {
		node := t.nodes[i]
		if node.Height <= 1 {
			continue
		}
		balance := absOf(t.nodes[node.Child2].Height - t.nodes[node.Child1].Height)
		maxBalance = maxOf(maxBalance, balance)
	}
	return maxBalance
}

// Rebuild discards every internal node and rebuilds the tree bottom-up from
// the current leaf set by greedily pairing the two subtrees whose union has
// the smallest perimeter at each step. It is not on the UpdatePairs hot
// path; an embedder calls it between steps as a maintenance operation
// after a burst of destroys has left the tree poorly balanced.
func (t *DynamicTree) Rebuild() {
	leaves := make([]int32, 0, t.nodeCount)

	for i := int32(0); i < t.nodeCapacity; i++ {
		if t.nodes[i].Height < 0 {
			continue
		}
		if t.nodes[i].IsLeaf() {
			t.nodes[i].Parent = NullNode
			leaves = append(leaves, i)
		} else {
			t.freeNode(i)
		}
	}

	if len(leaves) == 0 {
		t.root = NullNode
		return
	}

	for len(leaves) > 1 {
		minCost := math.MaxFloat64
		iMin, jMin := -1, -1

		for i := 0; i < len(leaves); i++ {
			aabbI := t.nodes[leaves[i]].AABB
			for j := i + 1; j < len(leaves); j++ {
				cost := Combine(aabbI, t.nodes[leaves[j]].AABB).Perimeter()
				if cost < minCost {
					minCost, iMin, jMin = cost, i, j
				}
			}
		}

		index1, index2 := leaves[iMin], leaves[jMin]
		child1, child2 := &t.nodes[index1], &t.nodes[index2]

		parentID := t.allocateNode()
		parent := &t.nodes[parentID]
		parent.Child1 = index1
		parent.Child2 = index2
		parent.Height = 1 + maxOf(child1.Height, child2.Height)
		parent.AABB = Combine(child1.AABB, child2.AABB)
		parent.Parent = NullNode

		child1.Parent = parentID
		child2.Parent = parentID

		leaves[jMin] = leaves[len(leaves)-1]
		leaves[iMin] = parentID
		leaves = leaves[:len(leaves)-1]
	}

	t.root = leaves[0]
}

// ShiftOrigin subtracts newOrigin from every node's AABB, including free
// slots, harmless there and simpler than special-casing them.
func (t *DynamicTree) ShiftOrigin(newOrigin Vec2) {
	for i := range t.nodes {
		t.nodes[i].AABB.LowerBound = t.nodes[i].AABB.LowerBound.Sub(newOrigin)
		t.nodes[i].AABB.UpperBound = t.nodes[i].AABB.UpperBound.Sub(newOrigin)
	}
}

// Query performs a pre-order traversal from the root, invoking callback
// once per leaf whose fat AABB overlaps aabb. Returning false from callback
// aborts the traversal.
func (t *DynamicTree) Query(callback QueryCallback, aabb AABB) {
	stack := newGrowableStack[int32]()
	stack.Push(t.root)

	for stack.Len() > 0 {
		id := stack.Pop()
		if id == NullNode {
			continue
		}

		node := &t.nodes[id]
		if !Overlaps(node.AABB, aabb) {
			continue
		}

		if node.IsLeaf() {
			if !callback(id) {
				return
			}
		} else {
			stack.Push(node.Child1)
			stack.Push(node.Child2)
		}
	}
}

// RayCast casts the segment in input against the tree, invoking callback
// once per leaf candidate whose AABB survives the segment-AABB and
// separating-axis rejection tests. callback's return value clips the ray
// for subsequent nodes, per RayCastCallback's contract.
func (t *DynamicTree) RayCast(callback RayCastCallback, input RayCastInput) {
	p1 := input.P1
	p2 := input.P2
	r := p2.Sub(p1)
	assertf(r.LengthSquared() > 0, "DynamicTree.RayCast: zero-length ray")
	r, _ = r.Normalize()

	v := r.Perp()
	absV := v.Abs()

	maxFraction := input.MaxFraction

	segmentAABB := rayCastAABB(p1, p2, maxFraction)

	stack := newGrowableStack[int32]()
	stack.Push(t.root)

	for stack.Len() > 0 {
		id := stack.Pop()
		if id == NullNode {
			continue
		}

		node := &t.nodes[id]
		if !Overlaps(node.AABB, segmentAABB) {
			continue
		}

		c := node.AABB.Center()
		h := node.AABB.Extents()
		separation := absF(v.Dot(p1.Sub(c))) - absV.Dot(h)
		if separation > 0 {
			continue
		}

		if node.IsLeaf() {
			sub := RayCastInput{P1: p1, P2: p2, MaxFraction: maxFraction}
			value := callback(sub, id)

			if value == 0 {
				return
			}
			if value > 0 {
				maxFraction = value
				segmentAABB = rayCastAABB(p1, p2, maxFraction)
			}
		} else {
			stack.Push(node.Child1)
			stack.Push(node.Child2)
		}
	}
}

func rayCastAABB(p1, p2 Vec2, maxFraction float64) AABB {
	t := p1.Add(p2.Sub(p1).Scale(maxFraction))
	return AABB{
		LowerBound: minVec2(p1, t),
		UpperBound: maxVec2(p1, t),
	}
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// validateStructure panics (in Debug mode) if any parent/child pointer in
// the subtree rooted at index is inconsistent. Exercised by tests, not
// called on any hot path.
func (t *DynamicTree) validateStructure(index int32) {
	if index == NullNode {
		return
	}
	if index == t.root {
		assertf(t.nodes[index].Parent == NullNode, "DynamicTree: root has a parent")
	}

	node := t.nodes[index]
	if node.IsLeaf() {
		assertf(node.Height == 0, "DynamicTree: leaf %d has nonzero height", index)
		return
	}

	assertf(t.nodes[node.Child1].Parent == index, "DynamicTree: child1 of %d has wrong parent", index)
	assertf(t.nodes[node.Child2].Parent == index, "DynamicTree: child2 of %d has wrong parent", index)

	t.validateStructure(node.Child1)
	t.validateStructure(node.Child2)
}

// validateMetrics panics (in Debug mode) if any node's cached height or AABB
// disagrees with what its children actually imply.
func (t *DynamicTree) validateMetrics(index int32) {
	if index == NullNode {
		return
	}

	node := t.nodes[index]
	if node.IsLeaf() {
		assertf(node.Height == 0, "DynamicTree: leaf %d has nonzero height", index)
		return
	}

	h1 := t.nodes[node.Child1].Height
	h2 := t.nodes[node.Child2].Height
	height := 1 + maxOf(h1, h2)
	assertf(node.Height == height, "DynamicTree: node %d height %d, want %d", index, node.Height, height)

	combined := Combine(t.nodes[node.Child1].AABB, t.nodes[node.Child2].AABB)
	assertf(combined.LowerBound == node.AABB.LowerBound && combined.UpperBound == node.AABB.UpperBound,
		"DynamicTree: node %d AABB does not equal union of children", index)

	t.validateMetrics(node.Child1)
	t.validateMetrics(node.Child2)
}

// Validate runs every structural and metric check from the root. Intended
// for tests and debug builds, not the hot path.
func (t *DynamicTree) Validate() {
	t.validateStructure(t.root)
	t.validateMetrics(t.root)

	free := int32(0)
	for i := t.freeList; i != NullNode; i = t.nodes[i].Next {
		free++
	}
	assertf(free+t.nodeCount == t.nodeCapacity, "DynamicTree: free(%d)+live(%d) != capacity(%d)", free, t.nodeCount, t.nodeCapacity)
}

// DebugDump renders every live node's shape and bounds, sorted by index, for
// golden-text comparisons in tests.
func (t *DynamicTree) DebugDump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "root=%d nodeCount=%d nodeCapacity=%d\n", t.root, t.nodeCount, t.nodeCapacity)
	for i := int32(0); i < t.nodeCapacity; i++ {
		n := t.nodes[i]
		if n.Height < 0 {
			continue
		}
		kind := "internal"
		if n.IsLeaf() {
			kind = "leaf"
		}
		fmt.Fprintf(&b, "node[%d] %s height=%d parent=%d aabb=(%.4f,%.4f)-(%.4f,%.4f)\n",
			i, kind, n.Height, n.Parent,
			n.AABB.LowerBound.X, n.AABB.LowerBound.Y, n.AABB.UpperBound.X, n.AABB.UpperBound.Y)
	}
	return b.String()
}
