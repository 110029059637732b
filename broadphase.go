package broadphase2d

import (
	"fmt"
	"sort"
	"strings"
)

// Pair identifies two proxies whose fat AABBs overlap, reported by
// UpdatePairs. ProxyIDA is always less than ProxyIDB.
type Pair struct {
	ProxyIDA int32
	ProxyIDB int32
}

// AddPairCallback is invoked once per unique overlapping pair found during
// UpdatePairs, carrying the user data each side's proxy was created with.
type AddPairCallback func(userDataA, userDataB any)

// BroadPhase drives proxy lifecycle on top of a DynamicTree and turns a
// batch of moves into a deduplicated list of newly-overlapping pairs. It
// does not decide whether two shapes should actually collide (filtering,
// layers, sleeping bodies); that judgment belongs to the caller.
type BroadPhase struct {
	cfg  Config
	tree *DynamicTree

	proxyCount int

	// moveBuffer holds the proxy ids touched since the last UpdatePairs.
	// bufferMove never checks for an existing entry, so a proxy touched
	// more than once appears more than once; unbufferMove leaves
	// nullProxy tombstones behind rather than compacting.
	moveBuffer []int32
	moveCount  int

	pairBuffer []Pair
	pairCount  int

	// queryProxyID is set for the duration of each moved proxy's tree Query
	// inside UpdatePairs so the callback can skip a proxy pairing with
	// itself.
	queryProxyID int32
}

const nullProxy int32 = -1

// NewBroadPhase creates an empty broad-phase over a fresh DynamicTree, using
// cfg's tunables for both.
func NewBroadPhase(cfg Config) *BroadPhase {
	capacity := cfg.InitialMoveCapacity
	if capacity <= 0 {
		capacity = 16
	}
	pairCapacity := cfg.InitialPairCapacity
	if pairCapacity <= 0 {
		pairCapacity = 16
	}

	return &BroadPhase{
		cfg:        cfg,
		tree:       NewDynamicTree(cfg),
		moveBuffer: make([]int32, 0, capacity),
		pairBuffer: make([]Pair, 0, pairCapacity),
	}
}

// CreateProxy inserts aabb into the tree and buffers the new proxy for pair
// generation on the next UpdatePairs.
func (bp *BroadPhase) CreateProxy(aabb AABB, userData any) int32 {
	proxyID := bp.tree.CreateProxy(aabb, userData)
	bp.proxyCount++
	bp.bufferMove(proxyID)
	return proxyID
}

// DestroyProxy removes proxyID from the tree and from the move buffer, so a
// destroyed proxy never surfaces in a pair.
func (bp *BroadPhase) DestroyProxy(proxyID int32) {
	bp.unbufferMove(proxyID)
	bp.proxyCount--
	bp.tree.DestroyProxy(proxyID)
}

// MoveProxy updates proxyID's fat AABB for its new position and
// displacement, buffering it for pair regeneration if the tree's stored
// AABB actually changed.
func (bp *BroadPhase) MoveProxy(proxyID int32, aabb AABB, displacement Vec2) {
	changed := bp.tree.MoveProxy(proxyID, aabb, displacement)
	if changed {
		bp.bufferMove(proxyID)
	}
}

// TouchProxy forces proxyID into the move buffer without changing its AABB.
// Used when a proxy's filtering rules change and it needs re-pairing
// against its current neighbors.
func (bp *BroadPhase) TouchProxy(proxyID int32) {
	bp.bufferMove(proxyID)
}

// bufferMove appends proxyID to the move buffer, growing it by doubling.
func (bp *BroadPhase) bufferMove(proxyID int32) {
	if bp.moveCount == len(bp.moveBuffer) {
		if len(bp.moveBuffer) == cap(bp.moveBuffer) {
			grown := make([]int32, len(bp.moveBuffer), maxOf(2*cap(bp.moveBuffer), 1))
			copy(grown, bp.moveBuffer)
			bp.moveBuffer = grown
		}
		bp.moveBuffer = append(bp.moveBuffer, proxyID)
	} else {
		bp.moveBuffer[bp.moveCount] = proxyID
	}
	bp.moveCount++
}

// unbufferMove replaces every occurrence of proxyID already queued with
// nullProxy instead of compacting the slice. UpdatePairs skips tombstones.
func (bp *BroadPhase) unbufferMove(proxyID int32) {
	for i := 0; i < bp.moveCount; i++ {
		if bp.moveBuffer[i] == proxyID {
			bp.moveBuffer[i] = nullProxy
		}
	}
}

// GetUserData returns the opaque handle proxyID was created with.
func (bp *BroadPhase) GetUserData(proxyID int32) any { return bp.tree.GetUserData(proxyID) }

// GetFatAABB returns proxyID's current fattened AABB.
func (bp *BroadPhase) GetFatAABB(proxyID int32) AABB { return bp.tree.GetFatAABB(proxyID) }

// GetProxyCount returns the number of live proxies.
func (bp *BroadPhase) GetProxyCount() int { return bp.proxyCount }

// GetTreeHeight returns the underlying tree's height.
func (bp *BroadPhase) GetTreeHeight() int32 { return bp.tree.GetHeight() }

// GetTreeBalance returns the underlying tree's largest per-node imbalance.
func (bp *BroadPhase) GetTreeBalance() int32 { return bp.tree.GetMaxBalance() }

// GetTreeQuality returns the underlying tree's area ratio.
func (bp *BroadPhase) GetTreeQuality() float64 { return bp.tree.GetAreaRatio() }

// TestOverlap reports whether proxyIDA and proxyIDB's fat AABBs currently
// overlap.
func (bp *BroadPhase) TestOverlap(proxyIDA, proxyIDB int32) bool {
	return Overlaps(bp.tree.GetFatAABB(proxyIDA), bp.tree.GetFatAABB(proxyIDB))
}

// Query forwards to the underlying tree's Query.
func (bp *BroadPhase) Query(callback QueryCallback, aabb AABB) {
	bp.tree.Query(callback, aabb)
}

// RayCast forwards to the underlying tree's RayCast.
func (bp *BroadPhase) RayCast(callback RayCastCallback, input RayCastInput) {
	bp.tree.RayCast(callback, input)
}

// ShiftOrigin forwards to the underlying tree's ShiftOrigin.
func (bp *BroadPhase) ShiftOrigin(newOrigin Vec2) {
	bp.tree.ShiftOrigin(newOrigin)
}

// Rebuild forwards to the underlying tree's Rebuild.
func (bp *BroadPhase) Rebuild() {
	bp.tree.Rebuild()
}

// UpdatePairs queries every moved proxy's fat AABB against the tree,
// reporting each unique overlapping pair to callback exactly once, then
// clears the move buffer and every visited proxy's Moved flag.
func (bp *BroadPhase) UpdatePairs(callback AddPairCallback) {
	bp.pairCount = 0

	for i := 0; i < bp.moveCount; i++ {
		bp.queryProxyID = bp.moveBuffer[i]
		if bp.queryProxyID == nullProxy {
			continue
		}

		fatAABB := bp.tree.GetFatAABB(bp.queryProxyID)
		bp.tree.Query(bp.queryCallback, fatAABB)
	}

	for i := 0; i < bp.moveCount; i++ {
		proxyID := bp.moveBuffer[i]
		if proxyID == nullProxy {
			continue
		}
		bp.tree.ClearMoved(proxyID)
	}

	bp.moveCount = 0

	bp.emitPairs(callback)
}

// queryCallback is DynamicTree.Query's callback during UpdatePairs: it
// records a candidate pair against bp.queryProxyID, applying the
// moved-flag/id-ordering dedup rule before buffering anything.
func (bp *BroadPhase) queryCallback(proxyID int32) bool {
	if proxyID == bp.queryProxyID {
		return true
	}

	if bp.tree.WasMoved(proxyID) && proxyID > bp.queryProxyID {
		// proxyID will run its own query this batch and find
		// queryProxyID then; reporting it now would double the pair.
		return true
	}

	bp.growPairBuffer()

	idA, idB := bp.queryProxyID, proxyID
	if idA > idB {
		idA, idB = idB, idA
	}

	bp.pairBuffer = append(bp.pairBuffer[:bp.pairCount], Pair{ProxyIDA: idA, ProxyIDB: idB})
	bp.pairCount++

	return true
}

// growPairBuffer grows the pair buffer by cfg's growth factor (1.5x by
// default) whenever the next append would exceed its capacity.
func (bp *BroadPhase) growPairBuffer() {
	if bp.pairCount < cap(bp.pairBuffer) {
		return
	}
	newCap := cap(bp.pairBuffer) * bp.cfg.PairGrowthNumerator / bp.cfg.PairGrowthDenominator
	if newCap <= cap(bp.pairBuffer) {
		newCap = cap(bp.pairBuffer) + 1
	}
	grown := make([]Pair, bp.pairCount, newCap)
	copy(grown, bp.pairBuffer[:bp.pairCount])
	bp.pairBuffer = grown
}

// emitPairs sorts the accumulated pair buffer and invokes callback once per
// pair, skipping consecutive duplicates.
func (bp *BroadPhase) emitPairs(callback AddPairCallback) {
	pairs := bp.pairBuffer[:bp.pairCount]

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].ProxyIDA != pairs[j].ProxyIDA {
			return pairs[i].ProxyIDA < pairs[j].ProxyIDA
		}
		return pairs[i].ProxyIDB < pairs[j].ProxyIDB
	})

	for i := 0; i < len(pairs); i++ {
		if i > 0 && pairs[i] == pairs[i-1] {
			continue
		}
		userDataA := bp.tree.GetUserData(pairs[i].ProxyIDA)
		userDataB := bp.tree.GetUserData(pairs[i].ProxyIDB)
		callback(userDataA, userDataB)
	}
}

// DebugDump renders the proxy, move-buffer and pair counts followed by the
// underlying tree's dump, for golden-text tests.
func (bp *BroadPhase) DebugDump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "proxyCount=%d moveCount=%d pairCount=%d\n", bp.proxyCount, bp.moveCount, bp.pairCount)
	b.WriteString(bp.tree.DebugDump())
	return b.String()
}
