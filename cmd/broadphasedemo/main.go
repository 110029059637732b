// Command broadphasedemo builds a broad phase over a random cluster of
// proxies, moves every proxy for a few steps, and prints the pair count and
// tree health metrics after each step. It exists to exercise the package end to end
// outside of tests, the same role the reference implementation's own
// sample programs play.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/hollowcore/broadphase2d"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML tunables file (optional)")
		count      = flag.Int("proxies", 40, "number of proxies to create")
		steps      = flag.Int("steps", 5, "number of simulation steps to run")
		seed       = flag.Int64("seed", 1, "random seed")
	)
	flag.Parse()

	cfg := broadphase2d.DefaultConfig()
	if *configPath != "" {
		loaded, err := broadphase2d.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "broadphasedemo:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	bp := broadphase2d.NewBroadPhase(cfg)
	rng := rand.New(rand.NewSource(*seed))

	type body struct {
		id     int32
		x, y   float64
		vx, vy float64
	}

	bodies := make([]body, *count)
	for i := range bodies {
		x := rng.Float64() * 50
		y := rng.Float64() * 50
		id := bp.CreateProxy(aabbAt(x, y, 0.5), fmt.Sprintf("body-%d", i))
		bodies[i] = body{id: id, x: x, y: y, vx: rng.Float64() - 0.5, vy: rng.Float64() - 0.5}
	}

	for step := 0; step < *steps; step++ {
		for i := range bodies {
			b := &bodies[i]
			b.x += b.vx
			b.y += b.vy
			displacement := broadphase2d.Vec2{X: b.vx, Y: b.vy}
			bp.MoveProxy(b.id, aabbAt(b.x, b.y, 0.5), displacement)
		}

		pairCount := 0
		bp.UpdatePairs(func(userDataA, userDataB any) {
			pairCount++
		})

		fmt.Printf("step %d: proxies=%d pairs=%d height=%d balance=%d quality=%.3f\n",
			step, bp.GetProxyCount(), pairCount, bp.GetTreeHeight(), bp.GetTreeBalance(), bp.GetTreeQuality())
	}

	bp.Rebuild()
	fmt.Printf("after rebuild: height=%d balance=%d quality=%.3f\n",
		bp.GetTreeHeight(), bp.GetTreeBalance(), bp.GetTreeQuality())
}

func aabbAt(x, y, halfExtent float64) broadphase2d.AABB {
	return broadphase2d.AABB{
		LowerBound: broadphase2d.Vec2{X: x - halfExtent, Y: y - halfExtent},
		UpperBound: broadphase2d.Vec2{X: x + halfExtent, Y: y + halfExtent},
	}
}
