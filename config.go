package broadphase2d

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every numeric tunable the tree, broad-phase and allocators
// use. Embedders that want the reference behavior should start from
// DefaultConfig and only override what they need.
type Config struct {
	// AABBExtension fattens a leaf's AABB by this amount on every side so
	// small motions don't force a tree update.
	AABBExtension float64 `yaml:"aabbExtension"`

	// AABBMultiplier scales the displacement used to anticipate motion when
	// a fat AABB is recomputed in MoveProxy.
	AABBMultiplier float64 `yaml:"aabbMultiplier"`

	// HugeAABBFactor scales AABBExtension when testing whether a stored fat
	// AABB has become too large and should shrink even though it still
	// contains the incoming AABB.
	HugeAABBFactor float64 `yaml:"hugeAABBFactor"`

	// InitialTreeCapacity is the starting size of the tree's node arena.
	InitialTreeCapacity int `yaml:"initialTreeCapacity"`

	// InitialMoveCapacity and InitialPairCapacity size the broad-phase's move
	// and pair buffers before their first growth.
	InitialMoveCapacity int `yaml:"initialMoveCapacity"`
	InitialPairCapacity int `yaml:"initialPairCapacity"`

	// PairGrowthNumerator/Denominator control the broad-phase pair buffer's
	// growth factor (1.5x by default: 3/2).
	PairGrowthNumerator   int `yaml:"pairGrowthNumerator"`
	PairGrowthDenominator int `yaml:"pairGrowthDenominator"`

	// BlockSizes is the size-class schedule for BlockAllocator, strictly
	// increasing.
	BlockSizes []int `yaml:"blockSizes"`

	// ChunkSize is the size in bytes of each slab BlockAllocator carves into
	// same-class blocks.
	ChunkSize int `yaml:"chunkSize"`

	// StackArenaSize is the size in bytes of StackAllocator's bump arena.
	StackArenaSize int `yaml:"stackArenaSize"`

	// MaxStackEntries bounds the nesting depth StackAllocator supports.
	MaxStackEntries int `yaml:"maxStackEntries"`
}

// DefaultConfig returns the reference tunables: the values a classic
// dynamic-AABB-tree broad-phase ships with.
func DefaultConfig() Config {
	return Config{
		AABBExtension:  0.1,
		AABBMultiplier: 2.0,
		HugeAABBFactor: 4.0,

		InitialTreeCapacity: 16,
		InitialMoveCapacity: 16,
		InitialPairCapacity: 16,

		PairGrowthNumerator:   3,
		PairGrowthDenominator: 2,

		BlockSizes: []int{16, 32, 64, 96, 128, 160, 192, 224, 256, 320, 384, 448, 512, 640},
		ChunkSize:  16 * 1024,

		StackArenaSize:  100 * 1024,
		MaxStackEntries: 32,
	}
}

// LoadConfig reads a YAML tunables file, starting from DefaultConfig so a
// partial override file only needs to set the fields it changes.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("broadphase2d: read config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("broadphase2d: parse config %q: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("broadphase2d: invalid config %q: %w", path, err)
	}

	return cfg, nil
}

// Validate reports whether the config's invariants hold: a non-empty,
// strictly increasing block-size schedule, a chunk size no smaller than the
// largest block size, a positive stack arena size and entry limit, and a
// pair growth factor greater than one. The initial tree, move and pair
// capacities are not checked here.
func (c Config) Validate() error {
	if len(c.BlockSizes) == 0 {
		return fmt.Errorf("blockSizes must not be empty")
	}
	for i := 1; i < len(c.BlockSizes); i++ {
		if c.BlockSizes[i] <= c.BlockSizes[i-1] {
			return fmt.Errorf("blockSizes must be strictly increasing, got %v", c.BlockSizes)
		}
	}
	if c.ChunkSize < c.maxBlockSize() {
		return fmt.Errorf("chunkSize %d smaller than largest block size %d", c.ChunkSize, c.maxBlockSize())
	}
	if c.StackArenaSize <= 0 {
		return fmt.Errorf("stackArenaSize must be positive")
	}
	if c.MaxStackEntries <= 0 {
		return fmt.Errorf("maxStackEntries must be positive")
	}
	if c.PairGrowthNumerator <= c.PairGrowthDenominator {
		return fmt.Errorf("pair growth factor must exceed 1 (%d/%d)", c.PairGrowthNumerator, c.PairGrowthDenominator)
	}
	return nil
}

// maxBlockSize returns the largest recognized block-class size; requests
// larger than this pass through to the Go heap.
func (c Config) maxBlockSize() int {
	return c.BlockSizes[len(c.BlockSizes)-1]
}
