package broadphase2d

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig() failed to validate: %v", err)
	}
}

func TestValidateRejectsNonIncreasingBlockSizes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSizes = []int{16, 16, 32}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-increasing block sizes")
	}
}

func TestValidateRejectsSmallChunkSize(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChunkSize = cfg.BlockSizes[len(cfg.BlockSizes)-1] - 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for chunk size smaller than largest block class")
	}
}

func TestValidateRejectsWeakGrowthFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PairGrowthNumerator = 1
	cfg.PairGrowthDenominator = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for growth factor <= 1")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tunables.yaml")
	body := "aabbExtension: 0.25\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.AABBExtension != 0.25 {
		t.Fatalf("AABBExtension = %v, want 0.25", cfg.AABBExtension)
	}
	if cfg.AABBMultiplier != DefaultConfig().AABBMultiplier {
		t.Fatalf("AABBMultiplier = %v, want unchanged default", cfg.AABBMultiplier)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
