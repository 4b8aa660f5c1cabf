package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.WorldW32 != float32(cfg.Screen.Width) || cfg.Derived.WorldH32 != float32(cfg.Screen.Height) {
		t.Errorf("world = %vx%v, want screen size", cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	}
	if cfg.Derived.GridCellSize != float32(cfg.Tadpole.InteractionRadius) {
		t.Errorf("grid cell = %v, want interaction radius %v", cfg.Derived.GridCellSize, cfg.Tadpole.InteractionRadius)
	}
	if cfg.Derived.FoodLifetime != 15*time.Second {
		t.Errorf("food lifetime = %v, want 15s", cfg.Derived.FoodLifetime)
	}

	minDim := math.Min(float64(cfg.Screen.Width), float64(cfg.Screen.Height))
	if math.Abs(cfg.Derived.Variation-0.1*minDim) > 1e-9 {
		t.Errorf("variation = %v, want %v", cfg.Derived.Variation, 0.1*minDim)
	}
	if math.Abs(cfg.Derived.CornerThreshold-0.02*minDim) > 1e-9 {
		t.Errorf("corner threshold = %v, want %v", cfg.Derived.CornerThreshold, 0.02*minDim)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("world:\n  thickness: 60\nboundary:\n  variation: 25\nfood:\n  lifetime: 2\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Thickness != 60 {
		t.Errorf("thickness = %v, want 60", cfg.World.Thickness)
	}
	if cfg.Derived.Variation != 25 {
		t.Errorf("variation = %v, want pinned 25", cfg.Derived.Variation)
	}
	if cfg.Derived.FoodLifetime != 2*time.Second {
		t.Errorf("food lifetime = %v, want 2s", cfg.Derived.FoodLifetime)
	}
	// Untouched sections keep their defaults
	if cfg.Tadpole.Count != 500 {
		t.Errorf("tadpole count = %d, want 500", cfg.Tadpole.Count)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"thickness too large", func(c *Config) { c.World.Thickness = 500 }},
		{"negative thickness", func(c *Config) { c.World.Thickness = -1 }},
		{"too few points", func(c *Config) { c.Boundary.MinPointsPerSide = 1 }},
		{"max below min", func(c *Config) { c.Boundary.MaxPointsPerSide = 2 }},
		{"fish speed bounds", func(c *Config) { c.Fish.MaxSpeed = 0.1 }},
		{"fish size bounds", func(c *Config) { c.Fish.MaxSize = 1 }},
		{"pad size bounds", func(c *Config) { c.LilyPad.MaxSize = 1 }},
		{"pad speed cap reachable", func(c *Config) { c.LilyPad.MaxSpeed = 0.75 }},
		{"negative cohesion", func(c *Config) { c.Tadpole.Cohesion = -0.01 }},
		{"negative separation", func(c *Config) { c.Tadpole.Separation = -1 }},
		{"food size", func(c *Config) { c.Food.InitialSize = 0 }},
		{"zero dt", func(c *Config) { c.Physics.DT = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.modify(cfg)
			cfg.computeDerived()
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Tadpole.Cohesion = 0.0042

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Tadpole.Cohesion != 0.0042 {
		t.Errorf("cohesion = %v, want 0.0042", back.Tadpole.Cohesion)
	}
	if back.Derived != cfg.Derived {
		t.Errorf("derived values differ after round trip")
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic")
		}
	}()
	Cfg()
}
