package config

import (
	"os"
	"path/filepath"
	"math"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadSkyraid("")
	if err != nil {
		t.Fatalf("LoadSkyraid() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultSkyraidConfig()) {
		t.Errorf("LoadSkyraid() = %+v, expected %+v", cfg, DefaultSkyraidConfig())
	}
}

func TestLoadSkyraidPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("spawn:\n  enemy_interval: 30\nbosses:\n  final_hp: 200\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyraid(path)
	if err != nil {
		t.Fatalf("LoadSkyraid() error = %v", err)
	}
	if cfg.Spawn.EnemyInterval != 30 {
		t.Errorf("EnemyInterval = %v, expected 30", cfg.Spawn.EnemyInterval)
	}
	if cfg.Bosses.FinalHP != 200 {
		t.Errorf("FinalHP = %d, expected 200", cfg.Bosses.FinalHP)
	}
	if cfg.Bosses.MidHP != 15 {
		t.Errorf("MidHP = %d, expected default 15", cfg.Bosses.MidHP)
	}
	if cfg.World.Width != 600 {
		t.Errorf("World.Width = %v, expected default 600", cfg.World.Width)
	}
}

func TestLoadSkyraidErrors(t *testing.T) {
	if _, err := LoadSkyraid(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadSkyraid(missing) should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("spawn: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkyraid(path); err == nil {
		t.Error("LoadSkyraid(bad yaml) should fail")
	}
}

func TestLoadSkyraidLocalDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "skyraid.yaml"), []byte("player:\n  base_speed: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSkyraid("")
	if err != nil {
		t.Fatalf("LoadSkyraid() error = %v", err)
	}
	if cfg.Player.BaseSpeed != 7 {
		t.Errorf("BaseSpeed = %v, expected 7", cfg.Player.BaseSpeed)
	}
}

func TestApplySkyraidPreset(t *testing.T) {
	tests := []struct {
		preset  DifficultyPreset
		enabled bool
		start   float64
		midBoss int
	}{
		{DifficultyEasy, true, 20, 2000},
		{DifficultyNormal, true, 17.6, 1500},
		{DifficultyHard, true, 14.4, 1000},
		{DifficultyFixed, false, 20, 1500},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultSkyraidConfig()
			ApplySkyraidPreset(&cfg, tc.preset)
			if cfg.Difficulty.Preset != tc.preset {
				t.Errorf("Preset = %q, expected %q", cfg.Difficulty.Preset, tc.preset)
			}

			ramp := NewSpawnRamp(cfg.Difficulty, 20)
			if ramp.IsEnabled() != tc.enabled {
				t.Errorf("IsEnabled() = %v, expected %v", ramp.IsEnabled(), tc.enabled)
			}
			if got := ramp.Start(); math.Abs(got-tc.start) > 1e-9 {
				t.Errorf("Start() = %v, expected %v", got, tc.start)
			}
			if cfg.Milestones.MidBossFirst != tc.midBoss {
				t.Errorf("MidBossFirst = %d, expected %d", cfg.Milestones.MidBossFirst, tc.midBoss)
			}
		})
	}
}

func TestSpawnRamp(t *testing.T) {
	cfg := DefaultSkyraidConfig().Difficulty
	ramp := NewSpawnRamp(cfg, 20)

	if got := ramp.Start(); got != 20 {
		t.Errorf("Start() = %v, expected 20", got)
	}
	if got := ramp.Next(20); got != 19.8 {
		t.Errorf("Next(20) = %v, expected 19.8", got)
	}
	if got := ramp.Next(10.1); got != 10 {
		t.Errorf("Next(10.1) = %v, expected floor 10", got)
	}
	if got := ramp.Next(10); got != 10 {
		t.Errorf("Next(10) = %v, expected 10", got)
	}

	interval := ramp.Start()
	for range 500 {
		interval = ramp.Next(interval)
		if interval < 10 {
			t.Fatalf("interval = %v, dropped below floor", interval)
		}
	}
	if interval != 10 {
		t.Errorf("interval after 500 spawns = %v, expected 10", interval)
	}
}

func TestSpawnRampInitialLevel(t *testing.T) {
	cfg := DefaultSkyraidConfig().Difficulty
	ramp := NewSpawnRamp(cfg, 20)
	ramp.SetInitialLevel(0.5)
	if got := ramp.Start(); got != 16 {
		t.Errorf("Start() = %v, expected 16", got)
	}

	ramp.SetInitialLevel(5)
	if got := ramp.Start(); got != 12 {
		t.Errorf("Start() with clamped level = %v, expected 12", got)
	}
}

func TestSpawnRampPresetOverridesLevel(t *testing.T) {
	cfg := DefaultSkyraidConfig().Difficulty
	cfg.InitialLevel = 1.0
	cfg.Preset = DifficultyEasy
	if got := NewSpawnRamp(cfg, 20).Start(); got != 20 {
		t.Errorf("Start() = %v, expected the easy preset to win over initial_level", got)
	}

	cfg.Enabled = false
	cfg.Preset = DifficultyNormal
	if !NewSpawnRamp(cfg, 20).IsEnabled() {
		t.Error("IsEnabled() = false, expected the normal preset to enable the ramp")
	}
}

func TestSpawnRampDisabled(t *testing.T) {
	cfg := DefaultSkyraidConfig().Difficulty
	ramp := NewSpawnRamp(cfg, 20)
	ramp.SetEnabled(false)

	if ramp.IsEnabled() {
		t.Error("IsEnabled() = true, expected false")
	}
	if got := ramp.Next(20); got != 20 {
		t.Errorf("Next(20) = %v, expected 20 with the ramp disabled", got)
	}
}
