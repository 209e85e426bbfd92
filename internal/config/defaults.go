package config

import (
	_ "embed"
)

//go:embed defaults/skyraid.yaml
var defaultSkyraidYAML []byte

// DefaultSkyraidConfig returns the built-in skyraid tuning.
func DefaultSkyraidConfig() SkyraidConfig {
	return SkyraidConfig{
		World: SkyraidWorld{
			Width:  600,
			Height: 800,
			FPS:    48,
		},
		Player: SkyraidPlayer{
			BaseSpeed:         5,
			ShootInterval:     10,
			BallisticInterval: 90,
			StartFirePower:    1,
		},
		Spawn: SkyraidSpawn{
			EnemyInterval:    20,
			WaveCap:          3,
			SniperCap:        2,
			GateInterval:     600,
			BarrelInterval:   300,
			ObstacleInterval: 400,
			GateModifiers:    []string{"x2", "x3", "-1", "-2"},
		},
		Milestones: SkyraidMilestones{
			MidBossFirst:   1500,
			MidBossStep:    3000,
			FinalBossFirst: 10000,
			FinalBossStep:  10000,
		},
		Bosses: SkyraidBosses{
			MidHP:      15,
			FinalHP:    150,
			BeamHP:     40,
			BombHP:     20,
			MirrorHP:   35,
			CloudHP:    30,
			DesariumHP: 30,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Ramp: RampConfig{
				Step:      0.2,
				Floor:     10,
				HeadStart: 8,
			},
		},
	}
}
