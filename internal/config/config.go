// Package config provides YAML-based tuning for skyraid and the difficulty
// presets that shape the enemy spawn ramp.
package config

// SkyraidConfig contains all tunable parameters of a skyraid session.
type SkyraidConfig struct {
	World      SkyraidWorld      `yaml:"world"`
	Player     SkyraidPlayer     `yaml:"player"`
	Spawn      SkyraidSpawn      `yaml:"spawn"`
	Milestones SkyraidMilestones `yaml:"milestones"`
	Bosses     SkyraidBosses     `yaml:"bosses"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// SkyraidWorld defines the playfield in world units.
type SkyraidWorld struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`
}

// SkyraidPlayer defines the fleet parameters.
type SkyraidPlayer struct {
	BaseSpeed         float64 `yaml:"base_speed"`
	ShootInterval     int     `yaml:"shoot_interval"`
	BallisticInterval int     `yaml:"ballistic_interval"`
	StartFirePower    int     `yaml:"start_fire_power"`
}

// SkyraidSpawn defines how often things enter from the top edge.
type SkyraidSpawn struct {
	EnemyInterval    float64  `yaml:"enemy_interval"` // frames between enemies at the start
	WaveCap          int      `yaml:"wave_cap"`
	SniperCap        int      `yaml:"sniper_cap"`
	GateInterval     int      `yaml:"gate_interval"`
	BarrelInterval   int      `yaml:"barrel_interval"`
	ObstacleInterval int      `yaml:"obstacle_interval"`
	GateModifiers    []string `yaml:"gate_modifiers"`
}

// SkyraidMilestones defines the score thresholds for scheduled bosses.
type SkyraidMilestones struct {
	MidBossFirst   int `yaml:"mid_boss_first"`
	MidBossStep    int `yaml:"mid_boss_step"`
	FinalBossFirst int `yaml:"final_boss_first"`
	FinalBossStep  int `yaml:"final_boss_step"`
}

// SkyraidBosses defines hit points per boss variant.
type SkyraidBosses struct {
	MidHP      int `yaml:"mid_hp"`
	FinalHP    int `yaml:"final_hp"`
	BeamHP     int `yaml:"beam_hp"`
	BombHP     int `yaml:"bomb_hp"`
	MirrorHP   int `yaml:"mirror_hp"`
	CloudHP    int `yaml:"cloud_hp"`
	DesariumHP int `yaml:"desarium_hp"`
}

// DifficultyConfig defines the enemy spawn ramp.
type DifficultyConfig struct {
	Enabled      bool             `yaml:"enabled"`
	InitialLevel float64          `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Preset       DifficultyPreset `yaml:"preset"`        // Overrides enabled and initial_level when set
	Ramp         RampConfig       `yaml:"ramp"`
}

// RampConfig defines how the enemy spawn interval shrinks.
type RampConfig struct {
	Step      float64 `yaml:"step"`       // Interval decrement per spawned enemy
	Floor     float64 `yaml:"floor"`      // Interval is not decremented below this
	HeadStart float64 `yaml:"head_start"` // Interval reduction at initial_level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables the ramp.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
