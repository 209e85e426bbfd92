package sim

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a primitive-typed summary of a session for determinism checks
// and offline inspection. Positions are stored in hundredths of a unit.
type Snapshot struct {
	Frame    uint64 `msgpack:"frame"`
	Seed     int64  `msgpack:"seed"`
	Score    int    `msgpack:"score"`
	GameOver bool   `msgpack:"game_over"`

	FirePower  int `msgpack:"fire_power"`
	PlayerX    int `msgpack:"player_x"`
	Weapon     int `msgpack:"weapon"`
	SpeedLevel int `msgpack:"speed_level"`
	Ballistic  int `msgpack:"ballistic"`

	// Each enemy is 3 ints: Kind, X, Y
	EnemyData []int `msgpack:"enemies"`
	// Each boss is 5 ints: Kind, HP, X, Y, Generation
	BossData []int `msgpack:"bosses"`
	// Each bullet is 4 ints: Kind, Player, X, Y
	BulletData []int `msgpack:"bullets"`

	Barrels   int `msgpack:"barrels"`
	Obstacles int `msgpack:"obstacles"`
	Gates     int `msgpack:"gates"`
	PowerUps  int `msgpack:"powerups"`

	EnemyInterval      int  `msgpack:"enemy_interval"`
	MidBossMilestone   int  `msgpack:"mid_boss_milestone"`
	FinalBossMilestone int  `msgpack:"final_boss_milestone"`
	FinalBossActive    bool `msgpack:"final_boss_active"`

	Stats RunStats `msgpack:"stats"`

	RNGState uint64 `msgpack:"rng_state"`
}

func fixed(v float64) int {
	return int(math.Round(v * 100))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot captures the current session state.
func (s *Session) Snapshot() Snapshot {
	enemyData := make([]int, 0, len(s.Enemies)*3)
	for _, e := range s.Enemies {
		enemyData = append(enemyData, int(e.Kind), fixed(e.X), fixed(e.Y))
	}

	bossData := make([]int, 0, len(s.Bosses)*5)
	for _, b := range s.Bosses {
		bossData = append(bossData, int(b.Kind), b.HP, fixed(b.X), fixed(b.Y), b.Generation)
	}

	bulletData := make([]int, 0, len(s.Bullets)*4)
	for _, b := range s.Bullets {
		bulletData = append(bulletData, int(b.Kind), boolInt(b.Player), fixed(b.X), fixed(b.Y))
	}

	return Snapshot{
		Frame:    s.frame,
		Seed:     s.seed,
		Score:    s.score,
		GameOver: s.gameOver,

		FirePower:  s.Player.FirePower,
		PlayerX:    fixed(s.Player.CX),
		Weapon:     int(s.Player.Weapon),
		SpeedLevel: s.Player.SpeedLevel,
		Ballistic:  s.Player.BallisticCharges,

		EnemyData:  enemyData,
		BossData:   bossData,
		BulletData: bulletData,

		Barrels:   len(s.Barrels),
		Obstacles: len(s.Obstacles),
		Gates:     len(s.Gates),
		PowerUps:  len(s.PowerUps),

		EnemyInterval:      fixed(s.enemyInterval),
		MidBossMilestone:   s.midBossMilestone,
		FinalBossMilestone: s.finalBossMilestone,
		FinalBossActive:    s.finalBossActive,

		Stats:    s.stats,
		RNGState: s.rng.State(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.Score)              //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FirePower)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)            //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Weapon)             //#nosec G115 -- hash computation
	h = h*31 + uint64(boolInt(snap.GameOver))  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyInterval)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.MidBossMilestone)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FinalBossMilestone) //#nosec G115 -- hash computation

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BossData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.BulletData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + uint64(snap.Barrels+snap.Obstacles*7+snap.Gates*13+snap.PowerUps*17) //#nosec G115 -- hash computation
	h = h*31 + snap.RNGState
	return h
}

// Encode serializes the snapshot with msgpack.
func (snap *Snapshot) Encode() ([]byte, error) {
	data, err := msgpack.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("sim: encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a msgpack snapshot.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("sim: decode snapshot: %w", err)
	}
	return snap, nil
}
