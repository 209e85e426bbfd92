package sim

// runSpawner advances the spawn timers and the boss milestones.
func (s *Session) runSpawner() {
	s.enemyTimer++
	if float64(s.enemyTimer) > s.enemyInterval {
		s.spawnEnemy(rollEnemyKind(s.rng))
		s.enemyTimer = 0
		s.enemyInterval = s.ramp.Next(s.enemyInterval)
	}

	if s.score >= s.midBossMilestone && countLive(s.Bosses) == 0 && !s.finalBossActive {
		s.Bosses = append(s.Bosses, newBoss(s, BossMid))
		s.midBossMilestone = s.score + s.cfg.Milestones.MidBossStep
	}

	if s.score >= s.finalBossMilestone && !s.finalBossActive {
		s.Bosses = append(s.Bosses, newBoss(s, BossFinal))
		s.finalBossActive = true
	}

	s.gateTimer++
	if s.gateTimer > s.cfg.Spawn.GateInterval {
		s.spawnRandomGate()
		s.gateTimer = 0
	}

	s.barrelTimer++
	if s.barrelTimer > s.cfg.Spawn.BarrelInterval {
		s.Barrels = append(s.Barrels, newBarrel(s))
		s.barrelTimer = 0
	}

	s.obstacleTimer++
	if s.obstacleTimer > s.cfg.Spawn.ObstacleInterval {
		s.Obstacles = append(s.Obstacles, newObstacle(s))
		s.obstacleTimer = 0
	}
}

// spawnEnemy adds an enemy, downgrading it to a chaser when its kind is at cap.
func (s *Session) spawnEnemy(kind EnemyKind) *Enemy {
	e := newEnemy(s, kind)
	if s.atCap(kind) {
		e.setKind(s.rng, EnemyChaser)
	}
	s.Enemies = append(s.Enemies, e)
	return e
}

func (s *Session) atCap(kind EnemyKind) bool {
	var limit int
	switch kind {
	case EnemyWave:
		limit = s.cfg.Spawn.WaveCap
	case EnemySniper:
		limit = s.cfg.Spawn.SniperCap
	default:
		return false
	}
	n := 0
	for _, e := range s.Enemies {
		if !e.Deleted && e.Kind == kind {
			n++
		}
	}
	return n >= limit
}

func (s *Session) spawnRandomGate() {
	mods := s.cfg.Spawn.GateModifiers
	if len(mods) == 0 {
		return
	}
	mod := mods[s.rng.Intn(len(mods))]
	x := s.rng.Float64() * (s.width - gateW)
	if g, ok := newGate(x, mod); ok {
		s.Gates = append(s.Gates, g)
	}
}
