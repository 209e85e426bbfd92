package sim

import "sync"

// SpawnEnemy adds an enemy of the named kind ("chaser", "wave", "sniper").
// Wave and sniper caps apply as for scheduled spawns.
func (s *Session) SpawnEnemy(kind string) bool {
	if s.gameOver {
		return false
	}
	k, ok := ParseEnemyKind(kind)
	if !ok {
		return false
	}
	s.spawnEnemy(k)
	return true
}

// SpawnBarrel adds a barrel at a random x.
func (s *Session) SpawnBarrel() bool {
	if s.gameOver {
		return false
	}
	s.Barrels = append(s.Barrels, newBarrel(s))
	return true
}

// SpawnObstacle adds an obstacle at a random x.
func (s *Session) SpawnObstacle() bool {
	if s.gameOver {
		return false
	}
	s.Obstacles = append(s.Obstacles, newObstacle(s))
	return true
}

// SpawnGate adds a gate with the given modifier at a random x.
func (s *Session) SpawnGate(modifier string) bool {
	if s.gameOver {
		return false
	}
	if _, _, ok := ParseGateModifier(modifier); !ok {
		return false
	}
	g, _ := newGate(s.rng.Float64()*(s.width-gateW), modifier)
	s.Gates = append(s.Gates, g)
	return true
}

// ForceBossSpawn adds the roster boss at index, bypassing milestones.
func (s *Session) ForceBossSpawn(index int) bool {
	if s.gameOver || index < 0 || index >= len(bossRoster) {
		return false
	}
	s.Bosses = append(s.Bosses, newBoss(s, bossRoster[index]))
	return true
}

// CommandKind names an external command.
type CommandKind int

const (
	CmdSpawnEnemy CommandKind = iota
	CmdSpawnBarrel
	CmdSpawnObstacle
	CmdSpawnGate
	CmdForceBoss
)

// Command is a staged request from outside the simulation.
type Command struct {
	Kind     CommandKind
	Enemy    string // CmdSpawnEnemy
	Modifier string // CmdSpawnGate
	Boss     int    // CmdForceBoss
}

// Exec runs one command and reports whether it was accepted.
func (s *Session) Exec(cmd Command) bool {
	switch cmd.Kind {
	case CmdSpawnEnemy:
		return s.SpawnEnemy(cmd.Enemy)
	case CmdSpawnBarrel:
		return s.SpawnBarrel()
	case CmdSpawnObstacle:
		return s.SpawnObstacle()
	case CmdSpawnGate:
		return s.SpawnGate(cmd.Modifier)
	case CmdForceBoss:
		return s.ForceBossSpawn(cmd.Boss)
	}
	return false
}

// Apply runs commands in order and returns how many were accepted.
// Call it between frames.
func (s *Session) Apply(cmds []Command) int {
	accepted := 0
	for _, c := range cmds {
		if s.Exec(c) {
			accepted++
		}
	}
	return accepted
}

// CommandQueue stages commands from other goroutines until the next frame.
type CommandQueue struct {
	mu      sync.Mutex
	pending []Command
}

// Push stages a command.
func (q *CommandQueue) Push(cmd Command) {
	q.mu.Lock()
	q.pending = append(q.pending, cmd)
	q.mu.Unlock()
}

// Drain removes and returns all staged commands.
func (q *CommandQueue) Drain() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	cmds := q.pending
	q.pending = nil
	return cmds
}

// Len returns the number of staged commands.
func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
