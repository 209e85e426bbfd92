package sim

import "github.com/vovakirdan/skyraid/internal/core"

// EventType identifies what happened inside a frame.
type EventType int

const (
	EventSound    EventType = iota // Cue is set
	EventScore                     // Value is the new score
	EventLives                     // Value is the new fire-power
	EventGameOver                  // Value is the final score
	EventShake                     // Duration and Magnitude are set
	EventParticle                  // Particle, X, Y, Color and Value (count) are set
)

// Cue names a sound effect.
type Cue string

const (
	CueShootNormal  Cue = "shoot-normal"
	CueShootDouble  Cue = "shoot-double"
	CueShootLaser   Cue = "shoot-laser"
	CueShootRipple  Cue = "shoot-ripple"
	CueShootMissile Cue = "shoot-missile"
	CueExplosion    Cue = "explosion"
	CuePowerUp      Cue = "powerup"
	CueDamage       Cue = "damage"
	CueBeam         Cue = "beam"
)

// Event is a notification sent to collaborators outside the simulation.
type Event struct {
	Type EventType

	Cue       Cue
	Value     int
	Duration  int
	Magnitude int

	Particle ParticleKind
	X, Y     float64
	Color    core.Color
}

// Listener receives simulation events.
type Listener interface {
	OnEvent(e Event)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(e Event)

// OnEvent calls f(e).
func (f ListenerFunc) OnEvent(e Event) {
	f(e)
}

// Dispatcher fans events out to subscribed listeners.
// Listeners run synchronously on the simulation goroutine.
type Dispatcher struct {
	listeners map[EventType][]Listener
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers a listener for one event type.
func (d *Dispatcher) Subscribe(t EventType, l Listener) {
	d.listeners[t] = append(d.listeners[t], l)
}

// Dispatch sends the event to every listener of its type.
func (d *Dispatcher) Dispatch(e Event) {
	for _, l := range d.listeners[e.Type] {
		l.OnEvent(e)
	}
}
