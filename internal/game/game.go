// Package game implements the wave and combat simulation: spawning, movement,
// collisions, scoring and the wave progression state machine.
package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyraid/internal/clock"
	"github.com/tomz197/skyraid/internal/object"
)

// Sound plays a named sound effect without blocking.
type Sound interface {
	Play(name string)
}

type nopSound struct{}

func (nopSound) Play(string) {}

// Controls is the player input for one tick.
type Controls struct {
	Left  bool // Held
	Right bool // Held
	Fire  bool // Pressed this tick
	Retry bool // Pressed this tick
}

// Options configures a Game.
type Options struct {
	Sound  Sound       // Defaults to silence
	Logger *log.Logger // Defaults to a discarding logger
	Seed   int64       // Spawn position seed; 0 picks one from the wall clock
}

// Game owns one play session: the session counters, the entity registry,
// the virtual clock and the player ship. It is not safe for concurrent use.
type Game struct {
	session  Session
	phase    Phase
	wave     Wave
	registry *object.Registry
	clock    *clock.Scheduler
	player   *object.Entity

	// epoch changes on every restart; scheduled callbacks capture it and
	// do nothing once it no longer matches.
	epoch uint64

	rng   *rand.Rand
	sound Sound
	log   *log.Logger
}

// New creates a game in PhaseIdle.
func New(opts Options) *Game {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sound := opts.Sound
	if sound == nil {
		sound = nopSound{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		registry: object.NewRegistry(),
		clock:    clock.NewScheduler(),
		rng:      rand.New(rand.NewSource(seed)),
		sound:    sound,
		log:      logger,
	}
	g.reset()
	return g
}

// reset rebuilds the initial session state.
func (g *Game) reset() {
	g.epoch++
	g.clock.Reset()
	g.registry.Clear()

	g.session = NewSession()
	g.phase = PhaseIdle
	g.wave = Wave{}
	g.player = &object.Entity{
		Kind:    object.KindPlayer,
		X:       PlayerStartX,
		Y:       PlayerStartY,
		Width:   PlayerSize,
		Height:  PlayerSize,
		Heading: -halfPi,
	}
	for i := 0; i < MaxHealth; i++ {
		g.registry.Spawn(object.Entity{
			Kind:   object.KindHealthPip,
			X:      HealthPipX + float64(i)*HealthPipSpacing,
			Y:      HealthPipY,
			Width:  HealthPipSize,
			Height: HealthPipSize,
		})
	}
}

// Start begins the first wave. It only has an effect in PhaseIdle.
func (g *Game) Start() {
	if g.phase != PhaseIdle {
		return
	}
	g.log.Debug("session started")
	g.startNextWave()
}

// Restart discards the current session, cancelling every pending timer and
// entity, and returns to PhaseIdle.
func (g *Game) Restart() {
	g.log.Debug("session restarted", "previous_score", g.session.Score)
	g.reset()
}

// Update advances the simulation by one tick.
func (g *Game) Update(ctl Controls) {
	if g.session.Terminal() {
		if ctl.Retry {
			g.Restart()
			g.Start()
		}
		return
	}
	if g.phase == PhaseIdle {
		return
	}

	// Scheduled spawns, fire timers and wave advancement
	g.clock.Advance(TickDuration)
	if g.session.Terminal() {
		return
	}

	g.movePlayer(ctl)
	if ctl.Fire {
		g.fire()
	}

	g.moveEntities()
	g.resolveCombat()
}

// Session returns a copy of the session counters.
func (g *Game) Session() Session {
	return g.session
}

// Phase returns the wave controller state.
func (g *Game) Phase() Phase {
	return g.phase
}

// Wave returns the current wave.
func (g *Game) Wave() Wave {
	return g.wave
}

// Registry exposes the live entities for rendering. Callers must not
// spawn or destroy through it.
func (g *Game) Registry() *object.Registry {
	return g.registry
}

// Player returns the player ship.
func (g *Game) Player() *object.Entity {
	return g.player
}

// Now returns the virtual time of the session clock.
func (g *Game) Now() time.Duration {
	return g.clock.Now()
}

// EnemiesOnScreen returns the number of live enemies.
func (g *Game) EnemiesOnScreen() int {
	return g.registry.Count(object.KindStraightEnemy) + g.registry.Count(object.KindPathEnemy)
}
