// Package object defines the entities of the play area and the registry
// that owns them.
package object

import (
	"time"

	"github.com/tomz197/skyraid/internal/physics"
)

// Kind identifies what an entity is.
type Kind int

const (
	KindPlayerBullet  Kind = iota // Fired by the player, travels up
	KindStraightEnemy             // Flies straight down, fires straight down
	KindPathEnemy                 // Follows a diagonal path, fires at the player
	KindEnemyBullet               // Fired by enemies
	KindHealthPip                 // One unit of player health
	KindPlayer                    // The player ship; owned by the game, never registered

	numRegisteredKinds = int(KindPlayer)
)

func (k Kind) String() string {
	switch k {
	case KindPlayerBullet:
		return "player_bullet"
	case KindStraightEnemy:
		return "straight_enemy"
	case KindPathEnemy:
		return "path_enemy"
	case KindEnemyBullet:
		return "enemy_bullet"
	case KindHealthPip:
		return "health_pip"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Timer is a cancellable scheduled action bound to an entity.
type Timer interface {
	Stop() bool
}

// Path is the state of an entity following a straight path over a fixed duration.
type Path struct {
	From, To physics.Vec
	Duration time.Duration
	Elapsed  time.Duration
	Prev     physics.Vec // Position at the previous tick, used for heading
}

// Progress returns how far along the path the entity is, in [0, 1].
func (p *Path) Progress() float64 {
	if p.Duration <= 0 {
		return 1
	}
	t := float64(p.Elapsed) / float64(p.Duration)
	if t > 1 {
		return 1
	}
	return t
}

// Position returns the point on the path at the current progress.
func (p *Path) Position() physics.Vec {
	return physics.Lerp(p.From, p.To, p.Progress())
}

// Done reports whether the end of the path has been reached.
func (p *Path) Done() bool {
	return p.Elapsed >= p.Duration
}

// Entity is anything that moves and collides in the play area.
type Entity struct {
	Kind          Kind
	X, Y          float64 // Center
	Width, Height float64

	// Velocity is only meaningful when HasVelocity is set; otherwise the
	// movement rules use the kind's default.
	Velocity    physics.Vec
	HasVelocity bool

	Heading float64 // Direction of travel in radians
	Path    *Path   // Non-nil for path followers

	fire      Timer
	id        uint64
	destroyed bool
}

// ID returns the registry-assigned identifier (0 for unregistered entities).
func (e *Entity) ID() uint64 {
	return e.id
}

// Position returns the entity center.
func (e *Entity) Position() physics.Vec {
	return physics.Vec{X: e.X, Y: e.Y}
}

// Box returns the entity's collision box.
func (e *Entity) Box() physics.Box {
	return physics.Box{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// VelocityOr returns the assigned velocity, or def when none was assigned.
func (e *Entity) VelocityOr(def physics.Vec) physics.Vec {
	if e.HasVelocity {
		return e.Velocity
	}
	return def
}

// SetVelocity assigns an explicit velocity.
func (e *Entity) SetVelocity(v physics.Vec) {
	e.Velocity = v
	e.HasVelocity = true
}

// BindTimer attaches a fire timer that is stopped when the entity is destroyed.
// A previously bound timer is stopped first.
func (e *Entity) BindTimer(t Timer) {
	if e.destroyed {
		t.Stop()
		return
	}
	if e.fire != nil {
		e.fire.Stop()
	}
	e.fire = t
}

// Alive reports whether the entity is still in play.
func (e *Entity) Alive() bool {
	return e != nil && !e.destroyed
}

// Destroyed reports whether the entity has been removed from play.
func (e *Entity) Destroyed() bool {
	return e == nil || e.destroyed
}
