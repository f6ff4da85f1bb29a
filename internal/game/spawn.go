package game

import (
	"math"
	"time"

	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
)

const halfPi = math.Pi / 2

// scheduleSpawn issues one wave spawn after delay. The spawn is dropped if
// the session was restarted or has ended by then.
func (g *Game) scheduleSpawn(delay time.Duration, spawn func()) {
	epoch := g.epoch
	g.clock.After(delay, func() {
		if epoch != g.epoch || g.session.Terminal() {
			return
		}
		g.wave.pending--
		spawn()
	})
}

// spawnStraightEnemy places an enemy at the top edge that fires straight down.
func (g *Game) spawnStraightEnemy() {
	x := randBetween(g.rng, StraightEnemyMinX, StraightEnemyMaxX)
	e := g.registry.Spawn(object.Entity{
		Kind:    object.KindStraightEnemy,
		X:       x,
		Y:       StraightEnemySpawnY,
		Width:   StraightEnemySize,
		Height:  StraightEnemySize,
		Heading: halfPi,
	})
	g.session.EnemiesLeft++

	epoch := g.epoch
	e.BindTimer(g.clock.Every(StraightEnemyFireInterval, func() {
		if epoch != g.epoch || g.session.Terminal() || e.Destroyed() {
			return
		}
		g.registry.Spawn(object.Entity{
			Kind:    object.KindEnemyBullet,
			X:       e.X,
			Y:       e.Y + StraightEnemyMuzzleOffsetY,
			Width:   BulletSize,
			Height:  BulletSize,
			Heading: halfPi,
		})
	}))
}

// spawnPathEnemy places an enemy above the play area that flies a diagonal
// path and fires aimed shots at the player.
func (g *Game) spawnPathEnemy() {
	x := randBetween(g.rng, PathEnemyMinX, PathEnemyMaxX)
	from := physics.Vec{X: x, Y: PathEnemySpawnY}
	to := physics.Vec{X: x + PathEnemyTravelX, Y: PathEnemySpawnY + PathEnemyTravelY}

	e := g.registry.Spawn(object.Entity{
		Kind:    object.KindPathEnemy,
		X:       from.X,
		Y:       from.Y,
		Width:   PathEnemySize,
		Height:  PathEnemySize,
		Heading: physics.Heading(from, to, halfPi),
		Path: &object.Path{
			From:     from,
			To:       to,
			Duration: PathEnemyDuration,
			Prev:     from,
		},
	})
	g.session.EnemiesLeft++

	epoch := g.epoch
	e.BindTimer(g.clock.Every(PathEnemyFireInterval, func() {
		if epoch != g.epoch || g.session.Terminal() || e.Destroyed() {
			return
		}
		vel := physics.Aim(e.Position(), g.player.Position(), EnemyBulletSpeed)
		bullet := object.Entity{
			Kind:    object.KindEnemyBullet,
			X:       e.X,
			Y:       e.Y,
			Width:   BulletSize,
			Height:  BulletSize,
			Heading: math.Atan2(vel.Y, vel.X),
		}
		bullet.SetVelocity(vel)
		g.registry.Spawn(bullet)
	}))
}

// fire launches a player bullet from just above the ship.
func (g *Game) fire() {
	g.registry.Spawn(object.Entity{
		Kind:    object.KindPlayerBullet,
		X:       g.player.X,
		Y:       g.player.Y - PlayerBulletOffsetY,
		Width:   BulletSize,
		Height:  BulletSize,
		Heading: -halfPi,
	})
	g.sound.Play(SoundLaser)
}

// randBetween returns an integer-valued position in [lo, hi].
func randBetween(rng interface{ Intn(int) int }, lo, hi int) float64 {
	return float64(lo + rng.Intn(hi-lo+1))
}
