package game

import (
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
)

// defaultEnemyBulletVelocity applies to enemy bullets fired without a velocity.
var defaultEnemyBulletVelocity = physics.Vec{X: 0, Y: EnemyBulletSpeed}

// movePlayer moves the ship horizontally while a direction is held.
func (g *Game) movePlayer(ctl Controls) {
	if ctl.Right {
		g.player.X += PlayerSpeed
	}
	if ctl.Left {
		g.player.X -= PlayerSpeed
	}
	if g.player.X < PlayerMinX {
		g.player.X = PlayerMinX
	} else if g.player.X > PlayerMaxX {
		g.player.X = PlayerMaxX
	}
}

// moveEntities applies one tick of movement to every entity and removes the
// ones that left the play area or finished their path.
func (g *Game) moveEntities() {
	for b := range g.registry.All(object.KindPlayerBullet) {
		b.Y -= PlayerBulletSpeed
		if b.Y < PlayerBulletMinY {
			g.registry.Destroy(b)
		}
	}

	for e := range g.registry.All(object.KindStraightEnemy) {
		e.Y += StraightEnemySpeed
		if e.Y > StraightEnemyMaxY {
			g.registry.Destroy(e)
			g.resolveEnemy()
		}
	}

	for e := range g.registry.All(object.KindPathEnemy) {
		g.followPath(e)
		if e.Path.Done() {
			g.registry.Destroy(e)
			g.resolveEnemy()
		}
	}

	for b := range g.registry.All(object.KindEnemyBullet) {
		v := b.VelocityOr(defaultEnemyBulletVelocity)
		b.X += v.X
		b.Y += v.Y
		if b.X < EnemyBulletMinX || b.X > EnemyBulletMaxX || b.Y < EnemyBulletMinY || b.Y > EnemyBulletMaxY {
			g.registry.Destroy(b)
		}
	}
}

// followPath advances a path follower by one tick and turns it to face its
// direction of travel.
func (g *Game) followPath(e *object.Entity) {
	p := e.Path
	p.Elapsed += TickDuration
	pos := p.Position()

	e.Heading = physics.Heading(p.Prev, pos, e.Heading)
	p.Prev = pos
	e.X, e.Y = pos.X, pos.Y
}
