package game

import (
	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
)

// resolveCombat runs the collision sweep for one tick:
// player bullets against straight enemies, then against path enemies,
// then enemy bullets against the player.
func (g *Game) resolveCombat() {
	g.resolveBulletHits(object.KindStraightEnemy, ScoreStraightEnemy)
	g.resolveBulletHits(object.KindPathEnemy, ScorePathEnemy)
	g.resolvePlayerHits()
}

// resolveBulletHits destroys each player bullet together with the first
// enemy of the given kind it overlaps.
func (g *Game) resolveBulletHits(kind object.Kind, points int) {
	for b := range g.registry.All(object.KindPlayerBullet) {
		for e := range g.registry.All(kind) {
			if !physics.Collides(e.Box(), b.Box()) {
				continue
			}
			g.registry.Destroy(e)
			g.registry.Destroy(b)
			g.sound.Play(SoundBoom)
			g.session.Score += points
			g.resolveEnemy()
			break
		}
	}
}

// resolvePlayerHits removes one health pip per enemy bullet touching the
// player. Processing stops as soon as the session is lost.
func (g *Game) resolvePlayerHits() {
	for b := range g.registry.All(object.KindEnemyBullet) {
		if !physics.Collides(g.player.Box(), b.Box()) {
			continue
		}
		g.registry.Destroy(b)
		g.loseHealth()
		if g.session.Terminal() {
			return
		}
	}
}

// loseHealth pops the most recent health pip and ends the session when none remain.
func (g *Game) loseHealth() {
	if g.session.Health <= 0 {
		return
	}
	g.registry.Destroy(g.registry.Last(object.KindHealthPip))
	g.session.Health--
	g.log.Debug("player hit", "health", g.session.Health)

	if g.session.Health == 0 {
		g.finish(OutcomeLost)
	}
}
