package game

import "time"

// Wave describes one batch of enemies.
type Wave struct {
	Number          int
	Straight        int           // StraightEnemy spawns
	Path            int           // PathEnemy spawns
	StraightCadence time.Duration // Delay between successive StraightEnemy spawns
	PathCadence     time.Duration // Delay between successive PathEnemy spawns

	pending int // Spawns scheduled but not issued yet
}

// NewWave returns the composition of wave n: 2n straight and n path enemies.
func NewWave(n int) Wave {
	return Wave{
		Number:          n,
		Straight:        2 * n,
		Path:            n,
		StraightCadence: StraightEnemySpawnInterval,
		PathCadence:     PathEnemySpawnInterval,
	}
}

// Total returns the number of enemies the wave spawns.
func (w Wave) Total() int {
	return w.Straight + w.Path
}

// Pending returns the number of spawns not yet issued.
func (w Wave) Pending() int {
	return w.pending
}

// startNextWave advances to the next wave, or ends the session with a win
// when the last wave has been cleared.
func (g *Game) startNextWave() {
	if g.session.Terminal() {
		return
	}
	if g.session.Wave >= MaxWaves {
		g.finish(OutcomeWon)
		return
	}

	g.session.Wave++
	g.wave = NewWave(g.session.Wave)
	g.wave.pending = g.wave.Total()
	g.phase = PhaseWaveActive

	for i := 0; i < g.wave.Straight; i++ {
		g.scheduleSpawn(time.Duration(i)*g.wave.StraightCadence, g.spawnStraightEnemy)
	}
	for i := 0; i < g.wave.Path; i++ {
		g.scheduleSpawn(time.Duration(i)*g.wave.PathCadence, g.spawnPathEnemy)
	}

	g.log.Info("wave started", "wave", g.wave.Number, "straight", g.wave.Straight, "path", g.wave.Path)
}

// resolveEnemy accounts for one enemy leaving play, however it left.
func (g *Game) resolveEnemy() {
	if g.session.EnemiesLeft > 0 {
		g.session.EnemiesLeft--
	}
	g.checkWaveClear()
}

// checkWaveClear moves to PhaseWaveClear once every enemy of the wave has
// spawned and been resolved, and schedules the next wave.
func (g *Game) checkWaveClear() {
	if g.phase != PhaseWaveActive || g.session.Terminal() {
		return
	}
	if g.session.EnemiesLeft > 0 || g.wave.pending > 0 {
		return
	}

	g.phase = PhaseWaveClear
	g.log.Debug("wave cleared", "wave", g.wave.Number, "score", g.session.Score)

	epoch := g.epoch
	g.clock.After(WaveAdvanceDelay, func() {
		if epoch != g.epoch || g.session.Terminal() || g.phase != PhaseWaveClear {
			return
		}
		g.startNextWave()
	})
}

// finish ends the session with the given outcome. Pending timers are
// cancelled so nothing fires into a finished session.
func (g *Game) finish(outcome Outcome) {
	if g.session.Terminal() {
		return
	}
	g.session.Outcome = outcome
	if outcome == OutcomeWon {
		g.phase = PhaseVictory
	} else {
		g.phase = PhaseDefeat
	}
	g.clock.Reset()

	g.log.Info("session finished",
		"outcome", outcome.String(),
		"score", g.session.Score,
		"wave", g.session.Wave,
		"health", g.session.Health)
}
