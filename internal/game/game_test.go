package game

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/skyraid/internal/object"
	"github.com/tomz197/skyraid/internal/physics"
)

type soundRecorder struct {
	played []string
}

func (s *soundRecorder) Play(name string) {
	s.played = append(s.played, name)
}

func (s *soundRecorder) count(name string) int {
	n := 0
	for _, p := range s.played {
		if p == name {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T) (*Game, *soundRecorder) {
	t.Helper()
	snd := &soundRecorder{}
	return New(Options{Sound: snd, Seed: 42}), snd
}

// ticksFor returns the number of ticks covering d.
func ticksFor(d time.Duration) int {
	return int((d + TickDuration - 1) / TickDuration)
}

func run(g *Game, ticks int) {
	for i := 0; i < ticks; i++ {
		g.Update(Controls{})
	}
}

// snipeAll places a player bullet under every enemy close enough to be hit
// on the next tick and removes every enemy bullet.
func snipeAll(g *Game) {
	for _, kind := range []object.Kind{object.KindStraightEnemy, object.KindPathEnemy} {
		for _, e := range g.registry.Snapshot(kind) {
			if e.Y < PlayerBulletMinY {
				continue
			}
			g.registry.Spawn(object.Entity{
				Kind:   object.KindPlayerBullet,
				X:      e.X,
				Y:      e.Y + PlayerBulletSpeed,
				Width:  BulletSize,
				Height: BulletSize,
			})
		}
	}
	for _, b := range g.registry.Snapshot(object.KindEnemyBullet) {
		g.registry.Destroy(b)
	}
}

func TestNewGameIsIdle(t *testing.T) {
	g, _ := newTestGame(t)

	s := g.Session()
	assert.Equal(t, PhaseIdle, g.Phase())
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, MaxHealth, s.Health)
	assert.Equal(t, 0, s.Wave)
	assert.Equal(t, 0, s.EnemiesLeft)
	assert.Equal(t, OutcomeNone, s.Outcome)
	assert.Equal(t, MaxHealth, g.Registry().Count(object.KindHealthPip))
	assert.Equal(t, float64(PlayerStartX), g.Player().X)
	assert.Equal(t, float64(PlayerStartY), g.Player().Y)

	// Nothing moves before Start.
	g.Update(Controls{Right: true, Fire: true})
	assert.Equal(t, float64(PlayerStartX), g.Player().X)
	assert.Zero(t, g.Registry().Count(object.KindPlayerBullet))
	assert.Zero(t, g.Now())
}

func TestStartSchedulesFirstWave(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()

	assert.Equal(t, PhaseWaveActive, g.Phase())
	assert.Equal(t, 1, g.Session().Wave)
	assert.Equal(t, 3, g.Wave().Pending())
	assert.Equal(t, 3, g.clock.Pending())
	assert.Zero(t, g.Session().EnemiesLeft)

	// Start is a no-op outside PhaseIdle.
	g.Start()
	assert.Equal(t, 1, g.Session().Wave)
	assert.Equal(t, 3, g.clock.Pending())
}

func TestFirstSpawnsIssueOnFirstTick(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	g.Update(Controls{})

	// The first straight and the first path spawn have no delay.
	assert.Equal(t, 1, g.Registry().Count(object.KindStraightEnemy))
	assert.Equal(t, 1, g.Registry().Count(object.KindPathEnemy))
	assert.Equal(t, 2, g.Session().EnemiesLeft)
	assert.Equal(t, 1, g.Wave().Pending())

	run(g, ticksFor(StraightEnemySpawnInterval))
	assert.Equal(t, 3, g.Session().EnemiesLeft)
	assert.Zero(t, g.Wave().Pending())
}

func TestSpawnPositionsWithinRange(t *testing.T) {
	g, _ := newTestGame(t)
	for i := 0; i < 200; i++ {
		g.spawnStraightEnemy()
		g.spawnPathEnemy()
	}
	for _, e := range g.registry.Snapshot(object.KindStraightEnemy) {
		assert.GreaterOrEqual(t, e.X, float64(StraightEnemyMinX))
		assert.LessOrEqual(t, e.X, float64(StraightEnemyMaxX))
		assert.Equal(t, float64(StraightEnemySpawnY), e.Y)
	}
	for _, e := range g.registry.Snapshot(object.KindPathEnemy) {
		assert.GreaterOrEqual(t, e.X, float64(PathEnemyMinX))
		assert.LessOrEqual(t, e.X, float64(PathEnemyMaxX))
		assert.Equal(t, float64(PathEnemySpawnY), e.Y)
		assert.Equal(t, e.X+PathEnemyTravelX, e.Path.To.X)
		assert.Equal(t, float64(PathEnemySpawnY+PathEnemyTravelY), e.Path.To.Y)
	}
	assert.Equal(t, 400, g.Session().EnemiesLeft)
}

func TestPlayerMovementIsClamped(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()

	g.Update(Controls{Right: true})
	assert.Equal(t, float64(PlayerStartX+PlayerSpeed), g.Player().X)
	g.Update(Controls{Left: true, Right: true})
	assert.Equal(t, float64(PlayerStartX+PlayerSpeed), g.Player().X)

	g.player.X = PlayerMaxX - 3
	g.movePlayer(Controls{Right: true})
	assert.Equal(t, float64(PlayerMaxX), g.Player().X)

	g.player.X = PlayerMinX + 3
	g.movePlayer(Controls{Left: true})
	assert.Equal(t, float64(PlayerMinX), g.Player().X)
}

func TestFireSpawnsBulletAbovePlayer(t *testing.T) {
	g, snd := newTestGame(t)
	g.phase = PhaseWaveActive

	g.fire()
	b := g.Registry().Last(object.KindPlayerBullet)
	require.NotNil(t, b)
	assert.Equal(t, float64(PlayerStartX), b.X)
	assert.Equal(t, float64(PlayerStartY-PlayerBulletOffsetY), b.Y)
	assert.Equal(t, 1, snd.count(SoundLaser))
}

func TestPlayerBulletLeavesTopEdge(t *testing.T) {
	g, _ := newTestGame(t)
	b := g.registry.Spawn(object.Entity{Kind: object.KindPlayerBullet, X: 100, Y: -10, Width: BulletSize, Height: BulletSize})

	g.moveEntities()
	assert.True(t, b.Destroyed())
}

func TestStraightEnemyLeavingBottomResolves(t *testing.T) {
	g, _ := newTestGame(t)
	g.phase = PhaseWaveActive
	g.session.EnemiesLeft = 2
	e := g.registry.Spawn(object.Entity{Kind: object.KindStraightEnemy, X: 100, Y: StraightEnemyMaxY - 2, Width: StraightEnemySize, Height: StraightEnemySize})

	g.moveEntities()
	assert.True(t, e.Destroyed())
	assert.Equal(t, 1, g.Session().EnemiesLeft)
	assert.Zero(t, g.Session().Score)
	assert.Equal(t, PhaseWaveActive, g.Phase())
}

func TestEnemyBulletBounds(t *testing.T) {
	g, _ := newTestGame(t)
	down := g.registry.Spawn(object.Entity{Kind: object.KindEnemyBullet, X: 100, Y: EnemyBulletMaxY - 5})
	side := g.registry.Spawn(object.Entity{Kind: object.KindEnemyBullet, X: EnemyBulletMinX + 5, Y: 100})
	side.SetVelocity(physics.Vec{X: -10})
	still := g.registry.Spawn(object.Entity{Kind: object.KindEnemyBullet, X: 100, Y: 100})

	g.moveEntities()
	assert.True(t, down.Destroyed())
	assert.True(t, side.Destroyed())
	require.True(t, still.Alive())
	assert.Equal(t, float64(100+EnemyBulletSpeed), still.Y)
}

func TestPathEnemyFollowsPath(t *testing.T) {
	g, _ := newTestGame(t)
	g.phase = PhaseWaveActive
	g.session.EnemiesLeft = 1
	g.spawnPathEnemy()
	e := g.registry.Last(object.KindPathEnemy)
	require.NotNil(t, e)
	start := e.Position()

	want := math.Atan2(PathEnemyTravelY, PathEnemyTravelX)
	assert.InDelta(t, want, e.Heading, 1e-9)

	g.moveEntities()
	assert.Greater(t, e.X, start.X)
	assert.Greater(t, e.Y, start.Y)
	assert.InDelta(t, want, e.Heading, 1e-9)

	ticks := 1
	for e.Alive() && ticks < 1000 {
		g.moveEntities()
		ticks++
	}
	assert.Equal(t, ticksFor(PathEnemyDuration), ticks)
	assert.InDelta(t, start.X+PathEnemyTravelX, e.X, 1e-9)
	assert.InDelta(t, start.Y+PathEnemyTravelY, e.Y, 1e-9)
	assert.Equal(t, 1, g.Session().EnemiesLeft, "one of the two counted enemies remains")
	assert.Zero(t, g.Session().Score)
}

func TestStraightEnemyFiresDown(t *testing.T) {
	g, _ := newTestGame(t)
	g.phase = PhaseWaveActive
	g.spawnStraightEnemy()
	e := g.registry.Last(object.KindStraightEnemy)
	require.NotNil(t, e)

	g.clock.Advance(StraightEnemyFireInterval)
	b := g.registry.Last(object.KindEnemyBullet)
	require.NotNil(t, b)
	assert.Equal(t, e.X, b.X)
	assert.Equal(t, e.Y+StraightEnemyMuzzleOffsetY, b.Y)
	assert.False(t, b.HasVelocity)

	g.registry.Destroy(e)
	g.clock.Advance(2 * StraightEnemyFireInterval)
	assert.Equal(t, 1, g.registry.Count(object.KindEnemyBullet), "destroyed enemies stop firing")
}

func TestPathEnemyAimsAtPlayer(t *testing.T) {
	g, _ := newTestGame(t)
	g.phase = PhaseWaveActive
	g.spawnPathEnemy()
	e := g.registry.Last(object.KindPathEnemy)
	require.NotNil(t, e)
	e.X, e.Y = g.player.X, 100

	g.clock.Advance(PathEnemyFireInterval)
	b := g.registry.Last(object.KindEnemyBullet)
	require.NotNil(t, b)
	require.True(t, b.HasVelocity)
	assert.InDelta(t, 0, b.Velocity.X, 1e-9)
	assert.InDelta(t, EnemyBulletSpeed, b.Velocity.Y, 1e-9)
}

func TestBulletHitsEnemy(t *testing.T) {
	g, snd := newTestGame(t)
	g.phase = PhaseWaveActive
	g.session.EnemiesLeft = 1
	e := g.registry.Spawn(object.Entity{Kind: object.KindStraightEnemy, X: 100, Y: 100, Width: StraightEnemySize, Height: StraightEnemySize})
	b := g.registry.Spawn(object.Entity{Kind: object.KindPlayerBullet, X: 100, Y: 100, Width: BulletSize, Height: BulletSize})

	g.resolveCombat()
	assert.True(t, e.Destroyed())
	assert.True(t, b.Destroyed())
	assert.Equal(t, ScoreStraightEnemy, g.Session().Score)
	assert.Zero(t, g.Session().EnemiesLeft)
	assert.Equal(t, 1, snd.count(SoundBoom))
	assert.Equal(t, PhaseWaveClear, g.Phase())
}

func TestBulletHitsOnlyOneEnemy(t *testing.T) {
	g, _ := newTestGame(t)
	g.phase = PhaseWaveActive
	g.session.EnemiesLeft = 3
	g.registry.Spawn(object.Entity{Kind: object.KindStraightEnemy, X: 100, Y: 100, Width: StraightEnemySize, Height: StraightEnemySize})
	g.registry.Spawn(object.Entity{Kind: object.KindStraightEnemy, X: 105, Y: 100, Width: StraightEnemySize, Height: StraightEnemySize})
	g.registry.Spawn(object.Entity{Kind: object.KindPathEnemy, X: 100, Y: 100, Width: PathEnemySize, Height: PathEnemySize, Path: &object.Path{Duration: time.Second}})
	g.registry.Spawn(object.Entity{Kind: object.KindPlayerBullet, X: 100, Y: 100, Width: BulletSize, Height: BulletSize})

	g.resolveCombat()
	assert.Equal(t, ScoreStraightEnemy, g.Session().Score)
	assert.Equal(t, 1, g.registry.Count(object.KindStraightEnemy))
	assert.Equal(t, 1, g.registry.Count(object.KindPathEnemy))
	assert.Equal(t, 2, g.Session().EnemiesLeft)
}

func TestPathEnemyScore(t *testing.T) {
	g, _ := newTestGame(t)
	g.phase = PhaseWaveActive
	g.session.EnemiesLeft = 1
	g.registry.Spawn(object.Entity{Kind: object.KindPathEnemy, X: 300, Y: 200, Width: PathEnemySize, Height: PathEnemySize, Path: &object.Path{Duration: time.Second}})
	g.registry.Spawn(object.Entity{Kind: object.KindPlayerBullet, X: 310, Y: 215, Width: BulletSize, Height: BulletSize})

	g.resolveCombat()
	assert.Equal(t, ScorePathEnemy, g.Session().Score)
}

func TestEnemyBulletHitsPlayer(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	pips := g.registry.Snapshot(object.KindHealthPip)
	require.Len(t, pips, MaxHealth)

	g.registry.Spawn(object.Entity{Kind: object.KindEnemyBullet, X: g.player.X, Y: g.player.Y - 20, Width: BulletSize, Height: BulletSize})
	g.Update(Controls{})

	assert.Equal(t, MaxHealth-1, g.Session().Health)
	assert.True(t, pips[MaxHealth-1].Destroyed(), "the rightmost pip goes first")
	assert.True(t, pips[0].Alive())
	assert.Equal(t, MaxHealth-1, g.registry.Count(object.KindHealthPip))
	assert.Zero(t, g.registry.Count(object.KindEnemyBullet))
	assert.Equal(t, PhaseWaveActive, g.Phase())
}

func TestDefeat(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	g.loseHealth()
	g.loseHealth()
	require.Equal(t, 1, g.Session().Health)

	// Two bullets on the same tick: the second is ignored once the session ends.
	for i := 0; i < 2; i++ {
		g.registry.Spawn(object.Entity{Kind: object.KindEnemyBullet, X: g.player.X, Y: g.player.Y - 20, Width: BulletSize, Height: BulletSize})
	}
	g.Update(Controls{})

	s := g.Session()
	assert.Equal(t, PhaseDefeat, g.Phase())
	assert.Equal(t, OutcomeLost, s.Outcome)
	assert.Zero(t, s.Health)
	assert.Zero(t, g.registry.Count(object.KindHealthPip))
	assert.Zero(t, g.clock.Pending())

	// A finished session is frozen.
	now := g.Now()
	x := g.player.X
	run(g, 300)
	g.Update(Controls{Left: true, Fire: true})
	assert.Equal(t, s, g.Session())
	assert.Equal(t, now, g.Now())
	assert.Equal(t, x, g.player.X)
	assert.Zero(t, g.registry.Count(object.KindPlayerBullet))
}

func TestVictory(t *testing.T) {
	g, snd := newTestGame(t)
	g.Start()

	waves := []int{1}
	for i := 0; i < 60*TickRate && !g.Session().Terminal(); i++ {
		snipeAll(g)
		g.Update(Controls{})

		s := g.Session()
		assert.GreaterOrEqual(t, s.EnemiesLeft, 0)
		assert.Equal(t, MaxHealth, s.Health)
		if s.Wave != waves[len(waves)-1] {
			waves = append(waves, s.Wave)
		}
	}

	s := g.Session()
	require.Equal(t, PhaseVictory, g.Phase())
	assert.Equal(t, OutcomeWon, s.Outcome)
	assert.Equal(t, MaxWaves, s.Wave)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, waves)
	assert.Equal(t, 30*ScoreStraightEnemy+15*ScorePathEnemy, s.Score)
	assert.Equal(t, 45, snd.count(SoundBoom))
	assert.Zero(t, g.clock.Pending())
}

func TestWaveWaitsForDelayedSpawns(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()

	// Resolve the two enemies issued on the first tick before the third spawns.
	g.Update(Controls{})
	for _, e := range g.registry.Snapshot(object.KindStraightEnemy) {
		g.registry.Destroy(e)
		g.resolveEnemy()
	}
	for _, e := range g.registry.Snapshot(object.KindPathEnemy) {
		g.registry.Destroy(e)
		g.resolveEnemy()
	}
	require.Zero(t, g.EnemiesOnScreen())
	require.Zero(t, g.Session().EnemiesLeft)
	assert.Equal(t, PhaseWaveActive, g.Phase())
	assert.Equal(t, 1, g.Wave().Pending())
}

func TestWaveAdvancesAfterDelay(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	for i := 0; i < 5*TickRate && g.Phase() != PhaseWaveClear; i++ {
		snipeAll(g)
		g.Update(Controls{})
	}
	require.Equal(t, PhaseWaveClear, g.Phase())
	require.Equal(t, 1, g.Session().Wave)

	run(g, ticksFor(WaveAdvanceDelay)-1)
	assert.Equal(t, PhaseWaveClear, g.Phase())
	g.Update(Controls{})
	assert.Equal(t, PhaseWaveActive, g.Phase())
	assert.Equal(t, 2, g.Session().Wave)
	// The undelayed spawns of the new wave are issued on the same tick.
	assert.Equal(t, NewWave(2).Total()-2, g.Wave().Pending())
	assert.Equal(t, 2, g.Session().EnemiesLeft)
}

func TestOffscreenExitsClearWave(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()

	// Never fire, and park the ship out of reach of enemy bullets.
	g.player.Y = -1000
	for i := 0; i < 10*TickRate && g.Phase() != PhaseWaveClear; i++ {
		g.Update(Controls{})
	}
	assert.Equal(t, MaxHealth, g.Session().Health)
	assert.Equal(t, PhaseWaveClear, g.Phase())
	assert.Zero(t, g.Session().Score)
	assert.Zero(t, g.Session().EnemiesLeft)
}

func TestNewWaveComposition(t *testing.T) {
	for n := 1; n <= MaxWaves; n++ {
		w := NewWave(n)
		assert.Equal(t, n, w.Number)
		assert.Equal(t, 2*n, w.Straight)
		assert.Equal(t, n, w.Path)
		assert.Equal(t, 3*n, w.Total())
		assert.Equal(t, StraightEnemySpawnInterval, w.StraightCadence)
		assert.Equal(t, PathEnemySpawnInterval, w.PathCadence)
	}
}

func TestRestartCancelsSession(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	run(g, 30)
	g.fire()
	g.loseHealth()
	require.NotZero(t, g.EnemiesOnScreen())

	g.Restart()
	assert.Equal(t, PhaseIdle, g.Phase())
	assert.Equal(t, NewSession(), g.Session())
	assert.Zero(t, g.clock.Pending())
	assert.Zero(t, g.EnemiesOnScreen())
	assert.Zero(t, g.registry.Count(object.KindPlayerBullet))
	assert.Equal(t, MaxHealth, g.registry.Count(object.KindHealthPip))
	assert.Equal(t, float64(PlayerStartX), g.player.X)

	g.Start()
	assert.Equal(t, 1, g.Session().Wave)
	assert.Equal(t, 3, g.clock.Pending())
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	stale := g.epoch

	// A callback scheduled for an earlier session does nothing.
	g.Restart()
	g.Start()
	current := g.epoch
	require.NotEqual(t, stale, current)
	g.epoch = stale
	g.scheduleSpawn(0, g.spawnStraightEnemy)
	g.epoch = current
	g.clock.Advance(0)

	assert.Equal(t, 1, g.registry.Count(object.KindStraightEnemy), "only the current session spawned")
}

func TestRetryRestartsFinishedSession(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	g.session.Score = 500
	g.finish(OutcomeLost)
	require.Equal(t, PhaseDefeat, g.Phase())

	g.Update(Controls{})
	assert.Equal(t, PhaseDefeat, g.Phase())

	g.Update(Controls{Retry: true})
	assert.Equal(t, PhaseWaveActive, g.Phase())
	s := g.Session()
	assert.Zero(t, s.Score)
	assert.Equal(t, MaxHealth, s.Health)
	assert.Equal(t, 1, s.Wave)
	assert.Equal(t, OutcomeNone, s.Outcome)
}

func TestRetryIgnoredDuringPlay(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()
	run(g, 10)
	now := g.Now()

	g.Update(Controls{Retry: true})
	assert.Equal(t, now+TickDuration, g.Now())
	assert.Equal(t, 1, g.Session().Wave)
}

func TestHealthNeverIncreases(t *testing.T) {
	g, _ := newTestGame(t)
	g.Start()

	last := g.Session().Health
	for i := 0; i < 90*TickRate && !g.Session().Terminal(); i++ {
		g.Update(Controls{Fire: i%7 == 0, Left: i%200 < 100, Right: i%200 >= 100})
		s := g.Session()
		require.LessOrEqual(t, s.Health, last)
		require.GreaterOrEqual(t, s.EnemiesLeft, 0)
		require.Equal(t, s.Health, g.registry.Count(object.KindHealthPip))
		last = s.Health
	}
}
