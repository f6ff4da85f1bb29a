package game

import "time"

// Gameplay constants. Movement values are per tick; the simulation runs at
// TickRate ticks per second of virtual time.

// Timing
const (
	TickRate     = 60
	TickDuration = time.Second / TickRate
)

// Play area
const (
	PlayAreaWidth  = 800
	PlayAreaHeight = 600
)

// Session
const (
	MaxWaves         = 5
	MaxHealth        = 3
	WaveAdvanceDelay = 1000 * time.Millisecond
)

// Scoring
const (
	ScoreStraightEnemy = 100
	ScorePathEnemy     = 50
)

// Player
const (
	PlayerStartX        = 400
	PlayerStartY        = 550
	PlayerSpeed         = 10
	PlayerMinX          = 20
	PlayerMaxX          = 780
	PlayerSize          = 32
	PlayerBulletSpeed   = 15
	PlayerBulletOffsetY = 10  // Bullets leave from just above the ship
	PlayerBulletMinY    = -20 // Removed once above this line
	BulletSize          = 16
)

// Straight enemies
const (
	StraightEnemySpeed         = 6
	StraightEnemyMaxY          = 620
	StraightEnemyMinX          = 50
	StraightEnemyMaxX          = 750
	StraightEnemySpawnY        = 0
	StraightEnemySize          = 32
	StraightEnemySpawnInterval = 500 * time.Millisecond
	StraightEnemyFireInterval  = 1500 * time.Millisecond
	StraightEnemyMuzzleOffsetY = 10
)

// Path enemies
const (
	PathEnemyMinX          = 100
	PathEnemyMaxX          = 700
	PathEnemySpawnY        = -50
	PathEnemyTravelX       = 300
	PathEnemyTravelY       = 600
	PathEnemyDuration      = 5000 * time.Millisecond
	PathEnemySize          = 32 * 1.2
	PathEnemySpawnInterval = 800 * time.Millisecond
	PathEnemyFireInterval  = 1700 * time.Millisecond
)

// Enemy bullets
const (
	EnemyBulletSpeed = 10
	EnemyBulletMinX  = -20
	EnemyBulletMaxX  = 820
	EnemyBulletMinY  = -20
	EnemyBulletMaxY  = 620
)

// Health pips
const (
	HealthPipX       = 30
	HealthPipY       = 30
	HealthPipSpacing = 50
	HealthPipSize    = 16 * 3
)

// Sound effect names passed to Sound.Play.
const (
	SoundLaser = "laser"
	SoundBoom  = "boom"
)
