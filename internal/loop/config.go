package loop

import (
	"time"

	"github.com/tomz197/skyraid/internal/game"
)

// Frame timing
const (
	targetFPS       = game.TickRate
	targetFrameTime = time.Second / targetFPS
)

// Render area. The logical play area is scaled into at most
// MaxTermWidth x MaxTermHeight cells; larger terminals get a border.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Inactivity: the warning shows for the last quarter of the idle timeout.
const (
	inactivityWarnFraction = 4
)

// Blinking prompts toggle at this interval.
const blinkInterval = 600 * time.Millisecond
