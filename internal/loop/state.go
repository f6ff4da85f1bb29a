package loop

import (
	"github.com/tomz197/skyraid/internal/game"
	"github.com/tomz197/skyraid/internal/input"
)

// Screen is what the front-end currently shows.
type Screen int

const (
	ScreenTitle   Screen = iota // Before the first wave
	ScreenPlaying               // Waves in progress
	ScreenOver                  // Victory or defeat
)

func screenFor(phase game.Phase) Screen {
	switch {
	case phase == game.PhaseIdle:
		return ScreenTitle
	case phase.Terminal():
		return ScreenOver
	default:
		return ScreenPlaying
	}
}

// ClientState holds per-connection front-end state.
type ClientState struct {
	Input   input.Input
	Running bool

	prevScreen  Screen
	isInactive  bool
	wasInactive bool
	borderDirty bool
	frames      int // Frames drawn, drives blinking
}

// NewClientState creates the state for a fresh connection.
func NewClientState() *ClientState {
	return &ClientState{
		Running:     true,
		prevScreen:  -1,
		borderDirty: true,
	}
}

// blinkOn reports whether blinking prompts are visible this frame.
func (s *ClientState) blinkOn() bool {
	period := int(blinkInterval / targetFrameTime)
	return (s.frames/period)%2 == 0
}
