// Package audio synthesizes and plays the game's sound effects.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Sound names understood by Player.Play.
const (
	SoundLaser = "laser"
	SoundBoom  = "boom"
)

const (
	sampleRate   = beep.SampleRate(44100)
	bufferLength = 50 * time.Millisecond
)

// Player mixes sound effects onto the default audio device.
// Play never blocks the caller on audio output.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         *log.Logger
}

// NewPlayer creates a player. volume is linear, 1 is full scale.
// A nil logger discards log output.
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: volume,
		log:    logger,
	}
}

// Initialize opens the audio device. Until it succeeds, Play is silent.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(bufferLength)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.Debug("audio initialized", "rate", int(sampleRate))
	return nil
}

// Play starts the named effect. Unknown names are ignored.
func (p *Player) Play(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s := Effect(name, sampleRate, p.volume)
	if s == nil {
		p.log.Warn("unknown sound", "name", name)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close stops playback and releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
