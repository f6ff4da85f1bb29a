package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect timings.
const (
	laserDuration = 120 * time.Millisecond
	laserAttack   = 5 * time.Millisecond
	laserRelease  = 70 * time.Millisecond
	laserFromHz   = 1400.0
	laserToHz     = 300.0

	boomDuration = 350 * time.Millisecond
	boomAttack   = 2 * time.Millisecond
	boomRelease  = 300 * time.Millisecond
	boomCutoff   = 0.08 // Low-pass smoothing of the noise, 0..1
)

// sweep is a square wave whose frequency glides linearly between two values.
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(duration), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		t := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*t

		val := -1.0
		if s.phase < 0.5 {
			val = 1.0
		}
		samples[i][0] = val
		samples[i][1] = val

		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// rumble is low-pass filtered white noise.
type rumble struct {
	rng      *rand.Rand
	last     float64
	cutoff   float64
	position int
	duration int
}

func newRumble(duration time.Duration, cutoff float64, seed int64, rate beep.SampleRate) beep.Streamer {
	return &rumble{
		rng:      rand.New(rand.NewSource(seed)),
		cutoff:   cutoff,
		duration: rate.N(duration),
	}
}

func (r *rumble) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if r.position >= r.duration {
			return i, i > 0
		}
		white := r.rng.Float64()*2 - 1
		r.last += r.cutoff * (white - r.last)

		samples[i][0] = r.last
		samples[i][1] = r.last
		r.position++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	releaseStart int
	release      int
	total        int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       rate.N(attack),
		release:      rel,
		releaseStart: max(total-rel, 0),
		total:        total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(float64(e.total-e.position)/float64(e.release), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. math.Log2(0) is -Inf, so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Effect returns a fresh streamer for a named sound, or nil if the name is unknown.
func Effect(name string, rate beep.SampleRate, volume float64) beep.Streamer {
	switch name {
	case SoundLaser:
		osc := newSweep(laserFromHz, laserToHz, laserDuration, rate)
		return newVolume(newEnvelope(osc, laserDuration, laserAttack, laserRelease, rate), 0.3*volume)
	case SoundBoom:
		noise := newRumble(boomDuration, boomCutoff, time.Now().UnixNano(), rate)
		return newVolume(newEnvelope(noise, boomDuration, boomAttack, boomRelease, rate), volume)
	default:
		return nil
	}
}
