package game

// Phase is the wave controller state.
type Phase int

const (
	PhaseIdle       Phase = iota // Before the first wave
	PhaseWaveActive              // Spawning and fighting the current wave
	PhaseWaveClear               // Wave cleared, waiting to advance
	PhaseVictory                 // Every wave cleared
	PhaseDefeat                  // Health depleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseWaveActive:
		return "wave_active"
	case PhaseWaveClear:
		return "wave_clear"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// Outcome is the terminal result of a session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeLost
	OutcomeWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLost:
		return "lost"
	case OutcomeWon:
		return "won"
	default:
		return "none"
	}
}

// Session holds the counters of one play-through.
type Session struct {
	Score       int
	Health      int
	Wave        int // Current wave, 0 before the first one
	EnemiesLeft int // Spawned enemies of the current wave not yet resolved
	Outcome     Outcome
}

// NewSession returns a session in its starting state.
func NewSession() Session {
	return Session{Health: MaxHealth}
}

// Terminal reports whether the session has ended.
func (s Session) Terminal() bool {
	return s.Outcome != OutcomeNone
}
