package vad

import "time"

// Event is what the gate concluded from one frame.
type Event int

const (
	Waiting Event = iota
	Started
	Speaking
	Ended
)

func (e Event) String() string {
	switch e {
	case Started:
		return "started"
	case Speaking:
		return "speaking"
	case Ended:
		return "ended"
	default:
		return "waiting"
	}
}

// onsetRatio is how much the flux must jump for speech to start, and fall
// for a frame to count as quiet.
const onsetRatio = 1.75

// Gate turns a stream of flux scores into speech start and end events.
// Speech ends once frames have stayed quiet for longer than QuietTime.
type Gate struct {
	QuietTime time.Duration

	heardSomething bool
	quiet          bool
	quietStart     time.Time
	lastFlux       float64
}

func NewGate(quietTime time.Duration) *Gate {
	return &Gate{QuietTime: quietTime}
}

func (g *Gate) Observe(flux float64, now time.Time) Event {
	if g.lastFlux == 0 {
		g.lastFlux = flux

		return g.current()
	}

	if !g.heardSomething {
		if flux >= g.lastFlux*onsetRatio {
			g.heardSomething = true
			g.lastFlux = flux

			return Started
		}

		g.lastFlux = flux

		return Waiting
	}

	if flux*onsetRatio <= g.lastFlux {
		if !g.quiet {
			g.quietStart = now
		} else if now.Sub(g.quietStart) > g.QuietTime {
			return Ended
		}

		g.quiet = true

		return Speaking
	}

	g.quiet = false
	g.lastFlux = flux

	return Speaking
}

func (g *Gate) current() Event {
	if g.heardSomething {
		return Speaking
	}

	return Waiting
}
