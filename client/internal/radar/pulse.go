package radar

// Pulse is a short frame-counted highlight, restarted on every trigger.
type Pulse struct {
	ticks, total int
}

func (p *Pulse) Trigger(frames int) {
	p.ticks, p.total = frames, frames
}

func (p *Pulse) Step() {
	if p.ticks > 0 {
		p.ticks--
	}
}

func (p *Pulse) Active() bool { return p.ticks > 0 }

// Strength fades from 1 to 0 over the pulse.
func (p *Pulse) Strength() float64 {
	if p.total == 0 || p.ticks <= 0 {
		return 0
	}
	return float64(p.ticks) / float64(p.total)
}
