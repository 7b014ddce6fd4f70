package timer

import (
	"time"
)

// Pacer spaces out lift moves so a viewer can follow them.
type Pacer struct {
	delay time.Duration
	timer *time.Timer
}

// NewPacer returns a pacer waiting delay per call. A delay <= 0 never waits.
func NewPacer(delay time.Duration) *Pacer {
	p := &Pacer{delay: delay}
	if delay > 0 {
		p.timer = time.NewTimer(delay)
		p.timer.Stop()
	}
	return p
}

// Wait blocks for one delay period.
func (p *Pacer) Wait() {
	if p.timer == nil {
		return
	}
	resetTimer(p.timer, p.delay)
	<-p.timer.C
}

// Stops the timer and resets it.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
