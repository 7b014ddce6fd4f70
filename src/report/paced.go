package report

import (
	"sync"
	"time"

	"github.com/eiannone/keyboard"

	"github.com/dgbarclay/elevator-algorithm/src/timer"
	"github.com/dgbarclay/elevator-algorithm/src/types"
)

// Paced forwards to Next and then holds the reporting run for Delay,
// which slows the simulation down to a watchable speed.
type Paced struct {
	Next  Sink
	Delay time.Duration

	mu     sync.Mutex
	pacers map[string]*timer.Pacer
}

func (p *Paced) Moved(ev types.MoveEvent) {
	p.Next.Moved(ev)
	if !ev.Final {
		p.pacer(ev.RunID).Wait()
	}
}

func (p *Paced) Finished(res types.Result) {
	p.Next.Finished(res)
}

// pacer returns the run's own pacer so concurrent runs do not share a timer.
func (p *Paced) pacer(runID string) *timer.Pacer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pacers == nil {
		p.pacers = make(map[string]*timer.Pacer)
	}
	pacer, ok := p.pacers[runID]
	if !ok {
		pacer = timer.NewPacer(p.Delay)
		p.pacers[runID] = pacer
	}
	return pacer
}

// KeyStep forwards to Next and then waits for a key press before the run continues.
// Pressing f runs the rest without stopping. Requires an interactive terminal.
type KeyStep struct {
	Next Sink

	mu          sync.Mutex
	fastForward bool
}

// OpenKeyStep puts the terminal in raw mode. Call Close when done.
func OpenKeyStep(next Sink) (*KeyStep, error) {
	if err := keyboard.Open(); err != nil {
		return nil, err
	}
	return &KeyStep{Next: next}, nil
}

func (k *KeyStep) Moved(ev types.MoveEvent) {
	k.Next.Moved(ev)
	if ev.Final {
		return
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.fastForward {
		return
	}
	char, key, err := keyboard.GetKey()
	if err != nil || key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'f' {
		k.fastForward = true
	}
}

func (k *KeyStep) Finished(res types.Result) {
	k.Next.Finished(res)
}

func (k *KeyStep) Close() error {
	return keyboard.Close()
}
