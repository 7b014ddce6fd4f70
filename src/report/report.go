// Package report receives what the simulation emits: one event per floor-stop and a result per run.
package report

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dgbarclay/elevator-algorithm/src/types"
)

// Sink observes a run. Implementations must tolerate concurrent runs.
type Sink interface {
	Moved(ev types.MoveEvent)
	Finished(res types.Result)
}

// Discard ignores everything.
type Discard struct{}

func (Discard) Moved(types.MoveEvent) {}
func (Discard) Finished(types.Result) {}

// Multi fans events out to several sinks in order.
type Multi []Sink

func (m Multi) Moved(ev types.MoveEvent) {
	for _, s := range m {
		s.Moved(ev)
	}
}

func (m Multi) Finished(res types.Result) {
	for _, s := range m {
		s.Finished(res)
	}
}

// LogSink writes every floor-stop and result as a structured log line.
type LogSink struct {
	Log *zerolog.Logger
}

func (s LogSink) Moved(ev types.MoveEvent) {
	s.Log.Debug().
		Str("run", ev.RunID).
		Str("policy", ev.Policy).
		Int("floor", ev.Floor).
		Stringer("dir", ev.Dir).
		Int("delivered", ev.Delivered).
		Int("waiting", ev.Waiting).
		Int("moves", ev.Lift.TotalMoves).
		Int("remaining", ev.Lift.PassengersRemaining).
		Msg("Lift moved")
}

func (s LogSink) Finished(res types.Result) {
	msg := "All passengers delivered"
	if !res.Completed {
		msg = "Run stopped before delivering everyone"
	}
	s.Log.Info().
		Str("run", res.RunID).
		Str("policy", res.Policy).
		Int("capacity", res.Capacity).
		Int("moves", res.Lift.TotalMoves).
		Int("delivered", res.Delivered).
		Int("stops", res.Stops).
		Int("reversals", res.Reversals).
		Bool("completed", res.Completed).
		Msg(msg)
}

// Recorder keeps every event and result in memory.
type Recorder struct {
	mu      sync.Mutex
	events  []types.MoveEvent
	results []types.Result
}

func (r *Recorder) Moved(ev types.MoveEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Finished(res types.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Events returns the recorded events of one run, or of all runs when runID is empty.
func (r *Recorder) Events(runID string) []types.MoveEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []types.MoveEvent
	for _, ev := range r.events {
		if runID == "" || ev.RunID == runID {
			out = append(out, ev)
		}
	}
	return out
}

func (r *Recorder) Results() []types.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]types.Result, len(r.results))
	copy(out, r.results)
	return out
}
