// Package runner owns one building and one lift per policy and drives them to completion.
package runner

import (
	"fmt"
	"sync"

	"github.com/xyproto/randomstring"

	"github.com/dgbarclay/elevator-algorithm/src/building"
	"github.com/dgbarclay/elevator-algorithm/src/config"
	"github.com/dgbarclay/elevator-algorithm/src/dispatch"
	"github.com/dgbarclay/elevator-algorithm/src/lift"
	"github.com/dgbarclay/elevator-algorithm/src/logger"
	"github.com/dgbarclay/elevator-algorithm/src/report"
	"github.com/dgbarclay/elevator-algorithm/src/types"
)

// Generator produces the initial demand of a comparison.
type Generator interface {
	Generate(floors int) *building.Building
}

type Options struct {
	Capacity int
	MaxSteps int // 0 derives a bound from the demand
	Parallel bool
}

// Runner is one policy run: it owns its building and lift exclusively.
type Runner struct {
	ID       string
	policy   dispatch.Policy
	building *building.Building
	lift     *lift.Lift
	sink     report.Sink
	maxSteps int
}

func New(policy dispatch.Policy, b *building.Building, sink report.Sink, opts Options) *Runner {
	if opts.Capacity == 0 {
		opts.Capacity = config.DefaultCapacity
	}
	if sink == nil {
		sink = report.Discard{}
	}
	waiting := b.Waiting()
	maxSteps := opts.MaxSteps
	if maxSteps == 0 {
		maxSteps = StepBound(b.Floors, opts.Capacity, waiting)
	}
	return &Runner{
		ID:       newRunID(),
		policy:   policy,
		building: b,
		lift:     lift.New(opts.Capacity, b.Floors, waiting),
		sink:     sink,
		maxSteps: maxSteps,
	}
}

// randomstring shares one unguarded source.
var idMu sync.Mutex

func newRunID() string {
	idMu.Lock()
	defer idMu.Unlock()
	return randomstring.HumanFriendlyEnglishString(config.RunIDLength)
}

// StepBound is the number of floor-stops after which a run is considered stuck.
func StepBound(floors, capacity, passengers int) int {
	return 4 * floors * (passengers + capacity)
}

// Run drives the controller from floor 0 until every passenger is delivered,
// reporting each stop and the final result to the sink.
func (r *Runner) Run() (types.Result, error) {
	log := logger.Get().With().Str("run", r.ID).Str("policy", r.policy.Name()).Logger()
	log.Info().
		Int("floors", r.building.Floors).
		Int("passengers", r.lift.PassengersRemaining).
		Int("capacity", r.lift.Manifest.Capacity()).
		Int("maxSteps", r.maxSteps).
		Msg("Starting run")

	c := dispatch.NewController(r.building, r.lift, r.policy)
	err := c.Run(r.maxSteps, func(ev types.MoveEvent) {
		ev.RunID = r.ID
		r.sink.Moved(ev)
	})

	result := types.Result{
		RunID:     r.ID,
		Policy:    r.policy.Name(),
		Capacity:  r.lift.Manifest.Capacity(),
		Lift:      r.lift.Snapshot(),
		Delivered: c.Delivered,
		Boarded:   c.Boarded,
		Stops:     c.Stops,
		Reversals: c.Reversals,
		Completed: c.State() == types.Terminated,
	}
	r.sink.Finished(result)
	if err != nil {
		log.Error().Err(err).Int("stops", c.Stops).Msg("Run did not finish")
		return result, fmt.Errorf("run %s (%s): %w", r.ID, r.policy.Name(), err)
	}
	log.Info().Int("moves", result.Lift.TotalMoves).Msg("Run finished")
	return result, nil
}

// Compare runs every policy against its own deep copy of b, so all runs see identical demand.
// Results are returned in policy order.
func Compare(b *building.Building, policies []dispatch.Policy, sink report.Sink, opts Options) ([]types.Result, error) {
	runners := make([]*Runner, len(policies))
	for i, policy := range policies {
		runners[i] = New(policy, b.Clone(), sink, opts)
	}

	results := make([]types.Result, len(runners))
	errs := make([]error, len(runners))
	if opts.Parallel {
		var wg sync.WaitGroup
		for i, r := range runners {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], errs[i] = r.Run()
			}()
		}
		wg.Wait()
	} else {
		for i, r := range runners {
			results[i], errs[i] = r.Run()
		}
	}

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// CompareGenerated draws fresh demand from gen and compares the policies on it.
// The returned building is the untouched initial demand.
func CompareGenerated(gen Generator, floors int, policies []dispatch.Policy, sink report.Sink, opts Options) (*building.Building, []types.Result, error) {
	b := gen.Generate(floors)
	results, err := Compare(b, policies, sink, opts)
	return b, results, err
}
