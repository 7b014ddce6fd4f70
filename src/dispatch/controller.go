// Contains the floor-stop state machine shared by both dispatch policies.
package dispatch

import (
	"errors"

	"github.com/dgbarclay/elevator-algorithm/src/building"
	"github.com/dgbarclay/elevator-algorithm/src/lift"
	"github.com/dgbarclay/elevator-algorithm/src/logger"
	"github.com/dgbarclay/elevator-algorithm/src/types"
)

var ErrStepLimit = errors.New("step limit exceeded")

// Controller drives one lift through one building until every passenger is delivered.
// It is synchronous and owns both the building and the lift for the duration of a run.
type Controller struct {
	building *building.Building
	lift     *lift.Lift
	policy   Policy
	dir      types.Direction
	state    types.ControllerState

	Stops     int
	Reversals int
	Boarded   int
	Delivered int
}

func NewController(b *building.Building, l *lift.Lift, policy Policy) *Controller {
	if b == nil || l == nil || policy == nil {
		panic("dispatch: controller needs a building, a lift and a policy")
	}
	if b.Floors != l.Floors {
		panic("dispatch: lift and building disagree on floor count")
	}
	return &Controller{
		building: b,
		lift:     l,
		policy:   policy,
		dir:      types.Up,
		state:    types.MovingUp,
	}
}

func (c *Controller) State() types.ControllerState {
	return c.state
}

func (c *Controller) Direction() types.Direction {
	return c.dir
}

// Step serves the floor the lift is at and then moves on.
//  1. Turn around first if the lift is at the end of its travel direction
//  2. Board, sort, decide whether to keep going, unload, board again
//  3. Stop for good once the building is drained and the lift is empty
//  4. Otherwise move one floor on, turning around early if the policy says so
func (c *Controller) Step() types.MoveEvent {
	if c.state == types.Terminated {
		return types.MoveEvent{Floor: c.lift.Position, Dir: c.dir, Lift: c.lift.Snapshot(), Final: true}
	}
	floor := c.lift.Position
	if c.atEndOfTravel() {
		c.reverse()
	}
	manifest := c.lift.Manifest

	boarded := c.policy.Board(c.building, manifest, floor, c.dir)
	manifest.Reorder()
	keepGoing := c.policy.Continue(c.building, manifest, floor, c.dir)
	delivered := c.disembark(floor)
	boarded += c.policy.Board(c.building, manifest, floor, c.dir)

	c.Stops++
	c.Boarded += boarded
	c.Delivered += delivered

	event := types.MoveEvent{
		Policy:    c.policy.Name(),
		Floor:     floor,
		Dir:       c.dir,
		Boarded:   boarded,
		Delivered: delivered,
		Waiting:   c.building.WaitingAt(floor),
		Lift:      c.lift.Snapshot(),
	}
	logger.Get().Debug().
		Str("policy", event.Policy).
		Int("floor", floor).
		Stringer("dir", c.dir).
		Int("boarded", boarded).
		Int("delivered", delivered).
		Int("onboard", manifest.Size()).
		Int("waiting", event.Waiting).
		Bool("continue", keepGoing).
		Msg("Floor stop")

	if c.building.IsFullyDrained() && manifest.IsEmpty() {
		c.state = types.Terminated
		event.Final = true
		return event
	}

	if keepGoing {
		c.lift.Advance(c.dir)
	} else {
		c.turnAround(floor)
	}
	return event
}

// Run steps until the controller terminates. maxSteps <= 0 means no bound.
func (c *Controller) Run(maxSteps int, onMove func(types.MoveEvent)) error {
	for steps := 0; c.state != types.Terminated; steps++ {
		if maxSteps > 0 && steps >= maxSteps {
			return ErrStepLimit
		}
		event := c.Step()
		if onMove != nil {
			onMove(event)
		}
	}
	return nil
}

func (c *Controller) disembark(floor int) (delivered int) {
	manifest := c.lift.Manifest
	if manifest.IsEmpty() {
		return 0
	}
	for manifest.RemoveOneMatching(floor) {
		c.lift.Deliver()
		delivered++
	}
	return delivered
}

func (c *Controller) atEndOfTravel() bool {
	switch c.dir {
	case types.Up:
		return c.lift.Position == c.lift.Floors-1
	case types.Down:
		return c.lift.Position == 0
	}
	return false
}

// turnAround ends a sweep before the extreme floor. The move is always counted.
// Going up, the lift moves on one floor and serves it on the way down.
// Going down, the counted move is taken back and the upward pass restarts at floor.
// Neither move can leave the building: the extreme floors reverse before serving.
func (c *Controller) turnAround(floor int) {
	c.lift.Advance(c.dir)
	if c.dir == types.Down {
		c.lift.Reposition(floor)
	}
	c.reverse()
}

func (c *Controller) reverse() {
	c.dir = c.dir.Opposite()
	c.state = types.StateFor(c.dir)
	c.Reversals++
}
