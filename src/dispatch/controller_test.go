package dispatch

import (
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dgbarclay/elevator-algorithm/src/building"
	"github.com/dgbarclay/elevator-algorithm/src/lift"
	"github.com/dgbarclay/elevator-algorithm/src/logger"
	"github.com/dgbarclay/elevator-algorithm/src/types"
)

func TestMain(m *testing.M) {
	_ = logger.Configure(zerolog.Disabled, "")
	os.Exit(m.Run())
}

func newController(b *building.Building, policy Policy) *Controller {
	return NewController(b, lift.New(10, b.Floors, b.Waiting()), policy)
}

// Four floors: two passengers going up from the ground floor, two going down from the top.
func scenarioBuilding() *building.Building {
	return building.FromQueues(
		[][]int{{2, 3}, {}, {}, {}},
		[][]int{{}, {}, {}, {0, 1}},
	)
}

func TestScenarioBothPolicies(t *testing.T) {
	type stop struct {
		floor     int
		delivered int
	}
	want := []stop{{2, 1}, {3, 1}, {1, 1}, {0, 1}}

	for _, policy := range []Policy{Baseline{}, Improved{}} {
		t.Run(policy.Name(), func(t *testing.T) {
			c := newController(scenarioBuilding(), policy)
			var deliveries []stop
			var last types.MoveEvent
			err := c.Run(100, func(ev types.MoveEvent) {
				if ev.Delivered > 0 {
					deliveries = append(deliveries, stop{ev.Floor, ev.Delivered})
				}
				if ev.Floor == 0 && ev.Lift.TotalMoves == 0 && ev.Boarded != 2 {
					t.Errorf("expected 2 passengers to board at floor 0, got %d", ev.Boarded)
				}
				if ev.Floor == 3 && ev.Boarded != 2 {
					t.Errorf("expected 2 passengers to board at floor 3, got %d", ev.Boarded)
				}
				last = ev
			})
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			if !slices.Equal(deliveries, want) {
				t.Errorf("deliveries = %v, want %v", deliveries, want)
			}
			if !last.Final || c.State() != types.Terminated {
				t.Errorf("run did not terminate: state %v", c.State())
			}
			if last.Lift.TotalMoves != 6 {
				t.Errorf("TotalMoves = %d, want 6", last.Lift.TotalMoves)
			}
			if last.Lift.PassengersRemaining != 0 {
				t.Errorf("PassengersRemaining = %d, want 0", last.Lift.PassengersRemaining)
			}
		})
	}
}

func TestBaselineBoardsBothDirections(t *testing.T) {
	// A down-bound passenger on floor 1 is picked up by the lift on its way up.
	b := building.FromQueues([][]int{{}, {}, {}, {}}, [][]int{{}, {0}, {}, {}})
	c := newController(b, Baseline{})

	c.Step()
	ev := c.Step()
	if ev.Floor != 1 || ev.Dir != types.Up || ev.Boarded != 1 {
		t.Errorf("baseline stop at floor 1 = %+v, want one passenger boarded going up", ev)
	}
	if err := c.Run(100, nil); err != nil {
		t.Fatal(err)
	}
	// Up to the top and back down to the ground floor.
	if got := c.lift.TotalMoves; got != 6 {
		t.Errorf("baseline TotalMoves = %d, want 6", got)
	}
}

func TestImprovedTurnsAroundEarly(t *testing.T) {
	// One passenger from floor 3 down to floor 0 in a ten-floor building.
	down := make([][]int, 10)
	down[3] = []int{0}
	b := building.FromQueues(make([][]int, 10), down)

	improved := newController(b.Clone(), Improved{})
	if err := improved.Run(100, nil); err != nil {
		t.Fatal(err)
	}
	baseline := newController(b.Clone(), Baseline{})
	if err := baseline.Run(100, nil); err != nil {
		t.Fatal(err)
	}

	// Up to floor 4, on to 5 while turning, back to 3 for the passenger, then down to 0.
	if got := improved.lift.TotalMoves; got != 10 {
		t.Errorf("improved TotalMoves = %d, want 10", got)
	}
	// The baseline carries the passenger to the top floor first.
	if got := baseline.lift.TotalMoves; got != 18 {
		t.Errorf("baseline TotalMoves = %d, want 18", got)
	}
	if improved.lift.TotalMoves >= baseline.lift.TotalMoves {
		t.Errorf("improved (%d moves) should beat baseline (%d moves)",
			improved.lift.TotalMoves, baseline.lift.TotalMoves)
	}
}

// stopsAround returns the stop at floor in direction dir and the stop after it.
func stopsAround(t *testing.T, events []types.MoveEvent, floor int, dir types.Direction) (at, next types.MoveEvent) {
	t.Helper()
	for i, ev := range events[:len(events)-1] {
		if ev.Floor == floor && ev.Dir == dir {
			return ev, events[i+1]
		}
	}
	t.Fatalf("no stop at floor %d going %v in %+v", floor, dir, events)
	return
}

func TestImprovedTurnaroundGoingUpCountsMove(t *testing.T) {
	// Nobody rides past floor 3, so the lift turns there.
	up := [][]int{{3}, {}, {}, {}, {}, {}}
	down := [][]int{{}, {0}, {}, {}, {}, {}}
	c := newController(building.FromQueues(up, down), Improved{})

	var events []types.MoveEvent
	if err := c.Run(100, func(ev types.MoveEvent) { events = append(events, ev) }); err != nil {
		t.Fatal(err)
	}
	at, next := stopsAround(t, events, 3, types.Up)
	if at.Delivered != 1 {
		t.Errorf("stop at floor 3 delivered %d, want 1", at.Delivered)
	}
	if next.Floor != 4 || next.Dir != types.Down || next.Lift.TotalMoves != at.Lift.TotalMoves+1 {
		t.Errorf("after turning at floor 3: %+v, want floor 4 going down one move later", next)
	}
	for _, ev := range events {
		if ev.Floor == 3 && ev.Dir == types.Down && ev.Lift.TotalMoves == at.Lift.TotalMoves {
			t.Errorf("floor 3 served again without a move: %+v", ev)
		}
	}
	// 0 to 3, on to 4, back down to 0.
	if got := c.lift.TotalMoves; got != 8 {
		t.Errorf("TotalMoves = %d, want 8", got)
	}
	if c.Reversals != 2 {
		t.Errorf("Reversals = %d, want 2", c.Reversals)
	}
}

func TestImprovedTurnaroundGoingDownCountsMove(t *testing.T) {
	// With room for one passenger, the second one on floor 5 waits for the next sweep.
	down := [][]int{{}, {}, {}, {}, {}, {2, 3}}
	b := building.FromQueues(make([][]int, 6), down)
	c := NewController(b, lift.New(1, b.Floors, b.Waiting()), Improved{})

	var events []types.MoveEvent
	if err := c.Run(100, func(ev types.MoveEvent) { events = append(events, ev) }); err != nil {
		t.Fatal(err)
	}
	at, next := stopsAround(t, events, 2, types.Down)
	if at.Delivered != 1 {
		t.Errorf("stop at floor 2 delivered %d, want 1", at.Delivered)
	}
	if next.Floor != 2 || next.Dir != types.Up || next.Lift.TotalMoves != at.Lift.TotalMoves+1 {
		t.Errorf("after turning at floor 2: %+v, want floor 2 going up one move later", next)
	}
	// 0 to 5, down to 2, one counted move to turn, up to 5 and down to 3.
	if got := c.lift.TotalMoves; got != 14 {
		t.Errorf("TotalMoves = %d, want 14", got)
	}
}

func TestImprovedLeavesOppositeDirectionQueued(t *testing.T) {
	b := building.FromQueues([][]int{{}, {}, {}, {}}, [][]int{{}, {0}, {}, {1}})
	c := newController(b, Improved{})

	c.Step()
	ev := c.Step()
	if ev.Floor != 1 || ev.Dir != types.Up {
		t.Fatalf("unexpected stop %+v", ev)
	}
	if ev.Boarded != 0 || len(b.Down[1]) != 1 {
		t.Errorf("improved boarded a down-bound passenger while going up")
	}
}

// checkingPolicy wraps a policy and inspects the lift right before passengers leave.
type checkingPolicy struct {
	Policy
	t        *testing.T
	capacity int
}

func (p checkingPolicy) Continue(b *building.Building, m *lift.Manifest, floor int, dir types.Direction) bool {
	if !slices.IsSorted(m.Destinations()) {
		p.t.Errorf("manifest not sorted before disembarking: %v", m.Destinations())
	}
	if m.Size() > p.capacity {
		p.t.Errorf("manifest holds %d passengers, capacity %d", m.Size(), p.capacity)
	}
	return p.Policy.Continue(b, m, floor, dir)
}

func TestInvariantsOnGeneratedDemand(t *testing.T) {
	for seed := int64(1); seed <= 40; seed++ {
		for _, inner := range []Policy{Baseline{}, Improved{}} {
			floors := 2 + int(seed%18)
			b := building.NewGenerator(seed, 5).Generate(floors)
			waiting := b.Waiting()
			policy := checkingPolicy{Policy: inner, t: t, capacity: 10}
			c := newController(b, policy)

			before := b.Clone()
			err := c.Run(4*floors*(waiting+10), func(ev types.MoveEvent) {
				if ev.Lift.Onboard > 10 {
					t.Errorf("snapshot shows %d passengers on board", ev.Lift.Onboard)
				}
				if _, ok := inner.(Improved); ok {
					checkDirectionalFidelity(t, before, b, ev)
				}
				before = b.Clone()
			})
			if err != nil {
				t.Fatalf("seed %d %s: %v", seed, inner.Name(), err)
			}
			if c.Delivered != waiting || c.Boarded != waiting {
				t.Errorf("seed %d %s: delivered %d boarded %d, want %d",
					seed, inner.Name(), c.Delivered, c.Boarded, waiting)
			}
			if c.lift.PassengersRemaining != 0 {
				t.Errorf("seed %d %s: %d passengers remaining", seed, inner.Name(), c.lift.PassengersRemaining)
			}
		}
	}
}

// checkDirectionalFidelity fails if a queue for the other direction shrank during a stop.
func checkDirectionalFidelity(t *testing.T, before, after *building.Building, ev types.MoveEvent) {
	t.Helper()
	if ev.Dir == types.Up && len(after.Down[ev.Floor]) != len(before.Down[ev.Floor]) {
		t.Errorf("down-bound passengers boarded at floor %d while going up", ev.Floor)
	}
	if ev.Dir == types.Down && len(after.Up[ev.Floor]) != len(before.Up[ev.Floor]) {
		t.Errorf("up-bound passengers boarded at floor %d while going down", ev.Floor)
	}
}

func TestCapacityLeavesPassengersQueued(t *testing.T) {
	up := [][]int{{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, {}, {}}
	b := building.FromQueues(up, make([][]int, 3))
	c := newController(b, Improved{})

	ev := c.Step()
	if ev.Boarded != 10 || ev.Waiting != 2 {
		t.Errorf("boarded %d with %d left queued, want 10 and 2", ev.Boarded, ev.Waiting)
	}
	if err := c.Run(200, nil); err != nil {
		t.Fatal(err)
	}
	if c.Delivered != 12 {
		t.Errorf("delivered %d, want 12", c.Delivered)
	}
}

func TestEmptyBuildingTerminatesImmediately(t *testing.T) {
	c := newController(building.New(5), Improved{})
	ev := c.Step()
	if !ev.Final || c.State() != types.Terminated || ev.Lift.TotalMoves != 0 {
		t.Errorf("empty building: event %+v state %v", ev, c.State())
	}
	if again := c.Step(); !again.Final {
		t.Errorf("Step after termination should stay final")
	}
}

// stuckPolicy never lets anyone board.
type stuckPolicy struct{ Baseline }

func (stuckPolicy) Board(*building.Building, *lift.Manifest, int, types.Direction) int { return 0 }

func TestRunStepLimit(t *testing.T) {
	c := newController(scenarioBuilding(), stuckPolicy{})
	if err := c.Run(50, nil); !errors.Is(err, ErrStepLimit) {
		t.Errorf("Run = %v, want ErrStepLimit", err)
	}
}

func TestPolicyByName(t *testing.T) {
	for name, want := range map[string]string{"baseline": "baseline", "LOOK": "improved", " improved ": "improved"} {
		p, err := PolicyByName(name)
		if err != nil || p.Name() != want {
			t.Errorf("PolicyByName(%q) = %v, %v", name, p, err)
		}
	}
	if _, err := PolicyByName("random"); err == nil {
		t.Errorf("expected error for unknown policy")
	}
	if _, err := PoliciesByName([]string{"baseline", "nope"}); err == nil {
		t.Errorf("expected error for unknown policy in list")
	}
}
