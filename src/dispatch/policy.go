package dispatch

import (
	"fmt"
	"strings"

	"github.com/dgbarclay/elevator-algorithm/src/building"
	"github.com/dgbarclay/elevator-algorithm/src/lift"
	"github.com/dgbarclay/elevator-algorithm/src/types"
)

// Policy decides who boards at a floor-stop and whether the lift keeps going.
// Continue is called after boarding and sorting, before anyone leaves the lift.
type Policy interface {
	Name() string
	Board(b *building.Building, m *lift.Manifest, floor int, dir types.Direction) int
	Continue(b *building.Building, m *lift.Manifest, floor int, dir types.Direction) bool
}

// Baseline boards everyone waiting at the floor, whatever their direction,
// and only turns around at the bottom and top floors.
type Baseline struct{}

func (Baseline) Name() string { return "baseline" }

func (Baseline) Board(b *building.Building, m *lift.Manifest, floor int, _ types.Direction) int {
	boarded := fill(m, b.PopUpTo(floor, m.Free()))
	return boarded + fill(m, b.PopDownTo(floor, m.Free()))
}

func (Baseline) Continue(*building.Building, *lift.Manifest, int, types.Direction) bool {
	return true
}

// Improved only boards passengers travelling the lift's way and turns around
// as soon as nothing is left ahead (LOOK).
type Improved struct{}

func (Improved) Name() string { return "improved" }

func (Improved) Board(b *building.Building, m *lift.Manifest, floor int, dir types.Direction) int {
	if dir == types.Up {
		return fill(m, b.PopUpTo(floor, m.Free()))
	}
	return fill(m, b.PopDownTo(floor, m.Free()))
}

// Continue with an empty lift looks for waiting passengers ahead in either queue.
// With passengers on board it keeps going while any destination is still ahead.
func (Improved) Continue(b *building.Building, m *lift.Manifest, floor int, dir types.Direction) bool {
	if m.IsEmpty() {
		return b.HasAnyDemandFrom(floor, dir)
	}
	if dir == types.Up {
		return m.HighestDestination() > floor
	}
	return m.LowestDestination() < floor
}

func fill(m *lift.Manifest, destinations []int) (boarded int) {
	for _, dest := range destinations {
		if m.Add(dest) {
			boarded++
		}
	}
	return boarded
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "baseline", "scan", "sweep":
		return Baseline{}, nil
	case "improved", "look":
		return Improved{}, nil
	}
	return nil, fmt.Errorf("unknown policy %q", name)
}

func PoliciesByName(names []string) ([]Policy, error) {
	policies := make([]Policy, 0, len(names))
	for _, name := range names {
		p, err := PolicyByName(name)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}
