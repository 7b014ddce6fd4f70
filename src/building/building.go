// Package building holds the per-floor demand store: passengers waiting to travel up or down.
package building

import (
	"fmt"

	"github.com/tiendc/go-deepcopy"

	"github.com/dgbarclay/elevator-algorithm/src/types"
	"github.com/dgbarclay/elevator-algorithm/src/utils"
)

// Building stores waiting destinations per floor, split by travel direction.
// Queues keep arrival order, not travel order.
type Building struct {
	Floors int
	Up     [][]int // Up[f] holds destinations above f
	Down   [][]int // Down[f] holds destinations below f
}

func New(floors int) *Building {
	if floors < 2 {
		panic(fmt.Sprintf("building: floor count must be at least 2, got %d", floors))
	}
	return &Building{
		Floors: floors,
		Up:     make([][]int, floors),
		Down:   make([][]int, floors),
	}
}

// FromQueues builds a store from explicit queues. Both slices must have one entry per floor.
func FromQueues(up, down [][]int) *Building {
	if len(up) != len(down) {
		panic(fmt.Sprintf("building: %d up queues but %d down queues", len(up), len(down)))
	}
	b := New(len(up))
	utils.ForEachDestination(up, b.AddUp)
	utils.ForEachDestination(down, b.AddDown)
	return b
}

func (b *Building) AddUp(floor, destination int) {
	b.checkFloor(floor)
	if destination <= floor || destination >= b.Floors {
		panic(fmt.Sprintf("building: up-bound passenger at floor %d has destination %d outside (%d, %d]",
			floor, destination, floor, b.Floors-1))
	}
	b.Up[floor] = append(b.Up[floor], destination)
}

func (b *Building) AddDown(floor, destination int) {
	b.checkFloor(floor)
	if destination >= floor || destination < 0 {
		panic(fmt.Sprintf("building: down-bound passenger at floor %d has destination %d outside [0, %d)",
			floor, destination, floor))
	}
	b.Down[floor] = append(b.Down[floor], destination)
}

// PopUpTo removes and returns up to maxCount passengers from the front of the up queue at floor.
func (b *Building) PopUpTo(floor, maxCount int) []int {
	b.checkFloor(floor)
	var popped []int
	popped, b.Up[floor] = popFront(b.Up[floor], maxCount)
	return popped
}

// PopDownTo removes and returns up to maxCount passengers from the front of the down queue at floor.
func (b *Building) PopDownTo(floor, maxCount int) []int {
	b.checkFloor(floor)
	var popped []int
	popped, b.Down[floor] = popFront(b.Down[floor], maxCount)
	return popped
}

func popFront(queue []int, maxCount int) (popped, rest []int) {
	n := min(max(maxCount, 0), len(queue))
	if n == 0 {
		return nil, queue
	}
	popped = make([]int, n)
	copy(popped, queue[:n])
	return popped, queue[n:]
}

// HasAnyDemandFrom reports whether anyone is still waiting, in either queue,
// on floors at or beyond floor in the given direction.
func (b *Building) HasAnyDemandFrom(floor int, dir types.Direction) bool {
	b.checkFloor(floor)
	switch dir {
	case types.Up:
		return b.waitingBetween(floor, b.Floors) > 0
	case types.Down:
		return b.waitingBetween(0, floor+1) > 0
	}
	panic(fmt.Sprintf("building: invalid direction %v", dir))
}

func (b *Building) IsFullyDrained() bool {
	return b.Waiting() == 0
}

// Waiting returns the number of passengers still queued on all floors.
func (b *Building) Waiting() int {
	return b.waitingBetween(0, b.Floors)
}

func (b *Building) WaitingAt(floor int) int {
	b.checkFloor(floor)
	return b.waitingBetween(floor, floor+1)
}

func (b *Building) waitingBetween(startFloor, endFloor int) (result int) {
	for floor := startFloor; floor < endFloor; floor++ {
		result += len(b.Up[floor]) + len(b.Down[floor])
	}
	return result
}

// Clone returns an independent deep copy, used to give each policy identical demand.
func (b *Building) Clone() *Building {
	clone := new(Building)
	if err := deepcopy.Copy(clone, b); err != nil {
		panic(err)
	}
	return clone
}

func (b *Building) checkFloor(floor int) {
	if floor < 0 || floor >= b.Floors {
		panic(fmt.Sprintf("building: floor %d outside [0, %d)", floor, b.Floors))
	}
}
