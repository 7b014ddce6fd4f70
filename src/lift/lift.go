// Package lift models the single car: its position, its manifest and its counters.
package lift

import (
	"fmt"

	"github.com/dgbarclay/elevator-algorithm/src/types"
)

type Lift struct {
	Manifest            *Manifest
	Floors              int
	Position            int
	TotalMoves          int
	PassengersRemaining int
}

// New creates a lift parked at floor 0 with passengers still to be delivered.
func New(capacity, floors, passengers int) *Lift {
	if floors < 2 {
		panic(fmt.Sprintf("lift: floor count must be at least 2, got %d", floors))
	}
	if passengers < 0 {
		panic(fmt.Sprintf("lift: negative passenger count %d", passengers))
	}
	return &Lift{
		Manifest:            NewManifest(capacity),
		Floors:              floors,
		PassengersRemaining: passengers,
	}
}

// Advance moves the lift one floor in dir and counts the move.
func (l *Lift) Advance(dir types.Direction) {
	next := l.Position + int(dir)
	if next < 0 || next >= l.Floors {
		panic(fmt.Sprintf("lift: cannot move %v from floor %d of %d", dir, l.Position, l.Floors))
	}
	l.Position = next
	l.TotalMoves++
}

// Reposition places the lift at floor without counting a move.
func (l *Lift) Reposition(floor int) {
	if floor < 0 || floor >= l.Floors {
		panic(fmt.Sprintf("lift: floor %d outside [0, %d)", floor, l.Floors))
	}
	l.Position = floor
}

// Deliver records one passenger leaving the lift.
func (l *Lift) Deliver() {
	if l.PassengersRemaining <= 0 {
		panic("lift: delivered more passengers than were waiting")
	}
	l.PassengersRemaining--
}

func (l *Lift) Snapshot() types.LiftSnapshot {
	return types.LiftSnapshot{
		Position:            l.Position,
		TotalMoves:          l.TotalMoves,
		PassengersRemaining: l.PassengersRemaining,
		Onboard:             l.Manifest.Size(),
	}
}
