package types

import "fmt"

type Direction int

const (
	Up   Direction = 1
	Down Direction = -1
)

// Opposite returns the direction the lift travels in after reversing.
func (d Direction) Opposite() Direction {
	return -d
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

type ControllerState int

const (
	MovingUp ControllerState = iota
	MovingDown
	Terminated
)

func (s ControllerState) String() string {
	switch s {
	case MovingUp:
		return "MovingUp"
	case MovingDown:
		return "MovingDown"
	case Terminated:
		return "Terminated"
	}
	return fmt.Sprintf("ControllerState(%d)", int(s))
}

// StateFor maps a travel direction to the matching moving state.
func StateFor(dir Direction) ControllerState {
	if dir == Down {
		return MovingDown
	}
	return MovingUp
}

// LiftSnapshot is the part of the lift the reporting side is allowed to see.
type LiftSnapshot struct {
	Position            int
	TotalMoves          int
	PassengersRemaining int
	Onboard             int
}

// MoveEvent is emitted once per floor-stop, before the lift leaves the floor.
type MoveEvent struct {
	RunID     string
	Policy    string
	Floor     int
	Dir       Direction
	Boarded   int
	Delivered int
	Waiting   int // still queued at Floor after the stop
	Lift      LiftSnapshot
	Final     bool
}

// Result holds the terminal metrics of one policy run.
type Result struct {
	RunID     string
	Policy    string
	Capacity  int
	Lift      LiftSnapshot
	Delivered int
	Boarded   int
	Stops     int
	Reversals int
	Completed bool
}
