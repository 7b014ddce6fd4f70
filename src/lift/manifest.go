package lift

import (
	"slices"

	"github.com/dgbarclay/elevator-algorithm/src/utils"
)

// Manifest is the multiset of destinations of the passengers on board.
type Manifest struct {
	capacity     int
	destinations []int
}

func NewManifest(capacity int) *Manifest {
	if capacity < 1 {
		panic("lift: capacity must be at least 1")
	}
	return &Manifest{
		capacity:     capacity,
		destinations: make([]int, 0, capacity),
	}
}

// Add boards one passenger. It is a no-op returning false when the lift is full.
func (m *Manifest) Add(destination int) bool {
	if len(m.destinations) >= m.capacity {
		return false
	}
	m.destinations = append(m.destinations, destination)
	return true
}

// Reorder sorts the destinations ascending. Boarding appends unsorted entries,
// so this runs at every floor-stop before disembarking.
func (m *Manifest) Reorder() {
	if m.IsEmpty() {
		return
	}
	utils.QuickSort(m.destinations, 0, len(m.destinations)-1)
}

// RemoveOneMatching removes a single passenger bound for target. The manifest must be sorted.
// Call until it returns false to unload every passenger for a floor.
func (m *Manifest) RemoveOneMatching(target int) bool {
	if m.IsEmpty() {
		return false
	}
	var found bool
	m.destinations, found = utils.RemoveSorted(m.destinations, target)
	return found
}

func (m *Manifest) Size() int {
	return len(m.destinations)
}

func (m *Manifest) Capacity() int {
	return m.capacity
}

// Free returns how many more passengers can board.
func (m *Manifest) Free() int {
	return m.capacity - len(m.destinations)
}

func (m *Manifest) IsEmpty() bool {
	return len(m.destinations) == 0
}

// LowestDestination is only valid on a sorted, non-empty manifest.
func (m *Manifest) LowestDestination() int {
	if m.IsEmpty() {
		panic("lift: LowestDestination on empty manifest")
	}
	return m.destinations[0]
}

// HighestDestination is only valid on a sorted, non-empty manifest.
func (m *Manifest) HighestDestination() int {
	if m.IsEmpty() {
		panic("lift: HighestDestination on empty manifest")
	}
	return m.destinations[len(m.destinations)-1]
}

// Destinations returns a copy of the onboard destinations in their current order.
func (m *Manifest) Destinations() []int {
	return slices.Clone(m.destinations)
}
