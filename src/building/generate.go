package building

import (
	"math/rand"

	"github.com/dgbarclay/elevator-algorithm/src/config"
)

// Generator populates buildings with random passengers. A fixed seed reproduces the same demand.
type Generator struct {
	rng         *rand.Rand
	maxArrivals int
}

func NewGenerator(seed int64, maxArrivals int) *Generator {
	if maxArrivals < 0 {
		maxArrivals = config.MaxArrivals
	}
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		maxArrivals: maxArrivals,
	}
}

// Generate draws up to maxArrivals passengers per floor.
//   - bottom floor passengers all go up, top floor passengers all go down
//   - interior floors split arrivals between up and down uniformly
//   - destinations are uniform over the floors in the travel direction
func (g *Generator) Generate(floors int) *Building {
	b := New(floors)
	top := floors - 1
	for floor := range floors {
		arrivals := g.rng.Intn(g.maxArrivals + 1)

		var up int
		switch floor {
		case 0:
			up = arrivals
		case top:
			up = 0
		default:
			up = g.rng.Intn(arrivals + 1)
		}
		down := arrivals - up

		for range up {
			b.AddUp(floor, floor+1+g.rng.Intn(top-floor))
		}
		for range down {
			b.AddDown(floor, g.rng.Intn(floor))
		}
	}
	return b
}
