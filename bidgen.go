// bidgen.go — seeded random bid policy for burst mode.
//
// Deterministic per seed so a burst session can be replayed exactly.
package main

import (
	"math/rand"

	"main/constants"
)

const burstDefault = "64"

// bidGen produces ticks clustered around a drifting center with a wide
// amount spread, roughly the shape of a live book: most volume near the
// money, occasional deep outliers.
type bidGen struct {
	rng      *rand.Rand
	maxTicks int64
	center   int64
}

func newBidGen(seed int64, maxTicks int64) *bidGen {
	return &bidGen{
		rng:      rand.New(rand.NewSource(seed)),
		maxTicks: maxTicks,
		center:   maxTicks / 2,
	}
}

func (g *bidGen) defaultBurst() int {
	return constants.DefaultBurst
}

// next draws one bid. Tick: clamped normal around the center with a slow
// random walk of the center itself. Amount: exponential-ish spread over
// roughly three orders of magnitude.
func (g *bidGen) next() (int64, uint64) {
	// Center drift keeps long sessions from pinning one block.
	g.center += int64(g.rng.Intn(9)) - 4
	if g.center < 0 {
		g.center = 0
	}
	if g.center >= g.maxTicks {
		g.center = g.maxTicks - 1
	}

	spread := g.maxTicks / 16
	if spread < 1 {
		spread = 1
	}
	tick := g.center + int64(g.rng.NormFloat64()*float64(spread))
	if tick < 0 {
		tick = 0
	}
	if tick >= g.maxTicks {
		tick = g.maxTicks - 1
	}

	amount := uint64(1+g.rng.Intn(100)) << uint(g.rng.Intn(7))
	return tick, amount
}
