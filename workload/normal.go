package workload

import (
	"math"
	"math/rand/v2"
)

// Normal describes a normal distribution floored at zero.
type Normal struct {
	Mean   float64
	StdDev float64
}

// Sample draws one value and floors it at 0.
func (n Normal) Sample(r *rand.Rand) float64 {
	return max(n.Draw(r), 0)
}

// Draw returns one unfloored value using the Box-Muller transform.
func (n Normal) Draw(r *rand.Rand) float64 {
	u1 := openUnit(r)
	u2 := openUnit(r)
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return z*n.StdDev + n.Mean
}

// openUnit returns a uniform value in (0, 1).
func openUnit(r *rand.Rand) float64 {
	for {
		if u := r.Float64(); u > 0 {
			return u
		}
	}
}
