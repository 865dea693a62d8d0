package math

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// Rand is a linear congruential pseudo random generator.
// The same seed produces the same sequence on any platform.
// Each run owns its own instance, it is not safe for concurrent use.
type Rand struct {
	state int64
}

// NewRand creates a new generator for the given seed.
func NewRand(seed int64) *Rand {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &Rand{state: s}
}

// Float64 returns the next value in [0,1).
func (r *Rand) Float64() float64 {
	r.state = (r.state*lcgMultiplier + lcgIncrement) % lcgModulus
	return float64(r.state) / lcgModulus
}

// Intn returns the next value in [0,n).
func (r *Rand) Intn(n int) int {
	i := int(r.Float64() * float64(n))
	if i >= n {
		return n - 1
	}
	return i
}

// Weighted picks an index with probability proportional to its weight.
// If all weights are 0 the first index is returned.
func (r *Rand) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	target := r.Float64() * total
	var cumulative float64
	for i, w := range weights {
		cumulative += w
		if cumulative >= target && w > 0 {
			return i
		}
	}
	// only zero weights or rounding at the tail
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return 0
}
